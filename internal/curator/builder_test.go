package curator

import (
	"strings"
	"testing"

	"github.com/desertthunder/curator/internal/models"
)

func TestNormalizeProfile(t *testing.T) {
	t.Run("fills defaults for zero values", func(t *testing.T) {
		p := NormalizeProfile(models.RequestProfile{})

		if p.TargetLength != DefaultTargetLength {
			t.Errorf("expected target length %d, got %d", DefaultTargetLength, p.TargetLength)
		}
		if p.SortOrder != models.SortRelevance {
			t.Errorf("expected sort order %s, got %s", models.SortRelevance, p.SortOrder)
		}
		if p.PlatformMode != models.PlatformAuto {
			t.Errorf("expected platform mode %s, got %s", models.PlatformAuto, p.PlatformMode)
		}
	})

	t.Run("preserves explicit values", func(t *testing.T) {
		in := models.RequestProfile{
			TargetLength: 25,
			SortOrder:    models.SortBPM,
			PlatformMode: models.PlatformYouTube,
		}

		p := NormalizeProfile(in)

		if p.TargetLength != 25 || p.SortOrder != models.SortBPM || p.PlatformMode != models.PlatformYouTube {
			t.Errorf("explicit values were overwritten: %+v", p)
		}
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		in := models.RequestProfile{}
		NormalizeProfile(in)

		if in.TargetLength != 0 {
			t.Error("input profile was mutated")
		}
	})
}

func TestBuildInstruction(t *testing.T) {
	t.Run("embeds the query and explicit constraints", func(t *testing.T) {
		profile := NormalizeProfile(models.RequestProfile{
			TargetLength:  5,
			SortOrder:     models.SortChronological,
			PlatformMode:  models.PlatformSpotify,
			EraConstraint: "1990s",
			ToneFocus:     "melancholy",
		})

		instruction := BuildInstruction("rainy day shoegaze", profile)

		for _, want := range []string{
			`"rainy day shoegaze"`,
			"EXACTLY 5 items",
			"Platform: Spotify_Music",
			"Sort Order: Chronological",
			"Era: 1990s",
			"Tone Focus: melancholy",
		} {
			if !strings.Contains(instruction, want) {
				t.Errorf("instruction missing %q", want)
			}
		}
	})

	t.Run("states the quantity constraint exactly once", func(t *testing.T) {
		profile := NormalizeProfile(models.RequestProfile{TargetLength: 12})

		instruction := BuildInstruction("test", profile)

		if got := strings.Count(instruction, "EXACTLY 12 items"); got != 1 {
			t.Errorf("expected quantity constraint once, found %d occurrences", got)
		}
	})

	t.Run("marks absent constraints explicitly", func(t *testing.T) {
		instruction := BuildInstruction("test", NormalizeProfile(models.RequestProfile{}))

		if !strings.Contains(instruction, "Era: Not specified") {
			t.Error("absent era should render as Not specified")
		}
		if !strings.Contains(instruction, "Tone Focus: Not specified") {
			t.Error("absent tone should render as Not specified")
		}
		if !strings.Contains(instruction, "General high-authority sources") {
			t.Error("absent source should render the default authorities line")
		}
	})

	t.Run("auto platform defers to prompt context", func(t *testing.T) {
		instruction := BuildInstruction("test", NormalizeProfile(models.RequestProfile{}))

		if !strings.Contains(instruction, "Determine from prompt context") {
			t.Error("auto platform should defer to prompt context")
		}
		if strings.Contains(instruction, "Platform: Auto") {
			t.Error("auto platform should not be rendered literally")
		}
	})
}

func TestBuildManualInstruction(t *testing.T) {
	items := []models.ManualItem{
		{Title: "Only Shallow", Creator: "My Bloody Valentine"},
		{Title: "Vapour Trail", Creator: "Ride"},
	}

	instruction := BuildManualInstruction(items)

	t.Run("lists every item", func(t *testing.T) {
		if !strings.Contains(instruction, "- Only Shallow by My Bloody Valentine") {
			t.Error("first item not listed")
		}
		if !strings.Contains(instruction, "- Vapour Trail by Ride") {
			t.Error("second item not listed")
		}
	})

	t.Run("forbids inventing items", func(t *testing.T) {
		if !strings.Contains(instruction, "Do not add") {
			t.Error("instruction should forbid adding items")
		}
	})
}

func TestSchemas(t *testing.T) {
	t.Run("result schema includes playback fields", func(t *testing.T) {
		schema := ResultSchema()

		items := schema.Properties["items"].Items
		for _, field := range []string{"url", "platformId", "releaseDate", "thumbnail"} {
			if _, ok := items.Properties[field]; !ok {
				t.Errorf("result item schema missing %s", field)
			}
		}
	})

	t.Run("manual schema omits playback and profile", func(t *testing.T) {
		schema := ManualSchema()

		if _, ok := schema.Properties["profile"]; ok {
			t.Error("manual schema should not echo a profile")
		}
		items := schema.Properties["items"].Items
		if _, ok := items.Properties["platformId"]; ok {
			t.Error("manual item schema should not include platformId")
		}
	})
}
