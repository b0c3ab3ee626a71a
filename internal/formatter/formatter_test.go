package formatter

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/curator/internal/models"
)

func sampleResult() *models.GeneratorResult {
	return &models.GeneratorResult{
		Profile: models.RequestProfile{TargetLength: 2, Keywords: "test"},
		Items: []models.PlaylistItem{
			{ID: "a", Title: "First", Creator: "One", Metadata: "3:45", Score: 92, Heuristics: []string{"sharp", "canonical"}},
			{ID: "b", Title: "Second", Creator: "Two", Metadata: "4:10", Score: 81, Description: "A slow burner."},
		},
		EditorCommentary: "A confident pairing.",
		VibeScore:        87,
		Sources:          []models.Source{{Title: "Pitchfork", URI: "https://pitchfork.com"}},
	}
}

func TestToCSV(t *testing.T) {
	data, err := ToCSV(sampleResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID,Title,Creator") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "First,One") {
		t.Errorf("unexpected first row %q", lines[1])
	}
}

func TestToMarkdown(t *testing.T) {
	data, err := ToMarkdown("Test Session", sampleResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := string(data)

	for _, want := range []string{
		"# Test Session",
		"**Vibe Score**: 87/100",
		"> A confident pairing.",
		"1. **First** - One (92/100)",
		"_sharp, canonical_",
		"A slow burner.",
		"[Pitchfork](https://pitchfork.com)",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestToText(t *testing.T) {
	data, err := ToText("Test Session", sampleResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := string(data)

	if !strings.Contains(doc, "1. First - One") || !strings.Contains(doc, "2. Second - Two") {
		t.Errorf("items missing or out of order:\n%s", doc)
	}
}

func TestWriteExport(t *testing.T) {
	t.Run("writes the chosen format", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.md")

		written, err := WriteExport("Test", sampleResult(), "markdown", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if written != path {
			t.Errorf("expected %q, got %q", path, written)
		}
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		if _, err := WriteExport("Test", sampleResult(), "xml", ""); err == nil {
			t.Error("unknown format should fail")
		}
	})
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Rainy Day Shoegaze": "rainy-day-shoegaze",
		"  HC // Session!  ": "hc--session",
		"":                   "untitled",
	}
	for input, want := range cases {
		if got := slugify(input); got != want {
			t.Errorf("slugify(%q) = %q, want %q", input, got, want)
		}
	}
}
