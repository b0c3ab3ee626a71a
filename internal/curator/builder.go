package curator

import (
	"fmt"
	"strings"

	"github.com/desertthunder/curator/internal/models"
	"google.golang.org/genai"
)

// DefaultTargetLength is used when the caller does not specify a length.
const DefaultTargetLength = 10

const notSpecified = "Not specified"

// NormalizeProfile fills in defaults for absent profile fields.
//
// Pure; the input is not mutated.
func NormalizeProfile(p models.RequestProfile) models.RequestProfile {
	if p.TargetLength <= 0 {
		p.TargetLength = DefaultTargetLength
	}
	if p.SortOrder == "" {
		p.SortOrder = models.SortRelevance
	}
	if p.PlatformMode == "" {
		p.PlatformMode = models.PlatformAuto
	}
	return p
}

// BuildInstruction renders the generation instruction for a curation request.
//
// Every supplied constraint is embedded verbatim; absent constraints render as
// an explicit marker rather than being omitted, so the instruction is
// auditable against the profile. The quantity constraint appears exactly once.
func BuildInstruction(query string, p models.RequestProfile) string {
	platform := string(p.PlatformMode)
	if p.PlatformMode == models.PlatformAuto {
		platform = "Determine from prompt context"
	}

	era := p.EraConstraint
	if era == "" {
		era = notSpecified
	}
	tone := p.ToneFocus
	if tone == "" {
		tone = notSpecified
	}
	source := p.PreferredSource
	if source == "" {
		source = "General high-authority sources"
	}

	var b strings.Builder
	b.WriteString(`Act as "The Honest Curator", a world-class editor with obsessive attention to detail and zero tolerance for broken links.
Analyze the following user request and generate a structured playlist/collection response.

`)
	fmt.Fprintf(&b, "User Request: %q\n\n", query)
	b.WriteString("CRITICAL QUANTITY CONSTRAINT:\n")
	fmt.Fprintf(&b, "- You MUST return EXACTLY %d items.\n\n", p.TargetLength)
	b.WriteString("EXPLICIT CONSTRAINTS:\n")
	fmt.Fprintf(&b, "- Platform: %s\n", platform)
	fmt.Fprintf(&b, "- Sort Order: %s\n", p.SortOrder)
	fmt.Fprintf(&b, "- Era: %s\n", era)
	fmt.Fprintf(&b, "- Tone Focus: %s\n", tone)
	fmt.Fprintf(&b, "- Preferred Authorities: %s\n\n", source)
	b.WriteString(`Editorial Guidelines:
1. PLATFORM: Music (Spotify) or Videos (YouTube).
2. SCORING: Use high editorial standards (0-100). If YouTube, prioritize official channel authority.
3. HEURISTICS: List 1-3 short tags explaining the selection.
4. COMMENTARY: Provide a sharp, professional editorial take.
5. IDS: Provide a valid "platformId". For YouTube, this is exactly 11 characters.
6. DESCRIPTION: Write a one-sentence high-fidelity review for each item.
7. DATE: Include the release year if possible.

Return the result in valid JSON format.
`)

	return b.String()
}

// BuildManualInstruction renders the instruction for analyzing a caller-supplied list.
//
// The model must annotate the given items only, never invent new ones.
func BuildManualInstruction(items []models.ManualItem) string {
	var b strings.Builder
	b.WriteString("Act as \"The Honest Curator\". Review this manual collection:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s by %s\n", item.Title, item.Creator)
	}
	b.WriteString(`
Rate Vibe Score (0-100), provide sharp commentary, and score each unit.
Annotate ONLY the items listed above, in the order given. Do not add,
remove, or substitute items.
`)
	return b.String()
}

// itemSchema describes a single curated item in the structured output.
func itemSchema(withPlayback bool) *genai.Schema {
	properties := map[string]*genai.Schema{
		"id":          {Type: genai.TypeString},
		"title":       {Type: genai.TypeString},
		"creator":     {Type: genai.TypeString},
		"metadata":    {Type: genai.TypeString},
		"score":       {Type: genai.TypeNumber},
		"description": {Type: genai.TypeString},
		"heuristics":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	}

	if withPlayback {
		properties["url"] = &genai.Schema{Type: genai.TypeString}
		properties["platformId"] = &genai.Schema{Type: genai.TypeString}
		properties["releaseDate"] = &genai.Schema{Type: genai.TypeString}
		properties["thumbnail"] = &genai.Schema{Type: genai.TypeString, Nullable: genai.Ptr(true)}
	}

	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: properties,
		Required:   []string{"id", "title", "creator", "metadata", "score"},
	}
}

// ResultSchema is the strict output schema for a full curation request.
func ResultSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"profile": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"targetLength": {Type: genai.TypeInteger},
					"sortOrder":    {Type: genai.TypeString},
					"platformMode": {Type: genai.TypeString},
					"keywords":     {Type: genai.TypeString},
				},
				Required: []string{"targetLength", "sortOrder", "platformMode", "keywords"},
			},
			"items": {
				Type:  genai.TypeArray,
				Items: itemSchema(true),
			},
			"editorCommentary": {Type: genai.TypeString},
			"vibeScore":        {Type: genai.TypeNumber},
		},
		Required: []string{"profile", "items", "editorCommentary", "vibeScore"},
	}
}

// ManualSchema is the output schema for manual analysis.
//
// No profile echo and no playback fields; the caller synthesizes the profile
// locally and owns any verified platform identifiers.
func ManualSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"editorCommentary": {Type: genai.TypeString},
			"vibeScore":        {Type: genai.TypeNumber},
			"items": {
				Type:  genai.TypeArray,
				Items: itemSchema(false),
			},
		},
		Required: []string{"editorCommentary", "vibeScore", "items"},
	}
}
