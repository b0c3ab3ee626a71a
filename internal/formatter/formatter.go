// package formatter renders curation results to portable formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/curator/internal/models"
	"github.com/desertthunder/curator/internal/shared"
)

// ToCSV renders a result's items with columns: ID, Title, Creator, Metadata, Score, PlatformID, URL
func ToCSV(result *models.GeneratorResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Creator", "Metadata", "Score", "PlatformID", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range result.Items {
		record := []string{
			item.ID,
			item.Title,
			item.Creator,
			item.Metadata,
			strconv.FormatFloat(item.Score, 'f', -1, 64),
			item.PlatformID,
			item.URL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ToMarkdown renders a result as a readable document: commentary, items with
// scores and heuristics, then grounding sources.
func ToMarkdown(title string, result *models.GeneratorResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Vibe Score**: %.0f/100\n", result.VibeScore)
	fmt.Fprintf(&buf, "**Items**: %d\n\n", len(result.Items))

	if result.EditorCommentary != "" {
		fmt.Fprintf(&buf, "> %s\n\n", result.EditorCommentary)
	}

	buf.WriteString("## Items\n\n")
	for i, item := range result.Items {
		fmt.Fprintf(&buf, "%d. **%s** - %s (%.0f/100)\n", i+1, item.Title, item.Creator, item.Score)
		if item.Description != "" {
			fmt.Fprintf(&buf, "   %s\n", item.Description)
		}
		if len(item.Heuristics) > 0 {
			fmt.Fprintf(&buf, "   _%s_\n", strings.Join(item.Heuristics, ", "))
		}
	}

	if len(result.Sources) > 0 {
		buf.WriteString("\n## Sources\n\n")
		for _, source := range result.Sources {
			title := source.Title
			if title == "" {
				title = source.URI
			}
			fmt.Fprintf(&buf, "- [%s](%s)\n", title, source.URI)
		}
	}

	return buf.Bytes(), nil
}

// ToText renders a minimal manifest, one "Title - Creator" line per item.
func ToText(title string, result *models.GeneratorResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Collection: %s\n", title)
	fmt.Fprintf(&buf, "Items: %d\n\n", len(result.Items))

	for i, item := range result.Items {
		fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, item.Title, item.Creator)
	}

	return buf.Bytes(), nil
}

// ToJSON renders the full result document.
func ToJSON(result *models.GeneratorResult) ([]byte, error) {
	return shared.MarshalJSON(result, true)
}

// WriteExport renders a result in the named format and writes it to path.
//
// Format is one of csv, markdown, text, json. An empty path derives a
// filename from the title.
func WriteExport(title string, result *models.GeneratorResult, format, path string) (string, error) {
	var (
		data []byte
		err  error
		ext  string
	)

	switch format {
	case "csv":
		data, err = ToCSV(result)
		ext = ".csv"
	case "markdown", "md":
		data, err = ToMarkdown(title, result)
		ext = ".md"
	case "text", "txt":
		data, err = ToText(title, result)
		ext = ".txt"
	case "json":
		data, err = ToJSON(result)
		ext = ".json"
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", format, err)
	}

	if path == "" {
		path = slugify(title) + ext
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// slugify lowercases and hyphenates a title for use as a filename.
func slugify(s string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == ' ' || c == '-' || c == '_':
			b.WriteByte('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "untitled"
	}
	return slug
}
