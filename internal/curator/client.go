package curator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/curator/internal/models"
	"github.com/desertthunder/curator/internal/shared"
	"google.golang.org/genai"
)

// DefaultModel is used when the config does not name a model.
const DefaultModel = "gemini-3-pro-preview"

// Generator abstracts the generative backend call.
//
// Satisfied by [genai.Models]; test doubles construct responses directly.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client invokes the generative backend for curation and manual analysis.
type Client struct {
	gen    Generator
	model  string
	logger *log.Logger
}

// NewClient creates a Client backed by the Gemini API.
func NewClient(ctx context.Context, cfg shared.GeminiConfig, logger *log.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini api_key not configured", shared.ErrMissingCredentials)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return NewClientWithGenerator(client.Models, cfg.Model, logger), nil
}

// NewClientWithGenerator creates a Client with an explicit Generator.
func NewClientWithGenerator(gen Generator, model string, logger *log.Logger) *Client {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Client{gen: gen, model: model, logger: logger}
}

// generationConfig is the shared request config: JSON output constrained by
// the given schema, with search grounding enabled.
func generationConfig(schema *genai.Schema) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		Tools:            []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}
}

// Generate runs a full curation request.
//
// The instruction mandates exactly profile.TargetLength items, but a response
// with a different count is accepted as-is; the count is not locally enforced.
// Failures are returned as a single classified [CurationError].
func (c *Client) Generate(ctx context.Context, query string, profile models.RequestProfile) (*models.GeneratorResult, error) {
	profile = NormalizeProfile(profile)
	instruction := BuildInstruction(query, profile)

	c.logger.Debug("sending curation request", "model", c.model, "target_length", profile.TargetLength)

	resp, err := c.gen.GenerateContent(ctx, c.model, genai.Text(instruction), generationConfig(ResultSchema()))
	if err != nil {
		return nil, classify(err)
	}

	var result models.GeneratorResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.Text())), &result); err != nil {
		c.logger.Error("failed to parse structured output", "error", err)
		return nil, &CurationError{Kind: KindMalformedResponse, Err: err}
	}

	normalizeResult(&result)
	result.Sources = extractSources(resp)

	if len(result.Items) != profile.TargetLength {
		c.logger.Warn("item count differs from requested length",
			"requested", profile.TargetLength, "returned", len(result.Items))
	}

	return &result, nil
}

// Analyze scores and annotates a caller-supplied item list.
//
// The profile is synthesized locally: the target length is the input count,
// the platform is Auto, and the sort order is Relevance. Verified platform
// identifiers carried by the input are preserved by position.
func (c *Client) Analyze(ctx context.Context, items []models.ManualItem) (*models.GeneratorResult, error) {
	items = models.FilterManualItems(items)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items with both title and creator", shared.ErrInvalidInput)
	}

	instruction := BuildManualInstruction(items)

	c.logger.Debug("sending manual analysis request", "model", c.model, "items", len(items))

	resp, err := c.gen.GenerateContent(ctx, c.model, genai.Text(instruction), generationConfig(ManualSchema()))
	if err != nil {
		return nil, classify(err)
	}

	var parsed struct {
		EditorCommentary string                `json:"editorCommentary"`
		VibeScore        float64               `json:"vibeScore"`
		Items            []models.PlaylistItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.Text())), &parsed); err != nil {
		c.logger.Error("failed to parse structured output", "error", err)
		return nil, &CurationError{Kind: KindMalformedResponse, Err: err}
	}

	result := models.GeneratorResult{
		Profile: models.RequestProfile{
			TargetLength: len(items),
			SortOrder:    models.SortRelevance,
			PlatformMode: models.PlatformAuto,
			Keywords:     "Manual Curation",
		},
		Items:            parsed.Items,
		EditorCommentary: parsed.EditorCommentary,
		VibeScore:        parsed.VibeScore,
		IsManualAnalysis: true,
	}

	normalizeResult(&result)

	// The annotation is keyed by position; verified identifiers from the
	// draft survive the round trip.
	for i := range result.Items {
		if i < len(items) && result.Items[i].PlatformID == "" {
			result.Items[i].PlatformID = items[i].PlatformID
		}
	}

	result.Sources = extractSources(resp)

	return &result, nil
}

// normalizeResult repairs tolerable defects in a parsed result: missing item
// IDs are generated and scores are clamped to [0, 100].
func normalizeResult(result *models.GeneratorResult) {
	for i := range result.Items {
		if result.Items[i].ID == "" {
			result.Items[i].ID = shared.GenerateID()
		}
		result.Items[i].Score = clampScore(result.Items[i].Score)
	}
	result.VibeScore = clampScore(result.VibeScore)
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// extractSources pulls web citations out of the grounding metadata.
//
// Missing or empty metadata is not an error; the result simply carries no
// sources.
func extractSources(resp *genai.GenerateContentResponse) []models.Source {
	var sources []models.Source

	if resp == nil || len(resp.Candidates) == 0 {
		return sources
	}

	metadata := resp.Candidates[0].GroundingMetadata
	if metadata == nil {
		return sources
	}

	for _, chunk := range metadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		sources = append(sources, models.Source{
			Title: chunk.Web.Title,
			URI:   chunk.Web.URI,
		})
	}

	return sources
}
