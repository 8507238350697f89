package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/neexbeast/quest-generator/internal/quest"
)

const (
	geminiDefaultURL   = "https://generativelanguage.googleapis.com"
	geminiDefaultModel = "gemini-2.0-flash"
	geminiAPIVersion   = "v1beta"
)

// JSONStrategy asks Gemini for a raw JSON reply described in the prompt text
// and parses it, tolerating markdown code fences around the payload.
type JSONStrategy struct {
	client    *genai.Client
	model     string
	maxTokens int
}

// JSONConfig configures a JSONStrategy. Zero values fall back to defaults.
type JSONConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

// NewJSONStrategy constructs a JSONStrategy that sends requests with
// httpClient.
func NewJSONStrategy(ctx context.Context, cfg JSONConfig, httpClient *http.Client) (*JSONStrategy, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = geminiDefaultURL
	}
	if cfg.Model == "" {
		cfg.Model = geminiDefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    strings.TrimRight(cfg.BaseURL, "/"),
			APIVersion: geminiAPIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &JSONStrategy{client: client, model: cfg.Model, maxTokens: cfg.MaxTokens}, nil
}

// Name implements Strategy.
func (s *JSONStrategy) Name() string { return "gemini" }

// Generate implements Strategy.
func (s *JSONStrategy) Generate(ctx context.Context, p Prompt) (quest.QuestGenerationOutput, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model,
		genai.Text(p.User+"\n\n"+jsonInstructions()),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: p.System}}},
			MaxOutputTokens:   int32(s.maxTokens),
		},
	)
	if err != nil {
		return quest.QuestGenerationOutput{}, providerError("gemini", err)
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return quest.QuestGenerationOutput{}, generationErrorf(nil, "AI returned no quest content")
	}

	payload := StripCodeFence(text)
	if !json.Valid([]byte(payload)) {
		return quest.QuestGenerationOutput{}, generationErrorf(nil, "AI response was not valid JSON")
	}
	return decodeOutput([]byte(payload))
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}
	return text.String()
}

func jsonInstructions() string {
	schema, _ := json.Marshal(outputSchema())
	return "Respond with ONLY a single JSON object, no prose and no markdown, matching this JSON schema:\n" + string(schema)
}

// StripCodeFence removes a surrounding markdown code fence (``` or ```json)
// from s. Text without a fence is returned trimmed.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// Drop the info string, e.g. "json".
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
