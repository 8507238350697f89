package generator

import (
	"context"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/neexbeast/quest-generator/internal/quest"
)

const (
	anthropicDefaultURL   = "https://api.anthropic.com"
	anthropicDefaultModel = "claude-sonnet-4-20250514"
	defaultMaxTokens      = 1024

	printQuestTool = "print_quest"
)

// ToolStrategy asks the Anthropic Messages API for a forced call to the
// print_quest tool and validates the tool input.
type ToolStrategy struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// ToolConfig configures a ToolStrategy. Zero values fall back to defaults.
type ToolConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

// NewToolStrategy constructs a ToolStrategy that sends requests with
// httpClient. The SDK's own retries are disabled: one Generate is one call.
func NewToolStrategy(cfg ToolConfig, httpClient *http.Client) *ToolStrategy {
	if cfg.BaseURL == "" {
		cfg.BaseURL = anthropicDefaultURL
	}
	if cfg.Model == "" {
		cfg.Model = anthropicDefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}

	return &ToolStrategy{
		client: anthropic.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.BaseURL),
			option.WithHTTPClient(httpClient),
			option.WithMaxRetries(0),
		),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Name implements Strategy.
func (s *ToolStrategy) Name() string { return "anthropic" }

// Generate implements Strategy.
func (s *ToolStrategy) Generate(ctx context.Context, p Prompt) (quest.QuestGenerationOutput, error) {
	msg, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: int64(s.maxTokens),
		System:    []anthropic.TextBlockParam{{Text: p.System}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(p.User + " Use the " + printQuestTool + " tool to output your quest.")),
		},
		Tools:      []anthropic.ToolUnionParam{{OfTool: questTool()}},
		ToolChoice: anthropic.ToolChoiceParamOfTool(printQuestTool),
	})
	if err != nil {
		return quest.QuestGenerationOutput{}, providerError("anthropic", err)
	}

	for _, block := range msg.Content {
		if tool, ok := block.AsAny().(anthropic.ToolUseBlock); ok && tool.Name == printQuestTool {
			return decodeOutput(tool.Input)
		}
	}
	return quest.QuestGenerationOutput{}, generationErrorf(nil, "AI failed to generate quest using the expected tool format")
}

func questTool() *anthropic.ToolParam {
	schema := outputSchema()
	return &anthropic.ToolParam{
		Name:        printQuestTool,
		Description: anthropic.String("Output the generated fitness quest in the required JSON format"),
		InputSchema: anthropic.ToolInputSchemaParam{
			Properties: schema["properties"],
			Required:   outputRequired,
		},
	}
}

// outputSchema is the JSON schema of quest.QuestGenerationOutput as sent to
// providers.
func outputSchema() map[string]any {
	metrics := make([]string, 0, len(quest.Metrics))
	for _, m := range quest.Metrics {
		metrics = append(metrics, string(m))
	}
	levels := make([]string, 0, len(quest.FitnessLevels))
	for _, l := range quest.FitnessLevels {
		levels = append(levels, string(l))
	}

	str := func(desc string) map[string]any { return map[string]any{"type": "string", "description": desc} }
	num := func(desc string) map[string]any { return map[string]any{"type": "number", "description": desc} }

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":     str("Catchy 3-6 word title for the quest"),
			"narrative": str("2-3 engaging sentences setting up the quest story"),
			"objectives": map[string]any{
				"type":        "array",
				"description": "List of measurable objectives for the quest",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"description": str("Clear action to complete"),
						"metric": map[string]any{
							"type":        "string",
							"enum":        metrics,
							"description": "Type of measurement for this objective",
						},
						"target":   num("Numeric goal for this objective"),
						"xpReward": num("XP earned on completing this objective"),
					},
					"required": []string{"description", "metric", "target", "xpReward"},
				},
			},
			"totalXP":    num("Total XP reward (sum of all objective XP rewards)"),
			"coinReward": num("Coin reward (approximately 10% of totalXP)"),
			"difficulty": map[string]any{
				"type":        "string",
				"enum":        levels,
				"description": "Difficulty level matching user fitness level",
			},
			"estimatedDuration": num("Estimated completion time in minutes"),
			"tags": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Relevant searchable tags for the quest",
			},
		},
		"required": outputRequired,
	}
}

var outputRequired = []string{
	"title", "narrative", "objectives", "totalXP",
	"coinReward", "difficulty", "estimatedDuration", "tags",
}
