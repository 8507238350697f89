package api

import (
	"context"

	"github.com/neexbeast/quest-generator/internal/quest"
)

// QuestGenerator defines the generation operation needed by handlers.
type QuestGenerator interface {
	Generate(ctx context.Context, req quest.GenerationRequest) (*quest.Quest, error)
}
