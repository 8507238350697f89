package generator

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/neexbeast/quest-generator/internal/quest"
)

// Service turns validated generation requests into quests.
type Service struct {
	strategy Strategy
	log      *slog.Logger
	now      func() time.Time
	newID    func() uuid.UUID
}

// NewService constructs a Service that generates through strategy.
func NewService(strategy Strategy, log *slog.Logger) *Service {
	return &Service{
		strategy: strategy,
		log:      log,
		now:      time.Now,
		newID:    uuid.New,
	}
}

// NewServiceWithClock constructs a Service with injectable time and id
// sources (used in tests).
func NewServiceWithClock(strategy Strategy, log *slog.Logger, now func() time.Time, newID func() uuid.UUID) *Service {
	return &Service{strategy: strategy, log: log, now: now, newID: newID}
}

// Generate makes one provider call for req and assembles the quest.
// Every failure is a *GenerationError; no partial quest is ever returned.
func (s *Service) Generate(ctx context.Context, req quest.GenerationRequest) (*quest.Quest, error) {
	start := s.now()
	out, err := s.strategy.Generate(ctx, BuildPrompt(req))
	if err != nil {
		var gErr *GenerationError
		if !errors.As(err, &gErr) {
			gErr = generationErrorf(err, "AI generation failed: %v", err)
		}
		s.log.Error("quest generation failed",
			"provider", s.strategy.Name(),
			"style", req.QuestStyle,
			"err", err,
		)
		return nil, gErr
	}

	if notes := quest.RewardNotes(out); len(notes) > 0 {
		s.log.Warn("generated quest drifts from reward rules",
			"provider", s.strategy.Name(),
			"title", out.Title,
			"notes", notes,
		)
	}

	q := quest.NewQuest(out, s.newID(), s.now(), req.Location)
	s.log.Debug("quest generated",
		"provider", s.strategy.Name(),
		"quest_id", q.QuestID,
		"style", req.QuestStyle,
		"took", s.now().Sub(start),
	)
	return &q, nil
}
