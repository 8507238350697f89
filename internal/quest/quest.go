package quest

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the layout used for Quest.GeneratedAt: RFC 3339 in UTC
// with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t as a GeneratedAt value.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// NewQuest assembles a Quest from validated provider output. The location is
// taken from the originating request, never from the provider.
func NewQuest(out QuestGenerationOutput, id uuid.UUID, at time.Time, loc *Location) Quest {
	tags := out.Tags
	if tags == nil {
		tags = []string{}
	}
	return Quest{
		QuestID:           id.String(),
		Title:             out.Title,
		Narrative:         out.Narrative,
		Objectives:        append([]Objective(nil), out.Objectives...),
		TotalXP:           out.TotalXP,
		CoinReward:        out.CoinReward,
		Difficulty:        out.Difficulty,
		EstimatedDuration: out.EstimatedDuration,
		Tags:              append([]string{}, tags...),
		GeneratedAt:       FormatTimestamp(at),
		Location:          loc,
	}
}

// XPRange is the reward band suggested to the provider for a fitness level.
type XPRange struct {
	Min int
	Max int
}

var xpRanges = map[FitnessLevel]XPRange{
	LevelBeginner:     {Min: 100, Max: 300},
	LevelIntermediate: {Min: 300, Max: 600},
	LevelAdvanced:     {Min: 600, Max: 1000},
}

// XPRangeFor returns the suggested XP band for level.
func XPRangeFor(level FitnessLevel) XPRange {
	return xpRanges[level]
}

// coinRatio is the intended coinReward / totalXP ratio.
const coinRatio = 0.1

// RewardNotes describes where out departs from the reward rules the provider
// is asked to follow. The rules are advisory: callers log the notes and keep
// the quest.
func RewardNotes(out QuestGenerationOutput) []string {
	var notes []string

	var sum float64
	for _, o := range out.Objectives {
		sum += o.XPReward
	}
	if math.Abs(sum-out.TotalXP) > 0.5 {
		notes = append(notes, fmt.Sprintf("totalXP %.0f differs from objective sum %.0f", out.TotalXP, sum))
	}

	want := out.TotalXP * coinRatio
	if math.Abs(out.CoinReward-want) > math.Max(1, want*0.5) {
		notes = append(notes, fmt.Sprintf("coinReward %.0f is not about 10%% of totalXP (%.0f)", out.CoinReward, want))
	}

	return notes
}
