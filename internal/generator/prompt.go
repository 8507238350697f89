package generator

import (
	"fmt"
	"strings"

	"github.com/neexbeast/quest-generator/internal/quest"
)

// Prompt is the provider-neutral input to a Strategy.
type Prompt struct {
	System string
	User   string
}

var stylePrompts = map[quest.Style]string{
	quest.StyleFunExploratory: `You are a friendly, enthusiastic fitness quest designer who creates fun,
adventure-style challenges. Your tone is playful and exploratory, like a treasure hunt.
Use vivid imagery and make users feel like they're on an exciting journey of discovery.
Think "neighborhood explorer" meets "casual adventurer."`,

	quest.StyleChallengeBased: `You are a supportive personal coach who creates achievement-focused fitness quests.
Your tone is warm but motivating, like an encouraging older sibling. Celebrate progress and
consistency. Make fitness feel accessible and rewarding. Use "you" and "your" to be personal.`,

	quest.StylePerformanceOriented: `You are a no-nonsense fitness coach who creates intense, goal-driven challenges.
Your tone is direct, competitive, and achievement-focused. Push users to their limits while
respecting their abilities. Think "elite trainer" meets "competitive athlete."`,
}

const designPrinciples = `You are designing fitness quests for WeFit Labs, a social fitness app that gamifies exercise
like Duolingo gamifies language learning.

Quest Design Principles:
1. Narrative Hook: Start with an engaging 2-3 sentence story that makes the user feel motivated
2. Clear Objectives: Define measurable goals (steps, duration, checkpoints)
3. Appropriate Difficulty: Match the user's fitness level. Never demotivate beginners or bore advanced users
4. Local Flavor: Reference specific neighborhoods, landmarks, or cultural elements when location is provided
5. Reward Psychology: XP should feel earned (%d-%d XP range for %s level)

Coin rewards should be approximately 10%% of total XP.`

// BuildPrompt renders the system and user turns for req. req must already
// be valid.
func BuildPrompt(req quest.GenerationRequest) Prompt {
	xp := quest.XPRangeFor(req.FitnessLevel)
	system := stylePrompts[req.QuestStyle] + "\n\n" +
		fmt.Sprintf(designPrinciples, xp.Min, xp.Max, req.FitnessLevel)

	var b strings.Builder
	b.WriteString("Generate a fitness quest with these parameters:\n\n")
	fmt.Fprintf(&b, "- Fitness Level: %s\n", req.FitnessLevel)
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(req.Interests, ", "))
	fmt.Fprintf(&b, "- %s\n", locationContext(req.Location))
	fmt.Fprintf(&b, "- Quest Style: %s\n", strings.Replace(string(req.QuestStyle), "_", " ", 1))
	fmt.Fprintf(&b, "- Target Duration: %s minutes\n\n", formatNumber(req.Duration))
	b.WriteString("Create an engaging quest that fits these criteria.")

	return Prompt{System: system, User: b.String()}
}

func locationContext(loc *quest.Location) string {
	if loc == nil {
		return "Location: Not specified (create a generic quest)"
	}

	var parts []string
	for _, p := range []string{loc.Neighborhood, loc.City, loc.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	s := "Location: " + strings.Join(parts, ", ")
	if loc.Landmark != "" {
		s += " (near " + loc.Landmark + ")"
	}
	return s
}

func formatNumber(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}
