package quest

import "time"

// DemoMetadata describes the demo quest set.
type DemoMetadata struct {
	Total  int     `json:"total"`
	Styles []Style `json:"styles"`
}

// DemoQuests returns the fixed demo quest set, one per style, stamped with
// now. Identity, text, and objectives never change between calls.
func DemoQuests(now time.Time) ([]Quest, DemoMetadata) {
	at := FormatTimestamp(now)
	brooklyn := func() *Location {
		return &Location{Neighborhood: "Williamsburg", City: "Brooklyn", State: "NY", Landmark: "Domino Park"}
	}

	quests := []Quest{
		{
			QuestID:   "3f1c2a9e-6b7d-4c1e-9a52-0d8e7f4b2c11",
			Title:     "The Waterfront Wanderer",
			Narrative: "The East River is whispering secrets along the Williamsburg waterfront. Follow the breeze past murals and piers to uncover hidden corners of your neighborhood.",
			Objectives: []Objective{
				{Description: "Walk 4,000 steps along the waterfront", Metric: MetricSteps, Target: 4000, XPReward: 200},
				{Description: "Snap a photo of the Manhattan skyline from Domino Park", Metric: MetricPhoto, Target: 1, XPReward: 100},
				{Description: "Check in at the Domino Park sugar refinery", Metric: MetricCheckin, Target: 1, XPReward: 100},
			},
			TotalXP:           400,
			CoinReward:        40,
			Difficulty:        LevelIntermediate,
			EstimatedDuration: 30,
			Tags:              []string{"walking", "waterfront", "photography", "exploration"},
			GeneratedAt:       at,
			Location:          brooklyn(),
		},
		{
			QuestID:   "8a4e6d2b-1f3c-4b5a-8e7d-9c0b1a2f3e44",
			Title:     "Consistency Builder",
			Narrative: "Every step counts, and today you prove it. Keep a steady pace, celebrate each milestone, and finish knowing you showed up for yourself.",
			Objectives: []Objective{
				{Description: "Keep moving for 20 minutes without a long break", Metric: MetricMinutes, Target: 20, XPReward: 100},
				{Description: "Cover 1.5 miles at a comfortable pace", Metric: MetricDistance, Target: 1.5, XPReward: 100},
			},
			TotalXP:           200,
			CoinReward:        20,
			Difficulty:        LevelBeginner,
			EstimatedDuration: 25,
			Tags:              []string{"walking", "consistency", "beginner-friendly"},
			GeneratedAt:       at,
			Location:          brooklyn(),
		},
		{
			QuestID:   "c7b9e1f0-2d4a-4e6c-b8f1-5a3d7e9c0b66",
			Title:     "Bridge Sprint Gauntlet",
			Narrative: "No shortcuts, no excuses. Attack the Williamsburg Bridge climb, hold your pace on the descent, and log numbers you can beat next week.",
			Objectives: []Objective{
				{Description: "Run 5 kilometers including the bridge climb", Metric: MetricDistance, Target: 5, XPReward: 400},
				{Description: "Hit 8,000 steps before the cooldown", Metric: MetricSteps, Target: 8000, XPReward: 250},
				{Description: "Finish the full session inside 45 minutes", Metric: MetricMinutes, Target: 45, XPReward: 150},
			},
			TotalXP:           800,
			CoinReward:        80,
			Difficulty:        LevelAdvanced,
			EstimatedDuration: 45,
			Tags:              []string{"running", "intervals", "bridge", "performance"},
			GeneratedAt:       at,
			Location:          brooklyn(),
		},
	}

	return quests, DemoMetadata{Total: len(quests), Styles: append([]Style(nil), Styles...)}
}
