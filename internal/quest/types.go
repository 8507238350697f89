package quest

// FitnessLevel is the caller's self-reported fitness level. Quest difficulty
// uses the same enumeration.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// FitnessLevels lists every valid level in display order.
var FitnessLevels = []FitnessLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Style selects the narrative persona used when prompting the provider.
type Style string

const (
	StyleFunExploratory      Style = "fun_exploratory"
	StyleChallengeBased      Style = "challenge_based"
	StylePerformanceOriented Style = "performance_oriented"
)

// Styles lists every quest style in the order the client fans them out.
var Styles = []Style{StyleFunExploratory, StyleChallengeBased, StylePerformanceOriented}

// Metric is the unit an objective is measured in.
type Metric string

const (
	MetricSteps    Metric = "steps"
	MetricMinutes  Metric = "minutes"
	MetricDistance Metric = "distance"
	MetricPhoto    Metric = "photo"
	MetricCheckin  Metric = "checkin"
)

// Metrics lists every valid objective metric.
var Metrics = []Metric{MetricSteps, MetricMinutes, MetricDistance, MetricPhoto, MetricCheckin}

// Location is optional prompt context. Fields are free text and may be empty.
type Location struct {
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Landmark     string `json:"landmark,omitempty"`
}

// Objective is a single measurable goal within a quest.
type Objective struct {
	Description string  `json:"description" validate:"required"`
	Metric      Metric  `json:"metric" validate:"oneof=steps minutes distance photo checkin"`
	Target      float64 `json:"target" validate:"gt=0"`
	XPReward    float64 `json:"xpReward" validate:"gt=0"`
}

// GenerationRequest is the caller-supplied input to quest generation.
type GenerationRequest struct {
	UserID       string       `json:"userId" validate:"required"`
	FitnessLevel FitnessLevel `json:"fitnessLevel" validate:"oneof=beginner intermediate advanced"`
	Interests    []string     `json:"interests" validate:"min=1"`
	Location     *Location    `json:"location,omitempty"`
	QuestStyle   Style        `json:"questStyle" validate:"oneof=fun_exploratory challenge_based performance_oriented"`
	Duration     float64      `json:"duration" validate:"gte=15,lte=60"`
}

// QuestGenerationOutput is the part of a quest produced by the provider.
// totalXP and coinReward are expected to follow the reward rules described
// in RewardNotes, but nothing here enforces that.
type QuestGenerationOutput struct {
	Title             string       `json:"title" validate:"required"`
	Narrative         string       `json:"narrative" validate:"required"`
	Objectives        []Objective  `json:"objectives" validate:"min=1,dive"`
	TotalXP           float64      `json:"totalXP" validate:"gt=0"`
	CoinReward        float64      `json:"coinReward" validate:"gte=0"`
	Difficulty        FitnessLevel `json:"difficulty" validate:"oneof=beginner intermediate advanced"`
	EstimatedDuration float64      `json:"estimatedDuration" validate:"gt=0"`
	Tags              []string     `json:"tags"`
}

// Quest is a fully assembled quest: provider output plus server-assigned
// identity, timestamp, and the location echoed from the request.
type Quest struct {
	QuestID           string       `json:"questId" validate:"uuid"`
	Title             string       `json:"title" validate:"required"`
	Narrative         string       `json:"narrative" validate:"required"`
	Objectives        []Objective  `json:"objectives" validate:"min=1,dive"`
	TotalXP           float64      `json:"totalXP" validate:"gt=0"`
	CoinReward        float64      `json:"coinReward" validate:"gte=0"`
	Difficulty        FitnessLevel `json:"difficulty" validate:"oneof=beginner intermediate advanced"`
	EstimatedDuration float64      `json:"estimatedDuration" validate:"gt=0"`
	Tags              []string     `json:"tags"`
	GeneratedAt       string       `json:"generatedAt" validate:"utcdatetime"`
	Location          *Location    `json:"location,omitempty"`
}
