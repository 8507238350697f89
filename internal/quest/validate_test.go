package quest_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/quest-generator/internal/quest"
)

// ---- helpers ----

func validRequest() quest.GenerationRequest {
	return quest.GenerationRequest{
		UserID:       "user-123",
		FitnessLevel: quest.LevelIntermediate,
		Interests:    []string{"walking", "pickleball"},
		QuestStyle:   quest.StyleFunExploratory,
		Duration:     30,
	}
}

func validOutput() quest.QuestGenerationOutput {
	return quest.QuestGenerationOutput{
		Title:     "The Waterfront Wanderer",
		Narrative: "Explore the beautiful waterfront.",
		Objectives: []quest.Objective{
			{Description: "Walk 4,000 steps", Metric: quest.MetricSteps, Target: 4000, XPReward: 300},
		},
		TotalXP:           300,
		CoinReward:        30,
		Difficulty:        quest.LevelIntermediate,
		EstimatedDuration: 30,
		Tags:              []string{"walking", "waterfront"},
	}
}

func validQuest() quest.Quest {
	return quest.Quest{
		QuestID:   "550e8400-e29b-41d4-a716-446655440000",
		Title:     "The Waterfront Wanderer",
		Narrative: "Explore the beautiful waterfront.",
		Objectives: []quest.Objective{
			{Description: "Walk 4,000 steps", Metric: quest.MetricSteps, Target: 4000, XPReward: 300},
		},
		TotalXP:           300,
		CoinReward:        30,
		Difficulty:        quest.LevelIntermediate,
		EstimatedDuration: 30,
		Tags:              []string{"walking", "waterfront"},
		GeneratedAt:       "2025-12-10T15:45:00Z",
		Location:          &quest.Location{Neighborhood: "Williamsburg", City: "Brooklyn"},
	}
}

func issuesOf(t *testing.T, err error) []quest.Issue {
	t.Helper()
	var vErr *quest.ValidationError
	require.True(t, errors.As(err, &vErr), "expected *ValidationError, got %T", err)
	return vErr.Issues
}

func paths(issues []quest.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, is := range issues {
		out = append(out, is.Path)
	}
	return out
}

// ---- Location ----

func TestValidate_Location(t *testing.T) {
	assert.NoError(t, quest.Validate(quest.Location{Neighborhood: "Williamsburg", City: "Brooklyn", State: "NY", Landmark: "Domino Park"}))
	assert.NoError(t, quest.Validate(quest.Location{City: "Brooklyn"}))
	assert.NoError(t, quest.Validate(quest.Location{}))
}

// ---- Objective ----

func TestValidate_Objective_AllMetricsAccepted(t *testing.T) {
	for _, m := range quest.Metrics {
		obj := quest.Objective{Description: "Test objective", Metric: m, Target: 100, XPReward: 100}
		assert.NoError(t, quest.Validate(obj), "metric %s", m)
	}
}

func TestValidate_Objective_InvalidMetric(t *testing.T) {
	obj := quest.Objective{Description: "Walk", Metric: "invalid_metric", Target: 4000, XPReward: 300}
	issues := issuesOf(t, quest.Validate(obj))
	assert.Equal(t, []string{"metric"}, paths(issues))
	assert.Contains(t, issues[0].Message, "Invalid enum value")
}

func TestValidate_Objective_NonPositiveValues(t *testing.T) {
	cases := []struct {
		name     string
		target   float64
		xpReward float64
		path     string
	}{
		{"negative target", -100, 300, "target"},
		{"zero target", 0, 300, "target"},
		{"negative xp", 4000, -50, "xpReward"},
		{"zero xp", 4000, 0, "xpReward"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			obj := quest.Objective{Description: "Walk", Metric: quest.MetricSteps, Target: tc.target, XPReward: tc.xpReward}
			issues := issuesOf(t, quest.Validate(obj))
			assert.Contains(t, paths(issues), tc.path)
		})
	}
}

func TestValidate_Objective_EmptyDescription(t *testing.T) {
	obj := quest.Objective{Metric: quest.MetricSteps, Target: 1, XPReward: 1}
	issues := issuesOf(t, quest.Validate(obj))
	assert.Equal(t, []quest.Issue{{Path: "description", Message: "Required"}}, issues)
}

// ---- GenerationRequest ----

func TestValidate_Request_Valid(t *testing.T) {
	req := validRequest()
	assert.NoError(t, quest.Validate(req))

	req.Location = &quest.Location{City: "Brooklyn", Neighborhood: "Williamsburg"}
	req.QuestStyle = quest.StyleChallengeBased
	req.Duration = 45
	assert.NoError(t, quest.Validate(req))
}

func TestValidate_Request_DurationBounds(t *testing.T) {
	for _, d := range []float64{-1, 0, 10, 14.99, 60.01, 61, 120} {
		req := validRequest()
		req.Duration = d
		issues := issuesOf(t, quest.Validate(req))
		assert.Equal(t, []string{"duration"}, paths(issues), "duration %v", d)
	}
	for _, d := range []float64{15, 30, 59.5, 60} {
		req := validRequest()
		req.Duration = d
		assert.NoError(t, quest.Validate(req), "duration %v", d)
	}
}

func TestValidate_Request_EmptyInterests(t *testing.T) {
	for _, interests := range [][]string{nil, {}} {
		req := validRequest()
		req.Interests = interests
		issues := issuesOf(t, quest.Validate(req))
		require.Len(t, issues, 1)
		assert.Equal(t, "interests", issues[0].Path)
		assert.Equal(t, "Array must contain at least 1 element(s)", issues[0].Message)
	}
}

func TestValidate_Request_AllLevelsAndStyles(t *testing.T) {
	for _, level := range quest.FitnessLevels {
		for _, style := range quest.Styles {
			req := validRequest()
			req.FitnessLevel = level
			req.QuestStyle = style
			assert.NoError(t, quest.Validate(req), "%s/%s", level, style)
		}
	}
}

func TestValidate_Request_CollectsEveryIssue(t *testing.T) {
	req := quest.GenerationRequest{FitnessLevel: "elite", QuestStyle: "zen", Duration: 5}
	issues := issuesOf(t, quest.Validate(req))
	assert.ElementsMatch(t,
		[]string{"userId", "fitnessLevel", "interests", "questStyle", "duration"},
		paths(issues))
}

func TestDecodeGenerationRequest(t *testing.T) {
	body := `{"userId":"u1","fitnessLevel":"beginner","interests":["running"],
		"location":{"city":"Brooklyn"},"questStyle":"challenge_based","duration":45}`
	req, err := quest.DecodeGenerationRequest([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "Brooklyn", req.Location.City)
	assert.Equal(t, 45.0, req.Duration)
}

func TestDecodeGenerationRequest_TypeMismatch(t *testing.T) {
	body := `{"userId":"u1","fitnessLevel":"beginner","interests":["running"],"questStyle":"challenge_based","duration":"thirty"}`
	_, err := quest.DecodeGenerationRequest([]byte(body))
	issues := issuesOf(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "duration", issues[0].Path)
}

func TestDecodeGenerationRequest_KeysMatchExactly(t *testing.T) {
	body := `{"USERID":"u1","FITNESSLEVEL":"beginner","Interests":["a"],"QuestStyle":"fun_exploratory","Duration":30}`
	_, err := quest.DecodeGenerationRequest([]byte(body))
	issues := issuesOf(t, err)
	assert.ElementsMatch(t,
		[]string{"userId", "fitnessLevel", "interests", "questStyle", "duration"},
		paths(issues))
	for _, is := range issues {
		if is.Path == "userId" {
			assert.Equal(t, "Required", is.Message)
		}
	}
}

func TestDecodeGenerationRequest_NestedKeysMatchExactly(t *testing.T) {
	body := `{"userId":"u1","fitnessLevel":"beginner","interests":["a"],
		"location":{"City":"Brooklyn","state":"NY"},"questStyle":"fun_exploratory","duration":30}`
	req, err := quest.DecodeGenerationRequest([]byte(body))
	require.NoError(t, err)
	require.NotNil(t, req.Location)
	assert.Empty(t, req.Location.City)
	assert.Equal(t, "NY", req.Location.State)
}

func TestDecodeGenerationRequest_TypeMismatchMessage(t *testing.T) {
	body := `{"userId":"u1","fitnessLevel":"beginner","interests":["a", 7],"questStyle":"fun_exploratory","duration":"thirty"}`
	_, err := quest.DecodeGenerationRequest([]byte(body))
	issues := issuesOf(t, err)
	assert.ElementsMatch(t, []quest.Issue{
		{Path: "interests.1", Message: "Expected string, received number"},
		{Path: "duration", Message: "Expected number, received string"},
	}, issues)
}

func TestDecodeGenerationRequest_NotAnObject(t *testing.T) {
	_, err := quest.DecodeGenerationRequest([]byte(`[1,2]`))
	issues := issuesOf(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "Expected object, received array", issues[0].Message)
}

func TestDecodeGenerationRequest_MalformedJSON(t *testing.T) {
	_, err := quest.DecodeGenerationRequest([]byte(`{"userId":`))
	issues := issuesOf(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "Invalid JSON")
}

// ---- QuestGenerationOutput ----

func TestSafeDecodeGenerationOutput_Valid(t *testing.T) {
	data, err := json.Marshal(validOutput())
	require.NoError(t, err)

	res := quest.SafeDecodeGenerationOutput(data)
	require.True(t, res.OK(), "unexpected error: %v", res.Err)
	assert.Equal(t, validOutput(), res.Output)
}

func TestSafeDecodeGenerationOutput_EmptyTagsAllowed(t *testing.T) {
	out := validOutput()
	out.Tags = []string{}
	data, err := json.Marshal(out)
	require.NoError(t, err)

	res := quest.SafeDecodeGenerationOutput(data)
	require.True(t, res.OK(), "unexpected error: %v", res.Err)
	assert.Empty(t, res.Output.Tags)
}

func TestSafeDecodeGenerationOutput_MissingFields(t *testing.T) {
	res := quest.SafeDecodeGenerationOutput([]byte(`{"title":"Test Quest"}`))
	require.False(t, res.OK())
	assert.ElementsMatch(t,
		[]string{"narrative", "objectives", "totalXP", "coinReward", "difficulty", "estimatedDuration", "tags"},
		paths(res.Err.Issues))
}

func TestSafeDecodeGenerationOutput_InvalidDifficulty(t *testing.T) {
	body := `{"title":"Test Quest","narrative":"Test narrative",
		"objectives":[{"description":"Test","metric":"steps","target":100,"xpReward":100}],
		"totalXP":100,"coinReward":10,"difficulty":"super_hard","estimatedDuration":30,"tags":[]}`
	res := quest.SafeDecodeGenerationOutput([]byte(body))
	require.False(t, res.OK())
	assert.Equal(t, []string{"difficulty"}, paths(res.Err.Issues))
}

func TestSafeDecodeGenerationOutput_NestedObjectivePath(t *testing.T) {
	body := `{"title":"T","narrative":"N",
		"objectives":[{"description":"ok","metric":"steps","target":1,"xpReward":1},
		              {"description":"bad","metric":"laps","target":1,"xpReward":1}],
		"totalXP":2,"coinReward":0,"difficulty":"beginner","estimatedDuration":20,"tags":["x"]}`
	res := quest.SafeDecodeGenerationOutput([]byte(body))
	require.False(t, res.OK())
	assert.Equal(t, []string{"objectives.1.metric"}, paths(res.Err.Issues))
}

func TestSafeDecodeGenerationOutput_IndexedTypePath(t *testing.T) {
	body := `{"title":"T","narrative":"N",
		"objectives":[{"description":"ok","metric":"steps","target":1,"xpReward":1},
		              {"description":"bad","metric":"steps","target":"ten","xpReward":1}],
		"totalXP":2,"coinReward":0,"difficulty":"beginner","estimatedDuration":20,"tags":[]}`
	res := quest.SafeDecodeGenerationOutput([]byte(body))
	require.False(t, res.OK())
	assert.Equal(t, []quest.Issue{
		{Path: "objectives.1.target", Message: "Expected number, received string"},
	}, res.Err.Issues)
}

func TestSafeDecodeGenerationOutput_KeysMatchExactly(t *testing.T) {
	body := `{"TITLE":"T","title":"T","narrative":"N",
		"objectives":[{"description":"walk","metric":"steps","target":1,"XPREWARD":1}],
		"totalXP":1,"coinReward":0,"difficulty":"beginner","estimatedDuration":20,"tags":[]}`
	res := quest.SafeDecodeGenerationOutput([]byte(body))
	require.False(t, res.OK())
	assert.Equal(t, []string{"objectives.0.xpReward"}, paths(res.Err.Issues))

	res = quest.SafeDecodeGenerationOutput([]byte(`{"Title":"T","narrative":"N","objectives":[],"totalXP":1,
		"coinReward":0,"difficulty":"beginner","estimatedDuration":20,"tags":[]}`))
	require.False(t, res.OK())
	assert.Contains(t, paths(res.Err.Issues), "title")
}

func TestSafeDecodeGenerationOutput_EmptyObjectives(t *testing.T) {
	out := validOutput()
	out.Objectives = []quest.Objective{}
	data, err := json.Marshal(out)
	require.NoError(t, err)

	res := quest.SafeDecodeGenerationOutput(data)
	require.False(t, res.OK())
	assert.Equal(t, []string{"objectives"}, paths(res.Err.Issues))
}

func TestSafeDecodeGenerationOutput_NotJSON(t *testing.T) {
	for _, body := range []string{"", "Sure! Here is your quest:", "[1,2,3]", "null"} {
		res := quest.SafeDecodeGenerationOutput([]byte(body))
		assert.False(t, res.OK(), "body %q", body)
	}
}

// ---- Quest ----

func TestValidate_Quest_Valid(t *testing.T) {
	assert.NoError(t, quest.Validate(validQuest()))
}

func TestValidate_Quest_InvalidUUID(t *testing.T) {
	for _, id := range []string{"", "not-a-uuid", "550e8400e29b41d4a716446655440000"} {
		q := validQuest()
		q.QuestID = id
		issues := issuesOf(t, quest.Validate(q))
		assert.Equal(t, []string{"questId"}, paths(issues), "id %q", id)
	}
}

func TestValidate_Quest_InvalidDatetime(t *testing.T) {
	for _, ts := range []string{"", "not-a-datetime", "2025-12-10", "2025-12-10 15:45:00"} {
		q := validQuest()
		q.GeneratedAt = ts
		issues := issuesOf(t, quest.Validate(q))
		assert.Equal(t, []string{"generatedAt"}, paths(issues), "timestamp %q", ts)
	}
}

func TestValidate_Quest_RequiresUTC(t *testing.T) {
	for _, ts := range []string{"2025-01-01T00:00:00+02:00", "2025-01-01T00:00:00+00:00", "2025-01-01T00:00:00.000-05:00"} {
		q := validQuest()
		q.GeneratedAt = ts
		issues := issuesOf(t, quest.Validate(q))
		require.Len(t, issues, 1, "timestamp %q", ts)
		assert.Equal(t, quest.Issue{Path: "generatedAt", Message: "Invalid datetime"}, issues[0])
	}
}

func TestValidate_Quest_AcceptsFractionalSeconds(t *testing.T) {
	q := validQuest()
	q.GeneratedAt = "2025-12-10T15:45:00.123Z"
	assert.NoError(t, quest.Validate(q))
}

func TestValidationError_Message(t *testing.T) {
	err := &quest.ValidationError{Issues: []quest.Issue{
		{Path: "duration", Message: "Number must be less than or equal to 60"},
		{Message: "Invalid JSON"},
	}}
	assert.Equal(t, "validation failed: duration: Number must be less than or equal to 60; Invalid JSON", err.Error())
}
