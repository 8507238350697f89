package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/quest-generator/internal/api"
	"github.com/neexbeast/quest-generator/internal/client"
	"github.com/neexbeast/quest-generator/internal/generator"
	"github.com/neexbeast/quest-generator/internal/quest"
)

// ---- mock generator behind the real router ----

type mockGenerator struct {
	mu       sync.Mutex
	requests []quest.GenerationRequest
	failFn   func(req quest.GenerationRequest) error
}

func (m *mockGenerator) Generate(_ context.Context, req quest.GenerationRequest) (*quest.Quest, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.failFn != nil {
		if err := m.failFn(req); err != nil {
			return nil, err
		}
	}

	difficulty := req.FitnessLevel
	if req.QuestStyle == quest.StylePerformanceOriented {
		difficulty = quest.LevelAdvanced
	}
	return &quest.Quest{
		QuestID:   "550e8400-e29b-41d4-a716-446655440000",
		Title:     fmt.Sprintf("Quest %s", req.QuestStyle),
		Narrative: "Head out.",
		Objectives: []quest.Objective{
			{Description: "Walk", Metric: quest.MetricSteps, Target: 2000, XPReward: 200},
		},
		TotalXP:           200,
		CoinReward:        20,
		Difficulty:        difficulty,
		EstimatedDuration: req.Duration,
		Tags:              []string{string(req.QuestStyle)},
		GeneratedAt:       quest.FormatTimestamp(time.Now()),
		Location:          req.Location,
	}, nil
}

func (m *mockGenerator) seen() []quest.GenerationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]quest.GenerationRequest(nil), m.requests...)
}

func newTestServer(t *testing.T, gen *mockGenerator) string {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(api.NewRouter(api.NewHandlers(gen, log), ""))
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// ---- demo ----

func TestDemo_List(t *testing.T) {
	server := newTestServer(t, &mockGenerator{})

	out, err := execute(t, "demo", "--server", server)
	require.NoError(t, err)
	assert.Contains(t, out, "The Waterfront Wanderer")
	assert.Contains(t, out, "Consistency Builder")
	assert.Contains(t, out, "Bridge Sprint Gauntlet")
	assert.NotContains(t, out, "Showing")
}

func TestDemo_FuzzyTagFilter(t *testing.T) {
	server := newTestServer(t, &mockGenerator{})

	out, err := execute(t, "demo", "--server", server, "--tag", "wtrfrnt")
	require.NoError(t, err)
	assert.Contains(t, out, "The Waterfront Wanderer")
	assert.NotContains(t, out, "Bridge Sprint Gauntlet")
	assert.Contains(t, out, "Showing 1 of 3 quests (tag=waterfront)")
}

func TestDemo_NoMatches(t *testing.T) {
	server := newTestServer(t, &mockGenerator{})

	out, err := execute(t, "demo", "--server", server, "--difficulty", "advanced", "--max-duration", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "No quests match the current filters.")
}

func TestDemo_Detail(t *testing.T) {
	server := newTestServer(t, &mockGenerator{})

	out, err := execute(t, "demo", "--server", server, "--detail", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Consistency Builder\n===================")
	assert.Contains(t, out, "Objectives:")
	assert.Contains(t, out, "[ ]")
	assert.Contains(t, out, "200 XP, 20 coins")

	_, err = execute(t, "demo", "--server", server, "--detail", "9")
	assert.ErrorContains(t, err, "out of range")
}

func TestDemo_JSON(t *testing.T) {
	server := newTestServer(t, &mockGenerator{})

	out, err := execute(t, "demo", "--server", server, "--json", "--difficulty", "beginner")
	require.NoError(t, err)

	var quests []quest.Quest
	require.NoError(t, json.Unmarshal([]byte(out), &quests))
	require.Len(t, quests, 1)
	assert.Equal(t, "Consistency Builder", quests[0].Title)
}

func TestDemo_UnknownDifficulty(t *testing.T) {
	server := newTestServer(t, &mockGenerator{})

	_, err := execute(t, "demo", "--server", server, "--difficulty", "elite")
	assert.ErrorContains(t, err, "unknown difficulty")
}

// ---- generate ----

func TestGenerate_AllStyles(t *testing.T) {
	gen := &mockGenerator{}
	server := newTestServer(t, gen)

	out, err := execute(t, "generate", "--server", server, "--interest", "walking", "--city", "Brooklyn")
	require.NoError(t, err)

	requests := gen.seen()
	require.Len(t, requests, 3)
	styles := make([]quest.Style, 0, 3)
	for _, r := range requests {
		styles = append(styles, r.QuestStyle)
		assert.Equal(t, quest.LevelIntermediate, r.FitnessLevel)
		assert.Equal(t, []string{"walking"}, r.Interests)
		assert.Equal(t, 30.0, r.Duration)
		require.NotNil(t, r.Location)
		assert.Equal(t, "Brooklyn", r.Location.City)
		assert.NotEmpty(t, r.UserID)
	}
	assert.ElementsMatch(t, quest.Styles, styles)

	for _, s := range quest.Styles {
		assert.Contains(t, out, "Quest "+string(s))
	}
}

func TestGenerate_SingleStyle(t *testing.T) {
	gen := &mockGenerator{}
	server := newTestServer(t, gen)

	out, err := execute(t, "generate", "--server", server,
		"--interest", "running", "--style", "challenge_based", "--level", "beginner", "--duration", "20", "--user", "u1")
	require.NoError(t, err)

	requests := gen.seen()
	require.Len(t, requests, 1)
	r := requests[0]
	assert.Equal(t, quest.StyleChallengeBased, r.QuestStyle)
	assert.Equal(t, quest.LevelBeginner, r.FitnessLevel)
	assert.Equal(t, 20.0, r.Duration)
	assert.Equal(t, "u1", r.UserID)
	assert.Nil(t, r.Location)
	assert.Contains(t, out, "Quest challenge_based")
}

func TestGenerate_FilterAfterFanOut(t *testing.T) {
	server := newTestServer(t, &mockGenerator{})

	out, err := execute(t, "generate", "--server", server, "--interest", "walking", "--difficulty", "advanced")
	require.NoError(t, err)
	assert.Contains(t, out, "Quest performance_oriented")
	assert.NotContains(t, out, "Quest fun_exploratory")
	assert.Contains(t, out, "Showing 1 of 3 quests")
}

func TestGenerate_SettingsDefaults(t *testing.T) {
	gen := &mockGenerator{}
	server := newTestServer(t, gen)
	path := writeSettings(t, fmt.Sprintf(`
server = %q
user_id = "settings-user"
level = "advanced"
interests = ["hiking"]
duration = 50

[location]
city = "Denver"
`, server))

	_, err := execute(t, "generate", "--config", path, "--style", "fun_exploratory", "--level", "beginner")
	require.NoError(t, err)

	requests := gen.seen()
	require.Len(t, requests, 1)
	r := requests[0]
	assert.Equal(t, "settings-user", r.UserID)
	assert.Equal(t, quest.LevelBeginner, r.FitnessLevel, "flag beats settings")
	assert.Equal(t, []string{"hiking"}, r.Interests)
	assert.Equal(t, 50.0, r.Duration)
	require.NotNil(t, r.Location)
	assert.Equal(t, "Denver", r.Location.City)
}

func TestGenerate_UnknownStyle(t *testing.T) {
	gen := &mockGenerator{}
	server := newTestServer(t, gen)

	_, err := execute(t, "generate", "--server", server, "--interest", "walking", "--style", "chill")
	assert.ErrorContains(t, err, "unknown style")
	assert.Empty(t, gen.seen())
}

func TestGenerate_ServerRejectsInput(t *testing.T) {
	server := newTestServer(t, &mockGenerator{})

	_, err := execute(t, "generate", "--server", server, "--style", "fun_exploratory")

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestGenerate_OneStyleFails(t *testing.T) {
	gen := &mockGenerator{failFn: func(req quest.GenerationRequest) error {
		if req.QuestStyle == quest.StyleChallengeBased {
			return &generator.GenerationError{Message: "AI returned no quest content"}
		}
		return nil
	}}
	server := newTestServer(t, gen)

	out, err := execute(t, "generate", "--server", server, "--interest", "walking")

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "AI returned no quest content", apiErr.ServerMessage)
	assert.NotContains(t, out, "Quest fun_exploratory")
}

// ---- error panel ----

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	renderError(&buf, &client.APIError{
		Message:       "Invalid request. Please check your quest settings and try again.",
		StatusCode:    http.StatusBadRequest,
		ServerMessage: "Invalid request body",
		Details:       []quest.Issue{{Path: "duration", Message: "Number must be less than or equal to 60"}},
	})
	out := buf.String()
	assert.Contains(t, out, "+- Invalid Input")
	assert.Contains(t, out, "| Server: Invalid request body")
	assert.Contains(t, out, "|   duration: Number must be less than or equal to 60")
	assert.Contains(t, out, "Fix the input")

	buf.Reset()
	renderError(&buf, &client.APIError{Message: "Unable to connect.", IsNetworkError: true})
	assert.Contains(t, buf.String(), "+- Connection Error")
	assert.Contains(t, buf.String(), "retry")

	buf.Reset()
	renderError(&buf, fmt.Errorf("unknown style %q", "chill"))
	assert.Equal(t, "Error: unknown style \"chill\"\n", buf.String())
}
