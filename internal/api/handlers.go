package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/neexbeast/quest-generator/internal/quest"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "ai-quest-generator-backend"

// GenerateResponse is the success envelope of POST /api/quests/generate.
type GenerateResponse struct {
	Success bool         `json:"success"`
	Quest   *quest.Quest `json:"quest"`
}

// DemoResponse is the envelope of GET /api/quests/demo.
type DemoResponse struct {
	Success  bool               `json:"success"`
	Quests   []quest.Quest      `json:"quests"`
	Metadata quest.DemoMetadata `json:"metadata"`
}

// ErrorResponse is the failure envelope. Details is only set for input
// validation failures.
type ErrorResponse struct {
	Success bool          `json:"success"`
	Error   string        `json:"error"`
	Details []quest.Issue `json:"details,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	generator QuestGenerator
	log       *slog.Logger
	now       func() time.Time
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(generator QuestGenerator, log *slog.Logger) *Handlers {
	return &Handlers{generator: generator, log: log, now: time.Now}
}

// NewHandlersWithClock constructs Handlers with an injectable clock (used in tests).
func NewHandlersWithClock(generator QuestGenerator, log *slog.Logger, now func() time.Time) *Handlers {
	return &Handlers{generator: generator, log: log, now: now}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GenerateQuest handles POST /api/quests/generate.
// Invalid body → 400 with issues. Generation failure → 500. Otherwise 200.
func (h *Handlers) GenerateQuest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Request body too large"})
			return
		}
		h.log.Warn("reading request body failed", "err", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	req, err := quest.DecodeGenerationRequest(body)
	if err != nil {
		var vErr *quest.ValidationError
		if errors.As(err, &vErr) {
			h.log.Debug("rejected generation request", "issues", len(vErr.Issues))
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: vErr.Issues})
			return
		}
		h.log.Error("decoding generation request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	q, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "AI generation failed. Please try again."
		}
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msg})
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{Success: true, Quest: q})
}

// DemoQuests handles GET /api/quests/demo.
// Always the same quests; generatedAt is refreshed on every call.
func (h *Handlers) DemoQuests(w http.ResponseWriter, r *http.Request) {
	quests, meta := quest.DemoQuests(h.now())
	writeJSON(w, http.StatusOK, DemoResponse{Success: true, Quests: quests, Metadata: meta})
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: quest.FormatTimestamp(h.now()),
		Service:   ServiceName,
	})
}
