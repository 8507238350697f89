package generator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"google.golang.org/genai"

	"github.com/neexbeast/quest-generator/internal/quest"
)

// Strategy is one way of getting validated quest output from a provider.
// Implementations make exactly one provider call per Generate and never
// retry.
type Strategy interface {
	Generate(ctx context.Context, p Prompt) (quest.QuestGenerationOutput, error)
	Name() string
}

// GenerationError is returned when no usable quest could be produced. Its
// message is safe to show to callers.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string { return e.Message }

func (e *GenerationError) Unwrap() error { return e.Err }

func generationErrorf(cause error, format string, args ...any) *GenerationError {
	return &GenerationError{Message: fmt.Sprintf(format, args...), Err: cause}
}

// decodeOutput runs the shared safe decode over a provider payload.
func decodeOutput(payload []byte) (quest.QuestGenerationOutput, error) {
	res := quest.SafeDecodeGenerationOutput(payload)
	if !res.OK() {
		return quest.QuestGenerationOutput{}, generationErrorf(res.Err, "Generated quest failed validation: %s", res.Err.Error())
	}
	return res.Output, nil
}

const defaultProviderTimeout = 60 * time.Second

// NewHTTPClient returns the provider HTTP client. Build it once at startup
// and share it between requests.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	return &http.Client{Timeout: timeout}
}

// providerError turns an SDK or transport failure into a GenerationError
// with a message that names the provider.
func providerError(provider string, err error) error {
	var gErr *GenerationError
	if errors.As(err, &gErr) {
		return gErr
	}
	if code, ok := providerStatus(err); ok {
		return generationErrorf(err, "%s request failed with status %d", provider, code)
	}
	var netErr net.Error
	if (errors.As(err, &netErr) && netErr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
		return generationErrorf(err, "%s request timed out", provider)
	}
	if errors.Is(err, context.Canceled) {
		return generationErrorf(err, "%s request was cancelled", provider)
	}
	return generationErrorf(err, "%s request failed: %v", provider, err)
}

// providerStatus extracts the HTTP status of a non-2xx provider response.
func providerStatus(err error) (int, bool) {
	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return anthropicErr.StatusCode, true
	}
	var geminiErr genai.APIError
	if errors.As(err, &geminiErr) {
		return geminiErr.Code, true
	}
	return 0, false
}
