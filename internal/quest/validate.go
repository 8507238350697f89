package quest

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Issue is a single field-level validation failure. Path is the dot-joined
// JSON path of the offending field, e.g. "objectives.0.metric".
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError reports every issue found in a candidate value.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Path == "" {
			parts = append(parts, is.Message)
			continue
		}
		parts = append(parts, is.Path+": "+is.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func schema() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("utcdatetime", isUTCDatetime)
	})
	return validate
}

// isUTCDatetime accepts RFC 3339 timestamps in UTC written with a "Z"
// suffix. Numeric offsets, even +00:00, are rejected.
func isUTCDatetime(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !strings.HasSuffix(s, "Z") {
		return false
	}
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}

// Validate checks v against its struct rules. It returns nil or a
// *ValidationError.
func Validate(v any) error {
	err := schema().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Issues: []Issue{{Message: err.Error()}}}
	}

	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, Issue{Path: fieldPath(fe.Namespace()), Message: issueMessage(fe)})
	}
	return &ValidationError{Issues: issues}
}

// fieldPath turns "GenerationRequest.objectives[0].metric" into
// "objectives.0.metric".
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return ""
	}
	rest = strings.ReplaceAll(rest, "[", ".")
	return strings.ReplaceAll(rest, "]", "")
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "oneof":
		if fmt.Sprint(fe.Value()) == "" {
			return "Required"
		}
		opts := strings.Fields(fe.Param())
		return fmt.Sprintf("Invalid enum value. Expected '%s', received '%v'", strings.Join(opts, "' | '"), fe.Value())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Array must contain at least %s element(s)", fe.Param())
		}
		return fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Number must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Number must be greater than %s", fe.Param())
	case "uuid":
		return "Invalid uuid"
	case "datetime", "utcdatetime":
		return "Invalid datetime"
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}

// DecodeGenerationRequest decodes and validates a generation request body.
// Malformed JSON and type mismatches are reported as a *ValidationError so
// the HTTP layer can answer them the same way as rule violations.
func DecodeGenerationRequest(data []byte) (GenerationRequest, error) {
	var req GenerationRequest
	if err := decodeExact(data, &req); err != nil {
		return GenerationRequest{}, err
	}
	if err := Validate(req); err != nil {
		return GenerationRequest{}, err
	}
	return req, nil
}

func decodeError(err error) *ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{Issues: []Issue{{
			Path:    typeErr.Field,
			Message: fmt.Sprintf("Expected %s, received %s", kindName(typeErr.Type.Kind()), typeErr.Value),
		}}}
	}
	return &ValidationError{Issues: []Issue{{Message: "Invalid JSON: " + err.Error()}}}
}

// outputKeys are the keys a provider payload must carry. Decoding alone
// cannot tell a missing coinReward or tags from a zero value.
var outputKeys = []string{
	"title", "narrative", "objectives", "totalXP",
	"coinReward", "difficulty", "estimatedDuration", "tags",
}

// Result is the outcome of a safe decode: exactly one of Output and Err is
// meaningful.
type Result struct {
	Output QuestGenerationOutput
	Err    *ValidationError
}

// OK reports whether the decode produced a valid output.
func (r Result) OK() bool { return r.Err == nil }

// SafeDecodeGenerationOutput decodes a provider payload and validates it.
// It never panics; every failure is folded into Result.Err.
func SafeDecodeGenerationOutput(data []byte) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: &ValidationError{Issues: []Issue{{Message: fmt.Sprintf("decoding output panicked: %v", r)}}}}
		}
	}()

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Result{Err: decodeError(err)}
	}

	var missing []Issue
	for _, k := range outputKeys {
		if v, ok := raw[k]; !ok || string(v) == "null" {
			missing = append(missing, Issue{Path: k, Message: "Required"})
		}
	}
	if len(missing) > 0 {
		return Result{Err: &ValidationError{Issues: missing}}
	}

	var out QuestGenerationOutput
	if err := decodeExact(data, &out); err != nil {
		return Result{Err: err}
	}

	if err := Validate(out); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return Result{Err: vErr}
		}
		return Result{Err: &ValidationError{Issues: []Issue{{Message: err.Error()}}}}
	}
	return Result{Output: out}
}
