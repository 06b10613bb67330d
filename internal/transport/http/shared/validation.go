package shared

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"peopledesk/internal/transport/http/api"
)

var validate = validator.New()

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// CheckPayload validates a decoded request body against its struct tags and
// returns one issue per failing field, using the JSON-style field name.
func CheckPayload(payload any) []ValidationIssue {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationIssue{{Field: "", Reason: "invalid payload"}}
	}
	issues := make([]ValidationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, ValidationIssue{
			Field:  lowerFirst(fe.Field()),
			Reason: reasonFor(fe),
		})
	}
	return issues
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must have at least " + fe.Param() + " entries"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func lowerFirst(name string) string {
	if name == "" {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// RejectInvalid writes a 400 validation response when issues is non-empty and
// reports whether it did so.
func RejectInvalid(w http.ResponseWriter, requestID string, issues []ValidationIssue) bool {
	if len(issues) == 0 {
		return false
	}
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		"payload validation failed: "+summarize(issues),
		map[string]any{"fields": issues},
		requestID,
	)
	return true
}

func summarize(issues []ValidationIssue) string {
	fields := make([]string, 0, len(issues))
	for _, issue := range issues {
		fields = append(fields, issue.Field)
	}
	return strings.Join(fields, ", ")
}
