package fields

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"equeue-slip-bot/internal/entity"
)

var datePattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// ValidationError reports raw input rejected for a field. It is an
// expected outcome, not a failure of the validator.
type ValidationError struct {
	Field  entity.FormField
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validator normalizes raw text for one field. On rejection it returns
// prior unchanged together with a *ValidationError.
type Validator func(raw, prior string) (string, error)

var registry = map[entity.FormField]Validator{
	entity.FieldDate:          ValidateDate,
	entity.FieldTimeRange:     ValidateTimeRange,
	entity.FieldBookingNumber: ValidateFreeText,
	entity.FieldCheckpoint:    ValidateFreeText,
	entity.FieldVehicleNumber: ValidateFreeText,
	entity.FieldTrailerNumber: ValidateFreeText,
	entity.FieldCountry:       ValidateFreeText,
}

// For returns the validator bound to field.
func For(field entity.FormField) (Validator, bool) {
	v, ok := registry[field]
	return v, ok
}

// Validate runs the validator for field and tags any rejection with it.
func Validate(field entity.FormField, raw, prior string) (string, error) {
	v, ok := For(field)
	if !ok {
		return prior, &ValidationError{Field: field, Reason: "unknown field"}
	}
	value, err := v(raw, prior)
	if verr, ok := err.(*ValidationError); ok {
		verr.Field = field
	}
	return value, err
}

// ValidateDate accepts exactly DD.MM.YYYY naming a real calendar day.
func ValidateDate(raw, prior string) (string, error) {
	if !datePattern.MatchString(raw) {
		return prior, &ValidationError{Field: entity.FieldDate, Reason: "expected DD.MM.YYYY"}
	}
	if _, err := time.Parse(entity.DateLayout, raw); err != nil {
		return prior, &ValidationError{Field: entity.FieldDate, Reason: "no such calendar date"}
	}
	return raw, nil
}

// ValidateTimeRange only checks for a ':' and a '-'. Hours, minutes and
// ordering are not checked.
func ValidateTimeRange(raw, prior string) (string, error) {
	if !strings.Contains(raw, ":") || !strings.Contains(raw, "-") {
		return prior, &ValidationError{Field: entity.FieldTimeRange, Reason: "expected HH:MM-HH:MM"}
	}
	return raw, nil
}

// ValidateFreeText stores whatever was sent, the empty string included.
func ValidateFreeText(raw, _ string) (string, error) {
	return raw, nil
}
