// Package validation implements declarative per-field payload validation.
// A ruleset is an ordered list of field rules; the returned error codes
// follow the declaration order exactly, which callers rely on.
package validation

import (
	"fmt"

	"pocketlib/internal/domain/constants"
	domainerrors "pocketlib/internal/domain/errors"
)

// Type is the expected runtime type of a field.
type Type int

const (
	String Type = iota
	Number
	Boolean
)

// Codes declares the numeric error code the rule produces per failure
// kind. Kinds the rule cannot produce may be left zero.
type Codes struct {
	Missing      int
	WrongType    int
	TooShort     int
	TooLong      int
	InvalidValue int
}

// Rule is the validation configuration for one field.
type Rule struct {
	Name         string
	Required     bool
	Type         Type
	MinLen       int
	MaxLen       int
	Min          *float64
	Max          *float64
	LanguageCode bool
	Codes        Codes
}

// Ruleset is an ordered list of field rules.
type Ruleset []Rule

// Validate checks payload against the ruleset and returns all failures in
// declaration order. An unsupported language code supersedes everything
// and is returned alone as ErrLanguageNotSupported.
//
// Per field: a missing optional field is skipped entirely; a missing
// required field yields only its Missing code; a wrongly typed value
// yields only its WrongType code, never length or range codes on top.
func Validate(payload map[string]any, rules Ruleset) error {
	// Language codes are checked first, across all fields.
	for _, rule := range rules {
		if !rule.LanguageCode {
			continue
		}
		raw, ok := payload[rule.Name]
		if !ok {
			continue
		}
		lang, ok := raw.(string)
		if !ok || !constants.LanguageSupported(lang) {
			return domainerrors.ErrLanguageNotSupported
		}
	}

	var fields []domainerrors.FieldCode

	for _, rule := range rules {
		raw, present := payload[rule.Name]
		if !present || raw == nil {
			if rule.Required {
				fields = append(fields, domainerrors.FieldCode{
					Code:    rule.Codes.Missing,
					Message: fmt.Sprintf("The field %s is missing", rule.Name),
				})
			}

			continue
		}

		switch rule.Type {
		case String:
			s, ok := raw.(string)
			if !ok {
				fields = append(fields, wrongType(rule))

				continue
			}
			// An empty string on an optional field is an explicit
			// "clear this field" instruction, not a length violation.
			if s == "" && !rule.Required {
				continue
			}
			if rule.MinLen > 0 && len(s) < rule.MinLen {
				fields = append(fields, domainerrors.FieldCode{
					Code:    rule.Codes.TooShort,
					Message: fmt.Sprintf("The field %s is too short", rule.Name),
				})
			}
			if rule.MaxLen > 0 && len(s) > rule.MaxLen {
				fields = append(fields, domainerrors.FieldCode{
					Code:    rule.Codes.TooLong,
					Message: fmt.Sprintf("The field %s is too long", rule.Name),
				})
			}

		case Number:
			// JSON numbers arrive as float64.
			n, ok := raw.(float64)
			if !ok {
				fields = append(fields, wrongType(rule))

				continue
			}
			if (rule.Min != nil && n < *rule.Min) || (rule.Max != nil && n > *rule.Max) {
				fields = append(fields, domainerrors.FieldCode{
					Code:    rule.Codes.InvalidValue,
					Message: fmt.Sprintf("The field %s is invalid", rule.Name),
				})
			}

		case Boolean:
			if _, ok := raw.(bool); !ok {
				fields = append(fields, wrongType(rule))
			}
		}
	}

	if len(fields) > 0 {
		return domainerrors.NewValidationError(fields...)
	}

	return nil
}

func wrongType(rule Rule) domainerrors.FieldCode {
	return domainerrors.FieldCode{
		Code:    rule.Codes.WrongType,
		Message: fmt.Sprintf("The field %s has the wrong type", rule.Name),
	}
}

// Zero returns a pointer to the zero lower bound, for price-like fields.
func Zero() *float64 {
	zero := 0.0

	return &zero
}

// Str returns the string value of a validated field. The boolean reports
// whether the field was present in the payload.
func Str(payload map[string]any, name string) (string, bool) {
	raw, ok := payload[name]
	if !ok || raw == nil {
		return "", false
	}
	s, ok := raw.(string)

	return s, ok
}

// Num returns the numeric value of a validated field.
func Num(payload map[string]any, name string) (float64, bool) {
	raw, ok := payload[name]
	if !ok || raw == nil {
		return 0, false
	}
	n, ok := raw.(float64)

	return n, ok
}

// Bool returns the boolean value of a validated field.
func Bool(payload map[string]any, name string) (bool, bool) {
	raw, ok := payload[name]
	if !ok || raw == nil {
		return false, false
	}
	b, ok := raw.(bool)

	return b, ok
}

// StrSlice returns a validated string-array field. Non-string elements
// are dropped.
func StrSlice(payload map[string]any, name string) ([]string, bool) {
	raw, ok := payload[name]
	if !ok || raw == nil {
		return nil, false
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out, true
}
