// Package projection implements the fields selector: response bodies are
// filtered down to the requested top-level keys. "*" or an empty
// selector returns the full body.
package projection

import (
	"encoding/json"
	"strings"

	"pocketlib/internal/errors"
)

// ParseFields splits the fields query parameter into a selector list.
// Empty and "*" both mean "everything".
func ParseFields(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" {
		return nil
	}

	parts := strings.Split(raw, ",")
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			fields = append(fields, trimmed)
		}
	}

	return fields
}

// ParseLanguages splits the languages query parameter.
func ParseLanguages(raw string) []string {
	return ParseFields(raw)
}

// Project filters a view down to the selected top-level fields. The view
// is flattened through its JSON representation so selectors match the
// wire names. Unknown selectors are ignored.
func Project(view any, fields []string) (map[string]any, error) {
	raw, err := json.Marshal(view)
	if err != nil {
		return nil, errors.Wrap(err, "marshal view")
	}

	var full map[string]any
	if err := json.Unmarshal(raw, &full); err != nil {
		return nil, errors.Wrap(err, "unmarshal view")
	}

	if len(fields) == 0 {
		return full, nil
	}

	out := make(map[string]any, len(fields))
	for _, field := range fields {
		if value, ok := full[field]; ok {
			out[field] = value
		}
	}

	return out, nil
}

// ProjectList applies Project to every element of a list response.
func ProjectList[T any](views []T, fields []string) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(views))
	for _, view := range views {
		projected, err := Project(view, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, projected)
	}

	return out, nil
}
