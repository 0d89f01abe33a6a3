package routing

import (
	"strings"

	"docflow/routing/pkg/models"
)

// EvaluateCondition reports whether every constraint in the condition holds
// against the document context fields. Constraints on fields absent from
// the context are skipped: rules only exclude on fields they can actually
// inspect. A malformed condition never fails the decision; the rule is
// simply treated as non-matching.
func EvaluateCondition(condition models.Condition, fields map[string]any) (matched bool) {
	defer func() {
		if r := recover(); r != nil {
			matched = false
		}
	}()

	for key, expected := range condition {
		value, ok := fields[key]
		if !ok {
			continue
		}

		switch exp := expected.(type) {
		case string:
			if !containsFold(value, exp) {
				return false
			}
		case int, int32, int64, float32, float64:
			want, _ := toFloat(exp)
			got, isNum := toFloat(value)
			if !isNum || got != want {
				return false
			}
		case map[string]any:
			if !evaluateOperators(exp, value) {
				return false
			}
		}
		// Other constraint types have no defined semantics and do not
		// exclude the rule.
	}

	return true
}

// evaluateOperators applies the gt/lt/gte/lte/contains operators of one
// nested constraint object, all ANDed. A comparison against a non-numeric
// threshold or value fails the constraint.
func evaluateOperators(ops map[string]any, value any) bool {
	got, isNum := toFloat(value)

	if threshold, ok := ops["gt"]; ok {
		want, wantNum := toFloat(threshold)
		if !isNum || !wantNum || !(got > want) {
			return false
		}
	}
	if threshold, ok := ops["lt"]; ok {
		want, wantNum := toFloat(threshold)
		if !isNum || !wantNum || !(got < want) {
			return false
		}
	}
	if threshold, ok := ops["gte"]; ok {
		want, wantNum := toFloat(threshold)
		if !isNum || !wantNum || !(got >= want) {
			return false
		}
	}
	if threshold, ok := ops["lte"]; ok {
		want, wantNum := toFloat(threshold)
		if !isNum || !wantNum || !(got <= want) {
			return false
		}
	}
	if needle, ok := ops["contains"]; ok {
		substr, isStr := needle.(string)
		if !isStr || !containsFold(value, substr) {
			return false
		}
	}
	return true
}

// containsFold matches substr case-insensitively against a string value,
// or against any string element of a list value. Any other value type is
// no match.
func containsFold(value any, substr string) bool {
	needle := strings.ToLower(substr)
	switch v := value.(type) {
	case string:
		return strings.Contains(strings.ToLower(v), needle)
	case []string:
		for _, item := range v {
			if strings.Contains(strings.ToLower(item), needle) {
				return true
			}
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.Contains(strings.ToLower(s), needle) {
				return true
			}
		}
	}
	return false
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
