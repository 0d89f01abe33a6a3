package routing

import "time"

// Base turnaround hours by priority (5 = most urgent).
var priorityHours = map[int]float64{
	5: 2,
	4: 8,
	3: 24,
	2: 72,
	1: 168,
}

// Type modifiers scale the base hours: time-sensitive types shrink the
// window, low-urgency types stretch it.
var typeModifiers = map[string]float64{
	"legal":          0.5,
	"contract":       0.5,
	"invoice":        0.7,
	"financial":      0.8,
	"hr":             1.0,
	"technical":      1.2,
	"report":         1.5,
	"correspondence": 1.0,
}

const defaultBaseHours = 72

// DueDate computes the service-level deadline for an assignment from its
// priority and document type. Pure and deterministic given now.
func DueDate(priority int, docType string, now time.Time) time.Time {
	baseHours, ok := priorityHours[priority]
	if !ok {
		baseHours = defaultBaseHours
	}
	modifier, ok := typeModifiers[docType]
	if !ok {
		modifier = 1.0
	}
	return now.Add(time.Duration(baseHours * modifier * float64(time.Hour)))
}
