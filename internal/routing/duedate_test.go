package routing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDueDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		priority int
		docType  string
		want     time.Duration
	}{
		{"urgent legal", 5, "legal", 1 * time.Hour},
		{"urgent contract", 5, "contract", 1 * time.Hour},
		{"lowest priority report", 1, "report", 252 * time.Hour},
		{"medium invoice", 3, "invoice", time.Duration(24 * 0.7 * float64(time.Hour))},
		{"high technical", 4, "technical", time.Duration(8 * 1.2 * float64(time.Hour))},
		{"unknown type uses neutral modifier", 3, "memo", 24 * time.Hour},
		{"unknown priority defaults to 72h base", 9, "hr", 72 * time.Hour},
		{"zero priority defaults to 72h base", 0, "correspondence", 72 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, now.Add(tt.want), DueDate(tt.priority, tt.docType, now))
		})
	}
}

func TestDueDateIsPure(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	first := DueDate(5, "legal", now)
	second := DueDate(5, "legal", now)
	assert.Equal(t, first, second)
}
