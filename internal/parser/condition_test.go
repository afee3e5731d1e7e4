package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCondition(t *testing.T) {
	c := NewConditionClassifier()

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "hot marker means new",
			text:     "HOT New arrival DAYTONA",
			expected: "New",
		},
		{
			name:     "pre-owned marker",
			text:     "Excellent Pre-owned example from 2019",
			expected: "Pre-owned",
		},
		{
			name:     "hot wins when both markers appear",
			text:     "HOT deal on this Pre-owned piece",
			expected: "New",
		},
		{
			name:     "no marker defaults to new",
			text:     "A fine watch in steel",
			expected: "New",
		},
		{
			name:     "marker outside the scan window is ignored",
			text:     strings.Repeat("x", 1500) + " Pre-owned",
			expected: "New",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify(tt.text))
		})
	}
}
