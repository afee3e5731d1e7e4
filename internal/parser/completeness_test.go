package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCompleteness(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "box and papers",
			text:     "Accessories: With Box, With Papers",
			expected: "With Box, With Papers",
		},
		{
			name:     "box only",
			text:     "Comes With Box",
			expected: "With Box",
		},
		{
			name:     "singular paper counts as papers",
			text:     "With Paper included",
			expected: "With Papers",
		},
		{
			name:     "original box phrasing",
			text:     "Includes the Original leather box",
			expected: "With Box",
		},
		{
			name:     "original certificate phrasing",
			text:     "Original warranty certificate included",
			expected: "With Papers",
		},
		{
			name:     "duplicate phrasings collapse to one marker",
			text:     "With Box and the Original leather box",
			expected: "With Box",
		},
		{
			name:     "canonical order regardless of phrasing order",
			text:     "With Papers, plus the Original presentation box",
			expected: "With Box, With Papers",
		},
		{
			name:     "nothing found",
			text:     "Watch head only",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractCompleteness(tt.text))
		})
	}
}
