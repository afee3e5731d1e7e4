package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearExtractorDefaults(t *testing.T) {
	e := NewYearExtractor()
	assert.Equal(t, 1950, e.MinYear)
	assert.Equal(t, 2027, e.MaxYear)
}

func TestExtractYear(t *testing.T) {
	e := NewYearExtractor()

	tests := []struct {
		name     string
		text     string
		expected *int
	}{
		{
			name:     "labeled release year field",
			text:     "Case 40mm Release Year: 2019 With Box",
			expected: intPtr(2019),
		},
		{
			name:     "release year with slash-less separator",
			text:     "Release Year 2021",
			expected: intPtr(2021),
		},
		{
			name:     "release year beats secondary phrases",
			text:     "This 2023 model was refreshed. Release Year: 2018.",
			expected: intPtr(2018),
		},
		{
			name:     "released in phrase",
			text:     "The reference was released in 2020 to acclaim",
			expected: intPtr(2020),
		},
		{
			name:     "introduced in phrase",
			text:     "First introduced in 1972 and still in production",
			expected: intPtr(1972),
		},
		{
			name:     "model phrase",
			text:     "A clean 2016 model with papers",
			expected: intPtr(2016),
		},
		{
			name:     "out of range primary falls through to secondary",
			text:     "Release Year: 1800 but actually released in 2021",
			expected: intPtr(2021),
		},
		{
			name:     "out of range everywhere yields nil",
			text:     "Release Year: 1800, a 1492 model, launched in 2999",
			expected: nil,
		},
		{
			name:     "bare four digit number is not evidence",
			text:     "Caliber 3235 movement, 904L steel",
			expected: nil,
		},
		{
			name:     "no year at all",
			text:     "A watch with no dates mentioned",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			if tt.expected == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.expected, *got)
			}
		})
	}
}

func TestExtractYearNeverDefaultsToCurrentYear(t *testing.T) {
	e := NewYearExtractor()
	assert.Nil(t, e.Extract("brand new watch, just in"))
}
