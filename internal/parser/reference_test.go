package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRichardMilleReference(t *testing.T) {
	tests := []struct {
		name     string
		slug     string
		expected string
	}{
		{
			name:     "standard slug with collaboration suffix",
			slug:     "rm-65-01-mc-laren",
			expected: "RM65-01",
		},
		{
			name:     "slug without hyphenated brand suffix",
			slug:     "rm-11-03-mclaren",
			expected: "RM11-03",
		},
		{
			name:     "single number group",
			slug:     "rm-27",
			expected: "RM27",
		},
		{
			name:     "malformed slug falls back to uppercased form",
			slug:     "weird_model",
			expected: "WEIRD_MODEL",
		},
		{
			name:     "hyphenated non-rm slug strips hyphens",
			slug:     "tourbillon-special",
			expected: "TOURBILLONSPECIAL",
		},
		{
			name:     "empty slug stays unknown",
			slug:     "",
			expected: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveReference("RICHARD MILLE", tt.slug, &Page{})
			assert.Equal(t, tt.expected, got)
			assert.NotEmpty(t, got)
		})
	}
}

func TestGenericReference(t *testing.T) {
	tests := []struct {
		name     string
		page     *Page
		expected string
	}{
		{
			name: "reference from piped title",
			page: &Page{
				Title: "ROLEX | DAYTONA 126500LN-0002",
			},
			expected: "126500LN-0002",
		},
		{
			name: "title wins over heading",
			page: &Page{
				Title:        "ROLEX | GMT-MASTER II 126710BLRO",
				FirstHeading: "ROLEX 999999",
			},
			expected: "126710BLRO",
		},
		{
			name: "heading fallback when title has no pipe",
			page: &Page{
				Title:        "Aristo HK fine watches",
				FirstHeading: "OMEGA 310.30.42.50.01.002",
			},
			expected: "310.30.42.50.01.002",
		},
		{
			name: "single word heading is not a reference",
			page: &Page{
				FirstHeading: "OMEGA",
			},
			expected: "Unknown",
		},
		{
			name:     "nothing to extract",
			page:     &Page{},
			expected: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveReference("ROLEX", "126500-ln-0002", tt.page)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGenericReferenceTitleWithoutTrailingCode(t *testing.T) {
	// A title segment ending in lowercase text carries no code; the
	// resolver moves on to the heading.
	page := &Page{
		Title:        "ROLEX | the crown of watches",
		FirstHeading: "ROLEX 126500LN-0002",
	}
	assert.Equal(t, "126500LN-0002", ResolveReference("ROLEX", "", page))
}
