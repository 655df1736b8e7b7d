package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorBoundary(t *testing.T) {
	v := NewValidator(50)

	tests := []struct {
		name string
		text string
		ok   bool
	}{
		{"one under", strings.Repeat("a", 49), false},
		{"exactly at threshold", strings.Repeat("a", 50), false},
		{"one over", strings.Repeat("a", 51), true},
		{"padding does not count", "  " + strings.Repeat("a", 50) + "\n\t ", false},
		{"padded but over", "  " + strings.Repeat("a", 51) + "\n", true},
		{"empty", "", false},
		{"whitespace only", " \n\t  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.text)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInsufficientContent)
			}
		})
	}
}
