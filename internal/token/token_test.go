package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasNullPrefix(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"NULL", true},
		{"NULL,1", true},
		{"NULLABLE", true},
		{"null", false},
		{"NUL", false},
		{`"NULL"`, false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, HasNullPrefix(tt.input))
		})
	}
}
