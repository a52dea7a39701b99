package census

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber_Null(t *testing.T) {
	for _, in := range []string{"", "X", "x", "NA", "na", "S", "s", " X ", "Z", "D", "abc", "   ", "NaN", "Inf", "-Infinity"} {
		assert.Nil(t, ParseNumber(in), "input %q", in)
	}
}

func TestParseNumber_Values(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1,234.5", 1234.5},
		{"12,345", 12345},
		{"39,538,223", 39538223},
		{"6.2", 6.2},
		{"-0.4", -0.4},
		{"+3", 3},
		{" 42 ", 42},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseNumber(tt.in)
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 1e-9)
		})
	}
}
