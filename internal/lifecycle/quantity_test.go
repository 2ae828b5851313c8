package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"20 kg", 20},
		{"  15", 15},
		{"-3 boxes", -3},
		{"+7", 7},
		{"about 5", 0},
		{"abc", 0},
		{"", 0},
		{"-", 0},
		{"99999999999999999999999", 0},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, leadingInt(tc.in))
		})
	}
}
