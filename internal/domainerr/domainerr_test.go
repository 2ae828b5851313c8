package domainerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "plain error is internal", err: errors.New("boom"), want: CodeInternal},
		{name: "direct", err: New(CodeNotFound, "donation not found"), want: CodeNotFound},
		{name: "wrapped", err: fmt.Errorf("claim: %w", Conflict("claimed", "already claimed")), want: CodeConflict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CodeOf(tc.err))
		})
	}
}

func TestConflictCarriesState(t *testing.T) {
	err := fmt.Errorf("outer: %w", Conflict("expired", "Donation is already expired"))

	de, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "expired", de.State)
	assert.True(t, HasCode(err, CodeConflict))
	assert.False(t, HasCode(err, CodeNotFound))
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeInternal, "failed to load donations")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}
