package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gitlab.com/foodshare/backend/internal/event"
	"gitlab.com/foodshare/backend/internal/identity"
)

func TestSweeper_Run(t *testing.T) {
	svc, _, rec := newTestService()
	in := validInput("5")
	past := time.Now().Add(-time.Minute)
	in.ExpiryTime = &past
	_, err := svc.Create(context.Background(), identity.Donor{ID: "donor-1"}, in)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewSweeper(svc, 10*time.Millisecond, zap.NewNop()).Run(ctx) }()

	require.Eventually(t, func() bool {
		return len(rec.named(event.DonationExpired)) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestSweeper_Disabled(t *testing.T) {
	svc, _, _ := newTestService()
	assert.NoError(t, NewSweeper(svc, 0, zap.NewNop()).Run(context.Background()))
}
