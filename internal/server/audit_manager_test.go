package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAuditManagerFlushesOnShutdown(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	manager := NewAuditManager(2, 5, time.Hour, zap.New(core))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager.Start(ctx)

	for i := 0; i < 7; i++ {
		manager.LogEntry(ctx, AuditLogEntry{
			Timestamp:  time.Now(),
			Handler:    "handleClaimDonation",
			Method:     "PATCH",
			Path:       "/api/donations/d-1/claim",
			StatusCode: 200,
			DonationID: "d-1",
		})
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	manager.Shutdown(shutdownCtx)

	assert.Equal(t, 7, logs.FilterMessage("audit").Len())
	assert.Zero(t, manager.Pending())

	entry := logs.FilterMessage("audit").All()[0].ContextMap()["entry"].(map[string]interface{})
	assert.Equal(t, "d-1", entry["donation_id"])
	_, hasUser := entry["user_id"]
	assert.False(t, hasUser)
}

func TestAuditManagerAfterShutdownWritesDirectly(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	manager := NewAuditManager(1, 1, time.Millisecond, zap.New(core))
	manager.Start(context.Background())
	manager.Shutdown(context.Background())

	manager.LogEntry(context.Background(), AuditLogEntry{Handler: "handleStats"})

	require.Eventually(t, func() bool {
		return logs.FilterMessage("audit entry written directly").Len() == 1
	}, time.Second, 10*time.Millisecond)
}
