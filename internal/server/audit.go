package server

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type AuditLogEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	Handler    string    `json:"handler"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"status_code"`
	UserID     string    `json:"user_id,omitempty"`
	Role       string    `json:"role,omitempty"`
	DonationID string    `json:"donation_id,omitempty"`
	OldStatus  string    `json:"old_status,omitempty"`
	NewStatus  string    `json:"new_status,omitempty"`
	Request    string    `json:"request,omitempty"`
	Response   string    `json:"response,omitempty"`
}

func (e AuditLogEntry) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddTime("timestamp", e.Timestamp)
	enc.AddString("handler", e.Handler)
	enc.AddString("method", e.Method)
	enc.AddString("path", e.Path)
	enc.AddInt("status_code", e.StatusCode)
	for _, f := range []zap.Field{
		zap.String("user_id", e.UserID),
		zap.String("role", e.Role),
		zap.String("donation_id", e.DonationID),
		zap.String("old_status", e.OldStatus),
		zap.String("new_status", e.NewStatus),
		zap.String("request", e.Request),
		zap.String("response", e.Response),
	} {
		if f.String != "" {
			f.AddTo(enc)
		}
	}
	return nil
}
