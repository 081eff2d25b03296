package security

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType labels a security-relevant event in the audit stream.
type EventType string

const (
	EventLoginFailed        EventType = "LOGIN_FAILED"
	EventLoginBlocked       EventType = "LOGIN_BLOCKED"
	EventLoginSucceeded     EventType = "LOGIN_SUCCEEDED"
	EventTokenRevoked       EventType = "TOKEN_REVOKED"
	EventPasswordResetIssue EventType = "PASSWORD_RESET_ISSUED"
	EventPasswordResetDone  EventType = "PASSWORD_RESET_COMPLETED"
	EventResetTokenRejected EventType = "RESET_TOKEN_REJECTED"
	EventTwoFactorEnabled   EventType = "TWO_FACTOR_ENABLED"
)

// Logger writes structured security events separately from the application
// log, so the audit trail can be shipped to its own sink.
type Logger struct {
	zapLogger *zap.Logger
}

// NewLogger builds a production zap logger for security events.
func NewLogger() (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.TimeKey = "timestamp"

	zl, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, err
	}
	return &Logger{zapLogger: zl.Named("security")}, nil
}

// NopLogger returns a logger that discards events, for tests and for
// deployments that have not configured an audit sink.
func NopLogger() *Logger {
	return &Logger{zapLogger: zap.NewNop()}
}

// Event records a security event with the subject it concerns.
func (l *Logger) Event(event EventType, subject string, fields ...zap.Field) {
	all := append([]zap.Field{
		zap.String("event", string(event)),
		zap.String("subject", subject),
		zap.Time("at", time.Now()),
	}, fields...)
	l.zapLogger.Info("security_event", all...)
}

// Sync flushes buffered events. Call on shutdown.
func (l *Logger) Sync() {
	_ = l.zapLogger.Sync()
}
