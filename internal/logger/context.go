package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

// logContextKey is the key for LogContext in context.Context
var logContextKey = contextKey{}

// LogContext holds per-connection logging context, threaded through the
// dispatch pipeline so every log line emitted while serving a transaction
// carries the connection and transaction identity without plumbing it
// through every function signature.
type LogContext struct {
	ConnectionID    uint64    // monotonic connection id assigned at accept
	ClientIP        string    // remote address, without port
	TransactionType uint16    // current transaction's wire type, 0 if idle
	TransactionID   uint32    // current transaction's wire id, 0 if idle
	TraceID         string    // OpenTelemetry trace ID, when tracing is enabled
	SpanID          string    // OpenTelemetry span ID, when tracing is enabled
	StartTime       time.Time // for duration calculation
}

// WithContext returns a new context with the given LogContext
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from context, or nil if not present
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a new LogContext for a freshly accepted connection.
func NewLogContext(connectionID uint64, clientIP string) *LogContext {
	return &LogContext{
		ConnectionID: connectionID,
		ClientIP:     clientIP,
		StartTime:    time.Now(),
	}
}

// Clone creates a copy of the LogContext
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	clone := *lc
	return &clone
}

// WithTransaction returns a copy with the current transaction's type/id set.
func (lc *LogContext) WithTransaction(txType uint16, txID uint32) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.TransactionType = txType
		clone.TransactionID = txID
	}
	return clone
}

// WithTrace returns a copy with trace info set
func (lc *LogContext) WithTrace(traceID, spanID string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.TraceID = traceID
		clone.SpanID = spanID
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(lc.StartTime).Microseconds()) / 1000.0
}
