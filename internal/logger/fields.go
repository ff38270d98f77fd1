package logger

import (
	"log/slog"
	"strconv"
)

// Standard field keys for structured logging, kept consistent across the
// wire, session, dispatch, and store packages so log lines can be queried
// by field name regardless of which package emitted them.
const (
	// Distributed tracing
	KeyTraceID = "trace_id"
	KeySpanID  = "span_id"

	// Connection / transaction identity
	KeyConnectionID = "connection_id"
	KeyClientIP     = "client_ip"
	KeyTxType       = "tx_type"
	KeyTxID         = "tx_id"
	KeyErrorCode    = "error_code"

	// Session / authentication
	KeyUserID     = "user_id"
	KeyUsername   = "username"
	KeyPrivileges = "privileges"

	// News domain
	KeyNewsPath   = "news_path"
	KeyCategoryID = "category_id"
	KeyBundleID   = "bundle_id"
	KeyArticleID  = "article_id"

	// File domain
	KeyFileName = "file_name"
	KeyFileID   = "file_id"

	// General
	KeyDurationMs = "duration_ms"
	KeyError      = "error"
)

// TraceID returns a slog attribute for an OpenTelemetry trace id.
func TraceID(id string) slog.Attr { return slog.String(KeyTraceID, id) }

// SpanID returns a slog attribute for an OpenTelemetry span id.
func SpanID(id string) slog.Attr { return slog.String(KeySpanID, id) }

// ConnectionID returns a slog attribute for the accepting connection's id.
func ConnectionID(id uint64) slog.Attr { return slog.Uint64(KeyConnectionID, id) }

// ClientIP returns a slog attribute for the peer address.
func ClientIP(addr string) slog.Attr { return slog.String(KeyClientIP, addr) }

// TxType returns a slog attribute for the wire transaction type.
func TxType(t uint16) slog.Attr { return slog.Int(KeyTxType, int(t)) }

// TxID returns a slog attribute for the wire transaction id.
func TxID(id uint32) slog.Attr { return slog.Uint64(KeyTxID, uint64(id)) }

// ErrorCode returns a slog attribute for the reply error taxonomy code.
func ErrorCode(code uint32) slog.Attr { return slog.Uint64(KeyErrorCode, uint64(code)) }

// UserID returns a slog attribute for an authenticated user id.
func UserID(id uint32) slog.Attr { return slog.Uint64(KeyUserID, uint64(id)) }

// Username returns a slog attribute for a login name.
func Username(name string) slog.Attr { return slog.String(KeyUsername, name) }

// Privileges returns a slog attribute for a privilege bitmap, hex-formatted.
func Privileges(bits uint64) slog.Attr {
	return slog.String(KeyPrivileges, "0x"+strconv.FormatUint(bits, 16))
}

// NewsPath returns a slog attribute for a resolved or requested news path.
func NewsPath(p string) slog.Attr { return slog.String(KeyNewsPath, p) }

// CategoryID returns a slog attribute for a news category id.
func CategoryID(id int32) slog.Attr { return slog.Int64(KeyCategoryID, int64(id)) }

// ArticleID returns a slog attribute for a news article id.
func ArticleID(id int32) slog.Attr { return slog.Int64(KeyArticleID, int64(id)) }

// FileName returns a slog attribute for a served file name.
func FileName(name string) slog.Attr { return slog.String(KeyFileName, name) }

// DurationMs returns a slog attribute for an operation duration.
func DurationMs(ms float64) slog.Attr { return slog.Float64(KeyDurationMs, ms) }

// Err returns a slog attribute wrapping a Go error, nil-safe.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
