// Package sl contains small helpers for the slog logger.
package sl

import "log/slog"

// Err returns a slog.Attr with the key "error" and the error text, so
// errors appear under a uniform key in every log line.
//
// Example:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
