package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// HashedID records a hashed client identifier under the key "hashed_id".
// Only hashed identifiers may ever appear in logs; raw addresses and
// submitted field values are off limits.
func HashedID(id string) slog.Attr {
	return slog.String("hashed_id", id)
}

// Origin records a declared request origin under the key "origin".
func Origin(origin string) slog.Attr {
	return slog.String("origin", origin)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}
