package log

import "log/slog"

// OmitEmpty builds an attribute with the given constructor
// unless value is the zero value of its type.
// Empty attributes are dropped by the handler.
//
//	log.OmitEmpty(slog.String, "socket", req.Socket)
func OmitEmpty[T comparable](fn func(string, T) slog.Attr, name string, value T) slog.Attr {
	var zero T
	if value == zero {
		return slog.Attr{}
	}
	return fn(name, value)
}
