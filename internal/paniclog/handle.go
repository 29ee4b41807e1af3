// Package paniclog turns panics into errors,
// writing the panic value and stack trace to an io.Writer.
package paniclog

import (
	"fmt"
	"io"
	"runtime/debug"

	"go.uber.org/multierr"
)

// Handle writes a panic value and the current stack trace to w and returns
// the panic as an error. Handle returns nil if pval is nil.
//
// Error values are wrapped so that errors.Is and errors.As see through them.
func Handle(pval any, w io.Writer) error {
	if pval == nil {
		return nil
	}

	fmt.Fprintf(w, "panic: %v\n%s", pval, debug.Stack())

	if err, ok := pval.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", pval)
}

// Recover recovers a panic and appends it to the given error pointer.
// It must be called directly with defer.
//
//	defer paniclog.Recover(&err, logFile)
func Recover(err *error, w io.Writer) {
	if pval := recover(); pval != nil {
		*err = multierr.Append(*err, Handle(pval, w))
	}
}
