package inject

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/abhinav/muxenv/internal/mux"
)

// UsageError indicates that the tool was invoked incorrectly.
// Nothing was sent to the multiplexer.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// DeliveryError indicates that the multiplexer could not be run
// or that it rejected the control line.
type DeliveryError struct {
	Line mux.ControlLine
	Err  error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("send %q: %v", e.Line.String(), e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// ExitCode reports the exit status of the multiplexer,
// or 1 if it did not run or was killed by a signal.
func (e *DeliveryError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}
