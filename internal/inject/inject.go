package inject

import (
	"log/slog"
	"os"

	"github.com/abhinav/muxenv/internal/log"
	"github.com/abhinav/muxenv/internal/mux"
)

// Injector sends environment variable assignments to a multiplexer session.
type Injector struct {
	// Controller delivers control lines to the session.
	Controller mux.Controller

	// LookupEnv retrieves values for arguments without an "=".
	// Defaults to os.LookupEnv.
	LookupEnv LookupFunc

	// Log receives warnings and debug messages.
	// Nothing is logged if unset.
	Log *log.Logger
}

// Inject parses a NAME or NAME=VALUE argument and sends the corresponding
// setenv control line to the session. It sends at most one control line and
// blocks until the multiplexer exits.
//
// A NAME that isn't set in the environment is sent with an empty value.
//
// Inject returns a *UsageError if the argument is empty,
// and a *DeliveryError if the control line could not be delivered.
func (i *Injector) Inject(arg string) error {
	logger := i.Log
	if logger == nil {
		logger = log.Discard
	}

	lookup := i.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	a, err := Parse(arg, lookup)
	if err != nil {
		return err
	}

	if !a.Set {
		logger.Warnf("%v is not set: sending an empty value", a.Name)
	}
	logger.Debug("assignment", slog.Any("assign", a))

	line := a.ControlLine()
	if err := i.Controller.Send(line); err != nil {
		return &DeliveryError{Line: line, Err: err}
	}
	return nil
}
