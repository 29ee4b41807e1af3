package inject

import (
	"log/slog"
	"strings"

	"github.com/abhinav/muxenv/internal/mux"
)

// LookupFunc retrieves the value of an environment variable,
// reporting whether it was present. os.LookupEnv satisfies it.
type LookupFunc func(string) (string, bool)

// Assignment is a single NAME=VALUE pair to set in a session.
type Assignment struct {
	Name  string
	Value string

	// FromEnv reports whether Value was read from the environment
	// rather than the argument.
	FromEnv bool

	// Set reports whether the variable had a value.
	// This is false only if FromEnv is true and the variable was absent.
	Set bool
}

// Parse builds an Assignment from a NAME or NAME=VALUE argument.
//
// With an "=", the argument is split on the first "=" only,
// so VALUE may contain more of them.
// Without one, the value of NAME is retrieved with lookup.
// An unset variable yields an empty Value with Set false.
//
// The name is not validated: "=VALUE" has an empty name,
// which is left for the multiplexer to reject.
func Parse(arg string, lookup LookupFunc) (Assignment, error) {
	if len(arg) == 0 {
		return Assignment{}, &UsageError{Msg: "empty argument: expected NAME or NAME=VALUE"}
	}

	if name, value, ok := strings.Cut(arg, "="); ok {
		return Assignment{Name: name, Value: value, Set: true}, nil
	}

	value, ok := lookup(arg)
	return Assignment{
		Name:    arg,
		Value:   value,
		FromEnv: true,
		Set:     ok,
	}, nil
}

// ControlLine builds the control line that applies this assignment.
func (a Assignment) ControlLine() mux.ControlLine {
	return mux.SetEnv(a.Name, a.Value)
}

// LogValue implements slog.LogValuer.
func (a Assignment) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", a.Name),
		slog.String("value", a.Value),
		slog.Bool("fromEnv", a.FromEnv),
	)
}
