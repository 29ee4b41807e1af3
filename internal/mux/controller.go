package mux

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhinav/muxenv/internal/log"
	shellwords "github.com/mattn/go-shellwords"
)

//go:generate mockgen -destination muxtest/mock_controller.go -package muxtest github.com/abhinav/muxenv/internal/mux Controller

// Controller sends control lines to the current multiplexer session.
type Controller interface {
	// Send delivers a control line and blocks until the multiplexer
	// has accepted or rejected it.
	Send(ControlLine) error
}

// ControlLine is a command understood by a multiplexer's control interface,
// split into words. For example,
//
//	ControlLine{"setenv", "DISPLAY", ":1"}
//
// Words are passed to the multiplexer as separate arguments so they may
// contain spaces.
type ControlLine []string

// SetEnv builds a control line that sets name to value in the session-local
// environment.
func SetEnv(name, value string) ControlLine {
	return ControlLine{"setenv", name, value}
}

// String returns the words of the control line joined by single spaces.
func (l ControlLine) String() string {
	return strings.Join(l, " ")
}

// LogValue renders the control line as a single string in log messages.
func (l ControlLine) LogValue() slog.Value {
	return slog.StringValue(l.String())
}

// Kind identifies a supported terminal multiplexer.
type Kind int

// Supported multiplexers.
const (
	// KindUnknown is the zero value.
	// Use Detect to resolve it.
	KindUnknown Kind = iota
	KindScreen
	KindTmux
)

var _kindNames = map[Kind]string{
	KindScreen: "screen",
	KindTmux:   "tmux",
}

func (k Kind) String() string {
	if name, ok := _kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Set parses a multiplexer name into a Kind.
// This makes Kind usable as a flag.Value.
func (k *Kind) Set(name string) error {
	for kind, n := range _kindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unsupported multiplexer %q: must be screen or tmux", name)
}

// UnmarshalText decodes a multiplexer name from a config file.
func (k *Kind) UnmarshalText(b []byte) error {
	return k.Set(string(b))
}

// Detect determines which multiplexer the current process is running inside
// based on its environment. It reports KindScreen if it can't tell.
func Detect(getenv func(string) string) Kind {
	if len(getenv("TMUX")) > 0 {
		return KindTmux
	}
	return KindScreen
}

// ShellOptions configures the Controller built by New.
type ShellOptions struct {
	// Command used to invoke the multiplexer.
	// This is split into words like a shell would,
	// so it may include leading arguments,
	//
	//	sudo -u build screen
	//
	// Defaults to the name of the multiplexer, searched on $PATH.
	Path string

	// Name or path of the multiplexer's server socket.
	// Uses the multiplexer's default if unset.
	Socket string

	// Log receives debug messages and the multiplexer's output.
	// Nothing is logged if unset.
	Log *log.Logger
}

// New builds a Controller for the given kind of multiplexer
// that shells out to the multiplexer's binary.
func New(kind Kind, opts ShellOptions) (Controller, error) {
	var path []string
	if len(opts.Path) > 0 {
		var err error
		path, err = shellwords.Parse(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("parse path %q: %w", opts.Path, err)
		}
		if len(path) == 0 {
			return nil, fmt.Errorf("path %q has no command", opts.Path)
		}
	}

	switch kind {
	case KindScreen:
		s := &Screen{Path: path, Socket: opts.Socket}
		if opts.Log != nil {
			s.SetLogger(opts.Log)
		}
		return s, nil

	case KindTmux:
		t := &Tmux{Path: path, Socket: opts.Socket}
		if opts.Log != nil {
			t.SetLogger(opts.Log)
		}
		return t, nil

	default:
		return nil, fmt.Errorf("unsupported multiplexer: %v", kind)
	}
}
