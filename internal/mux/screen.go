package mux

import (
	"sync"

	"github.com/abhinav/muxenv/internal/log"
)

const _defaultScreen = "screen"

// Screen is a Controller for GNU screen. It sends control lines with,
//
//	screen [-S SOCKET] -X LINE...
//
// Without a socket, screen uses the session named by $STY, if any.
type Screen struct {
	// Command and leading arguments used to invoke screen.
	// Defaults to "screen".
	Path []string

	// Session socket name, passed to screen's -S flag.
	Socket string

	log  *log.Logger
	run  *runner
	once sync.Once
}

var _ Controller = (*Screen)(nil)

func (s *Screen) init() {
	s.once.Do(func() {
		if s.log == nil {
			s.log = log.Discard
		}

		if len(s.Path) == 0 {
			s.Path = []string{_defaultScreen}
		}

		if s.run == nil {
			s.run = &defaultRunner
		}
	})
}

// SetLogger specifies the logger for the Screen controller. By default, it
// does not log anything.
func (s *Screen) SetLogger(log *log.Logger) {
	s.log = log.WithName("screen")
}

// Send runs screen -X with the given control line.
func (s *Screen) Send(line ControlLine) error {
	s.init()

	var args []string
	if len(s.Socket) > 0 {
		args = append(args, "-S", s.Socket)
	}
	args = append(args, "-X")
	args = append(args, line...)

	cmd := shellCommand{
		Log:  s.log,
		Run:  s.run,
		Path: s.Path,
		Args: args,
		Line: line,
	}
	return cmd.exec()
}
