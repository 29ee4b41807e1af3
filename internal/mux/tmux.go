package mux

import (
	"os"
	"strings"
	"sync"

	"github.com/abhinav/muxenv/internal/log"
)

const _defaultTmux = "tmux"

// Tmux is a Controller for tmux. It sends control lines with,
//
//	tmux [-S PATH | -L NAME] LINE...
//
// tmux accepts setenv as an alias for set-environment.
// Without a -t flag in the control line, tmux targets the session of the
// calling client, identified by $TMUX.
type Tmux struct {
	// Command and leading arguments used to invoke tmux.
	// Defaults to "tmux".
	Path []string

	// Server socket. Values with a path separator are socket paths
	// (tmux -S). Everything else is a socket name (tmux -L).
	Socket string

	log  *log.Logger
	run  *runner
	once sync.Once
}

var _ Controller = (*Tmux)(nil)

func (t *Tmux) init() {
	t.once.Do(func() {
		if t.log == nil {
			t.log = log.Discard
		}

		if len(t.Path) == 0 {
			t.Path = []string{_defaultTmux}
		}

		if t.run == nil {
			t.run = &defaultRunner
		}
	})
}

// SetLogger specifies the logger for the Tmux controller. By default, it
// does not log anything.
func (t *Tmux) SetLogger(log *log.Logger) {
	t.log = log.WithName("tmux")
}

// Send runs tmux with the given control line.
func (t *Tmux) Send(line ControlLine) error {
	t.init()

	var args []string
	if sock := t.Socket; len(sock) > 0 {
		if strings.ContainsRune(sock, os.PathSeparator) {
			args = append(args, "-S", sock)
		} else {
			args = append(args, "-L", sock)
		}
	}
	args = append(args, line...)

	cmd := shellCommand{
		Log:  t.log,
		Run:  t.run,
		Path: t.Path,
		Args: args,
		Line: line,
	}
	return cmd.exec()
}
