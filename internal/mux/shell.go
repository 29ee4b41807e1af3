package mux

import (
	"io"
	"log/slog"
	"os/exec"

	"github.com/abhinav/muxenv/internal/log"
)

// minimal hook to change how exec.Cmd are run. Tests will provide a different
// implementation.
type runner struct {
	Run func(*exec.Cmd) error
}

var defaultRunner = runner{
	Run: (*exec.Cmd).Run,
}

// shellCommand is a single invocation of a multiplexer binary.
type shellCommand struct {
	Log  *log.Logger
	Run  *runner
	Path []string // command and leading arguments
	Args []string // arguments after Path
	Line ControlLine
}

func (c *shellCommand) exec() error {
	argv := make([]string, 0, len(c.Path)+len(c.Args))
	argv = append(argv, c.Path...)
	argv = append(argv, c.Args...)

	cmd := exec.Command(argv[0], argv[1:]...)
	defer errorWriter(c.Log, &cmd.Stdout, &cmd.Stderr)()

	c.Log.Debug("send", slog.Any("line", c.Line), slog.Any("argv", argv))
	return c.Run.Run(cmd)
}

// errorWriter sets the provided io.Writers to the same log.Writer and returns
// a function to close them.
//
//	cmd := exec.Command(...)
//	defer errorWriter(log, &cmd.Stderr)()
//
// screen -X hangs if its output is redirected to a regular file.
// A log.Writer is never an *os.File so exec always connects it with a pipe.
func errorWriter(l *log.Logger, ws ...*io.Writer) (close func()) {
	writer := &log.Writer{Log: l, Level: log.Error}
	for _, w := range ws {
		*w = writer
	}
	return func() { writer.Close() }
}
