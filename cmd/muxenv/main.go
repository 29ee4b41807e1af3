// muxenv sets environment variables in a running screen or tmux session.
//
// Windows created in the session afterwards inherit the new values.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abhinav/muxenv/internal/inject"
	"github.com/abhinav/muxenv/internal/log"
	"github.com/abhinav/muxenv/internal/mux"
	"github.com/abhinav/muxenv/internal/paniclog"
	"go.uber.org/multierr"
	"golang.org/x/term"
)

var _version = "dev"

var _main = mainCmd{
	Stdout:    os.Stdout,
	Stderr:    os.Stderr,
	Getenv:    os.Getenv,
	LookupEnv: os.LookupEnv,
}

func main() {
	os.Exit(_main.Main(os.Args[1:]))
}

type mainCmd struct {
	Stdout io.Writer
	Stderr io.Writer

	Getenv    func(string) string         // == os.Getenv
	LookupEnv func(string) (string, bool) // == os.LookupEnv

	newController func(mux.Kind, mux.ShellOptions) (mux.Controller, error)
}

const _name = "muxenv"

const _usage = `usage: %v [options] NAME[=VALUE]

Sets an environment variable in a running screen or tmux session.
Windows created in the session afterwards inherit the new value.
Shells that are already running are not affected.

With NAME=VALUE, NAME is set to VALUE. Only the first '=' separates the two,
so VALUE may contain more of them.
With only NAME, the value of NAME in the current environment is sent.
If NAME is not set, it is sent with an empty value.

The following flags are available:

	-type screen|tmux
		terminal multiplexer to send the variable to.
		Uses tmux if $TMUX is set, and screen otherwise.
	-path COMMAND
		command used to run the multiplexer.
		This is split into words like a shell would.
			-path /usr/local/bin/tmux
			-path 'sudo -u build screen'
		Searches $PATH for screen or tmux by default.
	-socket NAME
		socket of the multiplexer server.
		For screen, this is the session name passed to 'screen -S'.
		For tmux, a path is passed to 'tmux -S' and a name to
		'tmux -L'.
	-config FILE
		TOML file to read default options from.
		Keys are type, path, socket, log, verbose, and quiet.
		Uses $MUXENV_CONFIG if set, and otherwise
		$XDG_CONFIG_HOME/muxenv/config.toml or
		~/.config/muxenv/config.toml if they exist.
	-log FILE
		file to append logs to.
		Uses $MUXENV_LOG if set, and stderr otherwise.
	-verbose
		log more output.
	-quiet
		log only errors.
	-version
		display version information.
	-help
		display this message.
`

// Main runs muxenv with the given arguments,
// reports errors to stderr, and returns the exit code.
//
// Usage errors exit with 2.
// If the multiplexer ran and failed, its exit code is used.
// All other errors exit with 1.
func (cmd *mainCmd) Main(args []string) int {
	err := cmd.Run(args)
	if err == nil {
		return 0
	}

	fmt.Fprintf(cmd.Stderr, "%v: %v\n", _name, err)

	var (
		usageErr    *inject.UsageError
		deliveryErr *inject.DeliveryError
	)
	switch {
	case errors.As(err, &usageErr):
		return 2
	case errors.As(err, &deliveryErr):
		return deliveryErr.ExitCode()
	default:
		return 1
	}
}

func (cmd *mainCmd) init() {
	if cmd.newController == nil {
		cmd.newController = mux.New
	}
}

// Run parses the arguments and sends the requested variable to the
// multiplexer.
func (cmd *mainCmd) Run(args []string) (err error) {
	cmd.init()

	// Panics after the log is open are written there instead.
	defer paniclog.Recover(&err, cmd.Stderr)

	fset := flag.NewFlagSet(_name, flag.ContinueOnError)
	// Parse errors are reported by Main in a single line.
	fset.SetOutput(io.Discard)
	fset.Usage = func() {}

	cfg := newConfig(fset)
	help := fset.Bool("help", false, "")
	fset.BoolVar(help, "h", false, "")
	version := fset.Bool("version", false, "")
	if err := fset.Parse(args); err != nil {
		return usageErrorf("%v", err)
	}
	cfg.NoteSetFlags(fset)

	if *help {
		fmt.Fprintf(cmd.Stdout, _usage, _name)
		return nil
	}

	if *version {
		fmt.Fprintf(cmd.Stdout, "%v version %v\n", _name, _version)
		return nil
	}

	var arg string
	switch args := fset.Args(); len(args) {
	case 0:
		return usageErrorf("missing NAME[=VALUE] argument")
	case 1:
		arg = args[0]
	default:
		return usageErrorf("unexpected arguments %q: expected a single NAME[=VALUE]", args[1:])
	}

	if len(cfg.LogFile) == 0 {
		cfg.LogFile = cmd.Getenv(_logfileEnv)
	}

	fileCfg, err := loadConfigFile(configFileSearch(cfg, cmd.Getenv))
	if err != nil {
		return err
	}
	cfg.FillFrom(fileCfg)

	if cfg.Kind == mux.KindUnknown {
		cfg.Kind = mux.Detect(cmd.Getenv)
	}

	logW, closeLog, err := cfg.BuildLogWriter(cmd.Stderr)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Invoke(closeLog))
	defer paniclog.Recover(&err, logW)

	logger := log.New(logW).
		WithLevel(cfg.Level()).
		WithColor(cmd.useColor(logW))
	logger.Debug("config",
		"type", cfg.Kind,
		log.OmitEmpty(slog.String, "path", cfg.Path),
		log.OmitEmpty(slog.String, "socket", cfg.Socket),
	)

	ctrl, err := cmd.newController(cfg.Kind, mux.ShellOptions{
		Path:   cfg.Path,
		Socket: cfg.Socket,
		Log:    logger,
	})
	if err != nil {
		return err
	}

	injector := inject.Injector{
		Controller: ctrl,
		LookupEnv:  cmd.LookupEnv,
		Log:        logger,
	}
	return injector.Inject(arg)
}

// useColor reports whether log messages written to w should be colored.
func (cmd *mainCmd) useColor(w io.Writer) bool {
	if len(cmd.Getenv("NO_COLOR")) > 0 {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func usageErrorf(format string, args ...any) error {
	return &inject.UsageError{
		Msg: fmt.Sprintf(format, args...) + "; run '" + _name + " -help' for usage",
	}
}
