package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/abhinav/muxenv/internal/log"
	"github.com/abhinav/muxenv/internal/mux"
)

const (
	_configEnv  = "MUXENV_CONFIG"
	_logfileEnv = "MUXENV_LOG"
)

type config struct {
	Kind    mux.Kind `toml:"type"`
	Path    string   `toml:"path"`
	Socket  string   `toml:"socket"`
	LogFile string   `toml:"log"`
	Verbose bool     `toml:"verbose"`
	Quiet   bool     `toml:"quiet"`

	// Only settable from the command line.
	ConfigFile string `toml:"-"`

	// levelSet records that -verbose or -quiet was passed explicitly.
	// The file's verbose and quiet keys are ignored if it is set.
	levelSet bool
}

func newConfig(flag *flag.FlagSet) *config {
	var c config
	c.RegisterFlags(flag)
	return &c
}

func (c *config) RegisterFlags(flag *flag.FlagSet) {
	// No help here because we put it all in _usage.
	flag.Var(&c.Kind, "type", "")
	flag.StringVar(&c.Path, "path", "", "")
	flag.StringVar(&c.Socket, "socket", "", "")
	flag.StringVar(&c.ConfigFile, "config", "", "")
	flag.StringVar(&c.LogFile, "log", "", "")
	flag.BoolVar(&c.Verbose, "verbose", false, "")
	flag.BoolVar(&c.Quiet, "quiet", false, "")
}

// NoteSetFlags records which of this config's flags were passed explicitly
// to the given parsed FlagSet.
func (c *config) NoteSetFlags(fset *flag.FlagSet) {
	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "verbose", "quiet":
			c.levelSet = true
		}
	})
}

// FillFrom updates this config object, filling empty values with values from
// the provided struct but not overwriting those that are already set.
//
// Verbose and Quiet are taken from o together, and only if neither was set
// on the command line, so -quiet overrides a file's verbose = true.
func (c *config) FillFrom(o *config) {
	if c.Kind == mux.KindUnknown {
		c.Kind = o.Kind
	}
	if len(c.Path) == 0 {
		c.Path = o.Path
	}
	if len(c.Socket) == 0 {
		c.Socket = o.Socket
	}
	if len(c.LogFile) == 0 {
		c.LogFile = o.LogFile
	}
	if len(c.ConfigFile) == 0 {
		c.ConfigFile = o.ConfigFile
	}
	if !c.levelSet {
		c.Verbose = o.Verbose
		c.Quiet = o.Quiet
	}
}

// Level reports the log level requested by this configuration.
// Verbose wins over Quiet.
func (c *config) Level() log.Level {
	switch {
	case c.Verbose:
		return log.Debug
	case c.Quiet:
		return log.Error
	default:
		return log.Info
	}
}

// BuildLogWriter builds the destination for log messages.
// This is stderr unless a log file was requested,
// in which case logs are appended to that file.
//
// The returned function must be called when the writer is no longer needed.
func (c *config) BuildLogWriter(stderr io.Writer) (w io.Writer, close func() error, err error) {
	if len(c.LogFile) == 0 {
		return stderr, func() error { return nil }, nil
	}

	f, err := os.OpenFile(c.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log %q: %w", c.LogFile, err)
	}
	return f, f.Close, nil
}

// configFileSearch reports where the config file should be read from.
// explicit is true if the user asked for this file,
// so it's an error for it to be missing.
func configFileSearch(cfg *config, getenv func(string) string) (path string, explicit bool) {
	if p := cfg.ConfigFile; len(p) > 0 {
		return p, true
	}
	if p := getenv(_configEnv); len(p) > 0 {
		return p, true
	}
	if dir := getenv("XDG_CONFIG_HOME"); len(dir) > 0 {
		return filepath.Join(dir, _name, "config.toml"), false
	}
	if home := getenv("HOME"); len(home) > 0 {
		return filepath.Join(home, ".config", _name, "config.toml"), false
	}
	return "", false
}

// loadConfigFile reads a TOML configuration file.
// A missing file yields an empty configuration unless explicit is set.
func loadConfigFile(path string, explicit bool) (*config, error) {
	var cfg config
	if len(path) == 0 {
		return &cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("load config %q: unknown keys: %v", path, strings.Join(keys, ", "))
	}

	return &cfg, nil
}
