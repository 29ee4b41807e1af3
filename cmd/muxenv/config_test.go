package main

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/abhinav/muxenv/internal/envtest"
	"github.com/abhinav/muxenv/internal/log"
	"github.com/abhinav/muxenv/internal/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give []string
		want config
	}{
		{desc: "no args"}, // zero values
		{
			desc: "type",
			give: []string{"-type", "tmux"},
			want: config{Kind: mux.KindTmux},
		},
		{
			desc: "path",
			give: []string{"-path", "sudo screen"},
			want: config{Path: "sudo screen"},
		},
		{
			desc: "socket",
			give: []string{"--socket", "work"},
			want: config{Socket: "work"},
		},
		{
			desc: "config",
			give: []string{"-config", "muxenv.toml"},
			want: config{ConfigFile: "muxenv.toml"},
		},
		{
			desc: "log",
			give: []string{"--log", "log.txt"},
			want: config{LogFile: "log.txt"},
		},
		{
			desc: "verbose",
			give: []string{"--verbose"},
			want: config{Verbose: true},
		},
		{
			desc: "quiet",
			give: []string{"-quiet"},
			want: config{Quiet: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
			cfg := newConfig(fset)

			require.NoError(t, fset.Parse(tt.give))
			assert.Equal(t, &tt.want, cfg)
		})
	}
}

func TestConfigParseBadType(t *testing.T) {
	t.Parallel()

	fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	newConfig(fset)

	err := fset.Parse([]string{"-type", "zellij"})
	assert.ErrorContains(t, err, `unsupported multiplexer "zellij"`)
}

func TestConfigFillFrom(t *testing.T) {
	t.Parallel()

	t.Run("fills empty", func(t *testing.T) {
		t.Parallel()

		var cfg config
		cfg.FillFrom(&config{
			Kind:    mux.KindTmux,
			Path:    "/usr/bin/tmux",
			Socket:  "work",
			LogFile: "log.txt",
			Verbose: true,
		})
		assert.Equal(t, config{
			Kind:    mux.KindTmux,
			Path:    "/usr/bin/tmux",
			Socket:  "work",
			LogFile: "log.txt",
			Verbose: true,
		}, cfg)
	})

	t.Run("keeps set", func(t *testing.T) {
		t.Parallel()

		cfg := config{
			Kind:     mux.KindScreen,
			Path:     "screen",
			Socket:   "mine",
			Quiet:    true,
			levelSet: true,
		}
		cfg.FillFrom(&config{
			Kind:    mux.KindTmux,
			Path:    "tmux",
			Socket:  "theirs",
			Verbose: true,
		})
		assert.Equal(t, config{
			Kind:     mux.KindScreen,
			Path:     "screen",
			Socket:   "mine",
			Quiet:    true,
			levelSet: true,
		}, cfg)
	})
}

func TestConfigLevelPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		args []string
		file config
		want log.Level
	}{
		{desc: "nothing", want: log.Info},
		{
			desc: "file verbose",
			file: config{Verbose: true},
			want: log.Debug,
		},
		{
			desc: "file quiet",
			file: config{Quiet: true},
			want: log.Error,
		},
		{
			desc: "quiet flag over file verbose",
			args: []string{"-quiet"},
			file: config{Verbose: true},
			want: log.Error,
		},
		{
			desc: "verbose=false flag over file verbose",
			args: []string{"-verbose=false"},
			file: config{Verbose: true},
			want: log.Info,
		},
		{
			desc: "verbose flag over file quiet",
			args: []string{"-verbose"},
			file: config{Quiet: true},
			want: log.Debug,
		},
		{
			desc: "unrelated flag",
			args: []string{"-socket", "work"},
			file: config{Verbose: true},
			want: log.Debug,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
			cfg := newConfig(fset)
			require.NoError(t, fset.Parse(tt.args))
			cfg.NoteSetFlags(fset)

			cfg.FillFrom(&tt.file)
			assert.Equal(t, tt.want, cfg.Level())
		})
	}
}

func TestConfigLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give config
		want log.Level
	}{
		{desc: "default", want: log.Info},
		{desc: "verbose", give: config{Verbose: true}, want: log.Debug},
		{desc: "quiet", give: config{Quiet: true}, want: log.Error},
		{desc: "both", give: config{Verbose: true, Quiet: true}, want: log.Debug},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.give.Level())
		})
	}
}

func TestConfigBuildLogWriter(t *testing.T) {
	t.Parallel()

	t.Run("stderr", func(t *testing.T) {
		t.Parallel()

		var (
			cfg  config
			buff bytes.Buffer
		)
		w, closew, err := cfg.BuildLogWriter(&buff)
		require.NoError(t, err)
		defer func() { assert.NoError(t, closew()) }()

		_, err = io.WriteString(w, "foo")
		require.NoError(t, err)
		assert.Equal(t, "foo", buff.String())
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()

		logFile := filepath.Join(t.TempDir(), "log.out")
		require.NoError(t, os.WriteFile(logFile, []byte("old\n"), 0o644))
		cfg := config{LogFile: logFile}

		var buff bytes.Buffer
		defer func() { assert.Empty(t, buff.String()) }()

		w, closew, err := cfg.BuildLogWriter(&buff)
		require.NoError(t, err)

		_, err = io.WriteString(w, "foo")
		require.NoError(t, err)
		require.NoError(t, closew())

		got, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Equal(t, "old\nfoo", string(got))
	})

	t.Run("file/open error", func(t *testing.T) {
		t.Parallel()

		logFile := filepath.Join(t.TempDir(), "does/not/exist/log.out")

		cfg := config{LogFile: logFile}
		_, _, err := cfg.BuildLogWriter(io.Discard)
		assert.ErrorContains(t, err, "open log")

		_, err = os.Stat(logFile)
		assert.Error(t, err)
	})
}

func TestConfigFileSearch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc         string
		cfg          config
		env          *envtest.Env
		wantPath     string
		wantExplicit bool
	}{
		{
			desc:         "flag",
			cfg:          config{ConfigFile: "flag.toml"},
			env:          envtest.MustPairs(_configEnv, "env.toml"),
			wantPath:     "flag.toml",
			wantExplicit: true,
		},
		{
			desc:         "env",
			env:          envtest.MustPairs(_configEnv, "env.toml", "HOME", "/home/user"),
			wantPath:     "env.toml",
			wantExplicit: true,
		},
		{
			desc: "xdg",
			env: envtest.MustPairs(
				"XDG_CONFIG_HOME", "/xdg",
				"HOME", "/home/user",
			),
			wantPath: "/xdg/muxenv/config.toml",
		},
		{
			desc:     "home",
			env:      envtest.MustPairs("HOME", "/home/user"),
			wantPath: "/home/user/.config/muxenv/config.toml",
		},
		{
			desc: "nothing",
			env:  envtest.Empty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			path, explicit := configFileSearch(&tt.cfg, tt.env.Getenv)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantExplicit, explicit)
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	writeConfig := func(t *testing.T, body string) string {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	t.Run("all keys", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, strings.Join([]string{
			`type = "tmux"`,
			`path = "/usr/local/bin/tmux"`,
			`socket = "work"`,
			`log = "/tmp/muxenv.log"`,
			`verbose = true`,
			`quiet = false`,
		}, "\n"))

		cfg, err := loadConfigFile(path, true)
		require.NoError(t, err)
		assert.Equal(t, &config{
			Kind:    mux.KindTmux,
			Path:    "/usr/local/bin/tmux",
			Socket:  "work",
			LogFile: "/tmp/muxenv.log",
			Verbose: true,
		}, cfg)
	})

	t.Run("no path", func(t *testing.T) {
		t.Parallel()

		cfg, err := loadConfigFile("", false)
		require.NoError(t, err)
		assert.Equal(t, &config{}, cfg)
	})

	t.Run("missing default", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.toml")
		cfg, err := loadConfigFile(path, false)
		require.NoError(t, err)
		assert.Equal(t, &config{}, cfg)
	})

	t.Run("missing explicit", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.toml")
		_, err := loadConfigFile(path, true)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad type", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `type = "zellij"`)
		_, err := loadConfigFile(path, false)
		assert.ErrorContains(t, err, `unsupported multiplexer "zellij"`)
	})

	t.Run("unknown keys", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "session = 3\npane = 1\n")
		_, err := loadConfigFile(path, false)
		assert.ErrorContains(t, err, "unknown keys: pane, session")
	})

	t.Run("syntax error", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "type = ")
		_, err := loadConfigFile(path, false)
		assert.ErrorContains(t, err, "load config")
	})
}

func TestUsageHasAllConfigFlags(t *testing.T) {
	t.Parallel()

	// _usage is the only user-facing help. Make sure that every flag
	// registered by newConfig has a corresponding entry in it.

	fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
	newConfig(fset)

	fset.VisitAll(func(f *flag.Flag) {
		pattern := `(?m)^\t-` + regexp.QuoteMeta(f.Name) + `\b`
		assert.Regexp(t, pattern, _usage, "usage is missing flag %q", f.Name)
	})
}
