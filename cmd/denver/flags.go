package main

import (
	"errors"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/denver/internal/application"
	"github.com/eugenenazirov/denver/internal/config"
	"github.com/eugenenazirov/denver/internal/envfile"
	"github.com/eugenenazirov/denver/internal/resolver"
)

type cliFlags struct {
	command    *string
	cmd        *string
	envs       *[]string
	sets       *[]string
	froms      *[]string
	mergeLeft  *bool
	dir        *string
	configFile *string
	detach     *bool
	logLevel   *string
}

func bindFlags(app *kingpin.Application) *cliFlags {
	f := &cliFlags{
		envs:       app.Flag("env", "Environment to layer over .env; repeatable, applied in order").Short('e').PlaceHolder("ENV").Strings(),
		sets:       app.Flag("set", "Set a one-time variable (clobbers --from)").Short('s').PlaceHolder("KEY=VALUE").Strings(),
		froms:      app.Flag("from", "Set a variable from a specific environment").Short('f').PlaceHolder("KEY=ENV").Strings(),
		mergeLeft:  app.Flag("merge_left", "Merge left, preserving earlier values").Short('l').Bool(),
		dir:        app.Flag("dir", "Directory holding the environment files (default: working directory)").PlaceHolder("DIR").String(),
		configFile: app.Flag("config", "Path to YAML configuration file").String(),
		detach:     app.Flag("detach", "Return as soon as the command has started").Bool(),
		logLevel:   app.Flag("log-level", "Log level: debug, info, warn, error").String(),
		cmd:        app.Flag("cmd", "Command to run, instead of the positional argument").Short('c').PlaceHolder("CMD").String(),
		command:    app.Arg("command", "Command to run; split on whitespace, no shell quoting").String(),
	}

	app.Validate(func(*kingpin.Application) error {
		switch {
		case *f.cmd == "" && *f.command == "":
			return errors.New("required argument 'command' not provided")
		case *f.cmd != "" && *f.command != "":
			return errors.New("command given both as --cmd and as an argument")
		}
		return nil
	})

	return f
}

// commandLine returns the raw command string from --cmd or the positional argument.
func (f *cliFlags) commandLine() string {
	if *f.cmd != "" {
		return *f.cmd
	}
	return *f.command
}

func (f *cliFlags) overrides() *config.CLIOverrides {
	overrides := &config.CLIOverrides{
		ConfigFile: *f.configFile,
	}

	if *f.dir != "" {
		overrides.Dir = f.dir
	}

	// Flags can only switch these on; config and env decide otherwise.
	if *f.mergeLeft {
		overrides.MergeLeft = f.mergeLeft
	}

	if *f.detach {
		overrides.Detach = f.detach
	}

	if *f.logLevel != "" {
		overrides.LogLevel = f.logLevel
	}

	return overrides
}

// request turns the parsed flags into the application's input. Malformed
// --set and --from values are skipped with a warning.
func (f *cliFlags) request(logger *zap.Logger) application.Request {
	req := application.Request{
		Command: strings.Fields(f.commandLine()),
		Envs:    *f.envs,
	}

	for _, raw := range *f.froms {
		p, ok := envfile.ParseLine(raw)
		if !ok {
			logger.Warn("ignoring malformed --from", zap.String("value", raw))
			continue
		}
		req.Froms = append(req.Froms, resolver.From{Key: p.Key, Env: p.Value})
	}

	for _, raw := range *f.sets {
		p, ok := envfile.ParseLine(raw)
		if !ok {
			logger.Warn("ignoring malformed --set", zap.String("value", raw))
			continue
		}
		req.Sets = append(req.Sets, p)
	}

	return req
}
