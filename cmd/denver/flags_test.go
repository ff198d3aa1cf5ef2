package main

import (
	"slices"
	"testing"

	"github.com/alecthomas/kingpin/v2"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/denver/internal/application"
	"github.com/eugenenazirov/denver/internal/envfile"
	"github.com/eugenenazirov/denver/internal/resolver"
)

func parseFlags(t *testing.T, args ...string) *cliFlags {
	t.Helper()

	app := kingpin.New("denver", "test")
	flags := bindFlags(app)
	if _, err := app.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return flags
}

func TestRequestBinding(t *testing.T) {
	flags := parseFlags(t,
		"-e", "dev", "--env", "Local",
		"-s", `B="hello"`, "--set", "C=2",
		"-f", "TOKEN=prod",
		"echo $A  trailing",
	)

	got := flags.request(zaptest.NewLogger(t))
	want := application.Request{
		Command: []string{"echo", "$A", "trailing"},
		Envs:    []string{"dev", "Local"},
		Froms:   []resolver.From{{Key: "TOKEN", Env: "prod"}},
		Sets: []envfile.Pair{
			{Key: "B", Value: "hello"},
			{Key: "C", Value: "2"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected request (-want +got):\n%s", diff)
	}
}

func TestRequestSkipsMalformedPairs(t *testing.T) {
	flags := parseFlags(t, "-s", "1BAD=x", "-s", "NOEQUALS", "-f", "#x=y", "-s", "OK=1", "env")

	got := flags.request(zaptest.NewLogger(t))
	if len(got.Froms) != 0 {
		t.Fatalf("expected malformed --from to be skipped, got %v", got.Froms)
	}
	if want := []envfile.Pair{{Key: "OK", Value: "1"}}; !slices.Equal(got.Sets, want) {
		t.Fatalf("expected %v, got %v", want, got.Sets)
	}
}

func TestOverridesOnlyCarrySetFlags(t *testing.T) {
	overrides := parseFlags(t, "true").overrides()
	if overrides.Dir != nil || overrides.MergeLeft != nil || overrides.Detach != nil || overrides.LogLevel != nil {
		t.Fatalf("expected no overrides, got %+v", overrides)
	}

	overrides = parseFlags(t, "-l", "--detach", "--dir", "/tmp", "--log-level", "debug", "--config", "c.yaml", "true").overrides()
	if overrides.MergeLeft == nil || !*overrides.MergeLeft {
		t.Fatalf("expected merge_left override")
	}
	if overrides.Detach == nil || !*overrides.Detach {
		t.Fatalf("expected detach override")
	}
	if overrides.Dir == nil || *overrides.Dir != "/tmp" {
		t.Fatalf("expected dir override")
	}
	if overrides.LogLevel == nil || *overrides.LogLevel != "debug" {
		t.Fatalf("expected log level override")
	}
	if overrides.ConfigFile != "c.yaml" {
		t.Fatalf("expected config file, got %q", overrides.ConfigFile)
	}
}

func TestCommandIsRequired(t *testing.T) {
	app := kingpin.New("denver", "test")
	bindFlags(app)
	if _, err := app.Parse([]string{"-e", "dev"}); err == nil {
		t.Fatalf("expected error when command is missing")
	}
}

func TestCmdFlagAlias(t *testing.T) {
	flags := parseFlags(t, "-c", "echo $A", "-e", "dev")

	got := flags.request(zaptest.NewLogger(t))
	if want := []string{"echo", "$A"}; !slices.Equal(got.Command, want) {
		t.Fatalf("expected %v, got %v", want, got.Command)
	}
}

func TestCmdFlagConflictsWithArgument(t *testing.T) {
	app := kingpin.New("denver", "test")
	bindFlags(app)
	if _, err := app.Parse([]string{"--cmd", "true", "false"}); err == nil {
		t.Fatalf("expected error when both --cmd and the argument are given")
	}
}
