package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/denver/internal/application"
	"github.com/eugenenazirov/denver/internal/config"
	"github.com/eugenenazirov/denver/internal/logging"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer, opts ...application.Option) int {
	kingpinApp := kingpin.New("denver", "Run a command with layered dotenv environments")
	kingpinApp.Version(version)
	flags := bindFlags(kingpinApp)

	if _, err := kingpinApp.Parse(args); err != nil {
		fmt.Fprintf(stderr, "denver: %v\n", err)
		return 2
	}

	cfg, err := config.Load(flags.overrides())
	if err != nil {
		fmt.Fprintf(stderr, "denver: config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.LogLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "denver: logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "denver: %v\n", err)
		return 1
	}

	code, err := app.Run(flags.request(logger))
	if err != nil {
		logger.Debug("run failed", zap.Error(err))
		fmt.Fprintf(stderr, "denver: %v\n", err)
		return 1
	}
	return code
}
