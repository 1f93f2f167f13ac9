package main

import (
	"context"
	"os"

	"github.com/desertthunder/songhub/internal/pages"
	"github.com/desertthunder/songhub/internal/session"
	"github.com/desertthunder/songhub/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	configPath := os.Getenv("SONGHUB_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}

	config, err := shared.ResolveConfig(configPath)
	if err != nil {
		logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		config = shared.DefaultConfig()
	}
	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Log.Level))

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "songhub",
		Usage:    "Manage your personal song catalog",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	err = app.Run(context.Background(), os.Args)
	runner.Close()
	if err == nil {
		return
	}

	if _, ok := session.AsRedirect(err); ok {
		runner.writePlain("✗ Not logged in. Run 'songhub auth login' first.\n")
		os.Exit(1)
	}
	logger.Debug("command failed", "err", err)
	logger.Fatal(pages.Message(err))
}
