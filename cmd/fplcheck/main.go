package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/omarshaarawi/fplcheck/internal/api/fpl"
	"github.com/omarshaarawi/fplcheck/internal/cli"
	"github.com/omarshaarawi/fplcheck/internal/config"
	"github.com/omarshaarawi/fplcheck/internal/logging"
	"github.com/omarshaarawi/fplcheck/internal/service"
	"github.com/omarshaarawi/fplcheck/internal/status"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes one command. Reports go to stdout; logs and usage text go to
// stderr.
func run(args []string, stdout, stderr io.Writer) error {
	envErr := godotenv.Load()
	fallback := logging.NewWithWriter(stderr, "console", logging.LevelError)

	cfg, err := config.New()
	if err != nil {
		fallback.Error("Error loading config", "error", err)
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		fallback.Error("Error parsing log level", "error", err)
		return err
	}
	logger := logging.NewWithWriter(stderr, cfg.Log.Format, level)
	defer func() { _ = logger.Sync() }()

	if envErr != nil {
		logger.Debug("No .env file loaded", "error", envErr)
	}

	client := fpl.NewClient(cfg.FPLAPI, logger)
	fplService := service.NewFPLService(fpl.NewAPI(client), service.Options{
		Gameweek:    cfg.FPLAPI.Gameweek,
		SampleLimit: cfg.Reports.SampleLimit,
		Thresholds:  status.Thresholds{SubstitutionSlack: cfg.Reports.SubstitutionSlack},
	}, logger)
	handler := cli.NewHandler(fplService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := ""
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	out, err := handler.HandleCommand(ctx, command, args)
	if out != "" {
		if errors.Is(err, cli.ErrUnknownCommand) || errors.Is(err, cli.ErrMissingArgument) {
			fmt.Fprint(stderr, out)
		} else {
			fmt.Fprint(stdout, out)
		}
	}
	if err != nil {
		logger.Error("Error running command", "command", command, "error", err)
		return err
	}
	return nil
}
