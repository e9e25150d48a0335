package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/yumyai/rmgtf/internal/cli"
	"github.com/yumyai/rmgtf/logger"
	"github.com/yumyai/rmgtf/pkg/config"
	"github.com/yumyai/rmgtf/pkg/pipeline"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run returns the process exit code: 0 on success, 1 when the conversion
// fails, 2 for usage and configuration errors.
func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("rmgtf")
	fs.SetOutput(stderr)

	opt, err := cli.ParseArgs(fs, argv)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "rmgtf: %v\n", err)
		return 2
	}
	if opt.Version {
		fmt.Fprintln(stdout, cli.Version)
		return 0
	}

	// Try load env
	dotenvErr := godotenv.Load(opt.EnvFile)

	cfg := config.Default()
	if opt.ConfigPath != "" {
		if err := config.LoadFile(opt.ConfigPath, &cfg); err != nil {
			fmt.Fprintf(stderr, "rmgtf: %v\n", err)
			return 2
		}
	}
	if err := config.ApplyEnv(&cfg, os.Getenv); err != nil {
		fmt.Fprintf(stderr, "rmgtf: %v\n", err)
		return 2
	}
	opt.Apply(&cfg)

	if err := logger.InitLogger(logger.ParseLevel(cfg.LogLevel)); err != nil {
		fmt.Fprintf(stderr, "rmgtf: logger: %v\n", err)
		return 2
	}
	defer logger.Sync() // Make sure that the buffered is flushed.

	if dotenvErr != nil {
		logger.Debug("No .env found, using local environment", zap.String("env", opt.EnvFile))
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "rmgtf: %v\n\n", err)
		fs.Usage()
		return 2
	}

	logger.Info("Start", zap.String("version", cli.Version))
	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		logger.Error("Conversion failed", zap.Error(err))
		fmt.Fprintf(stderr, "rmgtf: %v\n", err)
		return 1
	}

	// A -summary file was already staged and committed with the GTF.
	if cfg.Summary == "" {
		if err := pipeline.WriteSummary(stdout, res, cfg); err != nil {
			fmt.Fprintf(stderr, "rmgtf: summary: %v\n", err)
			return 1
		}
	}
	logger.Info("Done", zap.String("output", cfg.Output))
	return 0
}
