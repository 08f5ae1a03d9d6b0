package main

import (
	"context"
	"os"

	"smartspend/internal/backend"
	"smartspend/internal/cli"
	"smartspend/internal/ledger/memory"
	applog "smartspend/internal/log"
	"smartspend/internal/menu"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		cli.Fatal("Configuration validation failed", err)
	}

	logger, err := cli.SetupLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		cli.Fatal("Failed to set up logging", err)
	}
	ctx := applog.NewContext(context.Background(), logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		cli.Fatal("Invalid backend configuration", err)
	}

	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg, memory.New())
	if err != nil {
		cli.Fatal("Failed to initialize backend", err)
	}

	if err := run(ctx, result, logger); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, result *backend.BackendResult, logger *applog.Logger) error {
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.ErrorContext(ctx, "Cleanup failed", applog.FieldOperation, applog.OpShutdown, applog.FieldError, err)
		}
	}()

	svc := result.Service
	if err := svc.Load(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to load transactions", applog.FieldOperation, applog.OpLoad, applog.FieldError, err)
		return err
	}
	logger.InfoContext(ctx, "Starting session", applog.FieldCount, svc.Len())

	session := menu.NewSession(svc, os.Stdin, os.Stdout, menu.WithLogger(logger))
	if err := session.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "Session ended with error", applog.FieldOperation, applog.OpSave, applog.FieldError, err)
		return err
	}
	return nil
}
