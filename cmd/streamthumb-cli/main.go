package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"streamthumb/internal/adapters/downloader"
	"streamthumb/internal/adapters/localstore"
	"streamthumb/internal/adapters/s3store"
	"streamthumb/internal/adapters/twitch"
	"streamthumb/internal/config"
	"streamthumb/internal/core/ports"
	"streamthumb/internal/service"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()
	zap.RedirectStdLog(logger)
	zap.ReplaceGlobals(logger)

	// It's okay if .env doesn't exist, environment variables might be
	// set manually.
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "streamthumb",
		Usage: "capture a live channel's thumbnail into the archive",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "login",
				Usage:    "Twitch channel login to capture",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "local-dir",
				Usage: "write the thumbnail to `DIR` instead of the S3 bucket",
			},
		},
		Action: func(c *cli.Context) error {
			return capture(ctx, logger, c.String("login"), c.String("local-dir"))
		},
		HideHelpCommand: true,
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Fatal(err.Error())
	}
}

func capture(ctx context.Context, logger *zap.Logger, login string, localDir string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	var archive ports.ArchiveStore
	if localDir != "" {
		archive = localstore.New(localDir)
	} else {
		archive, err = s3store.New(ctx, cfg.BucketName)
		if err != nil {
			return err
		}
	}

	helix := twitch.New(cfg.Twitch)
	orchestrator := service.NewOrchestrator(
		helix,
		helix,
		downloader.NewHTTPFetcher(),
		archive,
		cfg.Twitch,
		logger,
	)

	result, err := orchestrator.Capture(ctx, login)
	if err != nil {
		return err
	}

	fmt.Printf("captured %s -> %s\n", result.Login, result.Key)
	return nil
}
