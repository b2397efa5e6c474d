package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"streamthumb/internal/adapters/downloader"
	"streamthumb/internal/adapters/s3store"
	"streamthumb/internal/adapters/twitch"
	"streamthumb/internal/config"
	"streamthumb/internal/core/domain"
	"streamthumb/internal/service"
)

// streamOnlineDetail is the EventSub "stream.online" notification as
// relayed through EventBridge. Only the channel login is consumed.
type streamOnlineDetail struct {
	TwitchUserLogin string `json:"twitch_user_login"`
}

type handler struct {
	cfg    *config.Config
	store  *s3store.Store
	logger *zap.Logger
}

// handle runs one capture invocation for one event. The Twitch client and
// orchestrator are built per invocation; concurrent invocations share
// nothing but the read-only configuration and the S3 client.
func (h *handler) handle(ctx context.Context, event events.CloudWatchEvent) error {
	var detail streamOnlineDetail
	if len(event.Detail) == 0 {
		err := domain.Failf(domain.ReasonMalformedEvent, "event carries no detail payload")
		h.logger.Error("rejecting event", zap.Error(err))
		return err
	}
	if err := json.Unmarshal(event.Detail, &detail); err != nil {
		wrapped := domain.Failf(domain.ReasonMalformedEvent, "failed to decode event detail: %w", err)
		h.logger.Error("rejecting event", zap.Error(wrapped))
		return wrapped
	}

	helix := twitch.New(h.cfg.Twitch)
	orchestrator := service.NewOrchestrator(
		helix,
		helix,
		downloader.NewHTTPFetcher(),
		h.store,
		h.cfg.Twitch,
		h.logger,
	)

	_, err := orchestrator.Capture(ctx, detail.TwitchUserLogin)
	return err
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()
	zap.RedirectStdLog(logger)
	zap.ReplaceGlobals(logger)

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	store, err := s3store.New(context.Background(), cfg.BucketName)
	if err != nil {
		logger.Fatal("failed to initialize archive store", zap.Error(err))
	}

	h := &handler{cfg: cfg, store: store, logger: logger}
	lambda.Start(h.handle)
}
