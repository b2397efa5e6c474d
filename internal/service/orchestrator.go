package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"streamthumb/internal/core/domain"
	"streamthumb/internal/core/ports"
)

// Stage identifies how far a capture invocation progressed. The pipeline
// is a linear state machine: Start, TokenAcquired, StreamsQueried,
// ThumbnailResolved, Published, Done, and any transition may instead end
// the invocation in a failed state with a taxonomy reason.
type Stage string

const (
	StageStart             Stage = "start"
	StageTokenAcquired     Stage = "token_acquired"
	StageStreamsQueried    Stage = "streams_queried"
	StageThumbnailResolved Stage = "thumbnail_resolved"
	StagePublished         Stage = "published"
	StageDone              Stage = "done"
)

// CaptureResult holds the outcome of a capture invocation. There is no
// partial success: either all four stages completed and the object was
// published, or the invocation failed at the recorded stage.
type CaptureResult struct {
	CaptureID   string
	Login       string
	Stage       Stage
	Key         string
	Reason      domain.FailureReason
	CompletedAt time.Time
}

// Succeeded reports whether the invocation reached Done.
func (r *CaptureResult) Succeeded() bool {
	return r.Stage == StageDone
}

// Orchestrator sequences the capture pipeline: token exchange, stream
// lookup, thumbnail fetch, archive write. Stages run strictly in order,
// each attempted exactly once, with no retries between them. It holds no
// per-invocation state, so a single Orchestrator may serve concurrent
// invocations.
type Orchestrator struct {
	tokens  ports.TokenProvider
	streams ports.StreamLookup
	fetcher ports.ThumbnailFetcher
	archive ports.ArchiveStore
	creds   domain.Credentials
	logger  *zap.Logger
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(
	tokens ports.TokenProvider,
	streams ports.StreamLookup,
	fetcher ports.ThumbnailFetcher,
	archive ports.ArchiveStore,
	creds domain.Credentials,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		tokens:  tokens,
		streams: streams,
		fetcher: fetcher,
		archive: archive,
		creds:   creds,
		logger:  logger,
	}
}

// Capture runs the full pipeline for a single channel login. Every
// failure aborts immediately; nothing is written before the final stage,
// so there is nothing to roll back.
func (o *Orchestrator) Capture(ctx context.Context, login string) (*CaptureResult, error) {
	result := &CaptureResult{
		CaptureID: uuid.New().String(),
		Login:     login,
		Stage:     StageStart,
	}
	logger := o.logger.With(
		zap.String("capture_id", result.CaptureID),
		zap.String("login", login),
	)

	if login == "" {
		err := domain.Failf(domain.ReasonMalformedEvent, "event is missing the channel login")
		return o.fail(result, logger, err), err
	}

	logger.Info("starting thumbnail capture")

	token, err := o.tokens.AcquireToken(ctx, o.creds)
	if err != nil {
		return o.fail(result, logger, err), err
	}
	result.Stage = StageTokenAcquired
	logger.Info("acquired app access token")

	streams, err := o.streams.LiveStreams(ctx, login, token)
	if err != nil {
		return o.fail(result, logger, err), err
	}
	result.Stage = StageStreamsQueried
	logger.Info("queried live streams", zap.Int("count", len(streams)))

	if len(streams) == 0 {
		err := domain.Failf(domain.ReasonNoLiveStream, "stream list did not include a live stream for %s", login)
		return o.fail(result, logger, err), err
	}

	// First result wins. Helix returns at most one live stream per login
	// in practice; any further records are ignored.
	stream := streams[0]
	thumbnailURL := stream.ThumbnailAt(domain.ThumbnailWidth, domain.ThumbnailHeight)

	asset, err := o.fetcher.Fetch(ctx, thumbnailURL)
	if err != nil {
		return o.fail(result, logger, err), err
	}
	result.Stage = StageThumbnailResolved
	logger.Info("downloaded thumbnail",
		zap.String("url", thumbnailURL),
		zap.Int("bytes", len(asset)),
	)

	result.Key = domain.ArchiveKey(login)
	if err := o.archive.Put(ctx, result.Key, asset); err != nil {
		// The storage client's native error is not meaningful to the
		// invocation's caller. Log it here, then surface a generic
		// publish failure.
		logger.Error("archive write failed", zap.Error(err))
		generic := domain.Failf(domain.ReasonPublish, "failed to upload thumbnail to the archive")
		return o.fail(result, logger, generic), generic
	}
	result.Stage = StagePublished
	logger.Info("published thumbnail", zap.String("key", result.Key))

	result.Stage = StageDone
	result.CompletedAt = time.Now().UTC()
	logger.Info("thumbnail capture complete")

	return result, nil
}

// fail finalizes result with the taxonomy reason from err.
func (o *Orchestrator) fail(result *CaptureResult, logger *zap.Logger, err error) *CaptureResult {
	result.Reason = domain.ReasonOf(err)
	result.CompletedAt = time.Now().UTC()

	// Publish failures already logged their underlying cause.
	if result.Reason != domain.ReasonPublish {
		logger.Error("thumbnail capture failed",
			zap.String("reason", string(result.Reason)),
			zap.Error(err),
		)
	}
	return result
}
