package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"streamthumb/internal/config"
	"streamthumb/internal/core/domain"
)

func newTestHandler() *handler {
	return &handler{
		cfg:    &config.Config{BucketName: "thumbnails"},
		logger: zap.NewNop(),
	}
}

func TestHandleRejectsMissingDetail(t *testing.T) {
	err := newTestHandler().handle(context.Background(), events.CloudWatchEvent{})
	require.Error(t, err)
	assert.Equal(t, domain.ReasonMalformedEvent, domain.ReasonOf(err))
}

func TestHandleRejectsMalformedDetail(t *testing.T) {
	event := events.CloudWatchEvent{Detail: json.RawMessage(`["not","an","object"]`)}
	err := newTestHandler().handle(context.Background(), event)
	require.Error(t, err)
	assert.Equal(t, domain.ReasonMalformedEvent, domain.ReasonOf(err))
}
