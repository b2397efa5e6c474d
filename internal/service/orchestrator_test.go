package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"streamthumb/internal/core/domain"
)

var testCreds = domain.Credentials{ClientID: "cid", ClientSecret: "secret"}

type fakeTokens struct {
	token domain.AccessToken
	err   error
	calls int
}

func (f *fakeTokens) AcquireToken(ctx context.Context, creds domain.Credentials) (domain.AccessToken, error) {
	f.calls++
	return f.token, f.err
}

type fakeStreams struct {
	streams   []domain.Stream
	err       error
	calls     int
	lastLogin string
	lastToken domain.AccessToken
}

func (f *fakeStreams) LiveStreams(ctx context.Context, login string, token domain.AccessToken) ([]domain.Stream, error) {
	f.calls++
	f.lastLogin = login
	f.lastToken = token
	return f.streams, f.err
}

type fakeFetcher struct {
	body    []byte
	err     error
	calls   int
	lastURL string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls++
	f.lastURL = url
	return f.body, f.err
}

type fakeArchive struct {
	err      error
	calls    int
	lastKey  string
	lastBody []byte
}

func (f *fakeArchive) Put(ctx context.Context, key string, body []byte) error {
	f.calls++
	f.lastKey = key
	f.lastBody = body
	return f.err
}

type fixture struct {
	tokens  *fakeTokens
	streams *fakeStreams
	fetcher *fakeFetcher
	archive *fakeArchive
	logs    *observer.ObservedLogs
}

func newFixture() (*Orchestrator, *fixture) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := &fixture{
		tokens: &fakeTokens{token: domain.AccessToken{Token: "T", Type: "bearer"}},
		streams: &fakeStreams{streams: []domain.Stream{{
			UserLogin:    "alice",
			Type:         "live",
			ThumbnailURL: "https://x/{user_login}-{width}x{height}.jpg",
		}}},
		fetcher: &fakeFetcher{body: []byte("jpeg-bytes")},
		archive: &fakeArchive{},
		logs:    logs,
	}
	o := NewOrchestrator(f.tokens, f.streams, f.fetcher, f.archive, testCreds, zap.New(core))
	return o, f
}

func TestCapture(t *testing.T) {
	o, f := newFixture()

	result, err := o.Capture(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, result.Succeeded())
	assert.Equal(t, StageDone, result.Stage)
	assert.Equal(t, "alice.jpg", result.Key)
	assert.NotEmpty(t, result.CaptureID)
	assert.False(t, result.CompletedAt.IsZero())

	// The templated URL was resolved before fetching, leaving the
	// unrelated placeholder alone.
	assert.Equal(t, "https://x/{user_login}-1280x720.jpg", f.fetcher.lastURL)

	assert.Equal(t, "alice", f.streams.lastLogin)
	assert.Equal(t, "T", f.streams.lastToken.Token)
	assert.Equal(t, "alice.jpg", f.archive.lastKey)
	assert.Equal(t, []byte("jpeg-bytes"), f.archive.lastBody)
}

func TestCaptureStagesRunOnce(t *testing.T) {
	o, f := newFixture()

	_, err := o.Capture(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, f.tokens.calls)
	assert.Equal(t, 1, f.streams.calls)
	assert.Equal(t, 1, f.fetcher.calls)
	assert.Equal(t, 1, f.archive.calls)
}

func TestCaptureFirstStreamWins(t *testing.T) {
	o, f := newFixture()
	f.streams.streams = []domain.Stream{
		{UserLogin: "alice", ThumbnailURL: "https://x/first-{width}x{height}.jpg"},
		{UserLogin: "alice", ThumbnailURL: "https://x/second-{width}x{height}.jpg"},
	}

	_, err := o.Capture(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "https://x/first-1280x720.jpg", f.fetcher.lastURL)
}

func TestCaptureNoLiveStream(t *testing.T) {
	o, f := newFixture()
	f.streams.streams = nil

	result, err := o.Capture(context.Background(), "alice")
	require.Error(t, err)
	assert.Equal(t, domain.ReasonNoLiveStream, domain.ReasonOf(err))
	assert.False(t, result.Succeeded())
	assert.Equal(t, domain.ReasonNoLiveStream, result.Reason)

	// The query itself succeeded, but nothing downstream runs.
	assert.Equal(t, StageStreamsQueried, result.Stage)
	assert.Equal(t, 0, f.fetcher.calls)
	assert.Equal(t, 0, f.archive.calls)
}

func TestCaptureAuthFailure(t *testing.T) {
	o, f := newFixture()
	f.tokens.err = domain.Failf(domain.ReasonAuth, "token endpoint returned status 401")

	result, err := o.Capture(context.Background(), "alice")
	require.Error(t, err)
	assert.Equal(t, domain.ReasonAuth, domain.ReasonOf(err))
	assert.Equal(t, StageStart, result.Stage)

	// No streams call is attempted after a failed token exchange.
	assert.Equal(t, 0, f.streams.calls)
	assert.Equal(t, 0, f.fetcher.calls)
	assert.Equal(t, 0, f.archive.calls)
}

func TestCaptureLookupFailure(t *testing.T) {
	o, f := newFixture()
	f.streams.err = domain.Failf(domain.ReasonLookup, "streams endpoint returned status 500")

	result, err := o.Capture(context.Background(), "alice")
	require.Error(t, err)
	assert.Equal(t, domain.ReasonLookup, domain.ReasonOf(err))
	assert.Equal(t, StageTokenAcquired, result.Stage)
	assert.Equal(t, 0, f.fetcher.calls)
}

func TestCaptureFetchFailure(t *testing.T) {
	o, f := newFixture()
	f.fetcher.err = domain.Failf(domain.ReasonFetch, "unexpected status code: 404")

	result, err := o.Capture(context.Background(), "alice")
	require.Error(t, err)
	assert.Equal(t, domain.ReasonFetch, domain.ReasonOf(err))
	assert.Equal(t, StageStreamsQueried, result.Stage)
	assert.Equal(t, 0, f.archive.calls)
}

func TestCapturePublishFailure(t *testing.T) {
	o, f := newFixture()
	cause := errors.New("AccessDenied: not authorized to perform s3:PutObject")
	f.archive.err = cause

	result, err := o.Capture(context.Background(), "alice")
	require.Error(t, err)
	assert.Equal(t, domain.ReasonPublish, domain.ReasonOf(err))
	assert.Equal(t, domain.ReasonPublish, result.Reason)

	// The storage client's error is logged, not surfaced to the caller.
	assert.NotContains(t, err.Error(), "AccessDenied")
	entries := f.logs.FilterMessage("archive write failed").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "AccessDenied")
}

func TestCaptureEmptyLogin(t *testing.T) {
	o, f := newFixture()

	result, err := o.Capture(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, domain.ReasonMalformedEvent, domain.ReasonOf(err))
	assert.Equal(t, StageStart, result.Stage)

	// Nothing runs, not even the token exchange.
	assert.Equal(t, 0, f.tokens.calls)
	assert.Equal(t, 0, f.streams.calls)
}
