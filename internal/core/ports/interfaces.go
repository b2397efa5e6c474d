package ports

import (
	"context"

	"streamthumb/internal/core/domain"
)

// TokenProvider defines the contract for exchanging app credentials for a
// short-lived access token.
type TokenProvider interface {
	// AcquireToken performs the OAuth2 client-credentials exchange.
	// Every call re-authenticates; tokens are never cached.
	AcquireToken(ctx context.Context, creds domain.Credentials) (domain.AccessToken, error)
}

// StreamLookup defines the contract for querying a channel's live streams.
type StreamLookup interface {
	// LiveStreams returns the live-stream records for the channel login,
	// first page only. An empty slice is not an error here; the caller
	// decides what an empty result means.
	LiveStreams(ctx context.Context, login string, token domain.AccessToken) ([]domain.Stream, error)
}

// ThumbnailFetcher defines the contract for downloading a resolved
// thumbnail URL.
type ThumbnailFetcher interface {
	// Fetch performs an unauthenticated GET and returns the raw image
	// bytes. The payload is trusted opaque data; no content-type
	// validation happens here.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ArchiveStore defines the contract for persisting a thumbnail into
// durable object storage.
type ArchiveStore interface {
	// Put writes body under key, overwriting any existing object.
	Put(ctx context.Context, key string, body []byte) error
}
