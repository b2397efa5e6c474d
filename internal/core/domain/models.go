package domain

import (
	"strconv"
	"strings"
	"time"
)

// Thumbnail dimensions requested from Twitch. The thumbnail URL returned by
// the Helix streams endpoint is a template with literal {width} and {height}
// placeholders that must be substituted before the URL is fetchable.
const (
	ThumbnailWidth  = 1280
	ThumbnailHeight = 720
)

// Credentials identify this application to the Twitch API. They are loaded
// once at process start and are never persisted or logged.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// AccessToken is a short-lived app access token from the client-credentials
// grant. It lives for a single pipeline invocation: acquired once, used for
// one streams query, then discarded. ExpiresIn is decoded from the token
// response but deliberately unused; there is no cross-invocation cache.
type AccessToken struct {
	Token     string `json:"access_token"`
	Type      string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

// Stream is one live-stream record from the Helix streams endpoint.
type Stream struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	UserLogin    string    `json:"user_login"`
	UserName     string    `json:"user_name"`
	GameID       string    `json:"game_id"`
	GameName     string    `json:"game_name"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Tags         []string  `json:"tags"`
	TagIDs       []string  `json:"tag_ids"`
	ViewerCount  int       `json:"viewer_count"`
	StartedAt    time.Time `json:"started_at"`
	Language     string    `json:"language"`
	ThumbnailURL string    `json:"thumbnail_url"`
	IsMature     bool      `json:"is_mature"`
}

// ThumbnailAt resolves the templated thumbnail URL at the given dimensions.
// This is plain string substitution: only the literal {width} and {height}
// tokens are replaced, any other placeholder in the URL is left untouched,
// and applying it to an already-resolved URL is a no-op.
func (s Stream) ThumbnailAt(width, height int) string {
	url := strings.ReplaceAll(s.ThumbnailURL, "{width}", strconv.Itoa(width))
	return strings.ReplaceAll(url, "{height}", strconv.Itoa(height))
}

// ArchiveKey returns the object-storage key for a channel's thumbnail.
// One key per channel login; a later capture for the same channel
// overwrites the earlier object.
func ArchiveKey(login string) string {
	return login + ".jpg"
}
