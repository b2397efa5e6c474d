package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"

	"streamthumb/internal/core/domain"
)

// Environment variable names for the three required values. All three are
// identity-bearing or deployment-specific, so there are no defaults.
const (
	EnvBucketName   = "BUCKET_NAME"
	EnvClientID     = "TWITCH_CLIENT_ID"
	EnvClientSecret = "TWITCH_CLIENT_SECRET"
)

// Config is the process-wide configuration, loaded once at startup and
// passed by reference into the pipeline. It is never mutated afterwards.
type Config struct {
	BucketName string
	Twitch     domain.Credentials
}

// FromEnv reads the required configuration from the process environment.
// Every missing value is reported, not just the first, and the combined
// error carries the config failure reason.
func FromEnv() (*Config, error) {
	var missing error

	bucket, err := requireEnv(EnvBucketName)
	if err != nil {
		missing = multierror.Append(missing, err)
	}
	clientID, err := requireEnv(EnvClientID)
	if err != nil {
		missing = multierror.Append(missing, err)
	}
	clientSecret, err := requireEnv(EnvClientSecret)
	if err != nil {
		missing = multierror.Append(missing, err)
	}

	if missing != nil {
		return nil, domain.Fail(domain.ReasonConfig, missing)
	}

	return &Config{
		BucketName: bucket,
		Twitch: domain.Credentials{
			ClientID:     clientID,
			ClientSecret: clientSecret,
		},
	}, nil
}

func requireEnv(name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("%s is not set", name)
	}
	return value, nil
}
