package s3store

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Store implements ports.ArchiveStore on top of an S3 bucket. Objects are
// written with PUT semantics: a second write to the same key overwrites
// the first, and the bucket provides no versioning contract.
type Store struct {
	bucket string
	client *s3.Client
}

// New creates a Store for the named bucket, resolving AWS credentials and
// region from the default environment chain.
func New(ctx context.Context, bucket string) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Store{
		bucket: bucket,
		client: s3.NewFromConfig(cfg),
	}, nil
}

// NewWithClient creates a Store around an existing S3 client.
func NewWithClient(client *s3.Client, bucket string) *Store {
	return &Store{bucket: bucket, client: client}
}

// Put writes body under key in the configured bucket. The error returned
// is the raw SDK error; classification and logging policy belong to the
// orchestrator.
func (s *Store) Put(ctx context.Context, key string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}
