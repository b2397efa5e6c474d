package s3store

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"

	"streamthumb/internal/core/ports"
)

var _ ports.ArchiveStore = &Store{}

func TestNewWithClient(t *testing.T) {
	client := s3.New(s3.Options{Region: "eu-west-2"})
	store := NewWithClient(client, "thumbnails")
	assert.Equal(t, "thumbnails", store.bucket)
	assert.Same(t, client, store.client)
}
