// File: internal/filestorage/service_test.go
package filestorage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPublicURL(t *testing.T) {
	store := &gcsObjectStore{bucketName: "ecotrip-photos", logger: zap.NewNop()}

	url := store.PublicURL("submissions/abc123.jpg")

	assert.Equal(t, "https://storage.googleapis.com/ecotrip-photos/submissions/abc123.jpg", url)
}
