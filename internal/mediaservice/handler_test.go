package mediaservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T, status int) *MediaService {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	s, err := NewMediaService(context.Background(), Config{
		Region:    "us-east-1",
		Bucket:    "test-bucket",
		AccessKey: "test",
		SecretKey: "test",
		Endpoint:  srv.URL,
	})
	assert.NoError(t, err)

	return s
}

func spoolTestFile(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "image.png")
	err := os.WriteFile(path, []byte("fake image bytes"), 0o644)
	assert.NoError(t, err)

	return path
}

func TestUpload(t *testing.T) {
	s := newTestService(t, http.StatusOK)
	path := spoolTestFile(t)

	url, err := s.Upload(context.Background(), path)
	assert.NoError(t, err)
	assert.Contains(t, url, ".png")

	// the spooled file is gone after the upload
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestUploadFailureRemovesSpooledFile(t *testing.T) {
	s := newTestService(t, http.StatusInternalServerError)
	path := spoolTestFile(t)

	_, err := s.Upload(context.Background(), path)
	assert.Error(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestUploadMissingPath(t *testing.T) {
	s := newTestService(t, http.StatusOK)

	_, err := s.Upload(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingFile)
}
