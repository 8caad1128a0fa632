package ocrclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRecognize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, []byte("img-bytes"), body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"2024年3月15日 09:00 18:00"}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	text, err := client.Recognize(context.Background(), []byte("img-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "2024年3月15日 09:00 18:00", text)
}

func TestClientRecognizeNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "engine busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.Recognize(context.Background(), []byte("img"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 503")
}

func TestClientRecognizeRespectsContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	client := New(srv.URL)
	_, err := client.Recognize(ctx, []byte("img"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClientRecognizeBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.Recognize(context.Background(), []byte("img"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}
