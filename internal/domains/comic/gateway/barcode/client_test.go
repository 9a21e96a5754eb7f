package barcode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comicvault-backend/internal/config"
)

func newTestClient(baseURL string, timeout time.Duration) *Client {
	gw := NewClient(config.BarcodeConfig{
		ServiceURL: baseURL,
		Timeout:    timeout,
	})
	return gw.(*Client)
}

func TestScan_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scan", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cover.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"upc": "036785500167", "extension": "00121"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 2*time.Second)

	result, found := client.Scan(context.Background(), []byte("fake-jpeg-bytes"), "cover.jpg")
	require.True(t, found)
	assert.Equal(t, "036785500167", result.UPC)
	assert.Equal(t, "00121", result.Extension)
}

// Mọi failure mode đều phải collapse thành found=false
func TestScan_FailuresCollapseToNotFound(t *testing.T) {
	t.Run("decoder returns error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer srv.Close()

		client := newTestClient(srv.URL, 2*time.Second)
		result, found := client.Scan(context.Background(), []byte("img"), "a.jpg")
		assert.False(t, found)
		assert.Nil(t, result)
	})

	t.Run("decoder returns empty upc", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"upc": "", "extension": ""}`))
		}))
		defer srv.Close()

		client := newTestClient(srv.URL, 2*time.Second)
		_, found := client.Scan(context.Background(), []byte("img"), "a.jpg")
		assert.False(t, found)
	})

	t.Run("decoder timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		client := newTestClient(srv.URL, 20*time.Millisecond)
		_, found := client.Scan(context.Background(), []byte("img"), "a.jpg")
		assert.False(t, found)
	})

	t.Run("decoder unreachable", func(t *testing.T) {
		client := newTestClient("http://127.0.0.1:1", 200*time.Millisecond)
		_, found := client.Scan(context.Background(), []byte("img"), "a.jpg")
		assert.False(t, found)
	})

	t.Run("malformed response body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		client := newTestClient(srv.URL, 2*time.Second)
		_, found := client.Scan(context.Background(), []byte("img"), "a.jpg")
		assert.False(t, found)
	})
}
