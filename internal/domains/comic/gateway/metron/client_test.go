package metron

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comicvault-backend/internal/config"
	"comicvault-backend/internal/domains/comic/model"
)

func newTestClient(t *testing.T, baseURL string, timeout time.Duration) *Client {
	t.Helper()
	gw, err := NewClient(config.MetronConfig{
		BaseURL:  baseURL,
		Username: "tester",
		Password: "secret",
		Timeout:  timeout,
	})
	require.NoError(t, err)
	return gw.(*Client)
}

func TestNewClient_MissingCredentials(t *testing.T) {
	_, err := NewClient(config.MetronConfig{BaseURL: "http://metron.local"})
	assert.Error(t, err)
}

func TestSearchByUPC_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/issue/", r.URL.Path)
		assert.Equal(t, "03678550016700111", r.URL.Query().Get("upc"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "tester", user)
		assert.Equal(t, "secret", pass)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"count": 1,
			"results": [{
				"series": {"name": "Saga", "volume": "1", "year_began": "2012"},
				"number": "54",
				"issue": "Saga #54",
				"image": "https://img.example/saga-54.jpg"
			}]
		}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, 2*time.Second)

	issue, err := client.SearchByUPC(context.Background(), "03678550016700111")
	require.NoError(t, err)
	assert.Equal(t, "Saga", issue.Series.Name)
	assert.Equal(t, "54", issue.Number)
	assert.Equal(t, "2012", issue.Series.YearBegan)
}

func TestSearchByUPC_EmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, 2*time.Second)

	_, err := client.SearchByUPC(context.Background(), "03678550016700111")
	assert.ErrorIs(t, err, model.ErrIssueNotFound)
}

func TestSearchByUPC_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, 2*time.Second)

	_, err := client.SearchByUPC(context.Background(), "03678550016700111")

	var provErr *model.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusBadGateway, provErr.Status)
}

func TestSearchByUPC_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, 20*time.Millisecond)

	_, err := client.SearchByUPC(context.Background(), "03678550016700111")
	assert.ErrorIs(t, err, model.ErrLookupTimeout)
}
