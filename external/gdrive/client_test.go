package gdrive

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/JonnyRank/bigdataball-data/internal/platform/logging"
	"github.com/JonnyRank/bigdataball-data/internal/platform/resilience"
	"github.com/JonnyRank/bigdataball-data/internal/usecase"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://drive.test/drive/v3"

func newTestClient(t *testing.T, breaker resilience.CircuitBreakerConfig) (*Client, *httpmock.MockTransport) {
	t.Helper()

	transport := httpmock.NewMockTransport()
	client, err := NewClient(context.Background(), ClientConfig{
		HTTPClient:     &http.Client{Transport: transport},
		BaseURL:        testBaseURL,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
	require.NoError(t, err)
	return client, transport
}

func TestClient_List_FollowsPages(t *testing.T) {
	t.Parallel()

	client, transport := newTestClient(t, resilience.CircuitBreakerConfig{})
	transport.RegisterResponder(http.MethodGet, testBaseURL+"/files", func(req *http.Request) (*http.Response, error) {
		query := req.URL.Query()
		if query.Get("q") != `'folder-1' in parents and name contains 'dfs-feed' and trashed = false` {
			return httpmock.NewStringResponse(http.StatusBadRequest, "unexpected query "+query.Get("q")), nil
		}
		if query.Get("orderBy") != "createdTime" || query.Get("supportsAllDrives") != "true" {
			return httpmock.NewStringResponse(http.StatusBadRequest, "missing list options"), nil
		}
		if query.Get("pageToken") == "" {
			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
				"nextPageToken": "page-2",
				"files": []map[string]any{
					{"id": "f1", "name": "12-31-2025-nba-season-dfs-feed.xlsx", "createdTime": "2025-12-31T23:00:00.000Z"},
				},
			})
		}
		return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
			"files": []map[string]any{
				{"id": "f2", "name": "01-01-2026-nba-season-dfs-feed.xlsx", "createdTime": "2026-01-01T23:00:00.000Z"},
				{"id": "f3", "name": "broken-dfs-feed.xlsx", "createdTime": "yesterday"},
			},
		})
	})

	files, err := client.List(context.Background(), "folder-1", "dfs-feed")
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "f1", files[0].ID)
	assert.Equal(t, time.Date(2026, time.January, 1, 23, 0, 0, 0, time.UTC), files[1].CreatedTime)
	assert.True(t, files[2].CreatedTime.IsZero())
	assert.Equal(t, 2, transport.GetTotalCallCount())
}

func TestClient_List_EscapesQuotes(t *testing.T) {
	t.Parallel()

	client, transport := newTestClient(t, resilience.CircuitBreakerConfig{})
	transport.RegisterResponder(http.MethodGet, testBaseURL+"/files", func(req *http.Request) (*http.Response, error) {
		if got := req.URL.Query().Get("q"); got != `'f' in parents and name contains 'O\'Neal' and trashed = false` {
			return httpmock.NewStringResponse(http.StatusBadRequest, got), nil
		}
		return httpmock.NewJsonResponse(http.StatusOK, map[string]any{"files": []any{}})
	})

	files, err := client.List(context.Background(), "f", "O'Neal")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestClient_List_RequiresFolder(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, resilience.CircuitBreakerConfig{})
	_, err := client.List(context.Background(), " ", "dfs-feed")
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClient_Download(t *testing.T) {
	t.Parallel()

	client, transport := newTestClient(t, resilience.CircuitBreakerConfig{})
	transport.RegisterResponder(http.MethodGet, testBaseURL+"/files/f2", func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("alt") != "media" {
			return httpmock.NewStringResponse(http.StatusBadRequest, "expected media download"), nil
		}
		return httpmock.NewStringResponse(http.StatusOK, "workbook bytes"), nil
	})

	body, err := client.Download(context.Background(), "f2")
	require.NoError(t, err)
	defer body.Close()

	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "workbook bytes", string(raw))
}

func TestClient_NotFoundDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	client, transport := newTestClient(t, resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute})
	transport.RegisterResponder(http.MethodGet, testBaseURL+"/files/missing",
		httpmock.NewStringResponder(http.StatusNotFound, `{"error":{"code":404,"message":"File not found: missing."}}`))

	for range 2 {
		_, err := client.Download(context.Background(), "missing")
		require.Error(t, err)
		assert.NotErrorIs(t, err, usecase.ErrDependencyUnavailable)
	}
	assert.Equal(t, resilience.CircuitStateClosed, client.breaker.State())
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	client, transport := newTestClient(t, resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute})
	transport.RegisterResponder(http.MethodGet, testBaseURL+"/files",
		httpmock.NewStringResponder(http.StatusServiceUnavailable, `{"error":{"code":503,"message":"backend error"}}`))

	for range 2 {
		_, err := client.List(context.Background(), "folder-1", "dfs-feed")
		require.Error(t, err)
		assert.NotErrorIs(t, err, usecase.ErrDependencyUnavailable)
	}

	_, err := client.List(context.Background(), "folder-1", "dfs-feed")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable once the breaker opens, got %v", err)
	}
	assert.Equal(t, 2, transport.GetTotalCallCount())
}
