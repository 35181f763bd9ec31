package playstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `
<html><body>
  <h1 itemprop="name"><span>Mini Games</span></h1>
  <div itemprop="softwareVersion">3.2.1</div>
  <script>AF_initDataCallback({data: {"updatedTimestamp":"1762560000"}});</script>
</body></html>`

const listingHTMLDateOnly = `
<html><body>
  <h1 itemprop="name">Mini Games</h1>
  <meta itemprop="datePublished" content="2025-11-08">
</body></html>`

func reviewsEnvelope(t *testing.T, payload any, token string) string {
	t.Helper()
	inner, err := json.Marshal([]any{payload, []any{nil, token}})
	require.NoError(t, err)
	frame, err := json.Marshal([]any{[]any{"wrb.fr", nil, string(inner)}})
	require.NoError(t, err)
	return ")]}'\n\n" + string(frame)
}

func reviewRow(score int, content string, atSeconds int64, thumbs int) []any {
	return []any{"review-id", nil, score, nil, content, []any{atSeconds, 0}, thumbs}
}

func TestAppDetails_ScrapesListing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/store/apps/details", r.URL.Path)
		assert.Equal(t, "com.yg.mini.games", r.URL.Query().Get("id"))
		fmt.Fprint(w, listingHTML)
	}))
	defer server.Close()

	client := NewClient(server.URL, "en", "us", server.Client(), nil)
	meta, err := client.AppDetails(context.Background(), "com.yg.mini.games")
	require.NoError(t, err)

	assert.Equal(t, "Mini Games", meta.Title)
	assert.Equal(t, "3.2.1", meta.Version)
	assert.Equal(t, time.Unix(1762560000, 0), meta.LastUpdate)
}

func TestAppDetails_DatePublishedFallback(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, listingHTMLDateOnly)
	}))
	defer server.Close()

	client := NewClient(server.URL, "en", "us", server.Client(), nil)
	meta, err := client.AppDetails(context.Background(), "com.example")
	require.NoError(t, err)

	require.False(t, meta.LastUpdate.IsZero())
	assert.Equal(t, 2025, meta.LastUpdate.Year())
	assert.Equal(t, 8, meta.LastUpdate.Day())
}

func TestAppDetails_MissingTitleFails(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body>nothing here</body></html>")
	}))
	defer server.Close()

	client := NewClient(server.URL, "en", "us", server.Client(), nil)
	_, err := client.AppDetails(context.Background(), "com.gone")
	assert.Error(t, err)
}

func TestAppDetails_HTTPErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "en", "us", server.Client(), nil)
	_, err := client.AppDetails(context.Background(), "com.gone")
	assert.Error(t, err)
}

func TestReviews_SinglePage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Contains(t, r.Form.Get("f.req"), "com.yg.mini.games")

		payload := []any{
			reviewRow(5, "excellent puzzle mechanics", 1762600000, 12),
			reviewRow(1, "crashes on startup", 1762610000, 30),
		}
		fmt.Fprint(w, reviewsEnvelope(t, payload, ""))
	}))
	defer server.Close()

	client := NewClient(server.URL, "en", "us", server.Client(), nil)
	reviews, err := client.Reviews(context.Background(), "com.yg.mini.games")
	require.NoError(t, err)

	require.Len(t, reviews, 2)
	assert.Equal(t, 5, reviews[0].Score)
	assert.Equal(t, "excellent puzzle mechanics", reviews[0].Content)
	assert.Equal(t, time.Unix(1762600000, 0), reviews[0].PostedAt)
	assert.Equal(t, 30, reviews[1].ThumbsUp)
}

func TestReviews_FollowsContinuationToken(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprint(w, reviewsEnvelope(t, []any{reviewRow(4, "page one", 1762600000, 0)}, "next-token"))
			return
		}
		fmt.Fprint(w, reviewsEnvelope(t, []any{reviewRow(2, "page two", 1762610000, 0)}, ""))
	}))
	defer server.Close()

	client := NewClient(server.URL, "en", "us", server.Client(), nil)
	reviews, err := client.Reviews(context.Background(), "com.example")
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	require.Len(t, reviews, 2)
	assert.Equal(t, "page one", reviews[0].Content)
	assert.Equal(t, "page two", reviews[1].Content)
}

func TestReviews_WarnsWhenPageCapCutsHistoryShort(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		fmt.Fprint(w, reviewsEnvelope(t, []any{reviewRow(3, "endless page", 1762600000, 0)}, "more"))
	}))
	defer server.Close()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	client := NewClient(server.URL, "en", "us", server.Client(), logger)
	reviews, err := client.Reviews(context.Background(), "com.example")
	require.NoError(t, err)

	assert.Equal(t, maxReviewPages, calls)
	assert.Len(t, reviews, maxReviewPages)
	assert.Contains(t, logs.String(), "review pagination stopped before the history was exhausted")
}

func TestReviews_NullContentTolerated(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		row := []any{"id", nil, 3, nil, nil, []any{1762600000, 0}, 1}
		fmt.Fprint(w, reviewsEnvelope(t, []any{row}, ""))
	}))
	defer server.Close()

	client := NewClient(server.URL, "en", "us", server.Client(), nil)
	reviews, err := client.Reviews(context.Background(), "com.example")
	require.NoError(t, err)

	require.Len(t, reviews, 1)
	assert.Empty(t, reviews[0].Content)
	assert.Equal(t, 3, reviews[0].Score)
}

func TestReviews_MalformedEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, ")]}'\n\nnot json at all")
	}))
	defer server.Close()

	client := NewClient(server.URL, "en", "us", server.Client(), nil)
	_, err := client.Reviews(context.Background(), "com.example")
	assert.Error(t, err)
}

func TestBuildReviewsRequest_EmbedsAppID(t *testing.T) {
	t.Parallel()

	req := buildReviewsRequest("com.example.app", 150, "tok")
	assert.Contains(t, req, "UsvDTd")
	assert.Contains(t, req, `com.example.app`)
	assert.Contains(t, req, "tok")
}
