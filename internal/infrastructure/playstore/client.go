// Package playstore scrapes app metadata from the store listing page and
// pulls review history through the store's batchexecute RPC.
package playstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"StorePulse/internal/domain"
	"StorePulse/internal/ports"
)

const (
	defaultBaseURL = "https://play.google.com"
	reviewsRPCID   = "UsvDTd"
	reviewPageSize = 150
	maxReviewPages = 40
	responsePrefix = ")]}'"
	userAgent      = "StorePulse/1.0"
)

// Embedded listing data carries the update time as an epoch value.
var updatedExpr = regexp.MustCompile(`"updatedTimestamp"\s*:\s*"?(\d{9,13})"?`)

// Client talks to the store's public web endpoints. BaseURL is configurable
// so tests can stand in a local server.
type Client struct {
	baseURL string
	lang    string
	country string
	client  *http.Client
	logger  *slog.Logger
}

var _ ports.MetadataProvider = (*Client)(nil)
var _ ports.ReviewProvider = (*Client)(nil)

// NewClient wires an HTTP client; a nil client gets a 30s-timeout default.
func NewClient(baseURL, lang, country string, client *http.Client, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		lang:    lang,
		country: country,
		client:  client,
		logger:  logger,
	}
}

// AppDetails fetches and scrapes the listing page for one app.
func (c *Client) AppDetails(ctx context.Context, appID string) (domain.AppMetadata, error) {
	pageURL := fmt.Sprintf("%s/store/apps/details?id=%s&hl=%s&gl=%s",
		c.baseURL, url.QueryEscape(appID), c.lang, c.country)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return domain.AppMetadata{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.AppMetadata{}, fmt.Errorf("request listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.AppMetadata{}, fmt.Errorf("store returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.AppMetadata{}, fmt.Errorf("read listing: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return domain.AppMetadata{}, fmt.Errorf("parse listing: %w", err)
	}

	meta := domain.AppMetadata{
		ID:      appID,
		Title:   strings.TrimSpace(doc.Find(`h1[itemprop="name"]`).First().Text()),
		Version: strings.TrimSpace(doc.Find(`[itemprop="softwareVersion"]`).First().Text()),
	}
	if meta.Title == "" {
		return domain.AppMetadata{}, fmt.Errorf("listing for %s has no title, app may be unpublished", appID)
	}

	meta.LastUpdate = c.extractUpdated(doc, string(body))
	return meta, nil
}

// extractUpdated pulls the last-update instant from the embedded script data,
// falling back to the datePublished microdata tag. Both shapes funnel through
// the raw-timestamp union so the disambiguation rule applies uniformly.
func (c *Client) extractUpdated(doc *goquery.Document, body string) time.Time {
	if match := updatedExpr.FindStringSubmatch(body); match != nil {
		epoch, err := strconv.ParseInt(match[1], 10, 64)
		if err == nil {
			return domain.EpochTimestamp(epoch).Normalize(c.logger)
		}
	}

	if content, ok := doc.Find(`meta[itemprop="datePublished"]`).First().Attr("content"); ok {
		return domain.ISOTimestamp(content).Normalize(c.logger)
	}

	if c.logger != nil {
		c.logger.Warn("listing carries no recognizable update timestamp")
	}
	return time.Time{}
}

// Reviews walks the batchexecute pagination until the store stops returning
// a continuation token. Single attempt per page, no retry.
func (c *Client) Reviews(ctx context.Context, appID string) ([]domain.Review, error) {
	var (
		collected []domain.Review
		token     string
	)

	for page := 0; page < maxReviewPages; page++ {
		reviews, next, err := c.reviewsPage(ctx, appID, token)
		if err != nil {
			return nil, fmt.Errorf("reviews page %d: %w", page, err)
		}

		collected = append(collected, reviews...)

		if next == "" {
			token = ""
			break
		}
		token = next
	}

	if token != "" && c.logger != nil {
		c.logger.Warn("review pagination stopped before the history was exhausted",
			"app_id", appID, "pages", maxReviewPages, "count", len(collected))
	}

	if c.logger != nil {
		c.logger.Debug("review history fetched", "app_id", appID, "count", len(collected))
	}
	return collected, nil
}

func (c *Client) reviewsPage(ctx context.Context, appID, token string) ([]domain.Review, string, error) {
	rpcURL := fmt.Sprintf("%s/_/PlayStoreUi/data/batchexecute?hl=%s&gl=%s",
		c.baseURL, c.lang, c.country)

	form := url.Values{}
	form.Set("f.req", buildReviewsRequest(appID, reviewPageSize, token))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rpcURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request reviews: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("store returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}

	return c.parseReviewsEnvelope(body)
}

// buildReviewsRequest encodes the nested f.req payload the RPC expects:
// newest-first ordering, pageSize items, optional continuation token.
func buildReviewsRequest(appID string, pageSize int, token string) string {
	inner := []any{nil, nil, []any{2, nil, []any{pageSize, nil, token}, nil, []any{}}, []any{appID, 7}}
	innerJSON, _ := json.Marshal(inner)
	outer := [][][]any{{{reviewsRPCID, string(innerJSON), nil, "generic"}}}
	outerJSON, _ := json.Marshal(outer)
	return string(outerJSON)
}

// parseReviewsEnvelope unwraps the two JSON layers of a batchexecute
// response: the security-prefixed outer frame, then the payload string of
// the wrb.fr row.
func (c *Client) parseReviewsEnvelope(body []byte) ([]domain.Review, string, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(string(body)), responsePrefix))

	var frame []any
	if err := json.Unmarshal([]byte(trimmed), &frame); err != nil {
		return nil, "", fmt.Errorf("decode envelope: %w", err)
	}

	for _, row := range frame {
		cells, ok := row.([]any)
		if !ok || len(cells) < 3 {
			continue
		}
		if tag, _ := cells[0].(string); tag != "wrb.fr" {
			continue
		}
		payload, ok := cells[2].(string)
		if !ok {
			continue
		}
		return c.parseReviewsPayload(payload)
	}

	return nil, "", fmt.Errorf("envelope has no wrb.fr payload")
}

func (c *Client) parseReviewsPayload(payload string) ([]domain.Review, string, error) {
	var data []any
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, "", fmt.Errorf("decode payload: %w", err)
	}
	if len(data) == 0 {
		return nil, "", nil
	}

	rows, _ := data[0].([]any)
	reviews := make([]domain.Review, 0, len(rows))
	for _, raw := range rows {
		row, ok := raw.([]any)
		if !ok {
			continue
		}
		reviews = append(reviews, c.parseReviewRow(row))
	}

	return reviews, continuationToken(data), nil
}

// parseReviewRow picks the known element positions of one review array:
// score at 2, content at 4, posted-at seconds at 5[0], thumbs-up at 6.
func (c *Client) parseReviewRow(row []any) domain.Review {
	review := domain.Review{
		Score:    int(numberAt(row, 2)),
		Content:  stringAt(row, 4),
		ThumbsUp: int(numberAt(row, 6)),
	}

	if ts, ok := indexAt(row, 5).([]any); ok && len(ts) > 0 {
		if seconds, ok := ts[0].(float64); ok {
			review.PostedAt = domain.EpochTimestamp(int64(seconds)).Normalize(c.logger)
		}
	}

	return review
}

func continuationToken(data []any) string {
	next, ok := indexAt(data, 1).([]any)
	if !ok || len(next) < 2 {
		return ""
	}
	token, _ := next[1].(string)
	return token
}

func indexAt(row []any, i int) any {
	if i >= len(row) {
		return nil
	}
	return row[i]
}

func stringAt(row []any, i int) string {
	s, _ := indexAt(row, i).(string)
	return s
}

func numberAt(row []any, i int) float64 {
	n, _ := indexAt(row, i).(float64)
	return n
}
