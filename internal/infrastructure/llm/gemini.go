package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"StorePulse/internal/domain"
	"StorePulse/internal/ports"
)

const promptKeywordLimit = 10

// GeminiClient implements ports.NarrativeClient against the Gemini
// generateContent REST API.
type GeminiClient struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ ports.NarrativeClient = (*GeminiClient)(nil)

// NewGeminiClient builds a client; baseURL is overridable for tests.
func NewGeminiClient(baseURL, model, apiKey string) *GeminiClient {
	return &GeminiClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Summarize sends the research-report prompt and returns the generated text
// verbatim. Any failure surfaces as an error; the pipeline treats it as an
// absent narrative.
func (c *GeminiClient) Summarize(ctx context.Context, research domain.ResearchReport) (string, error) {
	if c == nil || c.apiKey == "" || c.model == "" {
		return "", fmt.Errorf("gemini client misconfigured")
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(research)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal gemini payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("gemini error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}
	return text, nil
}

// buildPrompt embeds the headline statistics, top keywords, and serialized
// sample sets into a single instruction for the model.
func buildPrompt(research domain.ResearchReport) string {
	keywords := make([]string, 0, promptKeywordLimit)
	for i, kw := range research.TopKeywords {
		if i == promptKeywordLimit {
			break
		}
		keywords = append(keywords, kw.Word)
	}

	negative, _ := json.MarshalIndent(research.NegativeSamples, "", "  ")
	positive, _ := json.MarshalIndent(research.PositiveSamples, "", "  ")

	updateDate := "unknown"
	if !research.LastUpdate.IsZero() {
		updateDate = research.LastUpdate.Format("2006-01-02")
	}

	stats := research.Statistics
	return fmt.Sprintf(`You are a professor of marketing research. From the input, generate 3-5 sentences on the trend of the app store reviews, focusing on bugs and product feedback.

App: %s
Last Update: %s
Analysis Period: %d days

Statistics:
- Total Reviews: %d
- Average Rating: %.2f/5.0
- Positive: %.1f%%
- Negative: %.1f%%

Top Keywords: %s

Sample Negative Reviews (focus on bugs/issues):
%s

Sample Positive Reviews (focus on features users like):
%s

Output 3-5 sentences analyzing the main bugs, feature requests, and product feedback trends.`,
		research.AppName,
		updateDate,
		research.AnalysisPeriodDays,
		stats.TotalReviews,
		stats.AverageRating,
		stats.PositivePercentage,
		stats.NegativePercentage,
		strings.Join(keywords, ", "),
		negative,
		positive,
	)
}
