// Package artifacts persists reports, charts, and batch summaries as flat
// files with deterministic names, so a rerun on the same day overwrites
// instead of accumulating.
package artifacts

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"StorePulse/internal/domain"
	"StorePulse/internal/ports"
)

const fileMode = 0o644

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9]+`)

// ChartRenderer draws the chart page for one research report.
type ChartRenderer interface {
	Render(research domain.ResearchReport, w io.Writer) error
}

// Writer implements ports.ArtifactWriter on a flat output directory.
type Writer struct {
	dir    string
	charts ChartRenderer
	now    func() time.Time
}

var _ ports.ArtifactWriter = (*Writer)(nil)

// NewWriter creates the output directory if needed. now is injectable for
// deterministic names in tests.
func NewWriter(dir string, charts ChartRenderer, now func() time.Time) (*Writer, error) {
	if now == nil {
		now = time.Now
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Writer{dir: dir, charts: charts, now: now}, nil
}

// WriteNewsletter persists the markdown report for one app.
func (w *Writer) WriteNewsletter(appID, body string) (string, error) {
	path := filepath.Join(w.dir, fmt.Sprintf("%s_newsletter_%s.md", SafeID(appID), w.datestamp()))
	if err := os.WriteFile(path, []byte(body), fileMode); err != nil {
		return "", fmt.Errorf("write newsletter: %w", err)
	}
	return path, nil
}

// WriteCharts renders and persists the chart page for one app.
func (w *Writer) WriteCharts(appID string, research domain.ResearchReport) (string, error) {
	var buf bytes.Buffer
	if err := w.charts.Render(research, &buf); err != nil {
		return "", fmt.Errorf("render charts: %w", err)
	}

	path := filepath.Join(w.dir, fmt.Sprintf("%s_charts_%s.html", SafeID(appID), w.datestamp()))
	if err := os.WriteFile(path, buf.Bytes(), fileMode); err != nil {
		return "", fmt.Errorf("write charts: %w", err)
	}
	return path, nil
}

// WriteBatchSummary persists the batch rollup document.
func (w *Writer) WriteBatchSummary(body string) (string, error) {
	path := filepath.Join(w.dir, fmt.Sprintf("batch_summary_%s.txt", w.datestamp()))
	if err := os.WriteFile(path, []byte(body), fileMode); err != nil {
		return "", fmt.Errorf("write batch summary: %w", err)
	}
	return path, nil
}

func (w *Writer) datestamp() string {
	return w.now().Format("20060102")
}

// SafeID collapses non-alphanumeric runs in an app identifier to underscores
// for use in file names.
func SafeID(appID string) string {
	return unsafeChars.ReplaceAllString(appID, "_")
}
