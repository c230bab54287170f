// Package source implements the document source: it downloads a region's
// calendar PDF and extracts its pages in whichever shape the configured scan
// backend consumes, positioned text runs or a plain text stream.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/farmaguardia/segovia/backend/internal/config"
	"github.com/farmaguardia/segovia/backend/internal/pdfscan"
)

const (
	BackendCoordinate = "coordinate"
	BackendStream     = "stream"
)

type PDFSource struct {
	cfg    *config.Config
	client *http.Client
}

func New(cfg *config.Config) *PDFSource {
	return &PDFSource{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.Source.FetchTimeout) * time.Second,
		},
	}
}

// Fetch downloads the region's PDF and extracts every page. A page that fails
// to extract is skipped with a log line; only a failed download or an
// unreadable document is an error.
func (s *PDFSource) Fetch(ctx context.Context, locationID string) ([]pdfscan.Page, error) {
	url := fmt.Sprintf("%s/%s.pdf", strings.TrimRight(s.cfg.Source.BaseURL, "/"), locationID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("descarga de %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("descarga de %s: estado %d", url, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("documento ilegible %s: %w", url, err)
	}

	pages := make([]pdfscan.Page, 0, reader.NumPage())
	for num := 1; num <= reader.NumPage(); num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}

		extracted, err := s.extractPage(page)
		if err != nil {
			slog.Warn("página omitida", "location", locationID, "page", num, "error", err)
			continue
		}
		pages = append(pages, extracted)
	}

	return pages, nil
}

func (s *PDFSource) extractPage(page pdf.Page) (pdfscan.Page, error) {
	if s.cfg.Source.Backend == BackendStream {
		text, err := page.GetPlainText(nil)
		if err != nil {
			return pdfscan.Page{}, err
		}
		return pdfscan.Page{Lines: strings.Split(text, "\n")}, nil
	}

	return pdfscan.Page{Runs: positionedRuns(page.Content().Text)}, nil
}

// positionedRuns merges the extractor's character-level items into word runs
// and flips the y axis: PDF coordinates grow bottom-up, the scanner sweeps
// top-down.
func positionedRuns(texts []pdf.Text) []pdfscan.TextRun {
	if len(texts) == 0 {
		return nil
	}

	maxY := texts[0].Y
	for _, t := range texts {
		if t.Y > maxY {
			maxY = t.Y
		}
	}

	var runs []pdfscan.TextRun
	var current *pdfscan.TextRun
	var lastEnd float64

	for _, t := range texts {
		y := maxY - t.Y
		adjacent := current != nil &&
			current.Y == y &&
			t.X-lastEnd < t.FontSize*0.75

		if adjacent {
			current.Text += t.S
			current.Width = t.X + t.W - current.X
		} else {
			if current != nil {
				runs = append(runs, *current)
			}
			current = &pdfscan.TextRun{X: t.X, Y: y, Width: t.W, Text: t.S}
		}
		lastEnd = t.X + t.W
	}
	if current != nil {
		runs = append(runs, *current)
	}

	return runs
}
