package pdfscan

import (
	"sort"
	"strings"
)

const defaultStep = 8.0

// CoordinateBackend sweeps each column stripe top to bottom in fixed
// increments and collects the non-empty text hits. The sweep windows overlap
// on purpose so thin rows are never skipped; the duplicate hits that causes
// are collapsed, keeping the first occurrence.
type CoordinateBackend struct{}

func (CoordinateBackend) ScanColumns(page Page, cfg Config) map[string][]string {
	out := make(map[string][]string, len(cfg.Columns))
	for _, col := range cfg.Columns {
		out[col.Name] = sweepColumn(page.Runs, col, cfg.Step)
	}
	return out
}

func sweepColumn(runs []TextRun, col Column, step float64) []string {
	if step <= 0 {
		step = defaultStep
	}

	inStripe := make([]TextRun, 0, len(runs))
	minY, maxY := 0.0, 0.0
	for _, run := range runs {
		if run.X < col.X || run.X >= col.X+col.Width {
			continue
		}
		if len(inStripe) == 0 || run.Y < minY {
			minY = run.Y
		}
		if len(inStripe) == 0 || run.Y > maxY {
			maxY = run.Y
		}
		inStripe = append(inStripe, run)
	}
	if len(inStripe) == 0 {
		return nil
	}

	sort.SliceStable(inStripe, func(i, j int) bool {
		if inStripe[i].Y != inStripe[j].Y {
			return inStripe[i].Y < inStripe[j].Y
		}
		return inStripe[i].X < inStripe[j].X
	})

	var cells []string
	var current []string
	last := ""

	flush := func() {
		if len(current) > 0 {
			cells = append(cells, strings.Join(current, "\n"))
			current = nil
		}
		last = ""
	}

	window := step * 1.5
	for y := minY; y <= maxY; y += step {
		line := lineAt(inStripe, y, window)
		if line == "" {
			flush()
			continue
		}
		// Overlapping windows see the same row twice; keep the first hit.
		if line == last {
			continue
		}
		current = append(current, line)
		last = line
	}
	flush()

	return cells
}

func lineAt(runs []TextRun, y, window float64) string {
	var parts []string
	for _, run := range runs {
		if run.Y >= y && run.Y < y+window {
			parts = append(parts, run.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
