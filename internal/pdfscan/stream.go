package pdfscan

import "strings"

// StreamBackend walks the page's plain text in reading order and segments it
// into rows at each marker line. It exists because the coordinate sweep is
// too expensive on some deployments; both backends feed the parsers the same
// shape.
type StreamBackend struct{}

func (StreamBackend) ScanColumns(page Page, cfg Config) map[string][]string {
	out := make(map[string][]string, len(cfg.Columns))
	if cfg.RowMarker == nil || len(cfg.Columns) == 0 {
		return out
	}

	var rowLines []string
	flush := func() {
		if len(rowLines) == 0 {
			return
		}
		marker, rest := rowLines[0], rowLines[1:]
		out[cfg.Columns[0].Name] = append(out[cfg.Columns[0].Name], marker)
		distributeCells(out, cfg, rest)
		rowLines = nil
	}

	for _, raw := range page.Lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if cfg.RowMarker(line) {
			flush()
			rowLines = []string{line}
			continue
		}
		if len(rowLines) == 0 {
			// Preamble before the first row, e.g. page headings.
			continue
		}
		rowLines = append(rowLines, line)
	}
	flush()

	return out
}

// distributeCells assigns a row's remaining lines to the non-marker columns:
// fixed-size chunks per column, or the whole remainder to the second column
// when LinesPerCell is zero.
func distributeCells(out map[string][]string, cfg Config, lines []string) {
	cols := cfg.Columns[1:]
	if len(cols) == 0 {
		return
	}

	if cfg.LinesPerCell <= 0 {
		out[cols[0].Name] = append(out[cols[0].Name], strings.Join(lines, "\n"))
		return
	}

	for i, col := range cols {
		start := i * cfg.LinesPerCell
		if start >= len(lines) {
			break
		}
		end := start + cfg.LinesPerCell
		if i == len(cols)-1 || end > len(lines) {
			end = len(lines)
		}
		out[col.Name] = append(out[col.Name], strings.Join(lines[start:end], "\n"))
	}
}
