// Package pdfscan extracts row/column text from PDF calendar pages. Two
// interchangeable backends produce the same per-column snippet lists: the
// coordinate backend sweeps positioned text runs in vertical stripes, the
// stream backend segments a plain text flow by row markers. Which one runs is
// a deployment decision; the parsers never know the difference.
package pdfscan

// TextRun is one positioned fragment of page text.
type TextRun struct {
	X     float64
	Y     float64
	Width float64
	Text  string
}

// Page carries one page in whichever shape the document source produced:
// positioned runs, or plain lines in reading order. Exactly one of the two is
// populated.
type Page struct {
	Runs  []TextRun
	Lines []string
}

// Column names one table column. X/Width bound its stripe for the coordinate
// backend; Index is its ordinal position for the stream backend.
type Column struct {
	Name  string
	X     float64
	Width float64
	Index int
}

// Config describes one region's table layout.
type Config struct {
	Columns []Column

	// Step is the vertical sweep increment of the coordinate backend, in
	// page units.
	Step float64

	// RowMarker recognizes the line that starts a logical row on the stream
	// path; it maps to the first column.
	RowMarker func(line string) bool

	// LinesPerCell is how many stream lines fill each non-marker column
	// before the next column starts. 0 means the whole remainder of the row
	// belongs to the second column.
	LinesPerCell int
}

// Backend turns a page into per-column cell snippets. The slices may be
// ragged: a scan miss in one column simply leaves that column shorter, and
// the parsers pair indexes positionally and drop incomplete ones.
type Backend interface {
	ScanColumns(page Page, cfg Config) map[string][]string
}
