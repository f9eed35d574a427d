// Package summarize turns uploaded files into bounded textual descriptions
// used to prime the remote model. Summarization never fails: every internal
// error is converted into a descriptive string returned as the summary.
package summarize

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/balajiselvarajk/tds-solver-project-2/internal/filetype"
)

const (
	DefaultPreviewRows     = 5
	DefaultMaxArchiveDepth = 5
)

// Summarizer describes files according to their classified type.
type Summarizer struct {
	PreviewRows     int
	MaxArchiveDepth int
	// ScratchDir hosts per-entry temp files during archive walks.
	// Empty means the system temp directory.
	ScratchDir string
}

// NewSummarizer builds a Summarizer with the given preview size and
// archive nesting limit; non-positive values fall back to defaults.
func NewSummarizer(previewRows, maxArchiveDepth int) *Summarizer {
	if previewRows <= 0 {
		previewRows = DefaultPreviewRows
	}
	if maxArchiveDepth <= 0 {
		maxArchiveDepth = DefaultMaxArchiveDepth
	}
	return &Summarizer{PreviewRows: previewRows, MaxArchiveDepth: maxArchiveDepth}
}

// Describe classifies the file at path and returns its summary.
func (s *Summarizer) Describe(path string) string {
	return s.describe(path, 0)
}

func (s *Summarizer) describe(path string, depth int) string {
	switch tag := filetype.Detect(path); tag {
	case filetype.Archive:
		return s.describeZip(path, depth)
	case filetype.CSV:
		return s.describeCSV(path)
	case filetype.Spreadsheet:
		return s.describeExcel(path)
	case filetype.Markdown:
		return s.describeMarkdown(path)
	case filetype.Unknown:
		return "Unsupported file type"
	default:
		return fmt.Sprintf("Unsupported file type (%v)", tag)
	}
}

// renderTable renders header and rows as aligned plain text. limit caps the
// number of data rows; withIndex prepends a row-number column.
func renderTable(header []string, rows [][]string, limit int, withIndex bool) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	if withIndex {
		fmt.Fprintf(w, "\t%s\n", strings.Join(header, "\t"))
	} else {
		fmt.Fprintf(w, "%s\n", strings.Join(header, "\t"))
	}
	for i, row := range rows {
		if i >= limit {
			break
		}
		if withIndex {
			fmt.Fprintf(w, "%d\t%s\n", i, strings.Join(row, "\t"))
		} else {
			fmt.Fprintf(w, "%s\n", strings.Join(row, "\t"))
		}
	}
	w.Flush()
	return strings.TrimRight(buf.String(), "\n")
}
