// Package filetype classifies uploaded files by extension and, failing
// that, by probing their content.
package filetype

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Tag is the closed set of file classifications.
type Tag int

const (
	Unknown Tag = iota
	Archive
	CSV
	Spreadsheet
	Markdown
)

func (t Tag) String() string {
	switch t {
	case Archive:
		return "zip"
	case CSV:
		return "csv"
	case Spreadsheet:
		return "excel"
	case Markdown:
		return "md"
	case Unknown:
		return "unknown"
	}
	return "unknown"
}

// probeLimit bounds how much of an extensionless file the CSV probe reads.
const probeLimit = 64 << 10

var extensionTags = map[string]Tag{
	".zip":  Archive,
	".csv":  CSV,
	".xlsx": Spreadsheet,
	".xls":  Spreadsheet,
	".md":   Markdown,
}

// AllowedExtension reports whether the file name carries an extension the
// service accepts for upload. Checked before any content is read.
func AllowedExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx", ".xls", ".zip", ".md":
		return true
	}
	return false
}

// Detect classifies the file at path. The extension wins when recognized;
// otherwise the content is probed as CSV, then as a spreadsheet container.
func Detect(path string) Tag {
	ext := strings.ToLower(filepath.Ext(path))
	if tag, ok := extensionTags[ext]; ok {
		return tag
	}
	if probeCSV(path) {
		return CSV
	}
	if probeSpreadsheet(path) {
		return Spreadsheet
	}
	return Unknown
}

// probeCSV attempts to read the first record of a bounded prefix. An empty
// file counts as CSV: zero rows is valid tabular data.
func probeCSV(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	reader := csv.NewReader(io.LimitReader(f, probeLimit))
	if _, err := reader.Read(); err != nil && err != io.EOF {
		return false
	}
	return true
}

func probeSpreadsheet(path string) bool {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
