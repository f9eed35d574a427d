package summarize

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func newTestSummarizer(t *testing.T) *Summarizer {
	t.Helper()
	s := NewSummarizer(0, 0)
	s.ScratchDir = t.TempDir()
	return s
}

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

type zipEntry struct {
	name    string
	content []byte
}

func writeZip(t *testing.T, path string, entries []zipEntry) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	defer f.Close()
	w := zip.NewWriter(f)
	for _, e := range entries {
		fw, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", e.name, err)
		}
		if _, err := fw.Write(e.content); err != nil {
			t.Fatalf("write zip entry %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
}

func readZipBytes(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read zip: %v", err)
	}
	return data
}

func TestDescribeCSV(t *testing.T) {
	s := newTestSummarizer(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "people.csv", []byte("name,age\nalice,30\nbob,25\ncarol,41\n"))

	summary := s.Describe(path)
	for _, want := range []string{
		"CSV file with 3 rows and 2 columns.",
		"Columns: name, age.",
		"First 5 rows:",
		"alice",
		"carol",
	} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestDescribeCSVPreviewBound(t *testing.T) {
	s := newTestSummarizer(t)
	dir := t.TempDir()
	var sb strings.Builder
	sb.WriteString("id\n")
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&sb, "row%d\n", i)
	}
	path := writeFile(t, dir, "long.csv", []byte(sb.String()))

	summary := s.Describe(path)
	if !strings.Contains(summary, "CSV file with 20 rows and 1 columns.") {
		t.Fatalf("unexpected counts:\n%s", summary)
	}
	if !strings.Contains(summary, "row4") {
		t.Fatalf("preview should include fifth row:\n%s", summary)
	}
	if strings.Contains(summary, "row5") {
		t.Fatalf("preview should stop at %d rows:\n%s", s.PreviewRows, summary)
	}
}

func TestDescribeCSVEmpty(t *testing.T) {
	s := newTestSummarizer(t)
	path := writeFile(t, t.TempDir(), "empty.csv", nil)
	if got := s.Describe(path); got != "Error: The file is empty." {
		t.Fatalf("empty csv summary = %q", got)
	}
}

func TestDescribeCSVParseError(t *testing.T) {
	s := newTestSummarizer(t)
	path := writeFile(t, t.TempDir(), "bad.csv", []byte("a,b\nbare\"quote,2\n"))
	if got := s.Describe(path); got != "Error: There was a problem parsing the file." {
		t.Fatalf("parse error summary = %q", got)
	}
}

func TestDescribeCSVMissing(t *testing.T) {
	s := newTestSummarizer(t)
	path := filepath.Join(t.TempDir(), "absent.csv")
	got := s.Describe(path)
	want := fmt.Sprintf("Error: The file '%s' was not found.", path)
	if got != want {
		t.Fatalf("missing csv summary = %q, want %q", got, want)
	}
}

func TestDescribeMarkdown(t *testing.T) {
	s := newTestSummarizer(t)
	path := writeFile(t, t.TempDir(), "readme.md", []byte("# Title\n\nBody text.\n"))
	got := s.Describe(path)
	if got != "Markdown file content:\n# Title\n\nBody text.\n" {
		t.Fatalf("markdown summary = %q", got)
	}
}

func TestDescribeMarkdownMissing(t *testing.T) {
	s := newTestSummarizer(t)
	got := s.Describe(filepath.Join(t.TempDir(), "absent.md"))
	if got != "Error: The specified Markdown file was not found." {
		t.Fatalf("missing markdown summary = %q", got)
	}
}

func TestDescribeUnsupported(t *testing.T) {
	s := newTestSummarizer(t)
	path := writeFile(t, t.TempDir(), "blob.txt", []byte(`noise"with"quotes`))
	if got := s.Describe(path); got != "Unsupported file type" {
		t.Fatalf("unsupported summary = %q", got)
	}
}

func TestDescribeExcel(t *testing.T) {
	s := newTestSummarizer(t)
	path := filepath.Join(t.TempDir(), "book.xlsx")

	f := excelize.NewFile()
	for i, row := range [][]any{{"city", "pop"}, {"oslo", 700000}, {"turin", 850000}} {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cell, val); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	if _, err := f.NewSheet("Extra"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	if err := f.SetCellValue("Extra", "A1", "only"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close xlsx: %v", err)
	}

	summary := s.Describe(path)
	for _, want := range []string{
		"Sheet 'Sheet1' has 2 rows and 2 columns. Columns: city, pop. First few rows:",
		"Sheet 'Extra' has 0 rows and 1 columns. Columns: only.",
		"oslo",
	} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
	if len(strings.Split(summary, "\n\n")) != 2 {
		t.Fatalf("expected 2 sheet reports separated by a blank line:\n%s", summary)
	}
	// spreadsheet previews carry row indices, unlike CSV previews
	if !strings.Contains(summary, "0  oslo") {
		t.Fatalf("expected indexed preview row:\n%s", summary)
	}
}

func TestDescribeExcelCorrupt(t *testing.T) {
	s := newTestSummarizer(t)
	path := writeFile(t, t.TempDir(), "broken.xlsx", []byte("this is not a workbook"))
	got := s.Describe(path)
	if !strings.HasPrefix(got, "Error processing Excel file:") {
		t.Fatalf("corrupt xlsx summary = %q", got)
	}
}

func TestDescribeZip(t *testing.T) {
	s := newTestSummarizer(t)
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "bundle.zip")
	writeZip(t, zipPath, []zipEntry{
		{"docs/", nil},
		{"data.csv", []byte("x,y\n1,2\n")},
		{"docs/note.md", []byte("hello")},
	})

	summary := s.Describe(zipPath)
	blocks := strings.Count(summary, "in ZIP contains:")
	if blocks != 2 {
		t.Fatalf("expected 2 entry reports (directories skipped), got %d:\n%s", blocks, summary)
	}
	first := strings.Index(summary, "File 'data.csv' in ZIP contains:\nCSV file with 1 rows and 2 columns.")
	second := strings.Index(summary, "File 'docs/note.md' in ZIP contains:\nMarkdown file content:\nhello")
	if first < 0 || second < 0 {
		t.Fatalf("missing entry report:\n%s", summary)
	}
	if first > second {
		t.Fatalf("entries out of archive order:\n%s", summary)
	}
}

func TestDescribeZipNested(t *testing.T) {
	s := newTestSummarizer(t)
	dir := t.TempDir()

	innerPath := filepath.Join(dir, "inner.zip")
	writeZip(t, innerPath, []zipEntry{{"deep.md", []byte("buried")}})
	outerPath := filepath.Join(dir, "outer.zip")
	writeZip(t, outerPath, []zipEntry{{"inner.zip", readZipBytes(t, innerPath)}})

	summary := s.Describe(outerPath)
	for _, want := range []string{
		"File 'inner.zip' in ZIP contains:",
		"File 'deep.md' in ZIP contains:",
		"Markdown file content:\nburied",
	} {
		if !strings.Contains(summary, want) {
			t.Fatalf("nested summary missing %q:\n%s", want, summary)
		}
	}
}

func TestDescribeZipDepthLimit(t *testing.T) {
	s := newTestSummarizer(t)
	s.MaxArchiveDepth = 1
	dir := t.TempDir()

	innerPath := filepath.Join(dir, "inner.zip")
	writeZip(t, innerPath, []zipEntry{{"deep.md", []byte("buried")}})
	outerPath := filepath.Join(dir, "outer.zip")
	writeZip(t, outerPath, []zipEntry{{"inner.zip", readZipBytes(t, innerPath)}})

	summary := s.Describe(outerPath)
	want := "Error processing ZIP file: nested archive depth limit (1) exceeded"
	if !strings.Contains(summary, want) {
		t.Fatalf("expected depth limit error in:\n%s", summary)
	}
	if strings.Contains(summary, "buried") {
		t.Fatalf("inner content should not have been expanded:\n%s", summary)
	}
}

func TestDescribeZipCorrupt(t *testing.T) {
	s := newTestSummarizer(t)
	path := writeFile(t, t.TempDir(), "fake.zip", []byte("definitely not a zip"))
	got := s.Describe(path)
	if !strings.HasPrefix(got, "Error processing ZIP file:") {
		t.Fatalf("corrupt zip summary = %q", got)
	}
}

func TestDescribeZipCleansScratchFiles(t *testing.T) {
	s := NewSummarizer(0, 0)
	scratch := t.TempDir()
	s.ScratchDir = scratch
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "bundle.zip")
	writeZip(t, zipPath, []zipEntry{
		{"a.md", []byte("one")},
		{"b.md", []byte("two")},
	})

	s.Describe(zipPath)

	entries, err := os.ReadDir(scratch)
	if err != nil {
		t.Fatalf("read scratch dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected scratch dir to be empty, found %d entries", len(entries))
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"simple.md":            "simple.md",
		"dir/nested.csv":       "nested.csv",
		"../../etc/passwd":     "passwd",
		`win\style\file.md`:    "file.md",
		"spaces and (1).csv":   "spaces_and__1_.csv",
		".hidden":              "hidden",
		"..":                   "unnamed",
		"weird:<>|chars?.xlsx": "weird____chars_.xlsx",
	}
	for in, want := range cases {
		if got := sanitizeName(in); got != want {
			t.Fatalf("sanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
