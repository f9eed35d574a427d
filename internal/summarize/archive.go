package summarize

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// describeZip walks every non-directory entry of the archive, summarizing
// each through the regular classify/describe path so nested archives expand
// recursively. Each entry is staged as a temp file that is removed before
// the next entry is touched, capping disk usage at one entry at a time.
func (s *Summarizer) describeZip(zipPath string, depth int) string {
	if depth >= s.MaxArchiveDepth {
		return fmt.Sprintf("Error processing ZIP file: nested archive depth limit (%d) exceeded", s.MaxArchiveDepth)
	}

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Sprintf("Error processing ZIP file: %v", err)
	}
	defer r.Close()

	var reports []string
	for _, entry := range r.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		report, err := s.describeZipEntry(entry, depth)
		if err != nil {
			return fmt.Sprintf("Error processing ZIP file: %v", err)
		}
		reports = append(reports, report)
	}
	return strings.Join(reports, "\n")
}

func (s *Summarizer) describeZipEntry(entry *zip.File, depth int) (string, error) {
	rc, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("open entry %s: %w", entry.Name, err)
	}
	content, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return "", fmt.Errorf("read entry %s: %w", entry.Name, err)
	}

	dir, err := os.MkdirTemp(s.ScratchDir, "entry-")
	if err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	tempPath := filepath.Join(dir, sanitizeName(entry.Name))
	if err := os.WriteFile(tempPath, content, 0o600); err != nil {
		return "", fmt.Errorf("write entry %s: %w", entry.Name, err)
	}

	summary := s.describe(tempPath, depth+1)
	return fmt.Sprintf("File '%s' in ZIP contains:\n%s", entry.Name, summary), nil
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// sanitizeName reduces an archive entry name to a safe base file name,
// keeping the extension so classification still works on the staged copy.
func sanitizeName(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	cleaned := unsafeNameChars.ReplaceAllString(base, "_")
	cleaned = strings.TrimLeft(cleaned, ".")
	if cleaned == "" {
		return "unnamed"
	}
	return cleaned
}
