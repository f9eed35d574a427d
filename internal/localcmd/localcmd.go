// Package localcmd short-circuits questions the service can answer
// deterministically without the remote model: file digests, formatter
// pipelines, and environment diagnostics.
package localcmd

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/balajiselvarajk/tds-solver-project-2/internal/filetype"
)

const (
	DefaultTimeout = 30 * time.Second

	// hashChunkSize bounds memory while digesting arbitrarily large files.
	hashChunkSize = 8192
)

// Resolver matches question text against known deterministic tasks.
type Resolver struct {
	// Timeout bounds every spawned process.
	Timeout time.Duration
	// DiagnosticCmd answers "code -s" questions; no file involved.
	DiagnosticCmd string
	// FormatterCmd is a printf-style template taking the file path.
	FormatterCmd string
}

// NewResolver builds a Resolver with the given commands; empty strings and
// non-positive timeouts fall back to the pinned defaults.
func NewResolver(timeout time.Duration, diagnosticCmd, formatterCmd string) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if diagnosticCmd == "" {
		diagnosticCmd = "code -s"
	}
	if formatterCmd == "" {
		formatterCmd = "npx -y prettier@3.4.2 %s | sha256sum"
	}
	return &Resolver{Timeout: timeout, DiagnosticCmd: diagnosticCmd, FormatterCmd: formatterCmd}
}

// Resolve checks the question against the local rules in order; first match
// wins. filePath is empty when no file is attached. The returned answer may
// itself be a descriptive error string; ok reports whether any rule matched.
func (r *Resolver) Resolve(ctx context.Context, question string, tag filetype.Tag, filePath string) (answer string, ok bool) {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "sha256sum") && tag == filetype.Markdown && filePath != "":
		return computeSHA256(filePath), true
	case strings.Contains(q, "prettier") && strings.Contains(q, "sha256sum") && tag == filetype.Markdown && filePath != "":
		cmd := fmt.Sprintf(r.FormatterCmd, filePath)
		return r.runCommand(ctx, cmd, filepath.Dir(filePath)), true
	case strings.Contains(q, "code -s"):
		return r.runCommand(ctx, r.DiagnosticCmd, ""), true
	}
	return "", false
}

// computeSHA256 digests the file in fixed-size chunks and returns the
// lowercase hex digest, or a descriptive error string.
func computeSHA256(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Sprintf("Error calculating SHA256: %v", err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return fmt.Sprintf("Error calculating SHA256: %v", err)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// runCommand executes a shell command with a bounded wait, capturing stdout
// and stderr separately. Failures become descriptive strings, never errors.
func (r *Resolver) runCommand(ctx context.Context, command, dir string) string {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, "sh", "-c", command)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if cmdCtx.Err() == context.DeadlineExceeded {
		return "Error: Command execution timed out."
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Sprintf("Error: Command failed with exit code %d. Output: %s",
				exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return fmt.Sprintf("Error executing command: %v", err)
	}
	return strings.TrimSpace(stdout.String())
}
