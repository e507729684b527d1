// Package ocr wraps the external tesseract binary. The engine is a
// collaborator, not a dependency we control: a failed or empty extraction
// degrades to empty text at the call site and never fails the request.
package ocr

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type Engine struct {
	binary string
}

// NewEngine wraps the tesseract executable at binary; an empty path means
// whatever "tesseract" resolves to on PATH.
func NewEngine(binary string) *Engine {
	if binary == "" {
		binary = "tesseract"
	}
	return &Engine{binary: binary}
}

// ExtractText runs the engine against the image at imagePath and returns the
// recognized text with surrounding whitespace trimmed. Engine output on
// stderr is folded into the returned error.
func (e *Engine) ExtractText(ctx context.Context, imagePath string) (string, error) {
	cmd := exec.CommandContext(ctx, e.binary, imagePath, "stdout")

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("run %s: %w (%s)", e.binary, err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}
