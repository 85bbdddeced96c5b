package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strconv"
	"strings"
)

// Command runs the tesseract executable for every region. The image is
// streamed to the process as PNG on stdin and the text read from stdout,
// so no temporary files are written. Command is safe for concurrent use.
type Command struct {
	opts Options
}

// NewCommand creates a command engine
func NewCommand(opts Options) *Command {
	return &Command{opts: opts.withDefaults()}
}

// Available reports whether the tesseract binary can be found
func (c *Command) Available() bool {
	_, err := exec.LookPath(c.opts.Binary)
	return err == nil
}

// Args returns the command line arguments passed to tesseract
func (c *Command) Args() []string {
	return []string{
		"stdin", "stdout",
		"--psm", strconv.Itoa(c.opts.PageSegMode),
		"-l", c.opts.Language,
	}
}

// Recognize runs tesseract on img
func (c *Command) Recognize(ctx context.Context, img image.Image) (string, error) {
	var input bytes.Buffer
	if err := png.Encode(&input, img); err != nil {
		return "", fmt.Errorf("encode region: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.opts.Binary, c.Args()...)
	cmd.Stdin = &input
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("tesseract: %w: %s", err, msg)
		}
		return "", fmt.Errorf("tesseract: %w", err)
	}

	return Clean(stdout.String()), nil
}
