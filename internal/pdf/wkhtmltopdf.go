package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const maxStderrInError = 2048

// WKHTMLToPDF shells out to a wkhtmltopdf binary, streaming the document on
// stdin and reading the PDF from stdout.
type WKHTMLToPDF struct {
	path    string
	options PageOptions
}

// NewWKHTMLToPDF 使用给定路径的可执行文件；路径为空时返回错误。
func NewWKHTMLToPDF(path string, options PageOptions) (*WKHTMLToPDF, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("wkhtmltopdf path is required")
	}
	return &WKHTMLToPDF{path: path, options: options}, nil
}

// Name implements Converter.
func (w *WKHTMLToPDF) Name() string { return "wkhtmltopdf" }

// Args returns the command-line flags passed to the binary.
func (w *WKHTMLToPDF) Args() []string {
	margin := w.options.marginFlag()
	return []string{
		"--quiet",
		"--page-size", w.options.PageSize,
		"--encoding", w.options.Encoding,
		"--margin-top", margin,
		"--margin-bottom", margin,
		"--margin-left", margin,
		"--margin-right", margin,
		"-", "-",
	}
}

// Convert implements Converter.
func (w *WKHTMLToPDF) Convert(ctx context.Context, html string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, w.path, w.Args()...)
	cmd.Stdin = strings.NewReader(html)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > maxStderrInError {
			msg = msg[:maxStderrInError]
		}
		if msg != "" {
			return nil, fmt.Errorf("run wkhtmltopdf: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("run wkhtmltopdf: %w", err)
	}
	if stdout.Len() == 0 {
		return nil, errors.New("wkhtmltopdf produced no output")
	}
	return stdout.Bytes(), nil
}
