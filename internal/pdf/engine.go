package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrEngineUnavailable means the external rendering engine could not be
// started or crashed. It is not retried; the message should point the
// operator at the engine's installation.
var ErrEngineUnavailable = errors.New("PDF rendering engine unavailable")

// Engine turns a self-contained HTML document into fixed-page-size PDF
// bytes. The engine is an external collaborator; implementations wrap a
// headless browser.
type Engine interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// ChromeEngine prints documents with a headless Chrome/Chromium binary.
type ChromeEngine struct {
	// Path overrides browser discovery; usually fed from CHROME_PATH.
	Path string
}

func NewChromeEngine(path string) *ChromeEngine {
	return &ChromeEngine{Path: path}
}

var chromeCandidates = []string{
	"/opt/google/chrome/chrome",
	"/usr/bin/google-chrome-stable",
	"/usr/bin/google-chrome",
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
}

func (e *ChromeEngine) browserPath() (string, error) {
	if e.Path != "" {
		return e.Path, nil
	}
	if p := os.Getenv("CHROME_PATH"); p != "" {
		return p, nil
	}
	for _, p := range chromeCandidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: no Chrome/Chromium binary found, set CHROME_PATH", ErrEngineUnavailable)
}

// Render writes the HTML to a scratch file and runs the browser in headless
// print mode. Launch and print failures both surface as ErrEngineUnavailable.
func (e *ChromeEngine) Render(ctx context.Context, html string) ([]byte, error) {
	browser, err := e.browserPath()
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "invoice-pdf-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	htmlPath := filepath.Join(dir, "invoice.html")
	pdfPath := filepath.Join(dir, "invoice.pdf")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, browser,
		"--headless",
		"--disable-gpu",
		"--no-sandbox",
		"--no-pdf-header-footer",
		"--print-to-pdf="+pdfPath,
		"file://"+htmlPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%w: %s failed: %v: %s", ErrEngineUnavailable, browser, err, out)
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: no output produced by %s", ErrEngineUnavailable, browser)
	}
	return data, nil
}
