// Package export turns a rendered resume into an A4 PDF via headless Chrome.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"golang.org/x/sync/semaphore"

	"github.com/jonathan/resume-studio/internal/render"
	"github.com/jonathan/resume-studio/internal/resume"
)

// ProductName is the branding baked into exported filenames.
const ProductName = "ResumeStudio"

// DefaultMaxConcurrent caps simultaneous Chrome sessions. A headless Chrome
// per request adds up quickly on small hosts.
const DefaultMaxConcurrent = 2

const renderTimeout = 60 * time.Second

// Exporter renders documents to HTML and prints them to PDF.
type Exporter struct {
	engine     *render.Engine
	sem        *semaphore.Weighted
	chromePath string
}

// New creates an exporter over the given render engine. maxConcurrent bounds
// parallel Chrome sessions; values below 1 fall back to the default.
// chromePath selects the Chrome binary; when empty the CHROME_PATH environment
// variable is consulted, then chromedp's own lookup.
func New(engine *render.Engine, maxConcurrent int64, chromePath string) *Exporter {
	if maxConcurrent < 1 {
		maxConcurrent = DefaultMaxConcurrent
	}
	if chromePath == "" {
		chromePath = os.Getenv("CHROME_PATH")
	}
	return &Exporter{engine: engine, sem: semaphore.NewWeighted(maxConcurrent), chromePath: chromePath}
}

// Filename builds the download name for a document. The owner's name leads
// when present.
func Filename(fullName string) string {
	name := sanitizeFilename(strings.TrimSpace(fullName))
	if name == "" {
		return fmt.Sprintf("Resume - Made Using %s.pdf", ProductName)
	}
	return fmt.Sprintf("%s's Resume - Made Using %s.pdf", name, ProductName)
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, name)
}

// ExportPDF renders the document in display mode and prints it to an A4 PDF.
// It returns the PDF bytes and the suggested filename.
func (e *Exporter) ExportPDF(ctx context.Context, doc resume.Document, opts render.Options) ([]byte, string, error) {
	opts.Editing = false
	html, err := e.engine.Render(doc, opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render resume: %w", err)
	}

	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, "", fmt.Errorf("waiting for export slot: %w", err)
	}
	defer e.sem.Release(1)

	pdf, err := printToPDF(ctx, html, e.chromePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to print PDF: %w", err)
	}
	return pdf, Filename(doc.PersonalDetails.FullName), nil
}

// printToPDF drives headless Chrome over a file:// page. The HTML is fully
// self-contained, so nothing else needs to be staged next to it.
func printToPDF(ctx context.Context, html string, chromePath string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, renderTimeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm -> inches: 8.27 x 11.69
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
