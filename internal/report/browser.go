package report

import (
	"context"
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// BrowserRenderer prints the HTML rendition to PDF with headless Chromium.
// The browser is started on first use and kept until Close.
type BrowserRenderer struct {
	html   *HTMLRenderer
	logger *zap.Logger

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewBrowserRenderer creates a new BrowserRenderer
func NewBrowserRenderer(logger *zap.Logger) *BrowserRenderer {
	return &BrowserRenderer{
		html:   NewHTMLRenderer(),
		logger: logger,
	}
}

// ContentType returns the MIME type of rendered documents
func (r *BrowserRenderer) ContentType() string {
	return ContentTypePDF
}

// Render prints the page with backgrounds on A4 landscape
func (r *BrowserRenderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	page, err := r.html.Render(ctx, doc)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.start(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tab, err := r.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer tab.Close()

	if err := tab.SetContent(string(page)); err != nil {
		return nil, fmt.Errorf("failed to load page: %w", err)
	}

	pdf, err := tab.PDF(playwright.PagePdfOptions{
		Format:          playwright.String("A4"),
		Landscape:       playwright.Bool(true),
		PrintBackground: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to print page: %w", err)
	}
	return pdf, nil
}

func (r *BrowserRenderer) start() error {
	if r.browser != nil {
		return nil
	}

	r.logger.Info("Starting headless Chromium for PDF export")

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	r.pw = pw
	r.browser = browser
	return nil
}

// Close shuts the browser down if it was started
func (r *BrowserRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	if err := r.browser.Close(); err != nil {
		r.logger.Warn("Failed to close browser", zap.Error(err))
	}
	err := r.pw.Stop()
	r.browser = nil
	r.pw = nil
	return err
}
