// Package pdf renders finished document HTML to PDF bytes. Rendering runs
// through a headless Chrome instance so the output matches what the browser
// preview shows, table layouts and inline styles included.
package pdf

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Renderer turns one HTML document into a PDF stream.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// ChromeRenderer drives a shared headless browser. The browser is launched
// lazily on the first render and reused; each render gets its own page.
type ChromeRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

func NewChromeRenderer() *ChromeRenderer {
	return &ChromeRenderer{timeout: 30 * time.Second}
}

func (r *ChromeRenderer) connect() (*rod.Browser, error) {
	if r.browser != nil {
		return r.browser, nil
	}
	u, err := launcher.New().Headless(true).NoSandbox(true).Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}
	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect chrome: %w", err)
	}
	r.browser = b
	return b, nil
}

// Render loads the HTML in a fresh page and prints it to A4 with the print
// backgrounds on, so letterhead rules and table borders survive.
func (r *ChromeRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	browser, err := r.connect()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{
		URL: "data:text/html," + url.PathEscape(wrapDocument(html)),
	})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer func() { _ = page.Close() }()
	page = page.Context(ctx)

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("load page: %w", err)
	}

	printBackground := true
	a4w, a4h := 8.27, 11.69
	margin := 0.6
	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: printBackground,
		PaperWidth:      &a4w,
		PaperHeight:     &a4h,
		MarginTop:       &margin,
		MarginBottom:    &margin,
		MarginLeft:      &margin,
		MarginRight:     &margin,
	})
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return data, nil
}

// Close shuts the shared browser down.
func (r *ChromeRenderer) Close() error {
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}

// wrapDocument puts the assembled fragment in a minimal printable page. The
// fragment carries its own inline styles; only the base font and page width
// are supplied here.
func wrapDocument(body string) string {
	return `<!DOCTYPE html><html><head><meta charset="utf-8"><style>
body { font-family: "Times New Roman", serif; font-size: 12pt; color: #111; }
p { margin: 0 0 8px 0; }
</style></head><body>` + body + `</body></html>`
}
