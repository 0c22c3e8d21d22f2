package assembly

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/daehyun/grant-agent/internal/scratch"
)

// A4 paper with the customary application form margins (20mm top/bottom,
// 15mm left/right), expressed in inches for the print API.
const (
	pdfPaperWidth   = 8.27
	pdfPaperHeight  = 11.69
	pdfMarginTop    = 0.79
	pdfMarginBottom = 0.79
	pdfMarginSide   = 0.59
)

// renderPDF renders the HTML rendition to PDF in a headless browser.
// Requires Chrome/Chromium on the system; absence surfaces as a render
// error and the chain falls through.
func (a *Assembler) renderPDF(ctx context.Context, req *Request, dir *scratch.Dir) ([]byte, error) {
	html, err := a.buildHTML(req)
	if err != nil {
		return nil, err
	}

	htmlPath, err := dir.WriteFile("document.html", html)
	if err != nil {
		return nil, err
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, a.RenderTimeout)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(pdfPaperWidth).
				WithPaperHeight(pdfPaperHeight).
				WithMarginTop(pdfMarginTop).
				WithMarginBottom(pdfMarginBottom).
				WithMarginLeft(pdfMarginSide).
				WithMarginRight(pdfMarginSide).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("browser PDF render failed: %w", err)
	}

	return pdf, nil
}
