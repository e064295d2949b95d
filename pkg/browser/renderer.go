package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const DefaultTimeout = 45 * time.Second

// Renderer loads JavaScript-rendered listing pages in headless Chrome and
// returns the resulting document.
type Renderer struct {
	opts    []chromedp.ExecAllocatorOption
	timeout time.Duration
	logger  *zap.Logger
}

// NewRenderer configures headless Chrome. An empty execPath lets chromedp
// locate the browser itself.
func NewRenderer(execPath string, timeout time.Duration, logger *zap.Logger) *Renderer {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"),
	)
	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Renderer{
		opts:    opts,
		timeout: timeout,
		logger:  logger,
	}
}

// Render navigates to pageURL, waits until waitSelector is ready and returns
// the outer HTML of the page.
func (r *Renderer) Render(ctx context.Context, pageURL, waitSelector string) (string, error) {
	if waitSelector == "" {
		waitSelector = "body"
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, r.opts...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	taskCtx, timeoutCancel := context.WithTimeout(taskCtx, r.timeout)
	defer timeoutCancel()

	r.logger.Info("rendering listing", zap.String("url", pageURL), zap.String("wait", waitSelector))

	var html string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady(waitSelector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", pageURL, err)
	}

	r.logger.Debug("listing rendered", zap.String("url", pageURL), zap.Int("bytes", len(html)))
	return html, nil
}
