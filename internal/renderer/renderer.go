// Package renderer loads the station's JavaScript-rendered page in a
// headless browser and extracts the visible text plus any structured
// schedule rows the markup provides.
package renderer

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/alessandroseni/spotisync/internal/config"
	"github.com/alessandroseni/spotisync/internal/logger"
	"github.com/alessandroseni/spotisync/internal/models"
	"github.com/alessandroseni/spotisync/pkg/utils"
)

// Result holds one render of the station page.
type Result struct {
	HTML string
	Text string
	Rows []models.ScheduleRow
}

// Renderer fetches and parses the station page.
type Renderer struct {
	cfg config.StationConfig
	log *logger.Logger
}

// NewRenderer creates a renderer for the configured station.
func NewRenderer(cfg config.StationConfig, log *logger.Logger) *Renderer {
	return &Renderer{cfg: cfg, log: log}
}

// Render fetches the page with retries, or reads the configured local
// file when one is set.
func (r *Renderer) Render(ctx context.Context) (*Result, error) {
	if r.cfg.IsLocalFile() {
		return r.RenderFile(r.cfg.LocalFile)
	}

	var lastErr error
	for attempt := 1; attempt <= r.cfg.Retry.MaxAttempts; attempt++ {
		if delay := r.cfg.Retry.GetRetryDelay(attempt); delay > 0 {
			r.log.Info("waiting before retry", "attempt", attempt, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := r.renderOnce(ctx)
		if err == nil {
			return result, nil
		}

		lastErr = err
		r.log.Warn("render attempt failed", "attempt", attempt, "error", err)
	}

	return nil, fmt.Errorf("all %d render attempts failed: %w", r.cfg.Retry.MaxAttempts, lastErr)
}

// renderOnce drives one headless browser session: navigate, wait for
// the schedule element, settle, capture. A schedule element that never
// appears downgrades to the settle wait alone, since some renders
// attach the grid under a different class.
func (r *Renderer) renderOnce(ctx context.Context) (*Result, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", r.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(utils.UserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, r.cfg.Retry.GetTimeout())
	defer cancelRun()

	r.log.Info("loading station page", "url", r.cfg.URL)

	if err := chromedp.Run(runCtx, chromedp.Navigate(r.cfg.URL)); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", r.cfg.URL, err)
	}

	waitCtx, cancelWait := context.WithTimeout(runCtx, r.cfg.WaitTimeout())
	err := chromedp.Run(waitCtx, chromedp.WaitVisible(r.cfg.ScheduleSelector, chromedp.ByQuery))
	cancelWait()

	if err != nil {
		r.log.Warn("schedule element not found, continuing with static wait",
			"selector", r.cfg.ScheduleSelector, "error", err)
	} else {
		r.log.Debug("schedule element visible", "selector", r.cfg.ScheduleSelector)
	}

	var html string
	if err := chromedp.Run(runCtx,
		chromedp.Sleep(r.cfg.SettleDelay()),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("failed to capture rendered page: %w", err)
	}

	return r.parseDocument(html)
}

// RenderFile parses a previously saved page from disk, for offline
// runs and fixtures.
func (r *Renderer) RenderFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read local page: %w", err)
	}

	r.log.Info("using local page file", "path", path, "bytes", len(data))

	return r.parseDocument(string(data))
}

// parseDocument extracts visible text and structured schedule rows
// from rendered HTML. The station's grid marks each day with a
// schedule-day block headed by an h3 and rows pairing a time span with
// a show title.
func (r *Renderer) parseDocument(html string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered page: %w", err)
	}

	result := &Result{
		HTML: html,
		Text: doc.Find("body").Text(),
	}

	doc.Find(".schedule-day").Each(func(_ int, day *goquery.Selection) {
		dayName := strings.TrimSpace(day.Find("h3").First().Text())

		day.Find(".schedule-row").Each(func(_ int, row *goquery.Selection) {
			result.Rows = append(result.Rows, models.ScheduleRow{
				Day:       dayName,
				TimeRange: strings.TrimSpace(row.Find(".schedule-time").First().Text()),
				ShowName:  strings.TrimSpace(row.Find(".schedule-show").First().Text()),
			})
		})
	})

	if len(result.Rows) > 0 {
		r.log.Info("extracted structured schedule rows", "rows", len(result.Rows))
	} else {
		r.log.Debug("no structured schedule rows in markup")
	}

	return result, nil
}
