package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/infrastructure/config"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

// PageFetcher fetches a recipe page and bounds it for prompting.
type PageFetcher struct {
	config *config.ExtractConfig
	client *http.Client
}

func NewPageFetcher(cfg *config.ExtractConfig) *PageFetcher {
	return &PageFetcher{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Fetch GETs the page with a browser-like user agent and returns at most
// HTMLLimit characters of it. Script and style noise is dropped first so
// the budget is spent on content; whatever falls past the limit is simply
// unavailable to the model.
func (f *PageFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", common.NewValidationError("Ogiltig URL")
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", common.NewUpstreamFetchError("Kunde inte hämta sidan", http.StatusBadRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", common.NewUpstreamFetchError(
			fmt.Sprintf("Kunde inte hämta sidan: %d", resp.StatusCode),
			http.StatusBadRequest, nil,
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", common.NewUpstreamFetchError("Kunde inte läsa sidan", http.StatusBadRequest, err)
	}

	html := stripNoise(string(body))
	return common.Truncate(html, f.config.HTMLLimit), nil
}

// stripNoise removes elements that eat prompt budget without carrying
// recipe content. Falls back to the raw HTML if parsing fails.
func stripNoise(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	doc.Find("script, style, noscript, nav, footer, iframe, svg").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	cleaned, err := doc.Html()
	if err != nil {
		return html
	}
	return cleaned
}
