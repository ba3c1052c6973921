// Package scraper extracts phone model names and product images from
// manufacturer and retailer pages, for pre-filling catalog entries.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/casepix/casepix-backend/pkg/logger"
)

// MobileInfo is what a page yields: a best-effort title and image URL.
// Either field may be empty when nothing plausible was found.
type MobileInfo struct {
	Title string `json:"title"`
	Image string `json:"image"`
}

type Scraper struct {
	client *http.Client
}

func New(timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Scraper{
		client: &http.Client{Timeout: timeout},
	}
}

var (
	ogTitleRe    = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:title["'][^>]+content=["']([^"']+)["']`)
	ogTitleAlt   = regexp.MustCompile(`(?i)<meta[^>]+content=["']([^"']+)["'][^>]+property=["']og:title["']`)
	ogImageRe    = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:image["'][^>]+content=["']([^"']+)["']`)
	ogImageAlt   = regexp.MustCompile(`(?i)<meta[^>]+content=["']([^"']+)["'][^>]+property=["']og:image["']`)
	titleTagRe   = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	h1TagRe      = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
	imgTagRe     = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["']`)
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	siteSuffixRe = regexp.MustCompile(`\s*[|\-–]\s*[^|\-–]+$`)
)

// Scrape fetches a page and extracts a title and image. Strategies run in
// order of reliability: Open Graph tags first, then the document title,
// then the first heading, then the first plausible product image.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (*MobileInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; CasePixBot/1.0)")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn("Scrape request failed", map[string]interface{}{
			"url":   pageURL,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch page: unexpected status %d", resp.StatusCode)
	}

	// 2MB is plenty for the head of any product page.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	html := string(body)

	info := &MobileInfo{
		Title: extractTitle(html),
		Image: extractImage(html, pageURL),
	}

	logger.Debug("Scraped page", map[string]interface{}{
		"url":       pageURL,
		"has_title": info.Title != "",
		"has_image": info.Image != "",
	})
	return info, nil
}

func extractTitle(html string) string {
	for _, re := range []*regexp.Regexp{ogTitleRe, ogTitleAlt} {
		if m := re.FindStringSubmatch(html); m != nil {
			return cleanTitle(m[1])
		}
	}
	if m := titleTagRe.FindStringSubmatch(html); m != nil {
		if title := cleanTitle(m[1]); title != "" {
			return title
		}
	}
	if m := h1TagRe.FindStringSubmatch(html); m != nil {
		return cleanTitle(m[1])
	}
	return ""
}

func extractImage(html, pageURL string) string {
	for _, re := range []*regexp.Regexp{ogImageRe, ogImageAlt} {
		if m := re.FindStringSubmatch(html); m != nil {
			return absolutize(m[1], pageURL)
		}
	}

	// Fall back to the first img that looks like a product shot rather
	// than an icon or tracking pixel.
	for _, m := range imgTagRe.FindAllStringSubmatch(html, 20) {
		src := m[1]
		if plausibleProductImage(src) {
			return absolutize(src, pageURL)
		}
	}
	return ""
}

// cleanTitle strips markup, entities-adjacent whitespace, and trailing site
// names ("Galaxy S25 | Samsung" becomes "Galaxy S25").
func cleanTitle(raw string) string {
	title := htmlTagRe.ReplaceAllString(raw, "")
	title = strings.TrimSpace(title)
	title = siteSuffixRe.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}

func plausibleProductImage(src string) bool {
	lower := strings.ToLower(src)
	if strings.HasPrefix(lower, "data:") {
		return false
	}
	for _, skip := range []string{"logo", "icon", "sprite", "pixel", "tracking", "banner"} {
		if strings.Contains(lower, skip) {
			return false
		}
	}
	return true
}

// absolutize resolves a possibly relative image URL against the page URL.
func absolutize(src, pageURL string) string {
	srcURL, err := url.Parse(strings.TrimSpace(src))
	if err != nil {
		return ""
	}
	if srcURL.IsAbs() {
		return srcURL.String()
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return src
	}
	return base.ResolveReference(srcURL).String()
}
