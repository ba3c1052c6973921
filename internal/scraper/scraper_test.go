package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestScraper_PrefersOpenGraphTags(t *testing.T) {
	server := serve(t, `<html><head>
		<title>Some Store Page</title>
		<meta property="og:title" content="Galaxy S25" />
		<meta property="og:image" content="https://cdn.example.com/s25.jpg" />
	</head><body><h1>Ignored heading</h1></body></html>`)

	info, err := New(time.Second).Scrape(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Galaxy S25", info.Title)
	assert.Equal(t, "https://cdn.example.com/s25.jpg", info.Image)
}

func TestScraper_HandlesReversedAttributeOrder(t *testing.T) {
	server := serve(t, `<html><head>
		<meta content="iPhone 17 Pro" property="og:title" />
		<meta content="https://cdn.example.com/ip17.jpg" property="og:image" />
	</head></html>`)

	info, err := New(time.Second).Scrape(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "iPhone 17 Pro", info.Title)
	assert.Equal(t, "https://cdn.example.com/ip17.jpg", info.Image)
}

func TestScraper_FallsBackToTitleTag(t *testing.T) {
	server := serve(t, `<html><head>
		<title>Galaxy Z Flip 6 | Samsung</title>
	</head><body></body></html>`)

	info, err := New(time.Second).Scrape(context.Background(), server.URL)
	require.NoError(t, err)
	// The trailing site name is stripped.
	assert.Equal(t, "Galaxy Z Flip 6", info.Title)
	assert.Empty(t, info.Image)
}

func TestScraper_FallsBackToHeading(t *testing.T) {
	server := serve(t, `<html><head><title></title></head><body>
		<h1><span>Pixel 10</span></h1>
	</body></html>`)

	info, err := New(time.Second).Scrape(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Pixel 10", info.Title)
}

func TestScraper_SkipsImplausibleImages(t *testing.T) {
	server := serve(t, `<html><body>
		<img src="/assets/site-logo.png" />
		<img src="data:image/gif;base64,R0lGOD" />
		<img src="/images/tracking-pixel.gif" />
		<img src="/images/phone-front.jpg" />
	</body></html>`)

	info, err := New(time.Second).Scrape(context.Background(), server.URL)
	require.NoError(t, err)
	// Relative URLs resolve against the page.
	assert.Equal(t, server.URL+"/images/phone-front.jpg", info.Image)
}

func TestScraper_Non200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := New(time.Second).Scrape(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestScraper_EmptyPage(t *testing.T) {
	server := serve(t, "")

	info, err := New(time.Second).Scrape(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Empty(t, info.Title)
	assert.Empty(t, info.Image)
}
