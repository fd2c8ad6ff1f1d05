// Package sources fetches decision text from a web page so it can be analyzed.
package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrInvalidURL is returned for anything other than an absolute http(s) URL.
var ErrInvalidURL = errors.New("invalid source url")

// maxBody caps how much of a page is read.
const maxBody = 5 << 20

// contentSelectors are tried in order; the first non-empty match wins.
var contentSelectors = []string{"#contentBody", "#bodyContent", "article", "main", "body"}

const blockSelectors = "p, div, br, li, tr, h1, h2, h3, h4, h5, h6, pre, blockquote, section, table"

// Source is the readable text of one page.
type Source struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Fetcher downloads pages and reduces them to plain text.
type Fetcher struct {
	client *http.Client
}

// NewFetcher wires an HTTP client; nil gets a client with a 20s timeout.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Fetcher{client: client}
}

// Fetch downloads rawURL and extracts its title and body text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Source, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "JurisNote/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return &Source{
		URL:   u.String(),
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		Text:  ExtractText(doc),
	}, nil
}

// ExtractText returns the readable text of the main content, one block per line.
func ExtractText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, nav, header, footer, iframe").Remove()

	var content *goquery.Selection
	for _, sel := range contentSelectors {
		s := doc.Find(sel).First()
		if strings.TrimSpace(s.Text()) != "" {
			content = s
			break
		}
	}
	if content == nil {
		return ""
	}

	content.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	return collapseLines(content.Text())
}

// collapseLines trims each line and drops empty ones.
func collapseLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
