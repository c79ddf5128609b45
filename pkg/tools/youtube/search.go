package youtube

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"servermaster/pkg/tools"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const defaultBaseURL = "https://www.youtube.com"

// ErrNoResults means the results page contained no video id.
var ErrNoResults = errors.New("youtube: no results")

var videoIDRegex = regexp.MustCompile(`"videoId":"([a-zA-Z0-9_-]{11})"`)

type Client struct {
	fetch    *tools.FetchClient
	baseURL  string
	cache    tools.JSONCache
	cacheTTL time.Duration
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithCache stores query → video id lookups for ttl.
func WithCache(cache tools.JSONCache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

func NewClient(fetch *tools.FetchClient, opts ...Option) *Client {
	c := &Client{
		fetch:   fetch,
		baseURL: defaultBaseURL,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SearchURL is the results page for query.
func (c *Client) SearchURL(query string) string {
	return c.baseURL + "/results?search_query=" + url.QueryEscape(query)
}

// WatchURL builds the public link for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// FirstVideoID returns the id of the first video on the results page for query.
func (c *Client) FirstVideoID(ctx context.Context, query string) (string, error) {
	var key string
	if c.cache != nil {
		key = c.cache.Key("youtube", strings.ToLower(query))
		var cached string
		if err := c.cache.GetJSON(ctx, key, &cached); err == nil && cached != "" {
			return cached, nil
		}
	}

	body, err := c.fetch.Get(ctx, c.SearchURL(query), map[string]string{
		"Accept": "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	})
	if err != nil {
		return "", fmt.Errorf("fetch results page: %w", err)
	}

	id, ok := ExtractVideoID(string(body))
	if !ok {
		return "", ErrNoResults
	}

	if c.cache != nil {
		if err := c.cache.SetJSON(ctx, key, id, c.cacheTTL); err != nil {
			log.Printf("[YouTube] Error caching result for %q: %v", query, err)
		}
	}
	return id, nil
}

// ExtractVideoID looks for the first video id inside the ytInitialData script
// and falls back to scanning the whole page.
func ExtractVideoID(page string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err == nil {
		var found string
		doc.Find("script").EachWithBreak(func(i int, s *goquery.Selection) bool {
			script := scriptText(s)
			if !strings.Contains(script, "ytInitialData") {
				return true
			}
			if m := videoIDRegex.FindStringSubmatch(script); len(m) == 2 {
				found = m[1]
				return false
			}
			return true
		})
		if found != "" {
			return found, true
		}
	}

	if m := videoIDRegex.FindStringSubmatch(page); len(m) == 2 {
		return m[1], true
	}
	return "", false
}

func scriptText(s *goquery.Selection) string {
	if len(s.Nodes) == 0 {
		return ""
	}
	var sb strings.Builder
	for n := s.Nodes[0].FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
	}
	return sb.String()
}
