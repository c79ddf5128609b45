package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"servermaster/pkg/tools"
)

const (
	defaultBaseURL = "https://store.steampowered.com"
	storeAppURL    = "https://store.steampowered.com/app/"
)

// Special is one discounted item from the featured categories listing.
type Special struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	DiscountPercent int    `json:"discount_percent"`
	FinalPrice      int64  `json:"final_price"`
}

type featuredCategories struct {
	Specials struct {
		Items []Special `json:"items"`
	} `json:"specials"`
}

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

func WithCache(cache tools.JSONCache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

func NewClient(fetch *tools.FetchClient, opts ...Option) *Client {
	c := &Client{fetch: fetch, baseURL: defaultBaseURL}
	for _, o := range opts {
		o(c)
	}
	return c
}

// FeaturedSpecials returns the store's current specials in listing order.
func (c *Client) FeaturedSpecials(ctx context.Context) ([]Special, error) {
	var key string
	if c.cache != nil {
		key = c.cache.Key("steam", "specials")
		var cached []Special
		if err := c.cache.GetJSON(ctx, key, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	body, err := c.fetch.Get(ctx, c.baseURL+"/api/featuredcategories", map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("fetch featured categories: %w", err)
	}

	var resp featuredCategories
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode featured categories: %w", err)
	}

	items := resp.Specials.Items
	if c.cache != nil && len(items) > 0 {
		if err := c.cache.SetJSON(ctx, key, items, c.cacheTTL); err != nil {
			log.Printf("[Steam] Error caching specials: %v", err)
		}
	}
	return items, nil
}

// StoreURL links to an app's store page.
func StoreURL(appID int) string {
	return storeAppURL + strconv.Itoa(appID)
}

// FormatPrice renders a price given in minor units, e.g. 1250 → "12.5".
func FormatPrice(minor int64) string {
	return strconv.FormatFloat(float64(minor)/100, 'f', -1, 64)
}

// FormatEntry renders one special as a chat entry.
func FormatEntry(s Special, currency string) string {
	return fmt.Sprintf("🎮 [%s](%s)\n- 할인율: %d%%\n- 현재가: %s%s",
		s.Name, StoreURL(s.ID), s.DiscountPercent, FormatPrice(s.FinalPrice), currency)
}

// FormatEntries renders at most max specials; max <= 0 means all.
func FormatEntries(items []Special, max int, currency string) []string {
	if max > 0 && len(items) > max {
		items = items[:max]
	}
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, FormatEntry(s, currency))
	}
	return out
}

// Header is the title line for a list of n entries.
func Header(n int) string {
	return fmt.Sprintf("🔥 **현재 스팀 할인 게임 TOP %d** 🔥", n)
}
