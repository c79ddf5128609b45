package giphy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"path"
	"strings"

	"servermaster/pkg/tools"
	"servermaster/pkg/tools/media"
)

const defaultBaseURL = "https://api.giphy.com"

var (
	ErrMissingAPIKey = errors.New("giphy: api key not configured")
	// ErrNoImage means the API answered but carried no image url.
	ErrNoImage = errors.New("giphy: response has no image")
)

type randomResponse struct {
	Data struct {
		ID     string `json:"id"`
		Images struct {
			Original struct {
				URL string `json:"url"`
			} `json:"original"`
		} `json:"images"`
	} `json:"data"`
}

// Meme is a downloaded image ready to attach to a message.
type Meme struct {
	URL  string
	Name string
	Data []byte
}

type Client struct {
	fetch   *tools.FetchClient
	apiKey  string
	baseURL string
	tag     string
	rating  string
	images  *media.ImageProcessor
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithImageProcessor(p *media.ImageProcessor) Option {
	return func(c *Client) { c.images = p }
}

func NewClient(fetch *tools.FetchClient, apiKey string, opts ...Option) *Client {
	c := &Client{
		fetch:   fetch,
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: defaultBaseURL,
		tag:     "meme",
		rating:  "pg-13",
		images:  media.NewImageProcessor(media.DefaultCompressionOptions()),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// RandomMemeURL asks the random endpoint for one image url.
func (c *Client) RandomMemeURL(ctx context.Context) (string, error) {
	if !c.Configured() {
		return "", ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("tag", c.tag)
	q.Set("rating", c.rating)

	body, err := c.fetch.Get(ctx, c.baseURL+"/v1/gifs/random?"+q.Encode(), map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("giphy random: %w", err)
	}

	var resp randomResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode giphy response: %w", err)
	}
	if resp.Data.Images.Original.URL == "" {
		return "", ErrNoImage
	}
	return resp.Data.Images.Original.URL, nil
}

// RandomMeme fetches a random meme and downloads it, shrinking it when it is
// too large to upload.
func (c *Client) RandomMeme(ctx context.Context) (*Meme, error) {
	imageURL, err := c.RandomMemeURL(ctx)
	if err != nil {
		return nil, err
	}

	data, err := c.fetch.Get(ctx, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("download meme: %w", err)
	}

	name := fileName(imageURL)
	out, outName, info, err := c.images.FitUpload(data, name)
	if err != nil {
		return nil, fmt.Errorf("fit meme: %w", err)
	}
	if outName != name {
		log.Printf("[Giphy] Shrunk %s from %d to %d bytes", name, len(data), info.SizeBytes)
	}

	return &Meme{URL: imageURL, Name: outName, Data: out}, nil
}

func fileName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "meme.gif"
	}
	base := path.Base(u.Path)
	if base == "" || base == "." || base == "/" || path.Ext(base) == "" {
		return "meme.gif"
	}
	return base
}
