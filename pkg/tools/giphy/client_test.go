package giphy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"servermaster/pkg/tools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomMemeURL_MissingKey(t *testing.T) {
	c := NewClient(tools.NewFetchClient(time.Second), "  ")
	assert.False(t, c.Configured())

	_, err := c.RandomMemeURL(context.Background())
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}

func TestRandomMemeURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/gifs/random", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("api_key"))
		assert.Equal(t, "meme", r.URL.Query().Get("tag"))
		assert.Equal(t, "pg-13", r.URL.Query().Get("rating"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"id":"x","images":{"original":{"url":"https://media.giphy.com/media/x/giphy.gif"}}}}`)
	}))
	defer server.Close()

	c := NewClient(tools.NewFetchClient(time.Second), "secret", WithBaseURL(server.URL))
	u, err := c.RandomMemeURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://media.giphy.com/media/x/giphy.gif", u)
}

func TestRandomMemeURL_NoImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer server.Close()

	c := NewClient(tools.NewFetchClient(time.Second), "secret", WithBaseURL(server.URL))
	_, err := c.RandomMemeURL(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMissingAPIKey))
}

func TestRandomMemeURL_EmptyURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"images":{"original":{"url":""}}}}`)
	}))
	defer server.Close()

	c := NewClient(tools.NewFetchClient(time.Second), "secret", WithBaseURL(server.URL))
	_, err := c.RandomMemeURL(context.Background())
	assert.True(t, errors.Is(err, ErrNoImage))
}

func TestRandomMeme_Downloads(t *testing.T) {
	gif := []byte("GIF89a-small")
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/v1/gifs/random", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data":{"images":{"original":{"url":"%s/media/funny.gif"}}}}`, server.URL)
	})
	mux.HandleFunc("/media/funny.gif", func(w http.ResponseWriter, r *http.Request) {
		w.Write(gif)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	c := NewClient(tools.NewFetchClient(time.Second), "secret", WithBaseURL(server.URL))
	meme, err := c.RandomMeme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "funny.gif", meme.Name)
	assert.Equal(t, gif, meme.Data)
	assert.Equal(t, server.URL+"/media/funny.gif", meme.URL)
}

func TestRandomMeme_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := NewClient(tools.NewFetchClient(time.Second), "secret", WithBaseURL(server.URL))
	_, err := c.RandomMeme(context.Background())
	require.Error(t, err)

	var statusErr *tools.StatusError
	assert.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.Status)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "giphy.gif", fileName("https://media.giphy.com/media/abc/giphy.gif?cid=1"))
	assert.Equal(t, "meme.gif", fileName("https://media.giphy.com/"))
	assert.Equal(t, "meme.gif", fileName("https://media.giphy.com/media/abc/giphy"))
}
