package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"servermaster/pkg/tools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><head><title>YouTube</title>
<script>var somethingElse = {"videoId":"AAAAAAAAAAA"};</script>
</head><body>
<script>var ytInitialData = {"contents":{"videoRenderer":{"videoId":"dQw4w9WgXcQ","title":"x"}},"more":{"videoId":"zzzzzzzzzzz"}};</script>
</body></html>`

func TestExtractVideoID_PrefersInitialData(t *testing.T) {
	id, ok := ExtractVideoID(resultsPage)
	require.True(t, ok)
	assert.Equal(t, "dQw4w9WgXcQ", id)
}

func TestExtractVideoID_FallsBackToWholePage(t *testing.T) {
	id, ok := ExtractVideoID(`<div data='{"videoId":"abc_DEF-123"}'></div>`)
	require.True(t, ok)
	assert.Equal(t, "abc_DEF-123", id)
}

func TestExtractVideoID_NoMatch(t *testing.T) {
	_, ok := ExtractVideoID(`<html><script>var ytInitialData = {"videoId":"short"};</script></html>`)
	assert.False(t, ok)
}

func TestWatchURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"))
}

func TestClient_FirstVideoID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/results", r.URL.Path)
		assert.Equal(t, "lofi 음악", r.URL.Query().Get("search_query"))
		w.Write([]byte(resultsPage))
	}))
	defer server.Close()

	c := NewClient(tools.NewFetchClient(time.Second), WithBaseURL(server.URL))
	id, err := c.FirstVideoID(context.Background(), "lofi 음악")
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", id)
}

func TestClient_FirstVideoID_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>nothing</body></html>"))
	}))
	defer server.Close()

	c := NewClient(tools.NewFetchClient(time.Second), WithBaseURL(server.URL))
	_, err := c.FirstVideoID(context.Background(), "q")
	assert.True(t, errors.Is(err, ErrNoResults))
}

func TestClient_FirstVideoID_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(tools.NewFetchClient(time.Second), WithBaseURL(server.URL))
	_, err := c.FirstVideoID(context.Background(), "q")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoResults))
}

type memCache struct {
	data map[string]string
}

func (m *memCache) Key(parts ...string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ":"
		}
		out += p
	}
	return out
}

func (m *memCache) GetJSON(ctx context.Context, key string, dest any) error {
	v, ok := m.data[key]
	if !ok {
		return errors.New("miss")
	}
	*(dest.(*string)) = v
	return nil
}

func (m *memCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.data[key] = value.(string)
	return nil
}

func TestClient_FirstVideoID_UsesCache(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(resultsPage))
	}))
	defer server.Close()

	cache := &memCache{data: map[string]string{}}
	c := NewClient(tools.NewFetchClient(time.Second), WithBaseURL(server.URL), WithCache(cache, time.Minute))

	for i := 0; i < 3; i++ {
		id, err := c.FirstVideoID(context.Background(), "Query")
		require.NoError(t, err)
		assert.Equal(t, "dQw4w9WgXcQ", id)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, "dQw4w9WgXcQ", cache.data["youtube:query"])
}
