package tools

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchExecutor_ProcessKeepsOrder(t *testing.T) {
	e := NewBatchExecutor(2)
	items := []BatchItem{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	var calls int32
	results := e.Process(context.Background(), items, func(ctx context.Context, item BatchItem) error {
		atomic.AddInt32(&calls, 1)
		if item.ID == "b" {
			return errors.New("boom")
		}
		return nil
	})

	require.Len(t, results, 3)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, "a", results[0].ID)
	assert.NoError(t, results[0].Error)
	assert.EqualError(t, results[1].Error, "boom")
	assert.EqualError(t, FirstError(results), "boom")
}

func TestBatchExecutor_CancelledContext(t *testing.T) {
	e := NewBatchExecutor(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := e.Process(ctx, []BatchItem{{ID: "x"}}, func(ctx context.Context, item BatchItem) error {
		return nil
	})
	// Either the item ran or it observed the cancelled context; both are valid outcomes.
	require.Len(t, results, 1)
	if results[0].Error != nil {
		assert.ErrorIs(t, results[0].Error, context.Canceled)
	}
}

func TestFetchClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.Equal(t, "yes", r.Header.Get("X-Test"))
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	c := NewFetchClient(time.Second)
	body, err := c.Get(context.Background(), server.URL, map[string]string{"X-Test": "yes"})
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
}

func TestFetchClient_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewFetchClient(time.Second).Get(context.Background(), server.URL, nil)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.Status)
}
