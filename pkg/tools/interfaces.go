package tools

import (
	"context"
	"time"
)

// JSONCache is the subset of cache.Cache the lookup clients need.
// A nil JSONCache disables caching.
type JSONCache interface {
	Key(parts ...string) string
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type BatchItem struct {
	ID    string
	Input any
}

type BatchResult struct {
	ID    string
	Error error
}
