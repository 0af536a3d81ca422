package ratelimit

import (
	"context"
	"time"
)

// Window is the period a request budget applies to
const Window = time.Minute

// Limiter decides whether a client identified by key may perform another request
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
