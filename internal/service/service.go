package service

import (
	"context"
	"time"
)

// Cache invalidation gets its own short deadline so a slow Redis never
// holds up the write path that triggered it.
func newInvalidateContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Second)
}
