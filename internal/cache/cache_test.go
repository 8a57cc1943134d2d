package cache

import (
	"context"
	"testing"
)

func TestKeyFormat(t *testing.T) {
	t.Parallel()

	if got := Key(42); got != "ticket:42" {
		t.Fatalf("Key(42) = %q, want %q", got, "ticket:42")
	}
}

// A nil client must turn every operation into a safe no-op: the cache
// is best-effort and the API runs without Redis.
func TestNilClientDegradation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := NewTicketCache(nil)

	c.Invalidate(ctx, 1)
	c.Store(ctx, 1, "abierto")
	if _, ok := c.Peek(ctx, 1); ok {
		t.Fatal("peek on nil client must miss")
	}
	if c.Ping(ctx) {
		t.Fatal("ping on nil client must report down")
	}

	// Same guarantees on a nil *TicketCache receiver.
	var nilCache *TicketCache
	nilCache.Invalidate(ctx, 1)
	nilCache.Store(ctx, 1, "abierto")
	if _, ok := nilCache.Peek(ctx, 1); ok {
		t.Fatal("peek on nil cache must miss")
	}
}
