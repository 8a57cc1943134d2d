// Package cache implements the best-effort ticket-status cache.  A
// cache entry maps a ticket id to its last-known estado string with a
// five minute TTL.  The cache is a disposable projection: it is never
// authoritative, and the read path that populates it still issues the
// full row query (see the note on Peek).  Any Redis failure is logged
// and swallowed so the surrounding request never fails on cache issues.
package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL of a cache entry.
const EntryTTL = 5 * time.Minute

// TicketCache wraps a Redis client that may be nil.  A nil client (for
// example when Redis was unreachable at startup) turns every method
// into a no-op, which is the correct degradation for a best-effort
// cache.
type TicketCache struct {
	Client *redis.Client
}

func NewTicketCache(client *redis.Client) *TicketCache {
	return &TicketCache{Client: client}
}

// Key returns the cache key for a ticket id.
func Key(ticketID uint64) string {
	return fmt.Sprintf("ticket:%d", ticketID)
}

// Invalidate deletes the cache entry for a ticket.  It is idempotent
// and never fails the surrounding operation: a write that committed
// must not be reported as failed because the cache was unreachable.
func (c *TicketCache) Invalidate(ctx context.Context, ticketID uint64) {
	if c == nil || c.Client == nil {
		return
	}
	if err := c.Client.Del(ctx, Key(ticketID)).Err(); err != nil {
		log.Printf("cache: invalidate %s failed: %v", Key(ticketID), err)
	}
}

// Peek returns the cached estado for a ticket, or ok=false on a miss or
// any error.  As built, the single-ticket read path calls Peek before
// its row query but only logs the hit; the cached value never
// short-circuits the query.  That matches the original behavior of the
// system and is kept deliberately rather than silently turned into a
// true read-through.
func (c *TicketCache) Peek(ctx context.Context, ticketID uint64) (string, bool) {
	if c == nil || c.Client == nil {
		return "", false
	}
	v, err := c.Client.Get(ctx, Key(ticketID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache: peek %s failed: %v", Key(ticketID), err)
		}
		return "", false
	}
	return v, true
}

// Store writes the estado for a ticket with the fixed TTL.  Best-effort
// like everything else here.
func (c *TicketCache) Store(ctx context.Context, ticketID uint64, estado string) {
	if c == nil || c.Client == nil {
		return
	}
	if err := c.Client.SetEx(ctx, Key(ticketID), estado, EntryTTL).Err(); err != nil {
		log.Printf("cache: store %s failed: %v", Key(ticketID), err)
	}
}

// Ping reports cache connectivity for the health endpoint.
func (c *TicketCache) Ping(ctx context.Context) bool {
	if c == nil || c.Client == nil {
		return false
	}
	return c.Client.Ping(ctx).Err() == nil
}
