// Package queue implements both sides of the cola_batch work queue: a
// plain Redis list holding ticket ids as strings.  Producers RPUSH onto
// the list; the batch worker BLPOPs from it.  Items carry no dedup key,
// so a producer pushing the same id twice results in two interactions.
package queue

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Name of the shared work queue list.
const Name = "cola_batch"

// Push enqueues a ticket id for the batch worker.  This is the producer
// side of the wire contract; the API itself does not push (producers
// are external), but the contract lives here next to the consumer.
func Push(ctx context.Context, client *redis.Client, ticketID uint64) error {
	return client.RPush(ctx, Name, strconv.FormatUint(ticketID, 10)).Err()
}

// parseTicketID validates a dequeued value.  The queue carries plain
// string ids; anything non-numeric is a producer bug and the item is
// dropped.
func parseTicketID(value string) (uint64, error) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("queue: bad ticket id %q: %w", value, err)
	}
	return id, nil
}
