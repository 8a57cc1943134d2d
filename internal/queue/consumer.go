package queue

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// SystemMessage is the fixed text of the interaction the worker appends
// to each dequeued ticket.
const SystemMessage = "Procesado por batch"

// popTimeout bounds the BLPOP wait so the loop wakes periodically even
// when the queue is empty.
const popTimeout = 5 * time.Second

// Consumer drains cola_batch and appends one interaction per item.  It
// alternates between two states: idle, blocked on BLPOP with a bounded
// wait, and processing exactly one dequeued ticket id.  A failed item
// is logged and dropped, never re-queued; the loop itself must survive
// any per-item error.  The consumer shares no process memory with the
// API: only the database and the queue connect the two.
type Consumer struct {
	DB    *sql.DB
	Redis *redis.Client
}

func NewConsumer(db *sql.DB, rdb *redis.Client) *Consumer {
	return &Consumer{DB: db, Redis: rdb}
}

// Run loops forever.  There is no shutdown signal; the process is
// terminated externally.
func (c *Consumer) Run() {
	log.Printf("worker: consuming %s", Name)
	for {
		c.poll()
		time.Sleep(time.Second)
	}
}

// poll performs one idle->processing->idle cycle: a single bounded
// blocking pop and, if an item arrived, one write.
func (c *Consumer) poll() {
	ctx := context.Background()
	vals, err := c.Redis.BLPop(ctx, popTimeout, Name).Result()
	if err != nil {
		if err != redis.Nil { // redis.Nil is just the timeout
			log.Printf("worker: blpop failed: %v", err)
		}
		return
	}
	// BLPop returns (queue name, value).
	if len(vals) != 2 {
		return
	}
	value := vals[1]

	ticketID, err := parseTicketID(value)
	if err != nil {
		log.Printf("worker: dropping item: %v", err)
		return
	}
	log.Printf("worker: processing ticket %d", ticketID)
	if err := c.process(ctx, ticketID); err != nil {
		// The item is already popped; it is not pushed back.  Losing
		// it on failure is the documented at-most-once contract.
		log.Printf("worker: ticket %d failed: %v", ticketID, err)
	}
}

// process appends the system interaction for one ticket on a connection
// scoped to this item: acquired from the pool, released on every exit
// path.  The row has no author (usuario_id stays NULL) and is public.
func (c *Consumer) process(ctx context.Context, ticketID uint64) error {
	conn, err := c.DB.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.ExecContext(ctx,
		"INSERT INTO Interacciones (ticket_id, mensaje) VALUES (?, ?)",
		ticketID, SystemMessage)
	return err
}
