// Package notify publishes ticket lifecycle events to RabbitMQ.
// Publishing is strictly fire-and-forget: errors are logged and
// returned so callers can ignore them, and a missing broker URL
// disables publishing entirely.  A lost event never fails the ticket
// update that produced it.
package notify

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

const ticketCerradoQueue = "ticket.cerrado"

// Publisher holds the broker URL.  An empty URL means publishing is
// disabled and Publish becomes a no-op.
type Publisher struct {
    URL string
}

func NewPublisher(url string) *Publisher { return &Publisher{URL: url} }

// PublishTicketCerrado sends a TicketCerradoEvent to the ticket.cerrado
// queue.  The connection is dialed per publish; events are rare enough
// (one per ticket closure) that holding a long-lived channel is not
// worth the reconnect handling.
func (p *Publisher) PublishTicketCerrado(ctx context.Context, event TicketCerradoEvent) error {
    if p == nil || p.URL == "" {
        return nil
    }
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        log.Printf("notify: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("notify: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // Idempotent declare; durable so events survive broker restarts.
    if _, err := ch.QueueDeclare(ticketCerradoQueue, true, false, false, false, nil); err != nil {
        log.Printf("notify: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("notify: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", ticketCerradoQueue, false, false, pub); err != nil {
        log.Printf("notify: publish failed: %v", err)
        return err
    }
    return nil
}
