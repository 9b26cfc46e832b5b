package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/venue-simulator/internal/logger"
)

// Consumer drains the sales queue into an append-only log file.
type Consumer struct {
	URL     string
	Queue   string
	LogPath string
	Log     *logger.Logger
}

// Run connects to the broker and consumes until ctx is cancelled. Dial
// failures back off exponentially up to 30s; a closed delivery channel
// triggers a reconnect. A message that cannot be handled is rejected
// without requeue so it does not loop.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			c.Log.Warn(c.Log.WithField(ctx, "retry_in", backoff.String()), fmt.Sprintf("sales-consumer: dial failed: %v", err))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.Log.Warn(ctx, fmt.Sprintf("sales-consumer: consume loop ended: %v; reconnecting", err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.Log.Warn(ctx, fmt.Sprintf("sales-consumer: set QoS failed: %v", err))
	}
	if _, err := declare(ch, c.Queue); err != nil {
		return err
	}
	msgs, err := ch.ConsumeWithContext(ctx, c.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	c.Log.Info(c.Log.WithField(ctx, "queue", c.Queue), "sales-consumer: consuming")
	for d := range msgs {
		if err := AppendSale(c.LogPath, d.Body); err != nil {
			c.Log.Error(ctx, "sales-consumer: handle message failed", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// AppendSale decodes one message and appends its log line to path,
// creating the parent directory when needed.
func AppendSale(path string, body []byte) error {
	var e Envelope
	if err := json.Unmarshal(body, &e); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line, err := FormatLine(e)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders an event as one human-readable line.
func FormatLine(e Envelope) (string, error) {
	switch {
	case e.Type == TypeTicketIssued && e.Ticket != nil:
		t := e.Ticket
		return fmt.Sprintf("[%s] Ticket issued | ticket_id=%d | customer=%s | match=\"%s\" | venue=\"%s\" | zone=%s | seat=(%s) | discount=%s | total=%s\n",
			e.OccurredAt, t.TicketID, t.CustomerID, t.Match, t.Venue, t.Zone, t.Seat, t.Discount, t.Total), nil
	case e.Type == TypeInvoiceIssued && e.Invoice != nil:
		inv := e.Invoice
		items := make([]string, len(inv.Lines))
		for i, l := range inv.Lines {
			items[i] = fmt.Sprintf("%dx%s", l.Quantity, l.Product)
		}
		return fmt.Sprintf("[%s] Invoice issued | customer=%s | match_id=%s | stand=\"%s\" | items=[%s] | discount=%s | total=%s\n",
			e.OccurredAt, inv.CustomerID, inv.MatchID, inv.Stand, strings.Join(items, ","), inv.Discount, inv.Total), nil
	}
	return "", fmt.Errorf("unsupported event type %q", e.Type)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
