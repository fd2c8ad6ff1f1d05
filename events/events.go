// Package events announces saved case notes to other systems over NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// DefaultSubject is the subject used when none is configured.
const DefaultSubject = "jurisnote.notes.saved"

// NoteSaved is emitted after a note row has been appended to the store.
type NoteSaved struct {
	Revision   string    `json:"revision"`
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Date       string    `json:"date"`
	Categories string    `json:"categories"`
	URL        string    `json:"url,omitempty"`
	SavedAt    time.Time `json:"saved_at"`
}

// Publisher sends notebook events. Failures never undo a save.
type Publisher interface {
	PublishNoteSaved(ctx context.Context, ev NoteSaved) error
	Close()
}

// Noop discards every event. Used when NATS_URL is unset.
type Noop struct{}

func (Noop) PublishNoteSaved(context.Context, NoteSaved) error { return nil }
func (Noop) Close()                                          {}

// NATSPublisher publishes events as JSON on a single subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

// NewNATSPublisher connects to url. The connection keeps retrying in the
// background so a broker restart does not take the service down.
func NewNATSPublisher(url, subject string, logger *slog.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if subject == "" {
		subject = DefaultSubject
	}
	nc, err := nats.Connect(url,
		nats.Name("jurisnote"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &NATSPublisher{conn: nc, subject: subject, logger: logger}, nil
}

// Subject returns the subject events are published on.
func (p *NATSPublisher) Subject() string {
	return p.subject
}

// PublishNoteSaved marshals ev and publishes it.
func (p *NATSPublisher) PublishNoteSaved(ctx context.Context, ev NoteSaved) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
