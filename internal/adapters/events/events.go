// Package events publishes journey lifecycle events.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATS(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("boutique-api"),
		nats.Timeout(3*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (n *NATSPublisher) Publish(_ context.Context, subject string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	log.Debug().Str("subject", subject).RawJSON("payload", b).Msg("publishing event")
	return n.conn.Publish(subject, b)
}

// Close flushes buffered messages before closing the connection.
func (n *NATSPublisher) Close() error {
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
		return err
	}
	return nil
}

// LogPublisher only writes events to the log. Used when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, subject string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	log.Info().Str("subject", subject).RawJSON("payload", b).Msg("event")
	return nil
}

func (LogPublisher) Close() error { return nil }
