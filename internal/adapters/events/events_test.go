package events_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"boutique_hotel/internal/adapters/events"
	"boutique_hotel/internal/domain"
)

func TestLogPublisher_WritesSubjectAndPayload(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	err := events.LogPublisher{}.Publish(context.Background(), domain.SubjectJourneySubmitted,
		domain.JourneySubmittedEvent{JourneyID: "j1", UserID: "u1"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"subject":"journey.submitted"`) || !strings.Contains(out, `"journey_id":"j1"`) {
		t.Fatalf("unexpected log line: %s", out)
	}
}

func TestLogPublisher_UnmarshalablePayload(t *testing.T) {
	if err := (events.LogPublisher{}).Publish(context.Background(), "x", make(chan int)); err == nil {
		t.Fatal("expected marshal error")
	}
}

func TestNewNATS_UnreachableServer(t *testing.T) {
	if _, err := events.NewNATS("nats://127.0.0.1:1"); err == nil {
		t.Fatal("expected connection error")
	}
}
