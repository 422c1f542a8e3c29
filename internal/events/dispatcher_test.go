package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hirebridge/placement-service/internal/events"
)

func TestPublish_InvokesSubscribersInOrder(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var calls []string
	dispatcher.Subscribe(events.EventCandidateSubmitted, func(_ context.Context, _ events.Event) error {
		calls = append(calls, "first")
		return nil
	})
	dispatcher.Subscribe(events.EventCandidateSubmitted, func(_ context.Context, _ events.Event) error {
		calls = append(calls, "second")
		return nil
	})
	dispatcher.Subscribe(events.EventPayoutCreated, func(_ context.Context, _ events.Event) error {
		calls = append(calls, "other-type")
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventCandidateSubmitted})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("calls = %v, want [first second]", calls)
	}
}

func TestPublish_HandlerErrorsDoNotPropagate(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var delivered bool
	dispatcher.Subscribe(events.EventJoiningConfirmed, func(_ context.Context, _ events.Event) error {
		return errors.New("smtp down")
	})
	dispatcher.Subscribe(events.EventJoiningConfirmed, func(_ context.Context, _ events.Event) error {
		delivered = true
		return nil
	})

	if err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventJoiningConfirmed}); err != nil {
		t.Fatalf("Publish returned handler error: %v", err)
	}
	if !delivered {
		t.Error("later handler not invoked after an earlier failure")
	}
}

func TestPublish_NoSubscribers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	if err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventOfferMade}); err != nil {
		t.Errorf("Publish with no subscribers returned %v", err)
	}
}
