package notify

import "testing"

func TestPublishAndDrain(t *testing.T) {
	bus := NewBus(4)

	bus.Success("post created")
	bus.Error("network error")

	events := bus.Drain()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Kind != KindSuccess || events[0].Message != "post created" {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[1].Kind != KindError {
		t.Errorf("unexpected second event: %+v", events[1])
	}

	if got := bus.Drain(); len(got) != 0 {
		t.Errorf("drain should clear the queue, got %d events", len(got))
	}
}

func TestPublishDropsOldestWhenFull(t *testing.T) {
	bus := NewBus(2)

	bus.Info("one")
	bus.Info("two")
	bus.Info("three")

	events := bus.Drain()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Message != "two" || events[1].Message != "three" {
		t.Errorf("oldest event should be dropped, got %+v", events)
	}
}
