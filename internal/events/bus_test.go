package events_test

import (
	"testing"
	"time"

	"github.com/openmenuboard/menuboard/internal/events"
	"github.com/openmenuboard/menuboard/internal/models"
)

func TestBroadcasterSubscribePublish(t *testing.T) {
	bus := events.NewBroadcaster()

	ch := bus.Subscribe("display-1")
	bus.Publish(models.ChangeEvent{Type: models.EventMenuChanged, SelectedDay: "monday"})

	select {
	case got := <-ch:
		if got.Type != models.EventMenuChanged {
			t.Errorf("type = %q, want %q", got.Type, models.EventMenuChanged)
		}
		if got.SelectedDay != "monday" {
			t.Errorf("selectedDay = %q, want monday", got.SelectedDay)
		}
		if got.UpdateID == 0 {
			t.Error("updateId not stamped")
		}
		if got.Timestamp.IsZero() {
			t.Error("timestamp not stamped")
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timed out waiting for event")
	}
}

func TestBroadcasterUpdateIDsIncrease(t *testing.T) {
	bus := events.NewBroadcaster()
	ch := bus.Subscribe("display-1")

	bus.Publish(models.ChangeEvent{Type: models.EventMenuChanged})
	bus.Publish(models.ChangeEvent{Type: models.EventWeeklyMenuChanged})
	bus.Publish(models.ChangeEvent{Type: models.EventMenuChanged})

	var last int64
	for i := 0; i < 3; i++ {
		select {
		case ev := <-ch:
			if ev.UpdateID <= last {
				t.Errorf("updateId %d not greater than previous %d", ev.UpdateID, last)
			}
			last = ev.UpdateID
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
}

func TestBroadcasterDeliversToAllSubscribers(t *testing.T) {
	bus := events.NewBroadcaster()
	chans := []<-chan models.ChangeEvent{
		bus.Subscribe("a"),
		bus.Subscribe("b"),
		bus.Subscribe("c"),
	}

	bus.Publish(models.ChangeEvent{Type: models.EventMenuChanged})

	for i, ch := range chans {
		select {
		case <-ch:
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("subscriber %d did not receive the event", i)
		}
	}
}

func TestBroadcasterUnsubscribe(t *testing.T) {
	bus := events.NewBroadcaster()
	ch := bus.Subscribe("gone")

	bus.Unsubscribe("gone")
	bus.Unsubscribe("gone") // idempotent

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected channel to be closed after unsubscribe")
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timed out waiting for channel close")
	}

	// Events published after removal must not panic or block.
	bus.Publish(models.ChangeEvent{Type: models.EventMenuChanged})
	if n := bus.SubscriberCount(); n != 0 {
		t.Errorf("SubscriberCount = %d, want 0", n)
	}
}

func TestBroadcasterDropsEventsWhenFull(t *testing.T) {
	bus := events.NewBroadcaster()
	ch := bus.Subscribe("slow-display")

	// Publish many events without reading — should not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			bus.Publish(models.ChangeEvent{Type: models.EventMenuChanged})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Publish blocked (should drop events for slow subscribers)")
	}

	bus.Unsubscribe("slow-display")
	_ = ch
}

func TestBroadcasterSubscriberCount(t *testing.T) {
	bus := events.NewBroadcaster()
	if n := bus.SubscriberCount(); n != 0 {
		t.Errorf("expected 0 subscribers, got %d", n)
	}
	bus.Subscribe("s1")
	bus.Subscribe("s2")
	if n := bus.SubscriberCount(); n != 2 {
		t.Errorf("expected 2 subscribers, got %d", n)
	}
	bus.Unsubscribe("s1")
	if n := bus.SubscriberCount(); n != 1 {
		t.Errorf("expected 1 subscriber, got %d", n)
	}
}
