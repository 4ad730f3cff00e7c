package eventbus

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	bus := New()
	defer bus.Close()

	sub := bus.Subscribe()
	bus.Publish("hello")

	select {
	case e := <-sub:
		if e != "hello" {
			t.Fatalf("unexpected event: %v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestFanOut(t *testing.T) {
	bus := New()
	defer bus.Close()

	a := bus.Subscribe()
	b := bus.Subscribe()
	bus.Publish(42)

	for _, sub := range []<-chan Event{a, b} {
		select {
		case e := <-sub:
			if e != 42 {
				t.Fatalf("unexpected event: %v", e)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestNewBuffered(t *testing.T) {
	bus := NewBuffered(2)
	defer bus.Close()

	sub := bus.Subscribe()
	for i := 0; i < 5; i++ {
		bus.Publish(i)
	}
	if len(sub) != 2 {
		t.Fatalf("expected 2 buffered events, got %d", len(sub))
	}
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	bus := New()
	defer bus.Close()

	sub := bus.Subscribe()
	// Overflow the buffer; Publish must never stall.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			bus.Publish(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
	if len(sub) != cap(sub) {
		t.Fatalf("expected a full buffer, got %d/%d", len(sub), cap(sub))
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := New()
	defer bus.Close()

	sub := bus.Subscribe()
	bus.Unsubscribe(sub)

	if _, ok := <-sub; ok {
		t.Fatal("channel should be closed after unsubscribe")
	}
	// Publishing after unsubscribe must not panic.
	bus.Publish("ignored")
}

func TestCloseIsIdempotent(t *testing.T) {
	bus := New()
	sub := bus.Subscribe()

	bus.Close()
	bus.Close()

	if _, ok := <-sub; ok {
		t.Fatal("channel should be closed after bus close")
	}
	if later := bus.Subscribe(); later == nil {
		t.Fatal("subscribe after close must return a closed channel, not nil")
	} else if _, ok := <-later; ok {
		t.Fatal("post-close subscription must be closed")
	}
}
