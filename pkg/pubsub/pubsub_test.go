package pubsub

import (
	"testing"
)

func TestPublishReachesSubscribers(t *testing.T) {
	bus := NewBus[int]()
	defer bus.Close()

	a := bus.Subscribe("runs", 4)
	b := bus.Subscribe("runs", 4)
	other := bus.Subscribe("other", 4)

	bus.Publish("runs", 42)

	if got := <-a.C(); got != 42 {
		t.Errorf("subscriber a got %d, want 42", got)
	}
	if got := <-b.C(); got != 42 {
		t.Errorf("subscriber b got %d, want 42", got)
	}
	select {
	case msg := <-other.C():
		t.Errorf("other-topic subscriber received %d", msg)
	default:
	}
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	bus := NewBus[int]()
	defer bus.Close()

	sub := bus.Subscribe("runs", 2)
	for i := 0; i < 5; i++ {
		bus.Publish("runs", i)
	}

	// Only the first two fit; publishing never blocked.
	if got := <-sub.C(); got != 0 {
		t.Errorf("first message = %d, want 0", got)
	}
	if got := <-sub.C(); got != 1 {
		t.Errorf("second message = %d, want 1", got)
	}
	select {
	case msg := <-sub.C():
		t.Errorf("unexpected third message %d", msg)
	default:
	}
}

func TestUnsubscribeRemovesSubscriber(t *testing.T) {
	bus := NewBus[string]()
	defer bus.Close()

	sub := bus.Subscribe("runs", 4)
	if n := bus.SubscriberCount("runs"); n != 1 {
		t.Fatalf("subscriber count = %d, want 1", n)
	}

	sub.Unsubscribe()
	if n := bus.SubscriberCount("runs"); n != 0 {
		t.Errorf("subscriber count after unsubscribe = %d, want 0", n)
	}

	// Channel must be closed so range loops terminate.
	if _, ok := <-sub.C(); ok {
		t.Error("channel still open after unsubscribe")
	}

	// Publishing to the now-empty topic is a no-op, not a panic.
	bus.Publish("runs", "late")
}

func TestCloseIsIdempotent(t *testing.T) {
	bus := NewBus[int]()
	sub := bus.Subscribe("runs", 4)

	bus.Close()
	bus.Close()

	if _, ok := <-sub.C(); ok {
		t.Error("channel still open after bus close")
	}
	if got := bus.Subscribe("runs", 4); got != nil {
		t.Error("Subscribe after Close returned a live subscription")
	}

	// Unsubscribing an already-closed subscription must not panic.
	sub.Unsubscribe()
}
