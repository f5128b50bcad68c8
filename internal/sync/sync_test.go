package sync

import (
	"context"
	"testing"
	"time"
)

func TestStateMonitor_WaitReturnsWrittenValue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sm := NewStateMonitor(0)
	go sm.Broadcast(ctx)

	got := make(chan int, 1)
	go func() { got <- sm.WaitForStateChange() }()
	time.Sleep(50 * time.Millisecond) // let the waiter park
	sm.WriteToChan(7)

	select {
	case v := <-got:
		if v != 7 {
			t.Fatalf("WaitForStateChange = %d, want 7", v)
		}
	case <-time.After(time.Second):
		t.Fatal("waiter never woke after WriteToChan")
	}
}

func TestStateMonitor_ShutdownWakesWaiters(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sm := NewStateMonitor(false)
	go sm.Broadcast(ctx)

	done := make(chan struct{})
	go func() {
		sm.WaitForStateChange()
		close(done)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waiter still blocked after shutdown")
	}
}

func TestBroadcaster_EverySubscriberSeesEveryValue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b := NewBroadcaster[string]()
	go b.Broadcast(ctx)

	t1, c1 := b.Subscribe()
	_, c2 := b.Subscribe()

	go b.Write("hello")
	for _, ch := range []<-chan string{c1, c2} {
		select {
		case v := <-ch:
			if v != "hello" {
				t.Fatalf("received %q, want %q", v, "hello")
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber never received the broadcast")
		}
	}
	if got := b.Get(); got != "hello" {
		t.Fatalf("Get = %q, want %q", got, "hello")
	}
	b.Unsubscribe(t1)
}
