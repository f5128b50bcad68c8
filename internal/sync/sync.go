package sync

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
)

// Broadcaster fans a single stream of values out to every subscriber.
// Subscribe hands back a token and a receive-only chan, Unsubscribe must be
// called with that token once the subscriber is done, an abandoned
// subscription stalls the fan-out for everyone. Broadcast is the pump and
// belongs in its own long-running goroutine, it returns only on shutdown.
type Broadcaster[T any] struct {
	src       chan T
	mu        sync.RWMutex
	subs      map[int]chan T
	last      T
	nextToken int
}

func NewBroadcaster[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{
		src:  make(chan T),
		subs: make(map[int]chan T),
	}
}

// Get returns the last broadcast value.
func (b *Broadcaster[T]) Get() T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.last
}

func (b *Broadcaster[T]) Subscribe() (int, <-chan T) {
	c := make(chan T)
	b.mu.Lock()
	defer b.mu.Unlock()
	token := b.nextToken
	b.subs[token] = c
	b.nextToken++
	return token, c
}

func (b *Broadcaster[T]) Unsubscribe(token int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.subs[token]
	if !ok {
		slog.Error("channel not found while unsubscribing", "type", reflect.TypeOf(b), "token", token)
		return
	}
	close(ch)
	delete(b.subs, token)
}

func (b *Broadcaster[T]) Write(v T) {
	b.src <- v
}

func (b *Broadcaster[T]) Broadcast(shtdwnCtx context.Context) {
	for {
		select {
		case v := <-b.src:
			b.mu.Lock()
			b.last = v
			b.mu.Unlock()
			// sends are deliberately blocking, each subscriber sees every
			// value, the read lock keeps Unsubscribe from closing a chan
			// mid-send
			b.mu.RLock()
			for _, ch := range b.subs {
				ch <- v
			}
			b.mu.RUnlock()
		case <-shtdwnCtx.Done():
			return
		}
	}
}

// StateMonitor holds a single piece of state and wakes every goroutine
// blocked in WaitForStateChange whenever WriteToChan delivers a new value.
type StateMonitor[T any] struct {
	updates chan T
	cond    *sync.Cond
	state   T
}

func NewStateMonitor[T any](initial T) *StateMonitor[T] {
	return &StateMonitor[T]{
		updates: make(chan T),
		cond:    sync.NewCond(new(sync.Mutex)),
		state:   initial,
	}
}

// Get reads the state without synchronization, callers that need the value
// tied to a transition should use WaitForStateChange instead.
func (s *StateMonitor[T]) Get() T {
	return s.state
}

// WaitForStateChange blocks until the next WriteToChan lands.
func (s *StateMonitor[T]) WaitForStateChange() T {
	s.cond.L.Lock()
	s.cond.Wait()
	defer s.cond.L.Unlock()
	return s.state
}

// WriteToChan hands a new value to the pump, Broadcast must be running.
func (s *StateMonitor[T]) WriteToChan(v T) {
	s.updates <- v
}

func (s *StateMonitor[T]) Broadcast(shtdwnCtx context.Context) {
	for {
		select {
		case v := <-s.updates:
			s.cond.L.Lock()
			s.state = v
			s.cond.L.Unlock()
			s.cond.Broadcast()
		case <-shtdwnCtx.Done():
			// goroutines blocked in WaitForStateChange also respect the
			// shtdwnCtx, wake them so they can observe it and exit
			s.cond.Broadcast()
			return
		}
	}
}
