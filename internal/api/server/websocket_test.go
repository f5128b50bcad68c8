package server

import (
	"fmt"
	"sync"
	"testing"

	"github.com/minglehq/mingle/internal/domain"
)

func TestSubscriberRegistry_ConcurrentAccess(t *testing.T) {
	s := &Server{Subscribers: make(map[string]*domain.User)}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		id := fmt.Sprint("user-", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			u := &domain.User{ID: id}
			for j := 0; j < 100; j++ {
				s.addSubscriber(u)
				if !s.subscriberExists(id) {
					t.Errorf("subscriber %s missing right after add", id)
					return
				}
				s.removeSubscriber(u)
			}
		}()
	}
	wg.Wait()

	if s.subscriberExists("user-0") {
		t.Error("subscriber survived removal")
	}
}
