package cart

import (
	"sync"
	"time"
)

const (
	// SessionTTL is how long an untouched cart survives before the
	// cleanup loop drops it.
	SessionTTL = 24 * time.Hour

	// CleanupInterval is how often the background cleanup runs
	CleanupInterval = 10 * time.Minute
)

type entry struct {
	cart      Cart
	touchedAt time.Time
}

// Store keeps carts in process memory keyed by an opaque session id.
// Carts are session-local working state and are never persisted; an
// order is the only durable artifact of a cart.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*entry

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewStore() *Store {
	s := &Store{
		carts:       make(map[string]*entry),
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

func (s *Store) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireSessions()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *Store) expireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.carts {
		if time.Since(e.touchedAt) > SessionTTL {
			delete(s.carts, id)
		}
	}
}

// Get returns a copy of the session's cart. A session without a cart
// gets an empty one.
func (s *Store) Get(sessionID string) Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.carts[sessionID]
	if !ok {
		return Cart{}
	}
	return copyCart(e.cart)
}

// Update applies fn to the session's cart under the write lock and
// returns a copy of the result. A cart left empty by fn is dropped
// rather than kept around.
func (s *Store) Update(sessionID string, fn func(*Cart)) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.carts[sessionID]
	if !ok {
		e = &entry{}
		s.carts[sessionID] = e
	}

	fn(&e.cart)
	e.touchedAt = time.Now()

	if e.cart.Len() == 0 {
		delete(s.carts, sessionID)
		return Cart{}
	}
	return copyCart(e.cart)
}

// Close stops the cleanup goroutine.
func (s *Store) Close() {
	close(s.stopCleanup)
	s.wg.Wait()
}

func copyCart(c Cart) Cart {
	out := Cart{}
	if len(c.Items) > 0 {
		out.Items = make([]Item, len(c.Items))
		copy(out.Items, c.Items)
	}
	return out
}
