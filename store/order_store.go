package store

import (
	"sync"

	"github.com/jpavezc/khipu_checkout/models"
)

// OrderStore keeps the last known payment outcome per transaction_id in memory.
// It lives for the lifetime of the process and never evicts; swapping in a
// persistent implementation only requires replacing this type behind the same
// methods.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]models.Order

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[string]models.Order),
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *OrderStore) Get(transactionID string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[transactionID]
	return order, ok
}

func (s *OrderStore) Set(transactionID string, order models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[transactionID] = order
}

// Merge upserts paymentID and status for transactionID, preserving whatever
// else is already recorded on the entry.
func (s *OrderStore) Merge(transactionID, paymentID string, status models.PaymentStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order := s.orders[transactionID]
	order.PaymentID = paymentID
	order.Status = status
	s.orders[transactionID] = order
}

// Snapshot returns a copy of all entries, safe to iterate without holding the lock.
func (s *OrderStore) Snapshot() map[string]models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make(map[string]models.Order, len(s.orders))
	for id, order := range s.orders {
		snapshot[id] = order
	}
	return snapshot
}

// LockKey serializes the check-then-create sequence for one transaction_id so
// that concurrent submissions of the same order cannot each create a provider
// payment. Key mutexes are never released back; the set of transaction ids is
// bounded by the store's own lifetime semantics.
func (s *OrderStore) LockKey(transactionID string) (unlock func()) {
	s.locksMu.Lock()
	lock, ok := s.locks[transactionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[transactionID] = lock
	}
	s.locksMu.Unlock()

	lock.Lock()
	return lock.Unlock
}
