// Package store owns the shared order collection. It is seeded by one full
// fetch and then kept in sync by deltas arriving on the event channel; all
// mutations to the collection happen here and nowhere else.
package store

import (
	"context"
	"log"
	"sync"
	"time"

	"maitred/internal/channel"
	"maitred/internal/models"
	"maitred/internal/monitoring"
)

// OrdersAPI is the backend order interface the store delegates writes to
type OrdersAPI interface {
	FetchOrders(ctx context.Context) ([]models.Order, error)
	CreateOrder(ctx context.Context, payload models.OrderPayload) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID int, status models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, orderID int) error
}

// EventChannel is the push channel the store consumes deltas from
type EventChannel interface {
	Connect(onConnected, onDisconnected func()) error
	Subscribe(cb channel.Callbacks) func()
	RequestRefresh() error
}

// SnapshotCache persists the last observed collection across restarts
type SnapshotCache interface {
	SaveSnapshot(orders []models.Order) error
	LoadSnapshot() ([]models.Order, error)
}

// Store holds the order collection shared by all role views
type Store struct {
	api             OrdersAPI
	channel         EventChannel
	cache           SnapshotCache
	refreshInterval time.Duration

	mu        sync.RWMutex
	orders    []models.Order
	loading   bool
	connected bool
	lastErr   string
	listeners []func([]models.Order)

	unsubscribe func()
}

// New creates a store over the given collaborators. cache may be nil.
func New(api OrdersAPI, ch EventChannel, cache SnapshotCache, refreshInterval time.Duration) *Store {
	return &Store{
		api:             api,
		channel:         ch,
		cache:           cache,
		refreshInterval: refreshInterval,
		loading:         true,
	}
}

// Start connects the channel, seeds the collection with one full fetch and
// begins the periodic refresh schedule. The channel subscription is laid
// down before the fetch so no delta is missed; reconciliation is
// last-writer-wins either way.
func (s *Store) Start(ctx context.Context) {
	if s.channel != nil {
		s.unsubscribe = s.channel.Subscribe(channel.Callbacks{
			OnCreated: s.applyCreated,
			OnUpdated: s.applyUpdated,
			OnDeleted: s.applyDeleted,
			OnRefresh: s.applyRefresh,
		})

		err := s.channel.Connect(
			func() { s.setConnected(true) },
			func() { s.setConnected(false) },
		)
		if err != nil {
			log.Printf("Channel connect failed: %v", err)
			s.setError(err.Error())
		}
	}

	s.fetch(ctx)

	go s.refreshLoop(ctx)
}

// Stop detaches the store from the channel.
func (s *Store) Stop() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// refreshLoop is the single scheduled refresh task for the whole client.
// Each tick asks the server to push a full snapshot, which travels the same
// reconciliation path as every other event.
func (s *Store) refreshLoop(ctx context.Context) {
	if s.channel == nil {
		return
	}
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.channel.RequestRefresh(); err != nil {
				log.Printf("Refresh request failed: %v", err)
			}
		}
	}
}

// fetch seeds the collection from the backend. A failed fetch records the
// error and leaves the previous collection untouched; if nothing has been
// loaded yet the cached snapshot stands in.
func (s *Store) fetch(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	orders, err := s.api.FetchOrders(ctx)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastErr = err.Error()
		empty := len(s.orders) == 0
		s.mu.Unlock()
		log.Printf("Failed to fetch orders: %v", err)
		if empty {
			s.loadCachedSnapshot()
		}
		return
	}
	s.orders = orders
	s.lastErr = ""
	s.mu.Unlock()

	s.committed()
}

// loadCachedSnapshot falls back to the last locally persisted collection.
func (s *Store) loadCachedSnapshot() {
	if s.cache == nil {
		return
	}
	cached, err := s.cache.LoadSnapshot()
	if err != nil {
		log.Printf("Failed to load cached orders: %v", err)
		return
	}
	if len(cached) == 0 {
		return
	}

	s.mu.Lock()
	s.orders = cached
	s.mu.Unlock()

	log.Printf("Serving %d orders from local cache", len(cached))
	s.notifyListeners()
	monitoring.SetOrderCount(len(cached))
}

// Submit sends a draft payload to the backend. The created order is not
// appended locally; it arrives through the channel's creation event.
// Returns false and records the error when the remote call fails.
func (s *Store) Submit(ctx context.Context, payload models.OrderPayload) bool {
	if _, err := s.api.CreateOrder(ctx, payload); err != nil {
		log.Printf("Failed to create order: %v", err)
		s.setError(err.Error())
		monitoring.OrderSubmitted(false)
		return false
	}
	monitoring.OrderSubmitted(true)
	return true
}

// SetStatus delegates a status change to the backend; the updated order is
// reflected locally when its update event arrives.
func (s *Store) SetStatus(ctx context.Context, orderID int, status models.OrderStatus) {
	if _, err := s.api.UpdateStatus(ctx, orderID, status); err != nil {
		log.Printf("Failed to update order %d status: %v", orderID, err)
		s.setError(err.Error())
	}
}

// Remove delegates a deletion to the backend.
func (s *Store) Remove(ctx context.Context, orderID int) {
	if err := s.api.DeleteOrder(ctx, orderID); err != nil {
		log.Printf("Failed to delete order %d: %v", orderID, err)
		s.setError(err.Error())
	}
}

// Refresh re-fetches the collection and asks the server for a pushed
// snapshot as well.
func (s *Store) Refresh(ctx context.Context) {
	s.fetch(ctx)
	if s.channel != nil {
		if err := s.channel.RequestRefresh(); err != nil {
			log.Printf("Refresh request failed: %v", err)
		}
	}
}

// Orders returns a copy of the current collection, newest creations first.
func (s *Store) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]models.Order, len(s.orders))
	copy(orders, s.orders)
	return orders
}

// ByStatus returns the orders currently in the given status.
func (s *Store) ByStatus(status models.OrderStatus) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []models.Order
	for _, o := range s.orders {
		if o.Status == status {
			matched = append(matched, o)
		}
	}
	return matched
}

// Get returns the order with the given id.
func (s *Store) Get(orderID int) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return models.Order{}, false
}

// IsLoading reports whether the seeding fetch is in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// IsConnected reports the event channel's connection state.
func (s *Store) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// LastError returns the most recent remote failure message, empty when the
// last operation succeeded.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// OnChange registers a listener invoked with a snapshot copy after every
// applied change to the collection.
func (s *Store) OnChange(fn func([]models.Order)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// applyCreated prepends a newly created order unless its id is already
// present.
func (s *Store) applyCreated(order models.Order) {
	if err := models.ValidateOrder(&order); err != nil {
		log.Printf("Dropping malformed created order: %v", err)
		return
	}

	s.mu.Lock()
	for _, o := range s.orders {
		if o.ID == order.ID {
			s.mu.Unlock()
			return
		}
	}
	s.orders = append([]models.Order{order}, s.orders...)
	s.mu.Unlock()

	s.committed()
}

// applyUpdated replaces the order with the matching id; unknown ids are a
// no-op.
func (s *Store) applyUpdated(order models.Order) {
	if err := models.ValidateOrder(&order); err != nil {
		log.Printf("Dropping malformed updated order: %v", err)
		return
	}

	s.mu.Lock()
	replaced := false
	for i, o := range s.orders {
		if o.ID == order.ID {
			s.orders[i] = order
			replaced = true
			break
		}
	}
	s.mu.Unlock()

	if replaced {
		s.committed()
	}
}

// applyDeleted removes the order with the matching id; absent ids are a
// no-op.
func (s *Store) applyDeleted(orderID int) {
	s.mu.Lock()
	removed := false
	kept := s.orders[:0]
	for _, o := range s.orders {
		if o.ID == orderID {
			removed = true
			continue
		}
		kept = append(kept, o)
	}
	s.orders = kept
	s.mu.Unlock()

	if removed {
		s.committed()
	}
}

// applyRefresh replaces the whole collection verbatim, last writer wins.
func (s *Store) applyRefresh(orders []models.Order) {
	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()

	s.committed()
}

// committed persists the new snapshot and fans it out to listeners.
func (s *Store) committed() {
	snapshot := s.Orders()

	monitoring.SetOrderCount(len(snapshot))
	if s.cache != nil {
		if err := s.cache.SaveSnapshot(snapshot); err != nil {
			log.Printf("Failed to persist order snapshot: %v", err)
		}
	}
	s.notifyListeners()
}

func (s *Store) notifyListeners() {
	s.mu.RLock()
	listeners := make([]func([]models.Order), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(s.Orders())
	}
}

func (s *Store) setConnected(up bool) {
	s.mu.Lock()
	s.connected = up
	s.mu.Unlock()
}

func (s *Store) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}
