// Package notify derives "order just became ready" notifications by
// diffing successive snapshots of the order collection.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"maitred/internal/models"
)

// Notification tells front-of-house staff an order is ready for pickup
type Notification struct {
	ID        string             `json:"id"`
	OrderID   int                `json:"orderId"`
	Table     string             `json:"table"`
	Items     []models.OrderItem `json:"items"`
	Timestamp string             `json:"timestamp"`
}

// Tracker watches order snapshots and keeps the dismissible queue. It holds
// its own previous snapshot; the store knows nothing about notifications.
type Tracker struct {
	mu            sync.Mutex
	previous      []models.Order
	notifications []Notification
	now           func() time.Time
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// Observe compares the given snapshot with the previously observed one and
// queues a notification for every order whose status changed into ready.
// Orders absent from the previous snapshot never trigger a notification,
// even if they arrive already ready: only an observed transition counts.
// The previous snapshot advances on every call, transitions or not.
func (t *Tracker) Observe(orders []models.Order) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prevStatus := make(map[int]models.OrderStatus, len(t.previous))
	for _, o := range t.previous {
		prevStatus[o.ID] = o.Status
	}

	for _, o := range orders {
		old, seen := prevStatus[o.ID]
		if !seen {
			continue
		}
		if old != models.StatusReady && o.Status == models.StatusReady {
			t.notifications = append(t.notifications, Notification{
				ID:        uuid.NewString(),
				OrderID:   o.ID,
				Table:     o.Table,
				Items:     o.Items,
				Timestamp: t.now().Format("15:04:05"),
			})
		}
	}

	t.previous = make([]models.Order, len(orders))
	copy(t.previous, orders)
}

// Notifications returns a copy of the queue in discovery order.
func (t *Tracker) Notifications() []Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Notification, len(t.notifications))
	copy(out, t.notifications)
	return out
}

// Dismiss removes exactly the notification with the given id.
func (t *Tracker) Dismiss(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, n := range t.notifications {
		if n.ID == id {
			t.notifications = append(t.notifications[:i], t.notifications[i+1:]...)
			return
		}
	}
}

// DismissAll clears the queue.
func (t *Tracker) DismissAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notifications = nil
}
