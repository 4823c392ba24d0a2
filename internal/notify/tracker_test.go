package notify

import (
	"testing"
	"time"

	"maitred/internal/models"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)
}

func order(id int, table string, status models.OrderStatus) models.Order {
	return models.Order{ID: id, Table: table, Status: status, Items: []models.OrderItem{
		{ID: 1, MenuItemID: 1, Name: "Classic Burger", Quantity: 1},
	}}
}

func TestObserveReadyTransition(t *testing.T) {
	tracker := NewTracker()
	tracker.now = fixedClock

	tracker.Observe([]models.Order{order(1, "5", models.StatusPreparing)})
	tracker.Observe([]models.Order{order(1, "5", models.StatusReady)})

	notifications := tracker.Notifications()
	if len(notifications) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notifications))
	}

	n := notifications[0]
	if n.OrderID != 1 {
		t.Errorf("Expected notification for order 1, got %d", n.OrderID)
	}
	if n.Table != "5" {
		t.Errorf("Expected table %q, got %q", "5", n.Table)
	}
	if n.ID == "" {
		t.Error("Expected notification to have a generated id")
	}
	if n.Timestamp != "18:30:00" {
		t.Errorf("Expected timestamp %q, got %q", "18:30:00", n.Timestamp)
	}
}

func TestObserveOrderCreatedAlreadyReady(t *testing.T) {
	tracker := NewTracker()

	// The order was never seen in a previous snapshot, so even arriving
	// in ready state it must not notify.
	tracker.Observe([]models.Order{order(1, "2", models.StatusReady)})

	if got := len(tracker.Notifications()); got != 0 {
		t.Errorf("Expected 0 notifications for a new ready order, got %d", got)
	}
}

func TestObserveNoTransition(t *testing.T) {
	tracker := NewTracker()

	tracker.Observe([]models.Order{order(1, "2", models.StatusPending)})
	tracker.Observe([]models.Order{order(1, "2", models.StatusPreparing)})
	tracker.Observe([]models.Order{order(1, "2", models.StatusPreparing)})

	if got := len(tracker.Notifications()); got != 0 {
		t.Errorf("Expected 0 notifications without a ready transition, got %d", got)
	}
}

func TestObserveSkipsReadyToCompleted(t *testing.T) {
	tracker := NewTracker()

	tracker.Observe([]models.Order{order(1, "2", models.StatusReady)})
	tracker.Observe([]models.Order{order(1, "2", models.StatusCompleted)})

	if got := len(tracker.Notifications()); got != 0 {
		t.Errorf("Expected 0 notifications leaving ready state, got %d", got)
	}
}

func TestObserveMultipleTransitionsKeepOrder(t *testing.T) {
	tracker := NewTracker()

	tracker.Observe([]models.Order{
		order(1, "1", models.StatusPreparing),
		order(2, "2", models.StatusPreparing),
	})
	tracker.Observe([]models.Order{
		order(1, "1", models.StatusReady),
		order(2, "2", models.StatusReady),
	})

	notifications := tracker.Notifications()
	if len(notifications) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(notifications))
	}
	if notifications[0].OrderID != 1 || notifications[1].OrderID != 2 {
		t.Errorf("Expected notifications in snapshot order, got %d then %d",
			notifications[0].OrderID, notifications[1].OrderID)
	}
}

func TestDismiss(t *testing.T) {
	tracker := NewTracker()

	tracker.Observe([]models.Order{
		order(1, "1", models.StatusPreparing),
		order(2, "2", models.StatusPreparing),
	})
	tracker.Observe([]models.Order{
		order(1, "1", models.StatusReady),
		order(2, "2", models.StatusReady),
	})

	notifications := tracker.Notifications()
	tracker.Dismiss(notifications[0].ID)

	remaining := tracker.Notifications()
	if len(remaining) != 1 {
		t.Fatalf("Expected 1 notification after dismiss, got %d", len(remaining))
	}
	if remaining[0].ID != notifications[1].ID {
		t.Error("Dismiss removed the wrong notification")
	}

	// Dismissing an unknown id is a no-op.
	tracker.Dismiss("not-a-real-id")
	if got := len(tracker.Notifications()); got != 1 {
		t.Errorf("Expected dismissing unknown id to change nothing, got %d notifications", got)
	}
}

func TestDismissAllStaysEmpty(t *testing.T) {
	tracker := NewTracker()

	tracker.Observe([]models.Order{order(1, "1", models.StatusPreparing)})
	tracker.Observe([]models.Order{order(1, "1", models.StatusReady)})
	tracker.DismissAll()

	if got := len(tracker.Notifications()); got != 0 {
		t.Fatalf("Expected empty queue after DismissAll, got %d", got)
	}

	// Further non-transitioning snapshots leave the queue empty.
	tracker.Observe([]models.Order{order(1, "1", models.StatusReady)})
	tracker.Observe([]models.Order{order(1, "1", models.StatusCompleted)})

	if got := len(tracker.Notifications()); got != 0 {
		t.Errorf("Expected queue to stay empty, got %d", got)
	}
}
