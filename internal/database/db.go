// Package database keeps a local copy of the last observed order list so
// the client can come up with data when the backend is unreachable.
package database

import (
	"encoding/json"
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"maitred/internal/models"
)

// Cache is a sqlite-backed snapshot of the order collection
type Cache struct {
	db *gorm.DB
}

// cachedOrder is one order of the snapshot, stored as its wire JSON.
// Position preserves the collection's newest-first ordering.
type cachedOrder struct {
	ID       uint `gorm:"primary_key"`
	Position int  `gorm:"index"`
	OrderID  int
	Payload  []byte
}

func (cachedOrder) TableName() string {
	return "cached_orders"
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := db.AutoMigrate(&cachedOrder{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate cache database: %w", err)
	}
	return &Cache{db: db}, nil
}

// SaveSnapshot replaces the cached collection with the given orders.
func (c *Cache) SaveSnapshot(orders []models.Order) error {
	tx := c.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Delete(&cachedOrder{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	for i, order := range orders {
		payload, err := json.Marshal(order)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to encode order %d: %w", order.ID, err)
		}
		row := cachedOrder{Position: i, OrderID: order.ID, Payload: payload}
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}

// LoadSnapshot returns the cached collection in its saved order. An empty
// cache yields an empty slice.
func (c *Cache) LoadSnapshot() ([]models.Order, error) {
	var rows []cachedOrder
	if err := c.db.Order("position").Find(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		var order models.Order
		if err := json.Unmarshal(row.Payload, &order); err != nil {
			// A corrupt row invalidates the whole snapshot.
			return nil, fmt.Errorf("failed to decode cached order %d: %w", row.OrderID, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
