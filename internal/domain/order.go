package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidStatus reports whether s is one of the known order states. Admin
// status updates reject anything else.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Status       OrderStatus `gorm:"type:varchar(30);index"`
	Items        []OrderItem
	CustomerName string  `gorm:"size:140"`
	Phone        string  `gorm:"size:50"`
	City         string  `gorm:"size:100"`
	Address      string  `gorm:"size:255"`
	Email        string  `gorm:"size:140"`
	Total        float64 `gorm:"type:decimal(12,2)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is a point-in-time snapshot of a cart line. It deliberately
// copies the product fields instead of referencing the live row so later
// catalog edits never rewrite historical orders.
type OrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	ProductName string    `gorm:"size:180"`
	PriceUSD    float64   `gorm:"type:decimal(12,2)"`
	Qty         int       `gorm:"not null"`
	Size        string    `gorm:"size:30"`
	ImageURL    string    `gorm:"size:500"`
}
