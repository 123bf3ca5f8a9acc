package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusInProgress = "IN_PROGRESS"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusPartial    = "PARTIAL"
	OrderStatusCancelled  = "CANCELLED"
	OrderStatusRefunded   = "REFUNDED"
)

// ValidOrderStatuses lists every status the admin tooling may force.
var ValidOrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusInProgress,
	OrderStatusCompleted,
	OrderStatusPartial,
	OrderStatusCancelled,
	OrderStatusRefunded,
}

// IsValidOrderStatus reports whether status is one of the known states.
func IsValidOrderStatus(status string) bool {
	for _, s := range ValidOrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          uint          `json:"user_id" gorm:"index"`
	User            User          `json:"-" gorm:"foreignKey:UserID"`
	ServiceID       uint          `json:"service_id"`
	Service         Service       `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	ServerID        uint          `json:"server_id"`
	Server          ServiceServer `json:"server,omitempty" gorm:"foreignKey:ServerID"`
	Link            string        `json:"link"`
	Quantity        int           `json:"quantity"`
	TotalPrice      float64       `json:"total_price"`
	Status          string        `json:"status"`
	StartCount      int           `json:"start_count"`
	RemainQuantity  int           `json:"remain_quantity"`
	Note            string        `json:"note,omitempty"`
	ProviderOrderID string        `json:"provider_order_id,omitempty"`
	RefundAmount    float64       `json:"refund_amount,omitempty"`
	RefundedAt      *time.Time    `json:"refunded_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
