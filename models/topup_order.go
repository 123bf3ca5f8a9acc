package models

import (
	"time"
)

// TopupOrder tracks an online deposit initiated through the payment gateway.
// The PENDING ledger transaction is created alongside it and completed when
// the gateway signature verifies.
type TopupOrder struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `json:"user_id"`
	RazorpayOrderID   string    `json:"razorpay_order_id" gorm:"uniqueIndex"`
	RazorpayPaymentID string    `json:"razorpay_payment_id"`
	TransactionID     uint      `json:"transaction_id"`
	Amount            float64   `json:"amount"`
	Status            string    `json:"status"` // pending, completed, failed
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
