package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet represents a user's prepaid balance with lifetime rollup counters.
// TotalDeposit and TotalSpent are audit counters, never derived from Balance.
type Wallet struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `json:"user_id" gorm:"uniqueIndex"`
	Balance      float64        `json:"balance" gorm:"default:0"`
	TotalDeposit float64        `json:"total_deposit" gorm:"default:0"`
	TotalSpent   float64        `json:"total_spent" gorm:"default:0"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// CanDebit reports whether the wallet can cover a debit of the given amount.
func (w *Wallet) CanDebit(amount float64) bool {
	return w.Balance >= amount
}

// ApplyDebit removes amount from the balance and bumps TotalSpent.
// Amount must already be validated against CanDebit.
func (w *Wallet) ApplyDebit(amount float64) {
	w.Balance -= amount
	w.TotalSpent += amount
}

// ApplyCredit adds amount to the balance. When isDeposit is true the
// TotalDeposit counter is bumped as well.
func (w *Wallet) ApplyCredit(amount float64, isDeposit bool) {
	w.Balance += amount
	if isDeposit {
		w.TotalDeposit += amount
	}
}

// ApplyRefund credits amount back and unwinds the matching spend counter.
func (w *Wallet) ApplyRefund(amount float64) {
	w.Balance += amount
	w.TotalSpent -= amount
}

// Transaction represents one immutable ledger entry. Amount is always signed:
// debits are negative, credits positive. BalanceAfter snapshots the wallet
// balance immediately after this entry was applied.
type Transaction struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `json:"user_id" gorm:"index"`
	User         User           `json:"-" gorm:"foreignKey:UserID"`
	WalletID     uint           `json:"wallet_id"`
	Wallet       Wallet         `json:"-" gorm:"foreignKey:WalletID"`
	Type         string         `json:"type"`
	Amount       float64        `json:"amount"`
	BalanceAfter float64        `json:"balance_after"`
	Status       string         `json:"status"`
	Description  string         `json:"description"`
	Reference    string         `json:"reference"`
	OrderID      *uint          `json:"order_id,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// CanProcess reports whether this ledger entry is still PENDING and may be
// approved, rejected or completed. A processed entry never transitions again.
func (t *Transaction) CanProcess() bool {
	return t.Status == TransactionStatusPending
}

// Complete marks the entry COMPLETED and snapshots the balance current at
// processing time. The projection written at request time is discarded.
func (t *Transaction) Complete(balance float64) {
	t.Status = TransactionStatusCompleted
	t.BalanceAfter = balance
}

// Cancel marks the entry CANCELLED. The wallet is untouched.
func (t *Transaction) Cancel() {
	t.Status = TransactionStatusCancelled
}

// Transaction type constants
const (
	TransactionTypeDeposit = "DEPOSIT"
	TransactionTypeOrder   = "ORDER"
	TransactionTypeRefund  = "REFUND"
	TransactionTypeBonus   = "BONUS"
	TransactionTypeManual  = "MANUAL"
)

// Transaction status constants
const (
	TransactionStatusPending   = "PENDING"
	TransactionStatusCompleted = "COMPLETED"
	TransactionStatusCancelled = "CANCELLED"
)
