package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalletCanDebit(t *testing.T) {
	wallet := &Wallet{Balance: 10000}

	assert.True(t, wallet.CanDebit(10000))
	assert.True(t, wallet.CanDebit(1))
	assert.False(t, wallet.CanDebit(10001))
}

func TestWalletApplyDebit(t *testing.T) {
	wallet := &Wallet{Balance: 10000, TotalSpent: 5000}

	wallet.ApplyDebit(3000)

	assert.Equal(t, float64(7000), wallet.Balance)
	assert.Equal(t, float64(8000), wallet.TotalSpent)
}

func TestWalletApplyCredit(t *testing.T) {
	wallet := &Wallet{Balance: 1000, TotalDeposit: 20000}

	// A deposit moves both the balance and the lifetime counter
	wallet.ApplyCredit(5000, true)
	assert.Equal(t, float64(6000), wallet.Balance)
	assert.Equal(t, float64(25000), wallet.TotalDeposit)

	// Bonuses move the balance only
	wallet.ApplyCredit(2000, false)
	assert.Equal(t, float64(8000), wallet.Balance)
	assert.Equal(t, float64(25000), wallet.TotalDeposit)
}

func TestWalletApplyRefund(t *testing.T) {
	wallet := &Wallet{Balance: 10000, TotalSpent: 5000}

	// Debit then refund must restore both counters
	wallet.ApplyDebit(3000)
	wallet.ApplyRefund(3000)

	assert.Equal(t, float64(10000), wallet.Balance)
	assert.Equal(t, float64(5000), wallet.TotalSpent)
}

func TestWalletDebitCreditSequenceReconciles(t *testing.T) {
	wallet := &Wallet{}

	type step struct {
		credit    bool
		amount    float64
		isDeposit bool
	}
	steps := []step{
		{credit: true, amount: 50000, isDeposit: true},
		{credit: false, amount: 12000},
		{credit: false, amount: 8000},
		{credit: true, amount: 3000, isDeposit: false},
		{credit: false, amount: 20000},
	}

	var history []float64
	for _, s := range steps {
		if s.credit {
			wallet.ApplyCredit(s.amount, s.isDeposit)
		} else {
			assert.True(t, wallet.CanDebit(s.amount))
			wallet.ApplyDebit(s.amount)
		}
		history = append(history, wallet.Balance)
	}

	// Replaying the signed amounts from zero lands on every snapshot
	var running float64
	for i, s := range steps {
		if s.credit {
			running += s.amount
		} else {
			running -= s.amount
		}
		assert.Equal(t, history[i], running)
	}
	assert.Equal(t, float64(13000), wallet.Balance)
	assert.Equal(t, float64(50000), wallet.TotalDeposit)
	assert.Equal(t, float64(40000), wallet.TotalSpent)
}

func TestPendingDepositCompletesOnce(t *testing.T) {
	// The projection written at request time assumes the balance is still 0
	transaction := &Transaction{
		Type:         TransactionTypeDeposit,
		Amount:       5000,
		BalanceAfter: 5000,
		Status:       TransactionStatusPending,
	}
	assert.True(t, transaction.CanProcess())

	// By approval time the wallet holds 12000, so the snapshot is recomputed
	transaction.Complete(17000)
	assert.Equal(t, TransactionStatusCompleted, transaction.Status)
	assert.Equal(t, float64(17000), transaction.BalanceAfter)

	// A second approval attempt must fail the status guard
	assert.False(t, transaction.CanProcess())
}

func TestPendingDepositCancelLeavesSnapshot(t *testing.T) {
	transaction := &Transaction{
		Type:         TransactionTypeDeposit,
		Amount:       5000,
		BalanceAfter: 5000,
		Status:       TransactionStatusPending,
	}

	transaction.Cancel()
	assert.Equal(t, TransactionStatusCancelled, transaction.Status)

	// Cancelled rows never transition again either
	assert.False(t, transaction.CanProcess())
	assert.False(t, (&Transaction{Status: TransactionStatusCompleted}).CanProcess())
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range ValidOrderStatuses {
		assert.True(t, IsValidOrderStatus(status))
	}
	assert.False(t, IsValidOrderStatus("SHIPPED"))
	assert.False(t, IsValidOrderStatus(""))
	assert.False(t, IsValidOrderStatus("pending"))
}
