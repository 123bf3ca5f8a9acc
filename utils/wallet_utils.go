package utils

import (
	"errors"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger errors surfaced to controllers, which map them to envelope messages.
var (
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrWalletNotFound      = errors.New("wallet not found")
)

// GetOrCreateWallet retrieves or creates a wallet for a user outside of any
// money-moving unit. Read-only paths use this.
func GetOrCreateWallet(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := config.DB.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			wallet = models.Wallet{UserID: userID}
			if err := config.DB.Create(&wallet).Error; err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	return &wallet, nil
}

// LockWallet loads the wallet row with SELECT ... FOR UPDATE inside tx,
// creating it first if the user has never held a balance. Every mutating
// ledger sequence must go through this so concurrent debits against the same
// wallet serialize at the row.
func LockWallet(tx *gorm.DB, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&wallet).Error
	if err == nil {
		return &wallet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	wallet = models.Wallet{UserID: userID}
	if err := tx.Create(&wallet).Error; err != nil {
		return nil, err
	}
	// Re-read under the lock so the row is held until commit.
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// DebitWallet removes amount from a locked wallet, bumps TotalSpent and
// appends a COMPLETED ledger entry with a negative signed amount. Fails
// closed with ErrInsufficientBalance before touching anything.
func DebitWallet(tx *gorm.DB, wallet *models.Wallet, amount float64, txnType, description, reference string, orderID *uint) (*models.Transaction, error) {
	if !wallet.CanDebit(amount) {
		return nil, ErrInsufficientBalance
	}

	wallet.ApplyDebit(amount)
	if err := tx.Save(wallet).Error; err != nil {
		return nil, err
	}

	transaction := models.Transaction{
		UserID:       wallet.UserID,
		WalletID:     wallet.ID,
		Type:         txnType,
		Amount:       -amount,
		BalanceAfter: wallet.Balance,
		Status:       models.TransactionStatusCompleted,
		Description:  description,
		Reference:    reference,
		OrderID:      orderID,
	}
	if err := tx.Create(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

// CreditWallet adds amount to a locked wallet and appends a COMPLETED ledger
// entry with a positive signed amount. isDeposit controls whether the
// TotalDeposit rollup counter moves as well.
func CreditWallet(tx *gorm.DB, wallet *models.Wallet, amount float64, txnType, description, reference string, isDeposit bool) (*models.Transaction, error) {
	wallet.ApplyCredit(amount, isDeposit)
	if err := tx.Save(wallet).Error; err != nil {
		return nil, err
	}

	transaction := models.Transaction{
		UserID:       wallet.UserID,
		WalletID:     wallet.ID,
		Type:         txnType,
		Amount:       amount,
		BalanceAfter: wallet.Balance,
		Status:       models.TransactionStatusCompleted,
		Description:  description,
		Reference:    reference,
	}
	if err := tx.Create(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

// RefundWallet credits amount back against an order and unwinds TotalSpent
// by the same amount, keeping the spend counter symmetric with the original
// debit.
func RefundWallet(tx *gorm.DB, wallet *models.Wallet, amount float64, description, reference string, orderID *uint) (*models.Transaction, error) {
	wallet.ApplyRefund(amount)
	if err := tx.Save(wallet).Error; err != nil {
		return nil, err
	}

	transaction := models.Transaction{
		UserID:       wallet.UserID,
		WalletID:     wallet.ID,
		Type:         models.TransactionTypeRefund,
		Amount:       amount,
		BalanceAfter: wallet.Balance,
		Status:       models.TransactionStatusCompleted,
		Description:  description,
		Reference:    reference,
		OrderID:      orderID,
	}
	if err := tx.Create(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}
