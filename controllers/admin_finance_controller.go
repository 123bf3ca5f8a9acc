package controllers

import (
	"fmt"
	"strconv"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// ListPendingDeposits returns the deposit approval queue
func ListPendingDeposits(c *gin.Context) {
	utils.LogInfo("ListPendingDeposits called")
	if _, exists := c.Get("admin"); !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Transaction{}).
		Where("type = ? AND status = ?", models.TransactionTypeDeposit, models.TransactionStatusPending)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count pending deposits: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	var transactions []models.Transaction
	if err := query.Order("created_at ASC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&transactions).Error; err != nil {
		utils.LogError("Failed to list pending deposits: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.SuccessWithPagination(c, "Danh sách nạp tiền chờ duyệt", transactions, total, pagination.Page, pagination.Limit)
}

// ApproveDeposit credits a PENDING deposit. The stale projected BalanceAfter
// on the pending row is discarded; the snapshot is recomputed from the
// balance current at approval time. Re-approving fails on the status guard.
func ApproveDeposit(c *gin.Context) {
	utils.LogInfo("ApproveDeposit called")
	if _, exists := c.Get("admin"); !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}

	transactionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid transaction ID format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction: %v", tx.Error)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	// Lock the ledger row so two admins cannot approve it at once
	var transaction models.Transaction
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&transaction, uint(transactionID)).Error; err != nil {
		tx.Rollback()
		utils.LogError("Transaction not found - ID: %d: %v", transactionID, err)
		utils.NotFound(c, utils.MsgTransactionNotFound)
		return
	}

	if transaction.Type != models.TransactionTypeDeposit {
		tx.Rollback()
		utils.LogError("Transaction ID: %d is not a deposit", transaction.ID)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}
	if !transaction.CanProcess() {
		tx.Rollback()
		utils.LogError("Transaction ID: %d already processed, status: %s", transaction.ID, transaction.Status)
		utils.Conflict(c, utils.MsgAlreadyProcessed)
		return
	}

	wallet, err := utils.LockWallet(tx, transaction.UserID)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to lock wallet for user ID: %d: %v", transaction.UserID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	wallet.ApplyCredit(transaction.Amount, true)
	if err := tx.Save(wallet).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to credit wallet ID: %d: %v", wallet.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	transaction.Complete(wallet.Balance)
	if err := tx.Save(&transaction).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to complete deposit transaction ID: %d: %v", transaction.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit deposit approval for transaction ID: %d: %v", transaction.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Deposit approved - transaction ID: %d, user ID: %d, amount: %.2f, balance: %.2f",
		transaction.ID, transaction.UserID, transaction.Amount, wallet.Balance)

	// Notification failure must not undo an already committed credit
	var user models.User
	if err := config.DB.First(&user, transaction.UserID).Error; err == nil {
		if err := utils.SendDepositApprovedEmail(user.Email, transaction.Amount, wallet.Balance); err != nil {
			utils.LogError("Failed to send deposit approval email to %s: %v", user.Email, err)
		}
	}

	utils.Success(c, "Đã duyệt nạp tiền", gin.H{
		"transaction": gin.H{
			"id":            transaction.ID,
			"amount":        transaction.Amount,
			"balance_after": transaction.BalanceAfter,
			"status":        transaction.Status,
		},
	})
}

// RejectDeposit cancels a PENDING deposit with no wallet mutation
func RejectDeposit(c *gin.Context) {
	utils.LogInfo("RejectDeposit called")
	if _, exists := c.Get("admin"); !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}

	transactionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid transaction ID format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction: %v", tx.Error)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	var transaction models.Transaction
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&transaction, uint(transactionID)).Error; err != nil {
		tx.Rollback()
		utils.LogError("Transaction not found - ID: %d: %v", transactionID, err)
		utils.NotFound(c, utils.MsgTransactionNotFound)
		return
	}

	if transaction.Type != models.TransactionTypeDeposit {
		tx.Rollback()
		utils.LogError("Transaction ID: %d is not a deposit", transaction.ID)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}
	if !transaction.CanProcess() {
		tx.Rollback()
		utils.LogError("Transaction ID: %d already processed, status: %s", transaction.ID, transaction.Status)
		utils.Conflict(c, utils.MsgAlreadyProcessed)
		return
	}

	transaction.Cancel()
	if err := tx.Save(&transaction).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to cancel deposit transaction ID: %d: %v", transaction.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit deposit rejection for transaction ID: %d: %v", transaction.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Deposit rejected - transaction ID: %d, user ID: %d", transaction.ID, transaction.UserID)

	utils.Success(c, "Đã từ chối nạp tiền", gin.H{
		"transaction": gin.H{
			"id":     transaction.ID,
			"status": transaction.Status,
		},
	})
}

// AdjustBalanceRequest represents the manual adjustment request body
type AdjustBalanceRequest struct {
	UserID uint    `json:"user_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Type   string  `json:"type" binding:"required,oneof=ADD SUBTRACT"`
	Note   string  `json:"note"`
}

// AdjustBalance applies a manual admin credit or debit. The subtract path
// fails closed when the resulting balance would go negative.
func AdjustBalance(c *gin.Context) {
	utils.LogInfo("AdjustBalance called")
	adminVal, exists := c.Get("admin")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	admin := adminVal.(models.Admin)

	var req AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid adjustment request: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var user models.User
	if err := config.DB.First(&user, req.UserID).Error; err != nil {
		utils.LogError("User not found - ID: %d: %v", req.UserID, err)
		utils.NotFound(c, utils.MsgUserNotFound)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction: %v", tx.Error)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	wallet, err := utils.LockWallet(tx, user.ID)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to lock wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	description := fmt.Sprintf("Điều chỉnh số dư bởi quản trị viên #%d", admin.ID)
	if req.Note != "" {
		description = fmt.Sprintf("%s - %s", description, utils.SanitizeString(req.Note))
	}
	reference := fmt.Sprintf("MANUAL-%s", uuid.New().String())

	var transaction *models.Transaction
	if req.Type == "ADD" {
		transaction, err = utils.CreditWallet(tx, wallet, req.Amount, models.TransactionTypeManual,
			description, reference, true)
	} else {
		if !wallet.CanDebit(req.Amount) {
			tx.Rollback()
			utils.LogError("Adjustment would drive balance negative - user ID: %d, amount: %.2f, balance: %.2f",
				user.ID, req.Amount, wallet.Balance)
			utils.BadRequest(c, utils.MsgInsufficientBalance)
			return
		}
		// Manual debits move the balance only; TotalSpent tracks order spend
		wallet.Balance -= req.Amount
		if err := tx.Save(wallet).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to debit wallet ID: %d: %v", wallet.ID, err)
			utils.InternalServerError(c, utils.MsgInternalError)
			return
		}
		manual := models.Transaction{
			UserID:       wallet.UserID,
			WalletID:     wallet.ID,
			Type:         models.TransactionTypeManual,
			Amount:       -req.Amount,
			BalanceAfter: wallet.Balance,
			Status:       models.TransactionStatusCompleted,
			Description:  description,
			Reference:    reference,
		}
		if err := tx.Create(&manual).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to create manual transaction for wallet ID: %d: %v", wallet.ID, err)
			utils.InternalServerError(c, utils.MsgInternalError)
			return
		}
		transaction = &manual
	}
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to adjust wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit adjustment for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Balance adjusted - user ID: %d, type: %s, amount: %.2f, balance: %.2f",
		user.ID, req.Type, req.Amount, wallet.Balance)

	utils.Success(c, "Đã điều chỉnh số dư", gin.H{
		"transaction": gin.H{
			"id":            transaction.ID,
			"amount":        transaction.Amount,
			"balance_after": transaction.BalanceAfter,
		},
		"wallet": gin.H{
			"balance": wallet.Balance,
		},
	})
}
