package controllers

import (
	"fmt"
	"strconv"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUsers returns the user list with optional search
func GetUsers(c *gin.Context) {
	utils.LogInfo("GetUsers called")
	if _, exists := c.Get("admin"); !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.User{})

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", like, like)
	}
	if blocked := c.Query("blocked"); blocked != "" {
		query = query.Where("is_blocked = ?", blocked == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count users: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	var users []models.User
	if err := query.Preload("Wallet").Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&users).Error; err != nil {
		utils.LogError("Failed to list users: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.SuccessWithPagination(c, "Danh sách người dùng", users, total, pagination.Page, pagination.Limit)
}

func setUserBlocked(c *gin.Context, blocked bool) {
	if _, exists := c.Get("admin"); !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid user ID format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var user models.User
	if err := config.DB.First(&user, uint(userID)).Error; err != nil {
		utils.LogError("User not found - ID: %d: %v", userID, err)
		utils.NotFound(c, utils.MsgUserNotFound)
		return
	}

	user.IsBlocked = blocked
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to update blocked state for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("User ID: %d blocked state set to %t", user.ID, blocked)

	message := "Đã mở khóa người dùng"
	if blocked {
		message = "Đã khóa người dùng"
	}
	utils.Success(c, message, gin.H{"user_id": user.ID, "is_blocked": user.IsBlocked})
}

// BlockUser blocks a user account
func BlockUser(c *gin.Context) {
	utils.LogInfo("BlockUser called")
	setUserBlocked(c, true)
}

// UnblockUser unblocks a user account
func UnblockUser(c *gin.Context) {
	utils.LogInfo("UnblockUser called")
	setUserBlocked(c, false)
}

// UserWalletRequest represents the per-user wallet mutation body
type UserWalletRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Type        string  `json:"type" binding:"required,oneof=ADD SUBTRACT"`
	Description string  `json:"description"`
}

// AdminUserWallet credits or debits one user's wallet from the user detail
// page. Same ledger semantics as the finance adjustment endpoint.
func AdminUserWallet(c *gin.Context) {
	utils.LogInfo("AdminUserWallet called")
	adminVal, exists := c.Get("admin")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	admin := adminVal.(models.Admin)

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid user ID format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var req UserWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid wallet mutation request: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var user models.User
	if err := config.DB.First(&user, uint(userID)).Error; err != nil {
		utils.LogError("User not found - ID: %d: %v", userID, err)
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

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Điều chỉnh số dư bởi quản trị viên #%d", admin.ID)
	} else {
		description = utils.SanitizeString(description)
	}
	reference := fmt.Sprintf("MANUAL-%s", uuid.New().String())

	var transaction *models.Transaction
	if req.Type == "ADD" {
		transaction, err = utils.CreditWallet(tx, wallet, req.Amount, models.TransactionTypeManual,
			description, reference, true)
		if err != nil {
			tx.Rollback()
			utils.LogError("Failed to credit wallet for user ID: %d: %v", user.ID, err)
			utils.InternalServerError(c, utils.MsgInternalError)
			return
		}
	} else {
		if !wallet.CanDebit(req.Amount) {
			tx.Rollback()
			utils.LogError("Wallet mutation would drive balance negative - user ID: %d", user.ID)
			utils.BadRequest(c, utils.MsgInsufficientBalance)
			return
		}
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

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit wallet mutation for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Wallet mutated by admin ID: %d - user ID: %d, type: %s, amount: %.2f",
		admin.ID, user.ID, req.Type, req.Amount)

	utils.Success(c, "Đã cập nhật ví người dùng", gin.H{
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
