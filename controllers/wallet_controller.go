package controllers

import (
	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
)

// GetWallet returns the user's wallet balance and rollup counters
func GetWallet(c *gin.Context) {
	utils.LogInfo("GetWallet called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	wallet, err := utils.GetOrCreateWallet(user.ID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.Success(c, "Thông tin ví", gin.H{
		"wallet": gin.H{
			"balance":       wallet.Balance,
			"total_deposit": wallet.TotalDeposit,
			"total_spent":   wallet.TotalSpent,
		},
	})
}

// GetWalletHistory returns the user's ledger entries, newest first, optionally
// filtered by transaction type.
func GetWalletHistory(c *gin.Context) {
	utils.LogInfo("GetWalletHistory called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	wallet, err := utils.GetOrCreateWallet(user.ID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Transaction{}).Where("wallet_id = ?", wallet.ID)

	if txnType := c.Query("type"); txnType != "" {
		query = query.Where("type = ?", txnType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count transactions for wallet ID: %d: %v", wallet.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&transactions).Error; err != nil {
		utils.LogError("Failed to list transactions for wallet ID: %d: %v", wallet.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	formatted := make([]gin.H, len(transactions))
	for i, txn := range transactions {
		formatted[i] = gin.H{
			"id":            txn.ID,
			"type":          txn.Type,
			"amount":        txn.Amount,
			"balance_after": txn.BalanceAfter,
			"status":        txn.Status,
			"description":   txn.Description,
			"reference":     txn.Reference,
			"created_at":    txn.CreatedAt,
		}
	}

	utils.SuccessWithPagination(c, "Lịch sử giao dịch", formatted, total, pagination.Page, pagination.Limit)
}
