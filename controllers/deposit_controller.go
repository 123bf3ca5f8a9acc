package controllers

import (
	"fmt"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DepositRequest represents a manual deposit request body
type DepositRequest struct {
	Amount float64 `json:"amount" binding:"required,min=1"`
	Note   string  `json:"note"`
}

// CreateDepositRequest records a PENDING deposit awaiting admin approval.
// The BalanceAfter written here is only a projection; approval recomputes it
// from the balance current at approval time.
func CreateDepositRequest(c *gin.Context) {
	utils.LogInfo("CreateDepositRequest called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid deposit request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	wallet, err := utils.GetOrCreateWallet(user.ID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	description := "Yêu cầu nạp tiền"
	if req.Note != "" {
		description = fmt.Sprintf("Yêu cầu nạp tiền - %s", utils.SanitizeString(req.Note))
	}

	transaction := models.Transaction{
		UserID:       user.ID,
		WalletID:     wallet.ID,
		Type:         models.TransactionTypeDeposit,
		Amount:       req.Amount,
		BalanceAfter: wallet.Balance + req.Amount,
		Status:       models.TransactionStatusPending,
		Description:  description,
		Reference:    fmt.Sprintf("DEPOSIT-%s", uuid.New().String()),
	}
	if err := config.DB.Create(&transaction).Error; err != nil {
		utils.LogError("Failed to create deposit request for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Deposit request created - transaction ID: %d, user ID: %d, amount: %.2f",
		transaction.ID, user.ID, req.Amount)

	utils.Created(c, "Yêu cầu nạp tiền đã được ghi nhận và đang chờ duyệt", gin.H{
		"transaction": gin.H{
			"id":        transaction.ID,
			"amount":    transaction.Amount,
			"status":    transaction.Status,
			"reference": transaction.Reference,
		},
	})
}
