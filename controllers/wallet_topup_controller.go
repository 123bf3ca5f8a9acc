package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
	"gorm.io/gorm/clause"
)

// InitiateTopup creates a gateway order for an online deposit
func InitiateTopup(c *gin.Context) {
	utils.LogInfo("InitiateTopup called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	var req struct {
		Amount float64 `json:"amount" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid topup request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}
	utils.LogDebug("Topup request - user ID: %d, amount: %.2f", user.ID, req.Amount)

	// Gateway expects the amount in minor units
	amountMinor := int(req.Amount * 100)

	client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET"))
	orderData := map[string]interface{}{
		"amount":          amountMinor,
		"currency":        os.Getenv("RAZORPAY_CURRENCY"),
		"receipt":         "topup_" + strconv.FormatUint(uint64(user.ID), 10) + "_" + time.Now().Format("20060102150405"),
		"payment_capture": 1,
	}

	rzOrder, err := client.Order.Create(orderData, nil)
	if err != nil {
		utils.LogError("Failed to create gateway order for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	razorpayOrderID := fmt.Sprintf("%v", rzOrder["id"])
	utils.LogDebug("Created gateway order ID: %s", razorpayOrderID)

	wallet, err := utils.GetOrCreateWallet(user.ID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction: %v", tx.Error)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	// Pending ledger entry, completed when the gateway signature verifies.
	// BalanceAfter is a projection; verification recomputes it.
	transaction := models.Transaction{
		UserID:       user.ID,
		WalletID:     wallet.ID,
		Type:         models.TransactionTypeDeposit,
		Amount:       req.Amount,
		BalanceAfter: wallet.Balance + req.Amount,
		Status:       models.TransactionStatusPending,
		Description:  "Nạp tiền trực tuyến",
		Reference:    "TOPUP-" + razorpayOrderID,
	}
	if err := tx.Create(&transaction).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create pending topup transaction for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	topup := models.TopupOrder{
		UserID:          user.ID,
		RazorpayOrderID: razorpayOrderID,
		TransactionID:   transaction.ID,
		Amount:          req.Amount,
		Status:          "pending",
	}
	if err := tx.Create(&topup).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to record topup order for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit topup initiation for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.LogInfo("Topup initiated for user ID: %d, gateway order: %s, transaction ID: %d",
		user.ID, topup.RazorpayOrderID, transaction.ID)
	utils.Success(c, "Đã tạo yêu cầu nạp tiền", gin.H{
		"razorpay_order_id": topup.RazorpayOrderID,
		"transaction_id":    transaction.ID,
		"amount":            req.Amount,
		"key":               os.Getenv("RAZORPAY_KEY"),
		"user": gin.H{
			"name":  user.Username,
			"email": user.Email,
		},
	})
}

// VerifyTopup checks the gateway signature and completes the PENDING ledger
// entry created at initiation, the same transition a manual deposit takes on
// admin approval
func VerifyTopup(c *gin.Context) {
	utils.LogInfo("VerifyTopup called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid verify request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}
	utils.LogDebug("Verifying topup - gateway order: %s, payment: %s", req.RazorpayOrderID, req.RazorpayPaymentID)

	data := req.RazorpayOrderID + "|" + req.RazorpayPaymentID
	h := hmac.New(sha256.New, []byte(os.Getenv("RAZORPAY_SECRET")))
	h.Write([]byte(data))
	expected := hex.EncodeToString(h.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(req.RazorpaySignature)) {
		utils.LogError("Signature mismatch for gateway order: %s", req.RazorpayOrderID)
		utils.BadRequest(c, utils.MsgInvalidSignature)
		return
	}
	utils.LogDebug("Signature verified for gateway order: %s", req.RazorpayOrderID)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction: %v", tx.Error)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	// Lock the topup row so a replayed verification cannot credit twice
	var topup models.TopupOrder
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("razorpay_order_id = ? AND user_id = ?", req.RazorpayOrderID, user.ID).
		First(&topup).Error; err != nil {
		tx.Rollback()
		utils.LogError("Topup order not found - gateway order: %s: %v", req.RazorpayOrderID, err)
		utils.NotFound(c, utils.MsgTopupNotFound)
		return
	}
	if topup.Status != "pending" {
		tx.Rollback()
		utils.LogError("Topup order already processed - gateway order: %s, status: %s", req.RazorpayOrderID, topup.Status)
		utils.Conflict(c, utils.MsgAlreadyProcessed)
		return
	}

	var transaction models.Transaction
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&transaction, topup.TransactionID).Error; err != nil {
		tx.Rollback()
		utils.LogError("Pending topup transaction not found - ID: %d: %v", topup.TransactionID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	if !transaction.CanProcess() {
		tx.Rollback()
		utils.LogError("Topup transaction ID: %d already processed, status: %s", transaction.ID, transaction.Status)
		utils.Conflict(c, utils.MsgAlreadyProcessed)
		return
	}

	wallet, err := utils.LockWallet(tx, user.ID)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to lock wallet for user ID: %d: %v", user.ID, err)
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
		utils.LogError("Failed to complete topup transaction ID: %d: %v", transaction.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogDebug("Completed ledger entry ID: %d for topup", transaction.ID)

	topup.Status = "completed"
	topup.RazorpayPaymentID = req.RazorpayPaymentID
	if err := tx.Save(&topup).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update topup order status - gateway order: %s: %v", req.RazorpayOrderID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit topup for gateway order: %s: %v", req.RazorpayOrderID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.LogInfo("Topup completed for user ID: %d, amount: %.2f", user.ID, topup.Amount)
	utils.Success(c, "Nạp tiền thành công", gin.H{
		"amount":         topup.Amount,
		"balance":        wallet.Balance,
		"transaction_id": transaction.ID,
		"reference":      transaction.Reference,
	})
}
