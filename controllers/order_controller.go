package controllers

import (
	"fmt"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PlaceOrderRequest represents the order placement request body
type PlaceOrderRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	ServerID  uint   `json:"server_id" binding:"required"`
	Link      string `json:"link" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Note      string `json:"note"`
}

// PlaceOrder validates an order against its priced server tier, debits the
// wallet and creates the order row in one atomic unit.
func PlaceOrder(c *gin.Context) {
	utils.LogInfo("PlaceOrder called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid order request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	if err := utils.ValidateLink(req.Link); err != nil {
		utils.LogError("Invalid order link for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, err.Error())
		return
	}

	// Load the priced tier; inactive servers are treated as missing
	var server models.ServiceServer
	if err := config.DB.Where("id = ? AND service_id = ? AND is_active = ?",
		req.ServerID, req.ServiceID, true).First(&server).Error; err != nil {
		utils.LogError("Server not found or inactive - Server ID: %d, Service ID: %d: %v",
			req.ServerID, req.ServiceID, err)
		utils.NotFound(c, utils.MsgServerNotFound)
		return
	}

	if err := utils.ValidateOrderQuantity(&server, req.Quantity); err != nil {
		utils.LogError("Quantity out of range for user ID: %d, server ID: %d: %v",
			user.ID, server.ID, err)
		utils.BadRequest(c, utils.MsgQuantityOutOfRange)
		return
	}

	totalPrice := utils.CalculateOrderPrice(server.Price, req.Quantity)
	utils.LogDebug("Computed order price for user ID: %d - quantity: %d, price: %.2f, total: %.2f",
		user.ID, req.Quantity, server.Price, totalPrice)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction for user ID: %d: %v", user.ID, tx.Error)
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

	if !wallet.CanDebit(totalPrice) {
		tx.Rollback()
		utils.LogError("Insufficient balance for user ID: %d. Required: %.2f, Available: %.2f",
			user.ID, totalPrice, wallet.Balance)
		utils.BadRequest(c, utils.MsgInsufficientBalance)
		return
	}

	order := models.Order{
		UserID:         user.ID,
		ServiceID:      req.ServiceID,
		ServerID:       server.ID,
		Link:           req.Link,
		Quantity:       req.Quantity,
		TotalPrice:     totalPrice,
		Status:         models.OrderStatusPending,
		RemainQuantity: req.Quantity,
		Note:           utils.SanitizeString(req.Note),
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create order for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogDebug("Created order ID: %d for user ID: %d", order.ID, user.ID)

	description := fmt.Sprintf("Thanh toán đơn hàng #%d - %s x%d", order.ID, server.Name, req.Quantity)
	reference := fmt.Sprintf("ORDER-%s", uuid.New().String())
	transaction, err := utils.DebitWallet(tx, wallet, totalPrice, models.TransactionTypeOrder,
		description, reference, &order.ID)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to debit wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogDebug("Debited wallet for user ID: %d, transaction ID: %d, balance after: %.2f",
		user.ID, transaction.ID, transaction.BalanceAfter)

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit order transaction for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Order ID: %d placed for user ID: %d, total: %.2f", order.ID, user.ID, totalPrice)

	utils.Created(c, "Đặt hàng thành công", gin.H{
		"order": gin.H{
			"id":          order.ID,
			"service_id":  order.ServiceID,
			"server_id":   order.ServerID,
			"link":        order.Link,
			"quantity":    order.Quantity,
			"total_price": order.TotalPrice,
			"status":      order.Status,
			"created_at":  order.CreatedAt,
		},
		"wallet": gin.H{
			"balance": wallet.Balance,
		},
	})
}
