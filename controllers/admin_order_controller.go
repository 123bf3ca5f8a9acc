package controllers

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/provider"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminListOrders returns all orders with optional status/user filters
func AdminListOrders(c *gin.Context) {
	utils.LogInfo("AdminListOrders called")
	if _, exists := c.Get("admin"); !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	var orders []models.Order
	if err := query.Preload("Service").Preload("Server").
		Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to list orders: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.SuccessWithPagination(c, "Danh sách đơn hàng", orders, total, pagination.Page, pagination.Limit)
}

// AdminUpdateOrderRequest represents the admin order patch body
type AdminUpdateOrderRequest struct {
	Status         string   `json:"status"`
	RefundAmount   *float64 `json:"refund_amount"`
	StartCount     *int     `json:"start_count"`
	RemainQuantity *int     `json:"remain_quantity"`
}

// AdminUpdateOrder force-sets order status and progress counters. Supplying
// refund_amount additionally credits the user's wallet inside the same atomic
// unit; the amount is an admin override and is not checked against the
// order's original total. When a refund is issued without an explicit status
// the order moves to REFUNDED.
func AdminUpdateOrder(c *gin.Context) {
	utils.LogInfo("AdminUpdateOrder called")
	adminVal, exists := c.Get("admin")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	admin := adminVal.(models.Admin)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid order ID format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var req AdminUpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid order update request: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	if req.Status != "" && !models.IsValidOrderStatus(req.Status) {
		utils.LogError("Unknown order status: %s", req.Status)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}
	if req.RefundAmount != nil && *req.RefundAmount <= 0 {
		utils.LogError("Non-positive refund amount: %.2f", *req.RefundAmount)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var order models.Order
	if err := config.DB.First(&order, uint(orderID)).Error; err != nil {
		utils.LogError("Order not found - ID: %d: %v", orderID, err)
		utils.NotFound(c, utils.MsgOrderNotFound)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction for order ID: %d: %v", orderID, tx.Error)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	var refundTransaction *models.Transaction
	if req.RefundAmount != nil {
		wallet, err := utils.LockWallet(tx, order.UserID)
		if err != nil {
			tx.Rollback()
			utils.LogError("Failed to lock wallet for user ID: %d: %v", order.UserID, err)
			utils.InternalServerError(c, utils.MsgInternalError)
			return
		}

		description := fmt.Sprintf("Hoàn tiền đơn hàng #%d bởi quản trị viên #%d", order.ID, admin.ID)
		reference := fmt.Sprintf("REFUND-%s", uuid.New().String())
		refundTransaction, err = utils.RefundWallet(tx, wallet, *req.RefundAmount, description, reference, &order.ID)
		if err != nil {
			tx.Rollback()
			utils.LogError("Failed to refund wallet for order ID: %d: %v", order.ID, err)
			utils.InternalServerError(c, utils.MsgInternalError)
			return
		}

		now := time.Now()
		order.RefundAmount = *req.RefundAmount
		order.RefundedAt = &now
		if req.Status == "" {
			order.Status = models.OrderStatusRefunded
		}
		utils.LogDebug("Refunded %.2f for order ID: %d, user ID: %d", *req.RefundAmount, order.ID, order.UserID)
	}

	if req.Status != "" {
		order.Status = req.Status
	}
	if req.StartCount != nil {
		order.StartCount = *req.StartCount
	}
	if req.RemainQuantity != nil {
		order.RemainQuantity = *req.RemainQuantity
	}

	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit order update for ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Order ID: %d updated by admin ID: %d, status: %s", order.ID, admin.ID, order.Status)

	response := gin.H{"order": order}
	if refundTransaction != nil {
		response["refund"] = gin.H{
			"transaction_id": refundTransaction.ID,
			"amount":         refundTransaction.Amount,
			"balance_after":  refundTransaction.BalanceAfter,
		}
	}
	utils.Success(c, "Đã cập nhật đơn hàng", response)
}

func providerClient() *provider.Client {
	return provider.NewClient(os.Getenv("PROVIDER_API_URL"), os.Getenv("PROVIDER_API_KEY"))
}

// AdminPushOrderToProvider forwards an order to the upstream SMM provider.
// Fulfillment stays manual: the admin decides when to push.
func AdminPushOrderToProvider(c *gin.Context) {
	utils.LogInfo("AdminPushOrderToProvider called")
	if _, exists := c.Get("admin"); !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid order ID format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var req struct {
		ProviderServiceID int `json:"provider_service_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid provider push request: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var order models.Order
	if err := config.DB.First(&order, uint(orderID)).Error; err != nil {
		utils.LogError("Order not found - ID: %d: %v", orderID, err)
		utils.NotFound(c, utils.MsgOrderNotFound)
		return
	}

	if order.ProviderOrderID != "" {
		utils.LogError("Order ID: %d already pushed to provider as %s", order.ID, order.ProviderOrderID)
		utils.Conflict(c, utils.MsgAlreadyProcessed)
		return
	}

	remoteID, err := providerClient().AddOrder(c.Request.Context(), req.ProviderServiceID, order.Link, order.Quantity)
	if err != nil {
		utils.LogError("Provider add-order failed for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	order.ProviderOrderID = remoteID
	order.Status = models.OrderStatusProcessing
	if err := config.DB.Save(&order).Error; err != nil {
		utils.LogError("Failed to store provider order ID for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Order ID: %d pushed to provider as %s", order.ID, remoteID)

	utils.Success(c, "Đã gửi đơn hàng đến nhà cung cấp", gin.H{"order": order})
}

// AdminSyncOrderStatus polls the provider for a pushed order and updates the
// local progress counters.
func AdminSyncOrderStatus(c *gin.Context) {
	utils.LogInfo("AdminSyncOrderStatus called")
	if _, exists := c.Get("admin"); !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid order ID format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var order models.Order
	if err := config.DB.First(&order, uint(orderID)).Error; err != nil {
		utils.LogError("Order not found - ID: %d: %v", orderID, err)
		utils.NotFound(c, utils.MsgOrderNotFound)
		return
	}

	if order.ProviderOrderID == "" {
		utils.LogError("Order ID: %d has not been pushed to a provider", order.ID)
		utils.BadRequest(c, "Đơn hàng chưa được gửi đến nhà cung cấp")
		return
	}

	status, err := providerClient().GetOrderStatus(c.Request.Context(), order.ProviderOrderID)
	if err != nil {
		utils.LogError("Provider status poll failed for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	if start, err := status.StartCount.Int64(); err == nil {
		order.StartCount = int(start)
	}
	if remains, err := status.Remains.Int64(); err == nil {
		order.RemainQuantity = int(remains)
	}
	if err := config.DB.Save(&order).Error; err != nil {
		utils.LogError("Failed to store provider progress for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Order ID: %d synced from provider - remote status: %s", order.ID, status.Status)

	utils.Success(c, "Đã đồng bộ trạng thái đơn hàng", gin.H{
		"order":           order,
		"provider_status": status.Status,
	})
}
