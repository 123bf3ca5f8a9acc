package controllers

import (
	"strconv"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
)

// ListOrders returns the current user's orders, newest first
func ListOrders(c *gin.Context) {
	utils.LogInfo("ListOrders called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	var orders []models.Order
	if err := query.Preload("Service").Preload("Server").
		Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to list orders for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.SuccessWithPagination(c, "Danh sách đơn hàng", orders, total, pagination.Page, pagination.Limit)
}

// GetOrderDetails returns one of the current user's orders
func GetOrderDetails(c *gin.Context) {
	utils.LogInfo("GetOrderDetails called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid order ID format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var order models.Order
	if err := config.DB.Preload("Service").Preload("Server").
		Where("id = ? AND user_id = ?", orderID, user.ID).
		First(&order).Error; err != nil {
		utils.LogError("Order not found - Order ID: %d, user ID: %d: %v", orderID, user.ID, err)
		utils.NotFound(c, utils.MsgOrderNotFound)
		return
	}

	utils.Success(c, "Chi tiết đơn hàng", gin.H{"order": order})
}
