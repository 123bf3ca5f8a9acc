package controllers

import (
	"time"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
)

// AdminDashboard aggregates the headline numbers for the back office
func AdminDashboard(c *gin.Context) {
	utils.LogInfo("AdminDashboard called")
	if !requireAdmin(c) {
		return
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var totalUsers, newUsersToday int64
	if err := config.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		utils.LogError("Dashboard - failed to count users: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	config.DB.Model(&models.User{}).Where("created_at >= ?", startOfDay).Count(&newUsersToday)

	var totalOrders, ordersToday, pendingOrders int64
	config.DB.Model(&models.Order{}).Count(&totalOrders)
	config.DB.Model(&models.Order{}).Where("created_at >= ?", startOfDay).Count(&ordersToday)
	config.DB.Model(&models.Order{}).Where("status IN ?",
		[]string{models.OrderStatusPending, models.OrderStatusProcessing}).Count(&pendingOrders)

	// Revenue is the sum of order debits, refunds netted out
	var revenueToday, revenueMonth float64
	config.DB.Model(&models.Transaction{}).
		Where("type = ? AND status = ? AND created_at >= ?",
			models.TransactionTypeOrder, models.TransactionStatusCompleted, startOfDay).
		Select("COALESCE(SUM(-amount), 0)").Scan(&revenueToday)
	config.DB.Model(&models.Transaction{}).
		Where("type = ? AND status = ? AND created_at >= ?",
			models.TransactionTypeOrder, models.TransactionStatusCompleted, startOfMonth).
		Select("COALESCE(SUM(-amount), 0)").Scan(&revenueMonth)

	var refundedMonth float64
	config.DB.Model(&models.Transaction{}).
		Where("type = ? AND status = ? AND created_at >= ?",
			models.TransactionTypeRefund, models.TransactionStatusCompleted, startOfMonth).
		Select("COALESCE(SUM(amount), 0)").Scan(&refundedMonth)

	// Liability: money users hold but have not spent yet
	var outstandingBalance float64
	config.DB.Model(&models.Wallet{}).Select("COALESCE(SUM(balance), 0)").Scan(&outstandingBalance)

	var pendingDeposits int64
	config.DB.Model(&models.Transaction{}).
		Where("type = ? AND status = ?", models.TransactionTypeDeposit, models.TransactionStatusPending).
		Count(&pendingDeposits)

	var openTickets int64
	config.DB.Model(&models.SupportTicket{}).
		Where("status = ?", models.TicketStatusOpen).Count(&openTickets)

	var recentOrders []models.Order
	if err := config.DB.Preload("User").Preload("Service").
		Order("created_at DESC").Limit(10).Find(&recentOrders).Error; err != nil {
		utils.LogError("Dashboard - failed to fetch recent orders: %v", err)
	}

	orderRows := make([]gin.H, 0, len(recentOrders))
	for _, order := range recentOrders {
		orderRows = append(orderRows, gin.H{
			"id":         order.ID,
			"username":   order.User.Username,
			"service":    order.Service.Name,
			"quantity":   order.Quantity,
			"price":      order.TotalPrice,
			"status":     order.Status,
			"created_at": order.CreatedAt,
		})
	}

	utils.LogDebug("Dashboard computed - users: %d, orders: %d", totalUsers, totalOrders)
	utils.Success(c, "Thống kê tổng quan", gin.H{
		"users": gin.H{
			"total":     totalUsers,
			"new_today": newUsersToday,
		},
		"orders": gin.H{
			"total":   totalOrders,
			"today":   ordersToday,
			"pending": pendingOrders,
		},
		"revenue": gin.H{
			"today":          revenueToday,
			"month":          revenueMonth,
			"refunded_month": refundedMonth,
			"net_month":      revenueMonth - refundedMonth,
		},
		"wallets": gin.H{
			"outstanding_balance": outstandingBalance,
			"pending_deposits":    pendingDeposits,
		},
		"tickets": gin.H{
			"open": openTickets,
		},
		"recent_orders": orderRows,
	})
}
