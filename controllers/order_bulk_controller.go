package controllers

import (
	"fmt"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BulkOrderLine is one line item in a bulk order request
type BulkOrderLine struct {
	ServerID uint   `json:"server_id" binding:"required"`
	Link     string `json:"link" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// BulkOrderRequest represents the bulk order request body
type BulkOrderRequest struct {
	Orders []BulkOrderLine `json:"orders" binding:"required,min=1,max=100"`
}

// BulkLineError reports why a single line was skipped
type BulkLineError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type validBulkLine struct {
	line   BulkOrderLine
	server models.ServiceServer
	price  float64
}

// serverLookup resolves an active server by ID
type serverLookup func(id uint) (*models.ServiceServer, error)

// validateBulkLines validates and prices every line, collecting per-line
// errors instead of failing the batch. Returns the priced valid lines, the
// per-line errors and the batch total.
func validateBulkLines(lines []BulkOrderLine, lookup serverLookup) ([]validBulkLine, []BulkLineError, float64) {
	var validLines []validBulkLine
	var lineErrors []BulkLineError
	var batchTotal float64

	for i, line := range lines {
		if err := utils.ValidateLink(line.Link); err != nil {
			lineErrors = append(lineErrors, BulkLineError{Index: i, Error: "Liên kết không hợp lệ"})
			continue
		}

		server, err := lookup(line.ServerID)
		if err != nil {
			lineErrors = append(lineErrors, BulkLineError{Index: i, Error: utils.MsgServerNotFound})
			continue
		}

		if err := utils.ValidateOrderQuantity(server, line.Quantity); err != nil {
			lineErrors = append(lineErrors, BulkLineError{
				Index: i,
				Error: fmt.Sprintf("%s (%d-%d)", utils.MsgQuantityOutOfRange, server.MinQuantity, server.MaxQuantity),
			})
			continue
		}

		price := utils.CalculateOrderPrice(server.Price, line.Quantity)
		batchTotal += price
		validLines = append(validLines, validBulkLine{line: line, server: *server, price: price})
	}
	return validLines, lineErrors, batchTotal
}

// PlaceBulkOrder validates and prices every line first, collecting per-line
// errors instead of failing the batch, then creates all valid orders in one
// atomic unit. The ledger entry for each line records the running balance
// after that specific line's debit, so the transaction history reconciles
// line by line.
func PlaceBulkOrder(c *gin.Context) {
	utils.LogInfo("PlaceBulkOrder called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	var req BulkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid bulk order request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}
	utils.LogDebug("Bulk order with %d lines for user ID: %d", len(req.Orders), user.ID)

	// Validate and price every line before touching the wallet
	activeServer := func(id uint) (*models.ServiceServer, error) {
		var server models.ServiceServer
		if err := config.DB.Where("id = ? AND is_active = ?", id, true).
			First(&server).Error; err != nil {
			return nil, err
		}
		return &server, nil
	}
	validLines, lineErrors, batchTotal := validateBulkLines(req.Orders, activeServer)

	if len(validLines) == 0 {
		utils.LogError("Bulk order for user ID: %d has no valid lines", user.ID)
		utils.BadRequest(c, "Không có đơn hàng hợp lệ nào trong danh sách")
		return
	}
	utils.LogDebug("Bulk order for user ID: %d - valid lines: %d, batch total: %.2f",
		user.ID, len(validLines), batchTotal)

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

	// Re-check the total once the valid set is known
	if !wallet.CanDebit(batchTotal) {
		tx.Rollback()
		utils.LogError("Insufficient balance for bulk order, user ID: %d. Required: %.2f, Available: %.2f",
			user.ID, batchTotal, wallet.Balance)
		utils.BadRequest(c, utils.MsgInsufficientBalance)
		return
	}

	var created []gin.H
	for _, vl := range validLines {
		order := models.Order{
			UserID:         user.ID,
			ServiceID:      vl.server.ServiceID,
			ServerID:       vl.server.ID,
			Link:           vl.line.Link,
			Quantity:       vl.line.Quantity,
			TotalPrice:     vl.price,
			Status:         models.OrderStatusPending,
			RemainQuantity: vl.line.Quantity,
		}
		if err := tx.Create(&order).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to create bulk order line for user ID: %d: %v", user.ID, err)
			utils.InternalServerError(c, utils.MsgInternalError)
			return
		}

		description := fmt.Sprintf("Thanh toán đơn hàng #%d - %s x%d",
			order.ID, vl.server.Name, vl.line.Quantity)
		reference := fmt.Sprintf("ORDER-%s", uuid.New().String())
		transaction, err := utils.DebitWallet(tx, wallet, vl.price, models.TransactionTypeOrder,
			description, reference, &order.ID)
		if err != nil {
			tx.Rollback()
			utils.LogError("Failed to debit wallet for bulk line, user ID: %d: %v", user.ID, err)
			utils.InternalServerError(c, utils.MsgInternalError)
			return
		}

		created = append(created, gin.H{
			"id":            order.ID,
			"server_id":     order.ServerID,
			"link":          order.Link,
			"quantity":      order.Quantity,
			"total_price":   order.TotalPrice,
			"status":        order.Status,
			"balance_after": transaction.BalanceAfter,
		})
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit bulk order for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Bulk order placed for user ID: %d - created: %d, skipped: %d, debited: %.2f",
		user.ID, len(created), len(lineErrors), batchTotal)

	utils.Created(c, fmt.Sprintf("Đã tạo %d đơn hàng", len(created)), gin.H{
		"orders": created,
		"errors": lineErrors,
		"wallet": gin.H{
			"balance": wallet.Balance,
		},
	})
}
