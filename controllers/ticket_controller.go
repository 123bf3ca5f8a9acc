package controllers

import (
	"strconv"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateTicketRequest represents the ticket creation body
type CreateTicketRequest struct {
	Subject string `json:"subject" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
	OrderID *uint  `json:"order_id"`
}

// CreateTicket opens a new support ticket
func CreateTicket(c *gin.Context) {
	utils.LogInfo("CreateTicket called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid ticket request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	if req.OrderID != nil {
		var order models.Order
		if err := config.DB.Where("id = ? AND user_id = ?", *req.OrderID, user.ID).
			First(&order).Error; err != nil {
			utils.LogError("Ticket references unknown order ID: %d for user ID: %d", *req.OrderID, user.ID)
			utils.NotFound(c, utils.MsgOrderNotFound)
			return
		}
	}

	ticket := models.SupportTicket{
		UserID:  user.ID,
		Subject: utils.SanitizeString(req.Subject),
		Content: utils.SanitizeString(req.Content),
		Status:  models.TicketStatusOpen,
		OrderID: req.OrderID,
	}
	if err := config.DB.Create(&ticket).Error; err != nil {
		utils.LogError("Failed to create ticket for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Ticket created - ID: %d, user ID: %d", ticket.ID, user.ID)

	utils.Created(c, "Đã gửi yêu cầu hỗ trợ", gin.H{"ticket": ticket})
}

// ListTickets returns the current user's tickets
func ListTickets(c *gin.Context) {
	utils.LogInfo("ListTickets called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.SupportTicket{}).Where("user_id = ?", user.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count tickets for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	var tickets []models.SupportTicket
	if err := query.Order("updated_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&tickets).Error; err != nil {
		utils.LogError("Failed to list tickets for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.SuccessWithPagination(c, "Danh sách yêu cầu hỗ trợ", tickets, total, pagination.Page, pagination.Limit)
}

// GetTicket returns one ticket with its reply thread
func GetTicket(c *gin.Context) {
	utils.LogInfo("GetTicket called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid ticket ID format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var ticket models.SupportTicket
	if err := config.DB.Preload("Replies", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Where("id = ? AND user_id = ?", ticketID, user.ID).
		First(&ticket).Error; err != nil {
		utils.LogError("Ticket not found - ID: %d, user ID: %d: %v", ticketID, user.ID, err)
		utils.NotFound(c, utils.MsgTicketNotFound)
		return
	}

	utils.Success(c, "Chi tiết yêu cầu hỗ trợ", gin.H{"ticket": ticket})
}

// TicketReplyRequest represents a reply body
type TicketReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// ReplyTicket appends a user reply and reopens the ticket
func ReplyTicket(c *gin.Context) {
	utils.LogInfo("ReplyTicket called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid ticket ID format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var req TicketReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid reply request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var ticket models.SupportTicket
	if err := config.DB.Where("id = ? AND user_id = ?", ticketID, user.ID).
		First(&ticket).Error; err != nil {
		utils.LogError("Ticket not found - ID: %d, user ID: %d: %v", ticketID, user.ID, err)
		utils.NotFound(c, utils.MsgTicketNotFound)
		return
	}

	reply := models.TicketReply{
		TicketID: ticket.ID,
		UserID:   user.ID,
		IsAdmin:  false,
		Content:  utils.SanitizeString(req.Content),
	}
	if err := config.DB.Create(&reply).Error; err != nil {
		utils.LogError("Failed to create reply for ticket ID: %d: %v", ticket.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	ticket.Status = models.TicketStatusOpen
	if err := config.DB.Save(&ticket).Error; err != nil {
		utils.LogError("Failed to reopen ticket ID: %d: %v", ticket.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("User ID: %d replied to ticket ID: %d", user.ID, ticket.ID)

	utils.Created(c, "Đã gửi phản hồi", gin.H{"reply": reply})
}
