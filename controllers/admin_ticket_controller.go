package controllers

import (
	"strconv"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminListTickets returns all tickets, open first
func AdminListTickets(c *gin.Context) {
	utils.LogInfo("AdminListTickets called")
	if !requireAdmin(c) {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.SupportTicket{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count tickets: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	var tickets []models.SupportTicket
	if err := query.Preload("User").Order("status ASC, updated_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&tickets).Error; err != nil {
		utils.LogError("Failed to list tickets: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.SuccessWithPagination(c, "Danh sách yêu cầu hỗ trợ", tickets, total, pagination.Page, pagination.Limit)
}

// AdminGetTicket returns one ticket with its reply thread
func AdminGetTicket(c *gin.Context) {
	utils.LogInfo("AdminGetTicket called")
	if !requireAdmin(c) {
		return
	}

	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid ticket ID format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var ticket models.SupportTicket
	if err := config.DB.Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).First(&ticket, uint(ticketID)).Error; err != nil {
		utils.LogError("Ticket not found - ID: %d: %v", ticketID, err)
		utils.NotFound(c, utils.MsgTicketNotFound)
		return
	}

	utils.Success(c, "Chi tiết yêu cầu hỗ trợ", gin.H{"ticket": ticket})
}

// AdminReplyTicket appends a back-office reply, marks the ticket ANSWERED and
// notifies the user by email.
func AdminReplyTicket(c *gin.Context) {
	utils.LogInfo("AdminReplyTicket called")
	adminVal, exists := c.Get("admin")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	admin := adminVal.(models.Admin)

	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid ticket ID format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var req TicketReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid reply request from admin ID: %d: %v", admin.ID, err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var ticket models.SupportTicket
	if err := config.DB.Preload("User").First(&ticket, uint(ticketID)).Error; err != nil {
		utils.LogError("Ticket not found - ID: %d: %v", ticketID, err)
		utils.NotFound(c, utils.MsgTicketNotFound)
		return
	}

	reply := models.TicketReply{
		TicketID: ticket.ID,
		UserID:   admin.ID,
		IsAdmin:  true,
		Content:  utils.SanitizeString(req.Content),
	}
	if err := config.DB.Create(&reply).Error; err != nil {
		utils.LogError("Failed to create admin reply for ticket ID: %d: %v", ticket.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	ticket.Status = models.TicketStatusAnswered
	if err := config.DB.Save(&ticket).Error; err != nil {
		utils.LogError("Failed to mark ticket ID: %d answered: %v", ticket.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Admin ID: %d replied to ticket ID: %d", admin.ID, ticket.ID)

	if err := utils.SendTicketReplyEmail(ticket.User.Email, ticket.Subject); err != nil {
		utils.LogError("Failed to send ticket reply email to %s: %v", ticket.User.Email, err)
	}

	utils.Created(c, "Đã gửi phản hồi", gin.H{"reply": reply})
}

// AdminResolveTicket closes a ticket
func AdminResolveTicket(c *gin.Context) {
	utils.LogInfo("AdminResolveTicket called")
	if !requireAdmin(c) {
		return
	}

	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid ticket ID format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var ticket models.SupportTicket
	if err := config.DB.First(&ticket, uint(ticketID)).Error; err != nil {
		utils.LogError("Ticket not found - ID: %d: %v", ticketID, err)
		utils.NotFound(c, utils.MsgTicketNotFound)
		return
	}

	ticket.Status = models.TicketStatusResolved
	if err := config.DB.Save(&ticket).Error; err != nil {
		utils.LogError("Failed to resolve ticket ID: %d: %v", ticket.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Ticket ID: %d resolved", ticket.ID)

	utils.Success(c, "Đã đóng yêu cầu hỗ trợ", gin.H{"ticket_id": ticket.ID, "status": ticket.Status})
}
