package models

import (
	"gorm.io/gorm"
)

// Ticket status constants
const (
	TicketStatusOpen     = "OPEN"
	TicketStatusAnswered = "ANSWERED"
	TicketStatusResolved = "RESOLVED"
)

// SupportTicket is a user support request handled by the back office
type SupportTicket struct {
	gorm.Model
	UserID  uint          `json:"user_id" gorm:"index"`
	User    User          `json:"-" gorm:"foreignKey:UserID"`
	Subject string        `json:"subject"`
	Content string        `json:"content"`
	Status  string        `json:"status" gorm:"default:'OPEN'"`
	OrderID *uint         `json:"order_id,omitempty"`
	Replies []TicketReply `json:"replies,omitempty" gorm:"foreignKey:TicketID"`
}

// TicketReply is one message in a ticket thread. IsAdmin marks back-office
// replies.
type TicketReply struct {
	gorm.Model
	TicketID uint   `json:"ticket_id" gorm:"index"`
	UserID   uint   `json:"user_id"`
	IsAdmin  bool   `json:"is_admin"`
	Content  string `json:"content"`
}
