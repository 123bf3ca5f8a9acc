package models

import (
	"gorm.io/gorm"
)

// ServiceCategory groups services per social platform
type ServiceCategory struct {
	gorm.Model
	Name      string    `json:"name" gorm:"uniqueIndex"`
	Platform  string    `json:"platform"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	Blocked   bool      `json:"blocked" gorm:"default:false"`
	Services  []Service `json:"services,omitempty"`
}

// Service represents one engagement service (likes, follows, views)
type Service struct {
	gorm.Model
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CategoryID  uint            `json:"category_id"`
	Category    ServiceCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	IsActive    bool            `json:"is_active" gorm:"default:true"`
	SortOrder   int             `json:"sort_order" gorm:"default:0"`
	Servers     []ServiceServer `json:"servers,omitempty" gorm:"foreignKey:ServiceID"`
}

// ServiceServer is a priced fulfillment tier under a Service. Price is per
// 1000 units; MinQuantity/MaxQuantity bound the order quantity. Orders copy
// the computed total at placement time, so later price edits never touch
// existing orders.
type ServiceServer struct {
	gorm.Model
	ServiceID   uint    `json:"service_id" gorm:"index"`
	Service     Service `json:"-" gorm:"foreignKey:ServiceID"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	MinQuantity int     `json:"min_quantity"`
	MaxQuantity int     `json:"max_quantity"`
	Speed       string  `json:"speed"`
	Quality     string  `json:"quality"`
	Note        string  `json:"note"`
	IsActive    bool    `json:"is_active" gorm:"default:true"`
}
