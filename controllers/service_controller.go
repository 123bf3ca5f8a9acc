package controllers

import (
	"strconv"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetServices returns the public catalog grouped by category
func GetServices(c *gin.Context) {
	utils.LogInfo("GetServices called")

	var categories []models.ServiceCategory
	err := config.DB.Where("blocked = ?", false).
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("sort_order ASC")
		}).
		Order("sort_order ASC").
		Find(&categories).Error
	if err != nil {
		utils.LogError("Failed to list service catalog: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.Success(c, "Danh mục dịch vụ", gin.H{"categories": categories})
}

// GetServiceServers returns the active priced tiers of one service
func GetServiceServers(c *gin.Context) {
	utils.LogInfo("GetServiceServers called")

	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid service ID format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var service models.Service
	if err := config.DB.Where("id = ? AND is_active = ?", serviceID, true).
		First(&service).Error; err != nil {
		utils.LogError("Service not found - ID: %d: %v", serviceID, err)
		utils.NotFound(c, utils.MsgServiceNotFound)
		return
	}

	var servers []models.ServiceServer
	if err := config.DB.Where("service_id = ? AND is_active = ?", service.ID, true).
		Order("price ASC").Find(&servers).Error; err != nil {
		utils.LogError("Failed to list servers for service ID: %d: %v", service.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.Success(c, "Danh sách máy chủ", gin.H{
		"service": service,
		"servers": servers,
	})
}
