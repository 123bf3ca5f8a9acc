package controllers

import (
	"strconv"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
)

// WheelPrizeInput is one prize slot in a wheel config request
type WheelPrizeInput struct {
	Label       string  `json:"label" binding:"required"`
	Amount      float64 `json:"amount" binding:"min=0"`
	Probability float64 `json:"probability" binding:"required,gt=0"`
	SortOrder   int     `json:"sort_order"`
}

// WheelConfigRequest represents the wheel config create/update body
type WheelConfigRequest struct {
	Name        string            `json:"name" binding:"required"`
	SpinsPerDay int               `json:"spins_per_day" binding:"required,min=0"`
	SpinCost    float64           `json:"spin_cost" binding:"min=0"`
	Prizes      []WheelPrizeInput `json:"prizes" binding:"required,min=1"`
}

// AdminListWheelConfigs returns all wheel configs with their prize lists
func AdminListWheelConfigs(c *gin.Context) {
	utils.LogInfo("AdminListWheelConfigs called")
	if _, exists := c.Get("admin"); !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}

	var configs []models.LuckyWheelConfig
	if err := config.DB.Preload("Prizes").Order("created_at DESC").Find(&configs).Error; err != nil {
		utils.LogError("Failed to list wheel configs: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.Success(c, "Danh sách cấu hình vòng quay", gin.H{"configs": configs})
}

// AdminCreateWheelConfig creates a new, inactive wheel config
func AdminCreateWheelConfig(c *gin.Context) {
	utils.LogInfo("AdminCreateWheelConfig called")
	if _, exists := c.Get("admin"); !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}

	var req WheelConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid wheel config request: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	wheelConfig := models.LuckyWheelConfig{
		Name:        utils.SanitizeString(req.Name),
		SpinsPerDay: req.SpinsPerDay,
		SpinCost:    req.SpinCost,
	}
	for _, p := range req.Prizes {
		wheelConfig.Prizes = append(wheelConfig.Prizes, models.LuckyWheelPrize{
			Label:       utils.SanitizeString(p.Label),
			Amount:      p.Amount,
			Probability: p.Probability,
			SortOrder:   p.SortOrder,
		})
	}

	if err := config.DB.Create(&wheelConfig).Error; err != nil {
		utils.LogError("Failed to create wheel config: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Wheel config created - ID: %d, prizes: %d", wheelConfig.ID, len(wheelConfig.Prizes))

	utils.Created(c, "Đã tạo cấu hình vòng quay", gin.H{"config": wheelConfig})
}

// AdminUpdateWheelConfig replaces a config's settings and prize list
func AdminUpdateWheelConfig(c *gin.Context) {
	utils.LogInfo("AdminUpdateWheelConfig called")
	if _, exists := c.Get("admin"); !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}

	configID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid config ID format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var req WheelConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid wheel config request: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var wheelConfig models.LuckyWheelConfig
	if err := config.DB.First(&wheelConfig, uint(configID)).Error; err != nil {
		utils.LogError("Wheel config not found - ID: %d: %v", configID, err)
		utils.NotFound(c, utils.MsgInvalidInput)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction: %v", tx.Error)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	wheelConfig.Name = utils.SanitizeString(req.Name)
	wheelConfig.SpinsPerDay = req.SpinsPerDay
	wheelConfig.SpinCost = req.SpinCost
	if err := tx.Save(&wheelConfig).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update wheel config ID: %d: %v", wheelConfig.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	if err := tx.Where("config_id = ?", wheelConfig.ID).Delete(&models.LuckyWheelPrize{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to clear prizes for config ID: %d: %v", wheelConfig.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	for _, p := range req.Prizes {
		prize := models.LuckyWheelPrize{
			ConfigID:    wheelConfig.ID,
			Label:       utils.SanitizeString(p.Label),
			Amount:      p.Amount,
			Probability: p.Probability,
			SortOrder:   p.SortOrder,
		}
		if err := tx.Create(&prize).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to create prize for config ID: %d: %v", wheelConfig.ID, err)
			utils.InternalServerError(c, utils.MsgInternalError)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit wheel config update for ID: %d: %v", wheelConfig.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Wheel config ID: %d updated", wheelConfig.ID)

	utils.Success(c, "Đã cập nhật cấu hình vòng quay", gin.H{"config": wheelConfig})
}

// AdminActivateWheelConfig makes one config active and deactivates the rest
func AdminActivateWheelConfig(c *gin.Context) {
	utils.LogInfo("AdminActivateWheelConfig called")
	if _, exists := c.Get("admin"); !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}

	configID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid config ID format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var wheelConfig models.LuckyWheelConfig
	if err := config.DB.First(&wheelConfig, uint(configID)).Error; err != nil {
		utils.LogError("Wheel config not found - ID: %d: %v", configID, err)
		utils.NotFound(c, utils.MsgInvalidInput)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction: %v", tx.Error)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	if err := tx.Model(&models.LuckyWheelConfig{}).Where("is_active = ?", true).
		Update("is_active", false).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to deactivate wheel configs: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	if err := tx.Model(&wheelConfig).Update("is_active", true).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to activate wheel config ID: %d: %v", wheelConfig.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit wheel activation for ID: %d: %v", wheelConfig.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Wheel config ID: %d activated", wheelConfig.ID)

	utils.Success(c, "Đã kích hoạt vòng quay", gin.H{"config_id": wheelConfig.ID})
}
