package controllers

import (
	"strconv"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
)

func requireAdmin(c *gin.Context) bool {
	if _, exists := c.Get("admin"); !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return false
	}
	return true
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid ID format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return 0, false
	}
	return uint(id), true
}

// CategoryRequest represents the category create/update body
type CategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	Platform  string `json:"platform"`
	SortOrder int    `json:"sort_order"`
}

// AdminCreateCategory creates a service category
func AdminCreateCategory(c *gin.Context) {
	utils.LogInfo("AdminCreateCategory called")
	if !requireAdmin(c) {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid category request: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	category := models.ServiceCategory{
		Name:      utils.SanitizeString(req.Name),
		Platform:  utils.SanitizeString(req.Platform),
		SortOrder: req.SortOrder,
	}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Category created - ID: %d", category.ID)

	utils.Created(c, "Đã tạo danh mục", gin.H{"category": category})
}

// AdminUpdateCategory updates a service category
func AdminUpdateCategory(c *gin.Context) {
	utils.LogInfo("AdminUpdateCategory called")
	if !requireAdmin(c) {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid category request: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var category models.ServiceCategory
	if err := config.DB.First(&category, id).Error; err != nil {
		utils.LogError("Category not found - ID: %d: %v", id, err)
		utils.NotFound(c, utils.MsgInvalidInput)
		return
	}

	category.Name = utils.SanitizeString(req.Name)
	category.Platform = utils.SanitizeString(req.Platform)
	category.SortOrder = req.SortOrder
	if err := config.DB.Save(&category).Error; err != nil {
		utils.LogError("Failed to update category ID: %d: %v", category.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.Success(c, "Đã cập nhật danh mục", gin.H{"category": category})
}

// ServiceRequest represents the service create/update body
type ServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

// AdminCreateService creates a service under a category
func AdminCreateService(c *gin.Context) {
	utils.LogInfo("AdminCreateService called")
	if !requireAdmin(c) {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid service request: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var category models.ServiceCategory
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.LogError("Category not found - ID: %d: %v", req.CategoryID, err)
		utils.NotFound(c, utils.MsgInvalidInput)
		return
	}

	service := models.Service{
		Name:        utils.SanitizeString(req.Name),
		Description: utils.SanitizeString(req.Description),
		CategoryID:  category.ID,
		IsActive:    true,
		SortOrder:   req.SortOrder,
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	if err := config.DB.Create(&service).Error; err != nil {
		utils.LogError("Failed to create service: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Service created - ID: %d", service.ID)

	utils.Created(c, "Đã tạo dịch vụ", gin.H{"service": service})
}

// AdminUpdateService updates a service
func AdminUpdateService(c *gin.Context) {
	utils.LogInfo("AdminUpdateService called")
	if !requireAdmin(c) {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid service request: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var service models.Service
	if err := config.DB.First(&service, id).Error; err != nil {
		utils.LogError("Service not found - ID: %d: %v", id, err)
		utils.NotFound(c, utils.MsgServiceNotFound)
		return
	}

	service.Name = utils.SanitizeString(req.Name)
	service.Description = utils.SanitizeString(req.Description)
	service.CategoryID = req.CategoryID
	service.SortOrder = req.SortOrder
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	if err := config.DB.Save(&service).Error; err != nil {
		utils.LogError("Failed to update service ID: %d: %v", service.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.Success(c, "Đã cập nhật dịch vụ", gin.H{"service": service})
}

// ServerRequest represents the server tier create/update body
type ServerRequest struct {
	ServiceID   uint    `json:"service_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	MinQuantity int     `json:"min_quantity" binding:"required,min=1"`
	MaxQuantity int     `json:"max_quantity" binding:"required,min=1"`
	Speed       string  `json:"speed"`
	Quality     string  `json:"quality"`
	Note        string  `json:"note"`
	IsActive    *bool   `json:"is_active"`
}

// AdminCreateServer creates a priced tier under a service
func AdminCreateServer(c *gin.Context) {
	utils.LogInfo("AdminCreateServer called")
	if !requireAdmin(c) {
		return
	}

	var req ServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid server request: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}
	if req.MinQuantity > req.MaxQuantity {
		utils.LogError("Server bounds inverted: min %d > max %d", req.MinQuantity, req.MaxQuantity)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var service models.Service
	if err := config.DB.First(&service, req.ServiceID).Error; err != nil {
		utils.LogError("Service not found - ID: %d: %v", req.ServiceID, err)
		utils.NotFound(c, utils.MsgServiceNotFound)
		return
	}

	server := models.ServiceServer{
		ServiceID:   service.ID,
		Name:        utils.SanitizeString(req.Name),
		Price:       req.Price,
		MinQuantity: req.MinQuantity,
		MaxQuantity: req.MaxQuantity,
		Speed:       utils.SanitizeString(req.Speed),
		Quality:     utils.SanitizeString(req.Quality),
		Note:        utils.SanitizeString(req.Note),
		IsActive:    true,
	}
	if req.IsActive != nil {
		server.IsActive = *req.IsActive
	}
	if err := config.DB.Create(&server).Error; err != nil {
		utils.LogError("Failed to create server: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Server created - ID: %d under service ID: %d", server.ID, service.ID)

	utils.Created(c, "Đã tạo máy chủ", gin.H{"server": server})
}

// AdminUpdateServer updates a priced tier. Existing orders keep the total
// computed at placement time.
func AdminUpdateServer(c *gin.Context) {
	utils.LogInfo("AdminUpdateServer called")
	if !requireAdmin(c) {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid server request: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}
	if req.MinQuantity > req.MaxQuantity {
		utils.LogError("Server bounds inverted: min %d > max %d", req.MinQuantity, req.MaxQuantity)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var server models.ServiceServer
	if err := config.DB.First(&server, id).Error; err != nil {
		utils.LogError("Server not found - ID: %d: %v", id, err)
		utils.NotFound(c, utils.MsgServerNotFound)
		return
	}

	server.ServiceID = req.ServiceID
	server.Name = utils.SanitizeString(req.Name)
	server.Price = req.Price
	server.MinQuantity = req.MinQuantity
	server.MaxQuantity = req.MaxQuantity
	server.Speed = utils.SanitizeString(req.Speed)
	server.Quality = utils.SanitizeString(req.Quality)
	server.Note = utils.SanitizeString(req.Note)
	if req.IsActive != nil {
		server.IsActive = *req.IsActive
	}
	if err := config.DB.Save(&server).Error; err != nil {
		utils.LogError("Failed to update server ID: %d: %v", server.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.Success(c, "Đã cập nhật máy chủ", gin.H{"server": server})
}

// AdminDeleteServer deactivates a tier instead of removing it, keeping the
// pricing history behind existing orders intact.
func AdminDeleteServer(c *gin.Context) {
	utils.LogInfo("AdminDeleteServer called")
	if !requireAdmin(c) {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var server models.ServiceServer
	if err := config.DB.First(&server, id).Error; err != nil {
		utils.LogError("Server not found - ID: %d: %v", id, err)
		utils.NotFound(c, utils.MsgServerNotFound)
		return
	}

	server.IsActive = false
	if err := config.DB.Save(&server).Error; err != nil {
		utils.LogError("Failed to deactivate server ID: %d: %v", server.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Server ID: %d deactivated", server.ID)

	utils.Success(c, "Đã ngừng hoạt động máy chủ", gin.H{"server_id": server.ID})
}
