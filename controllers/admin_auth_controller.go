package controllers

import (
	"os"
	"time"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
)

// AdminLoginRequest represents the admin login request
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin handles admin authentication
func AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid admin login request: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}
	utils.LogDebug("Processing admin login for email: %s", req.Email)

	var admin models.Admin
	if err := config.DB.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		utils.LogError("Admin not found for email: %s: %v", req.Email, err)
		utils.Unauthorized(c, utils.MsgInvalidCredentials)
		return
	}

	if !admin.IsActive {
		utils.LogError("Inactive admin account attempted login: %s", admin.Email)
		utils.Forbidden(c, utils.MsgAccountDisabled)
		return
	}

	if !utils.CheckPassword(req.Password, admin.Password) {
		utils.LogError("Invalid password for admin: %s", admin.Email)
		utils.Unauthorized(c, utils.MsgInvalidCredentials)
		return
	}
	utils.LogDebug("Password verified for admin: %s", admin.Email)

	admin.LastLogin = time.Now()
	if err := config.DB.Save(&admin).Error; err != nil {
		utils.LogError("Failed to update last login for admin: %s: %v", admin.Email, err)
	}

	token, err := utils.GenerateAdminToken(&admin)
	if err != nil {
		utils.LogError("Failed to sign token for admin: %s: %v", admin.Email, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.LogInfo("Admin login successful: %s", admin.Email)
	utils.Success(c, "Đăng nhập thành công", gin.H{
		"token": token,
		"admin": gin.H{
			"id":         admin.ID,
			"email":      admin.Email,
			"first_name": admin.FirstName,
			"last_name":  admin.LastName,
		},
	})
}

// AdminLogout handles admin logout. Tokens are stateless so this only
// confirms the client should discard its copy.
func AdminLogout(c *gin.Context) {
	utils.LogInfo("AdminLogout called")
	utils.Success(c, "Đã đăng xuất", nil)
}

// CreateSampleAdmin seeds the back-office account from environment variables
func CreateSampleAdmin() error {
	utils.LogInfo("CreateSampleAdmin called")
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		utils.LogDebug("ADMIN_EMAIL not set, skipping admin seed")
		return nil
	}

	hashedPassword, err := utils.HashPassword(os.Getenv("ADMIN_PASSWORD"))
	if err != nil {
		utils.LogError("Failed to hash admin password: %v", err)
		return err
	}

	admin := models.Admin{
		Email:     email,
		Password:  hashedPassword,
		FirstName: os.Getenv("ADMIN_FIRST_NAME"),
		LastName:  os.Getenv("ADMIN_LAST_NAME"),
		IsActive:  true,
	}

	if err := config.DB.FirstOrCreate(&admin, models.Admin{Email: admin.Email}).Error; err != nil {
		utils.LogError("Failed to create sample admin: %v", err)
		return err
	}
	utils.LogInfo("Sample admin ready: %s", admin.Email)
	return nil
}
