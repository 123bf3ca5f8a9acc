package controllers

import (
	"time"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginUser authenticates by username or email and issues a JWT
func LoginUser(c *gin.Context) {
	utils.LogInfo("LoginUser called")
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Login failed - invalid request format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}
	utils.LogDebug("Login attempt for: %s", req.Login)

	var user models.User
	if err := config.DB.Where("username = ? OR email = ?", req.Login, req.Login).First(&user).Error; err != nil {
		utils.LogError("Login failed - user not found: %s", req.Login)
		utils.Unauthorized(c, utils.MsgInvalidCredentials)
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Login failed - wrong password for user ID: %d", user.ID)
		utils.Unauthorized(c, utils.MsgInvalidCredentials)
		return
	}
	if !user.IsVerified {
		utils.LogError("Login failed - unverified account: %s", user.Email)
		utils.Forbidden(c, utils.MsgEmailNotVerified)
		return
	}
	if user.IsBlocked {
		utils.LogError("Login failed - blocked account: %s", user.Email)
		utils.Forbidden(c, utils.MsgUserBlocked)
		return
	}

	user.LastLoginAt = time.Now()
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to update last login for user ID: %d: %v", user.ID, err)
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Login failed - token generation error for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.LogInfo("Login successful for user ID: %d", user.ID)
	utils.Success(c, "Đăng nhập thành công", gin.H{
		"token": token,
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		},
	})
}

// LogoutUser confirms logout. Tokens are stateless, the client drops its copy.
func LogoutUser(c *gin.Context) {
	utils.LogInfo("LogoutUser called")
	utils.Success(c, "Đã đăng xuất", nil)
}

// GetProfile returns the authenticated user's profile and wallet summary
func GetProfile(c *gin.Context) {
	utils.LogInfo("GetProfile called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	wallet, err := utils.GetOrCreateWallet(user.ID)
	if err != nil {
		utils.LogError("Failed to load wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.Success(c, "Thông tin tài khoản", gin.H{
		"user": gin.H{
			"id":            user.ID,
			"username":      user.Username,
			"email":         user.Email,
			"first_name":    user.FirstName,
			"last_name":     user.LastName,
			"phone":         user.Phone,
			"last_login_at": user.LastLoginAt,
		},
		"wallet": gin.H{
			"balance":       wallet.Balance,
			"total_deposit": wallet.TotalDeposit,
			"total_spent":   wallet.TotalSpent,
		},
	})
}
