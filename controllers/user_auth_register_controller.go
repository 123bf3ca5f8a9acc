package controllers

import (
	"time"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
}

// VerifyOTPRequest represents the OTP verification body
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// ResendOTPRequest represents an OTP resend body
type ResendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RegisterUser creates an unverified account and emails a one-time code
func RegisterUser(c *gin.Context) {
	utils.LogInfo("RegisterUser called")
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Registration failed - invalid request format: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}
	utils.LogDebug("Registration attempt for email: %s, username: %s", req.Email, req.Username)

	if err := utils.ValidateUsername(req.Username); err != nil {
		utils.LogError("Registration failed - invalid username %s: %v", req.Username, err)
		utils.ValidationError(c, err.Error())
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		utils.LogError("Registration failed - invalid email %s: %v", req.Email, err)
		utils.ValidationError(c, err.Error())
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		utils.LogError("Registration failed - weak password for email: %s", req.Email)
		utils.ValidationError(c, err.Error())
		return
	}
	if req.Password != req.ConfirmPassword {
		utils.LogError("Registration failed - password mismatch for email: %s", req.Email)
		utils.BadRequest(c, "Mật khẩu xác nhận không khớp")
		return
	}

	var existing models.User
	if err := config.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		utils.LogError("Registration failed - username taken: %s", req.Username)
		utils.Conflict(c, utils.MsgUsernameTaken)
		return
	}
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.LogError("Registration failed - email taken: %s", req.Email)
		utils.Conflict(c, utils.MsgEmailTaken)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Registration failed - password hashing error for %s: %v", req.Email, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	otp := utils.GenerateOTP()
	user := models.User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   hashedPassword,
		FirstName:  utils.SanitizeString(req.FirstName),
		LastName:   utils.SanitizeString(req.LastName),
		Phone:      utils.SanitizeString(req.Phone),
		IsVerified: false,
		OTP:        otp,
		OTPExpiry:  time.Now().Add(10 * time.Minute),
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Registration failed - could not create user %s: %v", req.Email, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogDebug("Created unverified user ID: %d for email: %s", user.ID, user.Email)

	if err := utils.SendOTP(user.Email, otp); err != nil {
		utils.LogError("Registration - failed to send OTP to %s: %v", user.Email, err)
		utils.InternalServerError(c, "Không thể gửi email xác minh. Vui lòng thử lại sau")
		return
	}

	utils.LogInfo("Registration OTP sent to email: %s", user.Email)
	utils.Created(c, "Mã OTP đã được gửi đến email của bạn", gin.H{
		"email":      user.Email,
		"expires_in": 600,
	})
}

// VerifyOTP confirms the emailed code, activates the account and opens its wallet
func VerifyOTP(c *gin.Context) {
	utils.LogInfo("VerifyOTP called")
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("OTP verification failed - invalid request: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("OTP verification failed - user not found: %s", req.Email)
		utils.NotFound(c, utils.MsgUserNotFound)
		return
	}

	if user.IsVerified {
		utils.LogDebug("OTP verification skipped - already verified: %s", user.Email)
		utils.Success(c, "Tài khoản đã được xác minh", nil)
		return
	}
	if user.OTP == "" || user.OTP != req.OTP {
		utils.LogError("OTP verification failed - wrong code for %s", user.Email)
		utils.BadRequest(c, utils.MsgOTPInvalid)
		return
	}
	if time.Now().After(user.OTPExpiry) {
		utils.LogError("OTP verification failed - expired code for %s", user.Email)
		utils.BadRequest(c, utils.MsgOTPExpired)
		return
	}

	user.IsVerified = true
	user.OTP = ""
	user.LastLoginAt = time.Now()
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("OTP verification failed - could not update user %s: %v", user.Email, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	if _, err := utils.GetOrCreateWallet(user.ID); err != nil {
		utils.LogError("Failed to open wallet for user ID: %d: %v", user.ID, err)
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("OTP verification - token generation failed for %s: %v", user.Email, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.LogInfo("User verified successfully: %s", user.Email)
	utils.Success(c, "Xác minh thành công", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// ResendOTP issues a fresh code for an unverified account
func ResendOTP(c *gin.Context) {
	utils.LogInfo("ResendOTP called")
	var req ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("OTP resend failed - invalid request: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("OTP resend failed - user not found: %s", req.Email)
		utils.NotFound(c, utils.MsgUserNotFound)
		return
	}
	if user.IsVerified {
		utils.BadRequest(c, "Tài khoản đã được xác minh")
		return
	}

	otp := utils.GenerateOTP()
	user.OTP = otp
	user.OTPExpiry = time.Now().Add(10 * time.Minute)
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("OTP resend failed - could not update user %s: %v", user.Email, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	if err := utils.SendOTP(user.Email, otp); err != nil {
		utils.LogError("OTP resend - failed to send email to %s: %v", user.Email, err)
		utils.InternalServerError(c, "Không thể gửi email xác minh. Vui lòng thử lại sau")
		return
	}

	utils.LogInfo("OTP resent to email: %s", user.Email)
	utils.Success(c, "Mã OTP mới đã được gửi", gin.H{"expires_in": 600})
}
