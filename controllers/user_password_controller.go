package controllers

import (
	"time"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
)

// ForgotPasswordRequest represents the forgot password body
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents the password reset body
type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	OTP             string `json:"otp" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// ChangePasswordRequest represents the authenticated password change body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// ForgotPassword emails a reset code to an existing account
func ForgotPassword(c *gin.Context) {
	utils.LogInfo("ForgotPassword called")
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Forgot password failed - invalid request: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		// Do not reveal whether the email exists
		utils.LogDebug("Forgot password for unknown email: %s", req.Email)
		utils.Success(c, "Nếu email tồn tại, mã đặt lại mật khẩu đã được gửi", nil)
		return
	}

	otp := utils.GenerateOTP()
	user.OTP = otp
	user.OTPExpiry = time.Now().Add(10 * time.Minute)
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Forgot password - failed to store OTP for %s: %v", user.Email, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	if err := utils.SendOTP(user.Email, otp); err != nil {
		utils.LogError("Forgot password - failed to send OTP to %s: %v", user.Email, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.LogInfo("Password reset OTP sent to: %s", user.Email)
	utils.Success(c, "Nếu email tồn tại, mã đặt lại mật khẩu đã được gửi", nil)
}

// ResetPassword sets a new password after OTP verification
func ResetPassword(c *gin.Context) {
	utils.LogInfo("ResetPassword called")
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Reset password failed - invalid request: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		utils.BadRequest(c, "Mật khẩu xác nhận không khớp")
		return
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("Reset password failed - user not found: %s", req.Email)
		utils.NotFound(c, utils.MsgUserNotFound)
		return
	}

	if user.OTP == "" || user.OTP != req.OTP {
		utils.LogError("Reset password failed - wrong OTP for %s", user.Email)
		utils.BadRequest(c, utils.MsgOTPInvalid)
		return
	}
	if time.Now().After(user.OTPExpiry) {
		utils.LogError("Reset password failed - expired OTP for %s", user.Email)
		utils.BadRequest(c, utils.MsgOTPExpired)
		return
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.LogError("Reset password - hashing error for %s: %v", user.Email, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	user.Password = hashedPassword
	user.OTP = ""
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Reset password - failed to save user %s: %v", user.Email, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.LogInfo("Password reset completed for: %s", user.Email)
	utils.Success(c, "Đặt lại mật khẩu thành công", nil)
}

// ChangePassword updates the password of the authenticated user
func ChangePassword(c *gin.Context) {
	utils.LogInfo("ChangePassword called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Change password failed - invalid request: %v", err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	if !utils.CheckPassword(req.CurrentPassword, user.Password) {
		utils.LogError("Change password failed - wrong current password for user ID: %d", user.ID)
		utils.Unauthorized(c, "Mật khẩu hiện tại không đúng")
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		utils.BadRequest(c, "Mật khẩu xác nhận không khớp")
		return
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.LogError("Change password - hashing error for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	if err := config.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Update("password", hashedPassword).Error; err != nil {
		utils.LogError("Change password - failed to save user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	utils.LogInfo("Password changed for user ID: %d", user.ID)
	utils.Success(c, "Đổi mật khẩu thành công", nil)
}
