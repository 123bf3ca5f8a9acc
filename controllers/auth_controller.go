package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GoogleUserInfo holds the profile returned by Google's userinfo endpoint
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// GoogleLogin redirects to the Google consent screen
func GoogleLogin(c *gin.Context) {
	utils.LogInfo("GoogleLogin called")
	state := uuid.New().String()

	session := sessions.Default(c)
	session.Set("oauth_state", state)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save oauth state: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	url := config.GoogleOAuthConfig.AuthCodeURL(state)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback completes the OAuth exchange and signs the user in
func GoogleCallback(c *gin.Context) {
	utils.LogInfo("GoogleCallback called")

	session := sessions.Default(c)
	expectedState, _ := session.Get("oauth_state").(string)
	session.Delete("oauth_state")
	_ = session.Save()

	if expectedState == "" || c.Query("state") != expectedState {
		utils.LogError("Google callback - state mismatch")
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	code := c.Query("code")
	if code == "" {
		utils.LogError("Google callback - missing code")
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(c, code)
	if err != nil {
		utils.LogError("Google callback - token exchange failed: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + url.QueryEscape(token.AccessToken))
	if err != nil {
		utils.LogError("Google callback - userinfo request failed: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.LogError("Google callback - failed to read userinfo: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	var googleUser GoogleUserInfo
	if err := json.Unmarshal(data, &googleUser); err != nil {
		utils.LogError("Google callback - failed to parse userinfo: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", googleUser.Email).First(&user).Error; err != nil {
		// First Google sign-in becomes a verified account with a random password
		password, err := utils.HashPassword(uuid.New().String())
		if err != nil {
			utils.LogError("Google callback - password hashing failed: %v", err)
			utils.InternalServerError(c, utils.MsgInternalError)
			return
		}
		user = models.User{
			Username:   googleUser.Email,
			Email:      googleUser.Email,
			Password:   password,
			FirstName:  googleUser.GivenName,
			LastName:   googleUser.FamilyName,
			IsVerified: true,
			GoogleID:   googleUser.ID,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			utils.LogError("Google callback - failed to create user %s: %v", googleUser.Email, err)
			utils.InternalServerError(c, utils.MsgInternalError)
			return
		}
		utils.LogInfo("Created user ID: %d via Google sign-in", user.ID)

		if _, err := utils.GetOrCreateWallet(user.ID); err != nil {
			utils.LogError("Failed to open wallet for user ID: %d: %v", user.ID, err)
		}
	}

	if user.IsBlocked {
		utils.LogError("Google callback - blocked account: %s", user.Email)
		utils.Forbidden(c, utils.MsgUserBlocked)
		return
	}

	user.LastLoginAt = time.Now()
	if user.GoogleID == "" {
		user.GoogleID = googleUser.ID
	}
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Google callback - failed to update user ID: %d: %v", user.ID, err)
	}

	jwtToken, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Google callback - token generation failed for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		utils.Success(c, "Đăng nhập thành công", gin.H{"token": jwtToken})
		return
	}

	redirectURL := fmt.Sprintf("%s?token=%s", frontendURL, url.QueryEscape(jwtToken))
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}
