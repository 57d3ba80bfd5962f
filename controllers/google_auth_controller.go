package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skillfusion/campusarena/config"
	"github.com/skillfusion/campusarena/models"
	"github.com/skillfusion/campusarena/utils"
)

type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GET /auth/google/login
func GoogleLogin(c *gin.Context) {
	url := config.GoogleOAuthConfig.AuthCodeURL("state")
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GET /auth/google/callback
func GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "No code provided", nil)
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(c, code)
	if err != nil {
		utils.LogError("Failed to exchange OAuth code: %v", err)
		utils.InternalServerError(c, "Failed to authenticate with Google", nil)
		return
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		utils.LogError("Failed to fetch Google user info: %v", err)
		utils.InternalServerError(c, "Failed to authenticate with Google", nil)
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.LogError("Failed to read Google user info: %v", err)
		utils.InternalServerError(c, "Failed to authenticate with Google", nil)
		return
	}

	var googleUser GoogleUserInfo
	if err := json.Unmarshal(data, &googleUser); err != nil {
		utils.LogError("Failed to parse Google user info: %v", err)
		utils.InternalServerError(c, "Failed to authenticate with Google", nil)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", googleUser.Email).First(&user).Error; err != nil {
		// First Google login creates the account; username is provisional
		// until the user picks one via the profile endpoint.
		user = models.User{
			Username:   "player_" + uuid.New().String()[:8],
			Email:      googleUser.Email,
			FullName:   googleUser.Name,
			AvatarURL:  googleUser.Picture,
			GoogleID:   googleUser.ID,
			IsVerified: googleUser.VerifiedEmail,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			utils.LogError("Failed to create user for %s: %v", googleUser.Email, err)
			utils.InternalServerError(c, "Failed to authenticate with Google", nil)
			return
		}
		utils.LogInfo("User ID: %d created via Google login", user.ID)
	}

	if user.IsBlocked {
		utils.Forbidden(c, "Account is blocked")
		return
	}

	jwtToken, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to authenticate with Google", nil)
		return
	}

	config.DB.Model(&user).Update("last_login_at", time.Now())

	utils.Success(c, "Logged in with Google successfully", gin.H{
		"token": jwtToken,
		"user":  user,
	})
}
