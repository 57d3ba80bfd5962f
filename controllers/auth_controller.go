package controllers

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/skillfusion/campusarena/config"
	"github.com/skillfusion/campusarena/models"
	"github.com/skillfusion/campusarena/utils"
)

// RegistrationData holds a pending signup between the signup request and
// OTP verification. Stored in the session, registered with gob in main.
type RegistrationData struct {
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Campus       string
}

// POST /v1/signup
func Signup(c *gin.Context) {
	utils.LogInfo("Signup called")

	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		FullName string `json:"full_name" binding:"required"`
		Campus   string `json:"campus"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid signup request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	req.Username = utils.SanitizeString(req.Username)
	req.Email = utils.SanitizeString(req.Email)
	if err := utils.ValidateUsername(req.Username); err != nil {
		utils.ValidationError(c, "Invalid username", err)
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		utils.ValidationError(c, "Invalid email", err)
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		utils.ValidationError(c, "Weak password", err)
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ? OR username = ?", req.Email, req.Username).
		First(&existing).Error; err == nil {
		utils.LogError("Signup with taken email or username: %s / %s", req.Email, req.Username)
		utils.Conflict(c, "Email or username already in use", nil)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to process signup", nil)
		return
	}

	otp := utils.GenerateOTP()
	userOTP := models.UserOTP{
		Email:     req.Email,
		Code:      otp,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}
	if err := config.DB.Create(&userOTP).Error; err != nil {
		utils.LogError("Failed to store OTP for %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to process signup", nil)
		return
	}

	session := sessions.Default(c)
	session.Set("registration", RegistrationData{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     utils.SanitizeString(req.FullName),
		Campus:       utils.SanitizeString(req.Campus),
	})
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save signup session for %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to process signup", nil)
		return
	}

	if err := utils.SendOTP(req.Email, otp); err != nil {
		utils.LogError("Failed to send OTP to %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to send verification email", nil)
		return
	}
	utils.LogInfo("Signup OTP sent to %s", req.Email)

	utils.Success(c, "Verification code sent to your email", gin.H{
		"email": req.Email,
	})
}

// POST /v1/verify-otp
func VerifyOTP(c *gin.Context) {
	utils.LogInfo("VerifyOTP called")

	var req struct {
		OTP string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. otp is required", err.Error())
		return
	}

	session := sessions.Default(c)
	regVal := session.Get("registration")
	if regVal == nil {
		utils.LogError("OTP verification without pending signup")
		utils.BadRequest(c, "No pending signup, please sign up first", nil)
		return
	}
	reg, ok := regVal.(RegistrationData)
	if !ok {
		utils.LogError("Invalid registration data in session")
		utils.BadRequest(c, "No pending signup, please sign up first", nil)
		return
	}

	var userOTP models.UserOTP
	if err := config.DB.Where("email = ? AND code = ?", reg.Email, req.OTP).
		Order("created_at DESC").First(&userOTP).Error; err != nil {
		utils.LogError("Invalid OTP for %s", reg.Email)
		utils.BadRequest(c, "Invalid verification code", nil)
		return
	}
	if time.Now().After(userOTP.ExpiresAt) {
		utils.LogError("Expired OTP for %s", reg.Email)
		utils.BadRequest(c, "Verification code expired, please sign up again", nil)
		return
	}

	user := models.User{
		Username:   reg.Username,
		Email:      reg.Email,
		Password:   reg.PasswordHash,
		FullName:   reg.FullName,
		Campus:     reg.Campus,
		IsVerified: true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			utils.Conflict(c, "Email or username already in use", nil)
			return
		}
		utils.LogError("Failed to create user %s: %v", reg.Email, err)
		utils.InternalServerError(c, "Failed to complete signup", nil)
		return
	}
	utils.LogInfo("User ID: %d created for %s", user.ID, user.Email)

	config.DB.Where("email = ?", reg.Email).Delete(&models.UserOTP{})
	session.Delete("registration")
	session.Save()

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to complete signup", nil)
		return
	}

	utils.Created(c, "Account verified successfully", gin.H{
		"token": token,
		"user":  user,
	})
}

// POST /v1/login
func Login(c *gin.Context) {
	utils.LogInfo("Login called")

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ? OR username = ?", req.Email, req.Email).
		First(&user).Error; err != nil {
		utils.LogError("Login failed, user not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Login failed, wrong password for user ID: %d", user.ID)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if user.IsBlocked {
		utils.LogError("Blocked user attempted login: %d", user.ID)
		utils.Forbidden(c, "Account is blocked")
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to login", nil)
		return
	}

	config.DB.Model(&user).Update("last_login_at", time.Now())
	utils.LogInfo("User ID: %d logged in", user.ID)

	utils.Success(c, "Logged in successfully", gin.H{
		"token": token,
		"user":  user,
	})
}

// POST /v1/user/logout
func Logout(c *gin.Context) {
	utils.LogInfo("Logout called")

	tokenVal, exists := c.Get("token")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	tokenString := tokenVal.(string)

	blacklisted := models.BlacklistedToken{
		Token:     tokenString,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	if err := config.DB.Create(&blacklisted).Error; err != nil && !isDuplicateKey(err) {
		utils.LogError("Failed to blacklist token: %v", err)
		utils.InternalServerError(c, "Failed to logout", nil)
		return
	}

	utils.Success(c, "Logged out successfully", nil)
}
