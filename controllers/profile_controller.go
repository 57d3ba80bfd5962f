package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/skillfusion/campusarena/config"
	"github.com/skillfusion/campusarena/models"
	"github.com/skillfusion/campusarena/utils"
)

// GET /v1/user/profile
func GetProfile(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	utils.Success(c, "Profile retrieved successfully", gin.H{
		"user": user,
	})
}

// PUT /v1/user/profile
func UpdateProfile(c *gin.Context) {
	utils.LogInfo("UpdateProfile called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		Username     *string `json:"username"`
		FullName     *string `json:"full_name"`
		AvatarURL    *string `json:"avatar_url"`
		Bio          *string `json:"bio"`
		BGMIID       *string `json:"bgmi_id"`
		COCID        *string `json:"coc_id"`
		DiscordURL   *string `json:"discord_url"`
		InstagramURL *string `json:"instagram_url"`
		LinkedinURL  *string `json:"linkedin_url"`
		Campus       *string `json:"campus"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		username := utils.SanitizeString(*req.Username)
		if err := utils.ValidateUsername(username); err != nil {
			utils.ValidationError(c, "Invalid username", err)
			return
		}
		var taken models.User
		if err := config.DB.Where("username = ? AND id <> ?", username, user.ID).
			First(&taken).Error; err == nil {
			utils.Conflict(c, "Username already taken", nil)
			return
		}
		updates["username"] = username
	}
	if req.FullName != nil {
		updates["full_name"] = utils.SanitizeString(*req.FullName)
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Bio != nil {
		updates["bio"] = utils.SanitizeString(*req.Bio)
	}
	if req.BGMIID != nil {
		updates["bgmi_id"] = utils.SanitizeString(*req.BGMIID)
	}
	if req.COCID != nil {
		updates["coc_id"] = utils.SanitizeString(*req.COCID)
	}
	if req.DiscordURL != nil {
		updates["discord_url"] = *req.DiscordURL
	}
	if req.InstagramURL != nil {
		updates["instagram_url"] = *req.InstagramURL
	}
	if req.LinkedinURL != nil {
		updates["linkedin_url"] = *req.LinkedinURL
	}
	if req.Campus != nil {
		updates["campus"] = utils.SanitizeString(*req.Campus)
	}

	if len(updates) == 0 {
		utils.BadRequest(c, "Nothing to update", nil)
		return
	}

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		if isDuplicateKey(err) {
			utils.Conflict(c, "Username already taken", nil)
			return
		}
		utils.LogError("Failed to update profile for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update profile", nil)
		return
	}
	utils.LogInfo("Profile updated for user ID: %d", user.ID)

	utils.Success(c, "Profile updated successfully", gin.H{
		"user": user,
	})
}

// GET /v1/users/:id
// Public profile of any user
func GetUserProfile(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	var participations []models.EventParticipation
	config.DB.Where("user_id = ?", user.ID).Find(&participations)

	totalPoints := 0
	for _, p := range participations {
		totalPoints += p.Points
	}

	utils.Success(c, "Profile retrieved successfully", gin.H{
		"user":                user,
		"total_points":        totalPoints,
		"events_participated": len(participations),
	})
}
