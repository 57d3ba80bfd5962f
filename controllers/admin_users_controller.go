package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/skillfusion/campusarena/config"
	"github.com/skillfusion/campusarena/models"
	"github.com/skillfusion/campusarena/utils"
)

// GET /v1/admin/users
func ListUsers(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.User{})
	if search := utils.SanitizeString(c.Query("search")); search != "" {
		query = query.Where("username ILIKE ? OR email ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count users: %v", err)
		utils.InternalServerError(c, "Failed to list users", nil)
		return
	}
	pagination.SetTotal(total)

	var users []models.User
	if err := query.Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&users).Error; err != nil {
		utils.LogError("Failed to list users: %v", err)
		utils.InternalServerError(c, "Failed to list users", nil)
		return
	}

	utils.SendPaginatedResponse(c, users, pagination)
}

// POST /v1/admin/users/:id/block
func SetUserBlocked(c *gin.Context) {
	utils.LogInfo("SetUserBlocked called")

	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Blocked *bool `json:"blocked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. blocked is required", err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if user.IsAdmin() {
		utils.Forbidden(c, "Admin accounts cannot be blocked")
		return
	}

	if err := config.DB.Model(&user).Update("is_blocked", *req.Blocked).Error; err != nil {
		utils.LogError("Failed to update block status for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update user", nil)
		return
	}
	utils.LogInfo("User ID: %d blocked set to %t", user.ID, *req.Blocked)

	utils.Success(c, "User updated successfully", gin.H{
		"user": user,
	})
}

// POST /v1/admin/users/:id/role
func SetUserRole(c *gin.Context) {
	utils.LogInfo("SetUserRole called")

	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Role string `json:"role" binding:"required,oneof=user organizer admin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. role must be user, organizer or admin", err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if err := config.DB.Model(&user).Update("role", req.Role).Error; err != nil {
		utils.LogError("Failed to update role for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update user", nil)
		return
	}
	utils.LogInfo("User ID: %d role set to %s", user.ID, req.Role)

	utils.Success(c, "User role updated successfully", gin.H{
		"user": user,
	})
}
