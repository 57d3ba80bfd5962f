package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/skillfusion/campusarena/config"
	"github.com/skillfusion/campusarena/models"
	"github.com/skillfusion/campusarena/utils"
)

// POST /v1/user/friends/requests
func SendFriendRequest(c *gin.Context) {
	utils.LogInfo("SendFriendRequest called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		ReceiverID uint `json:"receiver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. receiver_id is required", err.Error())
		return
	}

	if req.ReceiverID == user.ID {
		utils.BadRequest(c, "You cannot send a friend request to yourself", nil)
		return
	}

	var receiver models.User
	if err := config.DB.First(&receiver, req.ReceiverID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	// A request in either direction blocks a new one
	var existing models.FriendRequest
	if err := config.DB.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		user.ID, req.ReceiverID, req.ReceiverID, user.ID).
		First(&existing).Error; err == nil {
		utils.Conflict(c, "A friend request already exists between you", gin.H{
			"status": existing.Status,
		})
		return
	}

	request := models.FriendRequest{
		SenderID:   user.ID,
		ReceiverID: req.ReceiverID,
		Status:     models.FriendRequestPending,
	}
	if err := config.DB.Create(&request).Error; err != nil {
		if isDuplicateKey(err) {
			utils.Conflict(c, "A friend request already exists between you", nil)
			return
		}
		utils.LogError("Failed to create friend request from %d to %d: %v",
			user.ID, req.ReceiverID, err)
		utils.InternalServerError(c, "Failed to send friend request", nil)
		return
	}
	utils.LogInfo("Friend request ID: %d sent from %d to %d", request.ID, user.ID, req.ReceiverID)

	utils.Created(c, "Friend request sent", gin.H{
		"request": request,
	})
}

// POST /v1/user/friends/requests/:id/respond
func RespondFriendRequest(c *gin.Context) {
	utils.LogInfo("RespondFriendRequest called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	requestID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Accept *bool `json:"accept" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. accept is required", err.Error())
		return
	}

	var request models.FriendRequest
	if err := config.DB.First(&request, requestID).Error; err != nil {
		utils.NotFound(c, "Friend request not found")
		return
	}

	// Only the receiver decides
	if request.ReceiverID != user.ID {
		utils.LogError("User ID: %d attempted to respond to request ID: %d for receiver %d",
			user.ID, request.ID, request.ReceiverID)
		utils.Forbidden(c, "You can only respond to your own friend requests")
		return
	}

	if request.Status != models.FriendRequestPending {
		utils.Conflict(c, "Friend request already handled", gin.H{"status": request.Status})
		return
	}

	status := models.FriendRequestRejected
	if *req.Accept {
		status = models.FriendRequestAccepted
	}
	if err := config.DB.Model(&request).Update("status", status).Error; err != nil {
		utils.LogError("Failed to update friend request ID: %d: %v", request.ID, err)
		utils.InternalServerError(c, "Failed to respond to friend request", nil)
		return
	}
	utils.LogInfo("Friend request ID: %d %s by user ID: %d", request.ID, status, user.ID)

	utils.Success(c, "Friend request "+status, gin.H{
		"request": request,
	})
}

// GET /v1/user/friends
func ListFriends(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var requests []models.FriendRequest
	if err := config.DB.Preload("Sender").Preload("Receiver").
		Where("(sender_id = ? OR receiver_id = ?) AND status = ?",
			user.ID, user.ID, models.FriendRequestAccepted).
		Find(&requests).Error; err != nil {
		utils.LogError("Failed to list friends for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to list friends", nil)
		return
	}

	friends := make([]models.User, 0, len(requests))
	for _, r := range requests {
		if r.SenderID == user.ID {
			friends = append(friends, r.Receiver)
		} else {
			friends = append(friends, r.Sender)
		}
	}

	utils.Success(c, "Friends retrieved successfully", gin.H{
		"friends": friends,
	})
}

// GET /v1/user/friends/requests
// Incoming pending requests
func ListPendingFriendRequests(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var requests []models.FriendRequest
	if err := config.DB.Preload("Sender").
		Where("receiver_id = ? AND status = ?", user.ID, models.FriendRequestPending).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		utils.LogError("Failed to list friend requests for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to list friend requests", nil)
		return
	}

	utils.Success(c, "Pending friend requests retrieved successfully", gin.H{
		"requests": requests,
	})
}

// GET /v1/user/friends/search?q=
func SearchUsers(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	q := utils.SanitizeString(c.Query("q"))
	if q == "" {
		utils.BadRequest(c, "Search query is required", nil)
		return
	}

	var users []models.User
	if err := config.DB.
		Where("(username ILIKE ? OR full_name ILIKE ?) AND id <> ? AND is_blocked = ?",
			"%"+q+"%", "%"+q+"%", user.ID, false).
		Limit(20).
		Find(&users).Error; err != nil {
		utils.LogError("User search failed for %q: %v", q, err)
		utils.InternalServerError(c, "Failed to search users", nil)
		return
	}

	utils.Success(c, "Users retrieved successfully", gin.H{
		"users": users,
	})
}
