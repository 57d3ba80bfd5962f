package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/skillfusion/campusarena/config"
	"github.com/skillfusion/campusarena/models"
	"github.com/skillfusion/campusarena/utils"
)

// LeaderboardEntry is one ranked row of the leaderboard
type LeaderboardEntry struct {
	UserID             uint   `json:"user_id"`
	Username           string `json:"username"`
	AvatarURL          string `json:"avatar_url"`
	TotalPoints        int64  `json:"total_points"`
	EventsParticipated int64  `json:"events_participated"`
	EventsRegistered   int64  `json:"events_registered"`
	Ranking            int64  `json:"ranking"`
}

// GET /v1/leaderboard
// Ranks users by total points earned across event participations.
func GetLeaderboard(c *gin.Context) {
	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.EventParticipation{}).
		Distinct("user_id").Count(&total).Error; err != nil {
		utils.LogError("Failed to count leaderboard users: %v", err)
		utils.InternalServerError(c, "Failed to load leaderboard", nil)
		return
	}
	pagination.SetTotal(total)

	var entries []LeaderboardEntry
	err := config.DB.Raw(`
		SELECT u.id AS user_id,
		       u.username,
		       u.avatar_url,
		       COALESCE(SUM(p.points), 0) AS total_points,
		       COUNT(p.id) AS events_participated,
		       (SELECT COUNT(*) FROM registrations r WHERE r.user_id = u.id) AS events_registered,
		       RANK() OVER (ORDER BY COALESCE(SUM(p.points), 0) DESC) AS ranking
		FROM users u
		JOIN event_participations p ON p.user_id = u.id
		WHERE u.deleted_at IS NULL
		GROUP BY u.id, u.username, u.avatar_url
		ORDER BY total_points DESC, u.username ASC
		LIMIT ? OFFSET ?
	`, pagination.Limit, pagination.Offset).Scan(&entries).Error
	if err != nil {
		utils.LogError("Failed to load leaderboard: %v", err)
		utils.InternalServerError(c, "Failed to load leaderboard", nil)
		return
	}

	utils.SendPaginatedResponse(c, entries, pagination)
}
