package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/skillfusion/campusarena/config"
	"github.com/skillfusion/campusarena/models"
	"github.com/skillfusion/campusarena/utils"
)

// POST /v1/user/teams
// Creates a team; the creator becomes its leader in the same transaction.
func CreateTeam(c *gin.Context) {
	utils.LogInfo("CreateTeam called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		LogoURL     string `json:"logo_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. name is required", err.Error())
		return
	}

	team := models.Team{
		Name:        utils.SanitizeString(req.Name),
		Description: utils.SanitizeString(req.Description),
		LogoURL:     req.LogoURL,
		CreatedBy:   user.ID,
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to create team", nil)
		return
	}

	if err := tx.Create(&team).Error; err != nil {
		tx.Rollback()
		if isDuplicateKey(err) {
			utils.Conflict(c, "Team name already taken", nil)
			return
		}
		utils.LogError("Failed to create team for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create team", nil)
		return
	}

	leader := models.TeamMember{
		TeamID: team.ID,
		UserID: user.ID,
		Role:   models.TeamRoleLeader,
	}
	if err := tx.Create(&leader).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to add leader to team ID: %d: %v", team.ID, err)
		utils.InternalServerError(c, "Failed to create team", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit team creation: %v", err)
		utils.InternalServerError(c, "Failed to create team", nil)
		return
	}
	utils.LogInfo("Team ID: %d created by user ID: %d", team.ID, user.ID)

	utils.Created(c, "Team created successfully", gin.H{
		"team": team,
	})
}

// POST /v1/user/teams/:id/join
func JoinTeam(c *gin.Context) {
	utils.LogInfo("JoinTeam called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	teamID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var team models.Team
	if err := config.DB.First(&team, teamID).Error; err != nil {
		utils.NotFound(c, "Team not found")
		return
	}

	member := models.TeamMember{
		TeamID: team.ID,
		UserID: user.ID,
		Role:   models.TeamRoleMember,
	}
	if err := config.DB.Create(&member).Error; err != nil {
		if isDuplicateKey(err) {
			utils.Conflict(c, "You are already a member of this team", nil)
			return
		}
		utils.LogError("Failed to add user ID: %d to team ID: %d: %v", user.ID, team.ID, err)
		utils.InternalServerError(c, "Failed to join team", nil)
		return
	}
	utils.LogInfo("User ID: %d joined team ID: %d", user.ID, team.ID)

	utils.Created(c, "Joined team successfully", gin.H{
		"member": member,
	})
}

// POST /v1/user/teams/:id/leave
func LeaveTeam(c *gin.Context) {
	utils.LogInfo("LeaveTeam called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	teamID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var member models.TeamMember
	if err := config.DB.Where("team_id = ? AND user_id = ?", teamID, user.ID).
		First(&member).Error; err != nil {
		utils.NotFound(c, "You are not a member of this team")
		return
	}

	if member.Role == models.TeamRoleLeader {
		var others int64
		config.DB.Model(&models.TeamMember{}).
			Where("team_id = ? AND user_id <> ?", teamID, user.ID).Count(&others)
		if others > 0 {
			utils.Conflict(c, "Leaders cannot leave a team that still has members", nil)
			return
		}
	}

	if err := config.DB.Delete(&member).Error; err != nil {
		utils.LogError("Failed to remove user ID: %d from team ID: %d: %v", user.ID, teamID, err)
		utils.InternalServerError(c, "Failed to leave team", nil)
		return
	}
	utils.LogInfo("User ID: %d left team ID: %d", user.ID, teamID)

	utils.Success(c, "Left team successfully", nil)
}

// GET /v1/teams
func ListTeams(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Team{})
	if search := utils.SanitizeString(c.Query("search")); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count teams: %v", err)
		utils.InternalServerError(c, "Failed to list teams", nil)
		return
	}
	pagination.SetTotal(total)

	var teams []models.Team
	if err := query.Preload("Members").Preload("Members.User").
		Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&teams).Error; err != nil {
		utils.LogError("Failed to list teams: %v", err)
		utils.InternalServerError(c, "Failed to list teams", nil)
		return
	}

	utils.SendPaginatedResponse(c, teams, pagination)
}

// GET /v1/teams/:id
func GetTeamDetails(c *gin.Context) {
	teamID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var team models.Team
	if err := config.DB.Preload("Members").Preload("Members.User").
		First(&team, teamID).Error; err != nil {
		utils.NotFound(c, "Team not found")
		return
	}

	utils.Success(c, "Team retrieved successfully", gin.H{
		"team": team,
	})
}
