package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/skillfusion/campusarena/config"
	"github.com/skillfusion/campusarena/models"
	"github.com/skillfusion/campusarena/utils"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm/clause"
)

// POST /v1/admin/events/:id/promote
// Toggles the promoted flag that surfaces an event on the front page
func PromoteEvent(c *gin.Context) {
	utils.LogInfo("PromoteEvent called")

	eventID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Promoted *bool `json:"promoted" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. promoted is required", err.Error())
		return
	}

	var event models.Event
	if err := config.DB.First(&event, eventID).Error; err != nil {
		utils.NotFound(c, "Event not found")
		return
	}

	if err := config.DB.Model(&event).Update("is_promoted", *req.Promoted).Error; err != nil {
		utils.LogError("Failed to update promotion for event ID: %d: %v", event.ID, err)
		utils.InternalServerError(c, "Failed to update event", nil)
		return
	}
	utils.LogInfo("Event ID: %d promotion set to %t", event.ID, *req.Promoted)

	utils.Success(c, "Event promotion updated", gin.H{
		"event": event,
	})
}

// POST /v1/user/events/:id/results
// Records placements and points for event participants. Restricted to
// organizers; only the event creator or an admin may submit results.
func RecordEventResults(c *gin.Context) {
	utils.LogInfo("RecordEventResults called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	eventID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var event models.Event
	if err := config.DB.First(&event, eventID).Error; err != nil {
		utils.NotFound(c, "Event not found")
		return
	}

	if event.CreatedBy != user.ID && !user.IsAdmin() {
		utils.Forbidden(c, "Only the event creator can record results")
		return
	}

	var req struct {
		Results []struct {
			UserID    uint `json:"user_id" binding:"required"`
			Placement int  `json:"placement" binding:"required,min=1"`
			Points    int  `json:"points" binding:"min=0"`
		} `json:"results" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	// Results only count for registered participants
	for _, r := range req.Results {
		var registration models.Registration
		if err := config.DB.Where("user_id = ? AND event_id = ?", r.UserID, event.ID).
			First(&registration).Error; err != nil {
			utils.BadRequest(c, fmt.Sprintf("User %d is not registered for this event", r.UserID), nil)
			return
		}
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to record results", nil)
		return
	}

	for _, r := range req.Results {
		participation := models.EventParticipation{
			EventID:   event.ID,
			UserID:    r.UserID,
			Placement: r.Placement,
			Points:    r.Points,
		}
		// Re-submitting results overwrites the previous placement
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"placement", "points"}),
		}).Create(&participation).Error
		if err != nil {
			tx.Rollback()
			utils.LogError("Failed to record result for user ID: %d, event ID: %d: %v",
				r.UserID, event.ID, err)
			utils.InternalServerError(c, "Failed to record results", nil)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit results for event ID: %d: %v", event.ID, err)
		utils.InternalServerError(c, "Failed to record results", nil)
		return
	}
	utils.LogInfo("Recorded %d results for event ID: %d", len(req.Results), event.ID)

	utils.Success(c, "Results recorded successfully", gin.H{
		"recorded": len(req.Results),
	})
}

// GET /v1/user/events/:id/participants
// Lists registrations for an event; creator or admin only
func ListEventParticipants(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	eventID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var event models.Event
	if err := config.DB.First(&event, eventID).Error; err != nil {
		utils.NotFound(c, "Event not found")
		return
	}

	if event.CreatedBy != user.ID && !user.IsAdmin() {
		utils.Forbidden(c, "Only the event creator can view participants")
		return
	}

	var registrations []models.Registration
	if err := config.DB.Preload("User").
		Where("event_id = ?", event.ID).
		Order("registration_date ASC").
		Find(&registrations).Error; err != nil {
		utils.LogError("Failed to list participants for event ID: %d: %v", event.ID, err)
		utils.InternalServerError(c, "Failed to list participants", nil)
		return
	}

	utils.Success(c, "Participants retrieved successfully", gin.H{
		"event":         event,
		"registrations": registrations,
	})
}

// GET /v1/admin/events/:id/registrations/export
// Downloads the registration list for an event as an Excel sheet
func ExportEventRegistrations(c *gin.Context) {
	utils.LogInfo("ExportEventRegistrations called")

	eventID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var event models.Event
	if err := config.DB.First(&event, eventID).Error; err != nil {
		utils.NotFound(c, "Event not found")
		return
	}

	var registrations []models.Registration
	if err := config.DB.Preload("User").
		Where("event_id = ?", event.ID).
		Order("registration_date ASC").
		Find(&registrations).Error; err != nil {
		utils.LogError("Failed to load registrations for event ID: %d: %v", event.ID, err)
		utils.InternalServerError(c, "Failed to export registrations", nil)
		return
	}

	var totalCollected float64
	for _, r := range registrations {
		if r.PaymentID != nil {
			var transaction models.Transaction
			if err := config.DB.First(&transaction, *r.PaymentID).Error; err == nil {
				totalCollected += transaction.Amount
			}
		}
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Registrations")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to export registrations", nil)
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("CAMPUS ARENA - Event Registrations")
	eventRow := sheet.AddRow()
	eventRow.AddCell().SetString(fmt.Sprintf("%s | %s %s | %s",
		event.Title, event.EventDate, event.EventTime, event.Campus))
	sheet.AddRow() // spacing

	headers := []string{"Registration ID", "User ID", "Username", "Email", "Payment Status", "Registered On"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, r := range registrations {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(r.ID))
		row.AddCell().SetInt(int(r.UserID))
		row.AddCell().SetString(r.User.Username)
		row.AddCell().SetString(r.User.Email)
		row.AddCell().SetString(r.PaymentStatus)
		row.AddCell().SetString(r.RegistrationDate.Format("2006-01-02 15:04"))
	}

	sheet.AddRow() // spacing
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Total Registrations")
	summaryRow.AddCell().SetInt(len(registrations))
	collectedRow := sheet.AddRow()
	collectedRow.AddCell().SetString("Total Collected")
	collectedRow.AddCell().SetFloat(totalCollected)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=registrations_event_%d.xlsx", event.ID))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to export registrations", nil)
		return
	}
	utils.LogInfo("Exported %d registrations for event ID: %d", len(registrations), event.ID)
}
