package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/skillfusion/campusarena/config"
	"github.com/skillfusion/campusarena/models"
	"github.com/skillfusion/campusarena/utils"
)

// GET /v1/events
// Lists events with optional campus/event_type/search filters
func ListEvents(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Event{})

	if campus := c.Query("campus"); campus != "" {
		query = query.Where("campus = ?", campus)
	}
	if eventType := c.Query("event_type"); eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}
	if search := utils.SanitizeString(c.Query("search")); search != "" {
		query = query.Where("title ILIKE ? OR description ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count events: %v", err)
		utils.InternalServerError(c, "Failed to list events", nil)
		return
	}
	pagination.SetTotal(total)

	var events []models.Event
	if err := query.
		Order("event_date ASC, event_time ASC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&events).Error; err != nil {
		utils.LogError("Failed to list events: %v", err)
		utils.InternalServerError(c, "Failed to list events", nil)
		return
	}

	utils.SendPaginatedResponse(c, events, pagination)
}

// GET /v1/events/promoted
func ListPromotedEvents(c *gin.Context) {
	var events []models.Event
	if err := config.DB.Where("is_promoted = ?", true).
		Order("event_date ASC").
		Limit(10).
		Find(&events).Error; err != nil {
		utils.LogError("Failed to list promoted events: %v", err)
		utils.InternalServerError(c, "Failed to list promoted events", nil)
		return
	}

	utils.Success(c, "Promoted events retrieved successfully", gin.H{
		"events": events,
	})
}

// GET /v1/events/:id
func GetEventDetails(c *gin.Context) {
	eventID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var event models.Event
	if err := config.DB.First(&event, eventID).Error; err != nil {
		utils.LogError("Event not found for ID: %d: %v", eventID, err)
		utils.NotFound(c, "Event not found")
		return
	}

	var registered int64
	if err := config.DB.Model(&models.Registration{}).
		Where("event_id = ?", event.ID).Count(&registered).Error; err != nil {
		utils.LogError("Failed to count registrations for event ID: %d: %v", event.ID, err)
		utils.InternalServerError(c, "Failed to load event", nil)
		return
	}

	utils.Success(c, "Event retrieved successfully", gin.H{
		"event":            event,
		"registered_count": registered,
		"slots_left":       int64(event.MaxParticipants) - registered,
	})
}
