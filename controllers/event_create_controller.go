package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skillfusion/campusarena/config"
	"github.com/skillfusion/campusarena/models"
	"github.com/skillfusion/campusarena/utils"
)

type eventRequest struct {
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description"`
	EventType       string  `json:"event_type" binding:"required"`
	Campus          string  `json:"campus" binding:"required"`
	Location        string  `json:"location" binding:"required"`
	EventDate       string  `json:"event_date" binding:"required"`
	EventTime       string  `json:"event_time" binding:"required"`
	OrganizerName   string  `json:"organizer_name" binding:"required"`
	MaxParticipants int     `json:"max_participants" binding:"required,min=1"`
	IsPaid          bool    `json:"is_paid"`
	Price           float64 `json:"price"`
	AdImageURL      string  `json:"ad_image_url"`
}

func (r *eventRequest) validate() error {
	var errs utils.FieldValidationErrors
	if _, err := time.Parse("2006-01-02", r.EventDate); err != nil {
		errs = append(errs, utils.FieldValidationError{Field: "event_date", Message: "must be YYYY-MM-DD"})
	}
	if _, err := time.Parse("15:04", r.EventTime); err != nil {
		errs = append(errs, utils.FieldValidationError{Field: "event_time", Message: "must be HH:MM"})
	}
	if r.Price < 0 {
		errs = append(errs, utils.FieldValidationError{Field: "price", Message: "must not be negative"})
	}
	if r.IsPaid && r.Price <= 0 {
		errs = append(errs, utils.FieldValidationError{Field: "price", Message: "paid events need a positive price"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// POST /v1/user/events
// Creates an event. Restricted to organizers and admins by middleware.
func CreateEvent(c *gin.Context) {
	utils.LogInfo("CreateEvent called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid event request from user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		utils.LogError("Event validation failed for user ID: %d: %v", user.ID, err)
		utils.ValidationError(c, "Invalid event details", err)
		return
	}

	event := models.Event{
		Title:           utils.SanitizeString(req.Title),
		Description:     utils.SanitizeString(req.Description),
		EventType:       utils.SanitizeString(req.EventType),
		Campus:          utils.SanitizeString(req.Campus),
		Location:        utils.SanitizeString(req.Location),
		EventDate:       req.EventDate,
		EventTime:       req.EventTime,
		OrganizerName:   utils.SanitizeString(req.OrganizerName),
		MaxParticipants: req.MaxParticipants,
		IsPaid:          req.IsPaid,
		Price:           req.Price,
		AdImageURL:      req.AdImageURL,
		CreatedBy:       user.ID,
	}
	if err := config.DB.Create(&event).Error; err != nil {
		utils.LogError("Failed to create event for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create event", nil)
		return
	}
	utils.LogInfo("Event ID: %d created by user ID: %d", event.ID, user.ID)

	utils.Created(c, "Event created successfully", gin.H{
		"event": event,
	})
}

// PUT /v1/user/events/:id
// Updates an event. Only the creator or an admin may edit.
func UpdateEvent(c *gin.Context) {
	utils.LogInfo("UpdateEvent called")
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
		utils.LogError("Event not found for ID: %d: %v", eventID, err)
		utils.NotFound(c, "Event not found")
		return
	}

	if event.CreatedBy != user.ID && !user.IsAdmin() {
		utils.LogError("User ID: %d attempted to edit event ID: %d owned by %d",
			user.ID, event.ID, event.CreatedBy)
		utils.Forbidden(c, "You can only edit your own events")
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid event update from user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		utils.ValidationError(c, "Invalid event details", err)
		return
	}

	updates := map[string]interface{}{
		"title":            utils.SanitizeString(req.Title),
		"description":      utils.SanitizeString(req.Description),
		"event_type":       utils.SanitizeString(req.EventType),
		"campus":           utils.SanitizeString(req.Campus),
		"location":         utils.SanitizeString(req.Location),
		"event_date":       req.EventDate,
		"event_time":       req.EventTime,
		"organizer_name":   utils.SanitizeString(req.OrganizerName),
		"max_participants": req.MaxParticipants,
		"is_paid":          req.IsPaid,
		"price":            req.Price,
		"ad_image_url":     req.AdImageURL,
	}
	if err := config.DB.Model(&event).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update event ID: %d: %v", event.ID, err)
		utils.InternalServerError(c, "Failed to update event", nil)
		return
	}

	utils.Success(c, "Event updated successfully", gin.H{
		"event": event,
	})
}
