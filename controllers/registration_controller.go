package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/skillfusion/campusarena/config"
	"github.com/skillfusion/campusarena/models"
	"github.com/skillfusion/campusarena/utils"
)

// POST /v1/user/events/:id/register
// Registers the caller for a free event. Paid events must go through the
// order/verify flow instead.
func RegisterForEvent(c *gin.Context) {
	utils.LogInfo("RegisterForEvent called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
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

	if event.IsPaid {
		utils.LogError("Free registration attempted for paid event ID: %d by user ID: %d",
			event.ID, user.ID)
		utils.BadRequest(c, "This event requires payment, create a payment order instead", nil)
		return
	}

	var registered int64
	if err := config.DB.Model(&models.Registration{}).
		Where("event_id = ?", event.ID).Count(&registered).Error; err != nil {
		utils.LogError("Failed to count registrations for event ID: %d: %v", event.ID, err)
		utils.InternalServerError(c, "Failed to register for event", nil)
		return
	}
	if event.MaxParticipants > 0 && registered >= int64(event.MaxParticipants) {
		utils.LogError("Event ID: %d is full (%d/%d)", event.ID, registered, event.MaxParticipants)
		utils.Conflict(c, "This event is full", nil)
		return
	}

	registration := models.Registration{
		UserID:        user.ID,
		EventID:       event.ID,
		PaymentStatus: "completed",
	}
	if err := config.DB.Create(&registration).Error; err != nil {
		if isDuplicateKey(err) {
			utils.LogInfo("User ID: %d already registered for event ID: %d", user.ID, event.ID)
			var existing models.Registration
			if err := config.DB.Where("user_id = ? AND event_id = ?", user.ID, event.ID).
				First(&existing).Error; err == nil {
				utils.Success(c, "Registration already confirmed", gin.H{
					"registration": existing,
				})
				return
			}
		}
		utils.LogError("Failed to register user ID: %d for event ID: %d: %v", user.ID, event.ID, err)
		utils.InternalServerError(c, "Failed to register for event", nil)
		return
	}
	utils.LogInfo("Registration ID: %d created for user ID: %d, event ID: %d",
		registration.ID, user.ID, event.ID)

	go func(email, title, date, tm string) {
		if err := utils.SendRegistrationConfirmation(email, title, date, tm); err != nil {
			utils.LogError("Failed to send registration confirmation to %s: %v", email, err)
		}
	}(user.Email, event.Title, event.EventDate, event.EventTime)

	utils.Created(c, "Registered for event successfully", gin.H{
		"registration": registration,
	})
}

// GET /v1/user/registrations
func ListMyRegistrations(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Registration{}).
		Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		utils.LogError("Failed to count registrations for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to list registrations", nil)
		return
	}
	pagination.SetTotal(total)

	var registrations []models.Registration
	if err := config.DB.Preload("Event").
		Where("user_id = ?", user.ID).
		Order("registration_date DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&registrations).Error; err != nil {
		utils.LogError("Failed to list registrations for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to list registrations", nil)
		return
	}

	type registrationView struct {
		models.Registration
		EventTitle string `json:"event_title"`
		EventDate  string `json:"event_date"`
		EventTime  string `json:"event_time"`
	}
	views := make([]registrationView, 0, len(registrations))
	for _, r := range registrations {
		views = append(views, registrationView{
			Registration: r,
			EventTitle:   r.Event.Title,
			EventDate:    r.Event.EventDate,
			EventTime:    r.Event.EventTime,
		})
	}

	utils.SendPaginatedResponse(c, views, pagination)
}

// GET /v1/user/registrations/:id/receipt
// Downloads a PDF receipt for one of the caller's registrations.
func DownloadRegistrationReceipt(c *gin.Context) {
	utils.LogInfo("DownloadRegistrationReceipt called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	regID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var registration models.Registration
	if err := config.DB.Preload("Event").
		Where("id = ? AND user_id = ?", regID, user.ID).
		First(&registration).Error; err != nil {
		utils.LogError("Registration not found for ID: %d, user ID: %d: %v", regID, user.ID, err)
		utils.NotFound(c, "Registration not found")
		return
	}

	var amountLine string
	if registration.PaymentID != nil {
		var transaction models.Transaction
		if err := config.DB.First(&transaction, *registration.PaymentID).Error; err == nil {
			amountLine = fmt.Sprintf("Amount paid: %.2f %s (payment %s)",
				transaction.Amount, transaction.Currency, transaction.RazorpayPaymentID)
		}
	}
	if amountLine == "" {
		amountLine = "Free event - no payment required"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Campus Arena - Registration Receipt")
	pdf.Ln(16)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Receipt #%d", registration.ID))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Player: %s (%s)", user.Username, user.Email))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Event: %s", registration.Event.Title))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s at %s, %s",
		registration.Event.EventDate, registration.Event.EventTime, registration.Event.Location))
	pdf.Ln(8)
	pdf.Cell(0, 8, amountLine)
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", registration.PaymentStatus))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Registered on: %s",
		registration.RegistrationDate.Format("02 Jan 2006 15:04")))

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt_%d.pdf", registration.ID))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to render receipt PDF for registration ID: %d: %v", registration.ID, err)
		utils.InternalServerError(c, "Failed to generate receipt", nil)
		return
	}
}
