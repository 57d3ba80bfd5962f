package controllers

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/skillfusion/campusarena/config"
	"github.com/skillfusion/campusarena/models"
	"github.com/skillfusion/campusarena/utils"
	"gorm.io/gorm"
)

// isDuplicateKey reports whether err is a unique constraint violation
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}

// POST /v1/user/payments/order
// Creates a Razorpay order for a paid event. The charge amount is always
// taken from the stored event row, never from the caller.
func CreateEventOrder(c *gin.Context) {
	utils.LogInfo("CreateEventOrder called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		EventID  uint   `json:"event_id" binding:"required"`
		Currency string `json:"currency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid order request from user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. event_id is required", err.Error())
		return
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}

	var event models.Event
	if err := config.DB.First(&event, req.EventID).Error; err != nil {
		utils.LogError("Event not found for ID: %d: %v", req.EventID, err)
		utils.NotFound(c, "Event not found")
		return
	}

	if !event.IsPaid {
		utils.LogError("Order requested for free event ID: %d by user ID: %d", event.ID, user.ID)
		utils.BadRequest(c, "This event does not require payment", nil)
		return
	}

	// Reject before touching the gateway if the caller already holds a slot
	var existing models.Registration
	if err := config.DB.Where("user_id = ? AND event_id = ?", user.ID, event.ID).
		First(&existing).Error; err == nil {
		utils.LogError("User ID: %d already registered for event ID: %d", user.ID, event.ID)
		utils.Conflict(c, "You are already registered for this event", nil)
		return
	}

	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		// Log which secret is missing, but never tell the caller
		utils.LogError("Razorpay credentials not configured (key set: %t, secret set: %t)",
			keyID != "", keySecret != "")
		utils.InternalServerError(c, "Payment system unavailable", nil)
		return
	}

	// Razorpay expects the amount in paise
	amountPaise := utils.AmountInPaise(event.Price)
	utils.LogInfo("Creating order for event ID: %d, user ID: %d, amount: %d paise",
		event.ID, user.ID, amountPaise)

	client := razorpay.NewClient(keyID, keySecret)
	orderData := map[string]interface{}{
		"amount":   amountPaise,
		"currency": req.Currency,
		"receipt":  fmt.Sprintf("event_%d_%d", event.ID, time.Now().Unix()),
		"notes": map[string]interface{}{
			"event_id": event.ID,
			"user_id":  user.ID,
		},
	}
	rzOrder, err := client.Order.Create(orderData, nil)
	if err != nil {
		utils.LogError("Failed to create Razorpay order for event ID: %d, user ID: %d: %v",
			event.ID, user.ID, err)
		utils.InternalServerError(c, "Failed to create payment order", nil)
		return
	}
	utils.LogInfo("Created Razorpay order %v for event ID: %d, user ID: %d",
		rzOrder["id"], event.ID, user.ID)

	utils.Success(c, "Payment order created successfully", gin.H{
		"order":  rzOrder,
		"key_id": keyID,
	})
}

// POST /v1/user/payments/verify
// Verifies the gateway signature and, on match, records the transaction and
// the registration. The caller identity comes from the session token only.
func VerifyEventPayment(c *gin.Context) {
	utils.LogInfo("VerifyEventPayment called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		EventID           uint    `json:"event_id" binding:"required"`
		RazorpayOrderID   string  `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string  `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string  `json:"razorpay_signature" binding:"required"`
		Amount            float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid verification request from user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var event models.Event
	if err := config.DB.First(&event, req.EventID).Error; err != nil {
		utils.LogError("Event not found for ID: %d: %v", req.EventID, err)
		utils.NotFound(c, "Event not found")
		return
	}

	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keySecret == "" {
		utils.LogError("Razorpay secret not configured")
		utils.InternalServerError(c, "Payment system unavailable", nil)
		return
	}

	if !utils.VerifyRazorpaySignature(req.RazorpayOrderID, req.RazorpayPaymentID,
		req.RazorpaySignature, keySecret) {
		utils.LogError("Payment signature mismatch for order %s, user ID: %d",
			req.RazorpayOrderID, user.ID)
		utils.BadRequest(c, "Payment verification failed", nil)
		return
	}
	utils.LogInfo("Payment signature verified for order %s", req.RazorpayOrderID)

	// Gateway retries land here: if the slot is already recorded, this call
	// is a no-op success, not an error.
	var existing models.Registration
	if err := config.DB.Where("user_id = ? AND event_id = ?", user.ID, event.ID).
		First(&existing).Error; err == nil {
		utils.LogInfo("Duplicate verification for order %s, registration ID: %d",
			req.RazorpayOrderID, existing.ID)
		utils.Success(c, "Registration already confirmed", gin.H{
			"registration": existing,
		})
		return
	}

	// The payment is captured by the gateway at this point, so the
	// transaction row must survive even if the registration insert fails.
	transaction := models.Transaction{
		UserID:            user.ID,
		EventID:           event.ID,
		Amount:            event.Price,
		Currency:          "INR",
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpaySignature: req.RazorpaySignature,
		PaymentStatus:     "completed",
	}
	if err := config.DB.Create(&transaction).Error; err != nil {
		utils.LogError("Failed to record transaction for order %s, user ID: %d: %v",
			req.RazorpayOrderID, user.ID, err)
		utils.InternalServerError(c, "Failed to record payment", nil)
		return
	}
	utils.LogInfo("Recorded transaction ID: %d for order %s", transaction.ID, req.RazorpayOrderID)

	registration := models.Registration{
		UserID:        user.ID,
		EventID:       event.ID,
		PaymentID:     &transaction.ID,
		PaymentStatus: "completed",
	}
	if err := config.DB.Create(&registration).Error; err != nil {
		if isDuplicateKey(err) {
			// Lost a race against a concurrent verification; the winner's
			// row stands and this transaction becomes reconcilable surplus.
			utils.LogInfo("Concurrent registration for user ID: %d, event ID: %d; returning existing row",
				user.ID, event.ID)
			var winner models.Registration
			if err := config.DB.Where("user_id = ? AND event_id = ?", user.ID, event.ID).
				First(&winner).Error; err == nil {
				utils.Success(c, "Registration already confirmed", gin.H{
					"registration": winner,
				})
				return
			}
		}
		// Orphaned transaction: payment captured, registration missing.
		// Left for reconciliation rather than refunded here.
		utils.LogError("Registration insert failed after transaction ID: %d recorded, user ID: %d: %v",
			transaction.ID, user.ID, err)
		utils.InternalServerError(c, "Payment recorded but registration incomplete, please contact support", nil)
		return
	}
	utils.LogInfo("Registration ID: %d completed for user ID: %d, event ID: %d",
		registration.ID, user.ID, event.ID)

	go func(email, title, date, tm string) {
		if err := utils.SendRegistrationConfirmation(email, title, date, tm); err != nil {
			utils.LogError("Failed to send registration confirmation to %s: %v", email, err)
		}
	}(user.Email, event.Title, event.EventDate, event.EventTime)

	utils.Success(c, "Payment verified and registration confirmed", gin.H{
		"success":        true,
		"registration":   registration,
		"transaction_id": transaction.ID,
	})
}
