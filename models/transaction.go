package models

import (
	"time"
)

// Transaction captures a verified gateway payment. Rows are append-only;
// nothing in the payment flow ever mutates or deletes one.
type Transaction struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	UserID            uint      `json:"user_id" gorm:"index;not null"`
	EventID           uint      `json:"event_id" gorm:"index;not null"`
	Amount            float64   `json:"amount" gorm:"not null"`
	Currency          string    `json:"currency" gorm:"default:'INR'"`
	RazorpayOrderID   string    `json:"razorpay_order_id"`
	RazorpayPaymentID string    `json:"razorpay_payment_id"`
	RazorpaySignature string    `json:"razorpay_signature"`
	PaymentStatus     string    `json:"payment_status" gorm:"default:'pending'"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
