package models

import (
	"time"
)

// Registration is the durable record that a user has secured a slot in an
// event. The composite unique index on (user_id, event_id) is what makes
// duplicate registration attempts - including gateway verification retries -
// collapse into a single row.
type Registration struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           uint      `json:"user_id" gorm:"uniqueIndex:idx_registration_user_event;not null"`
	EventID          uint      `json:"event_id" gorm:"uniqueIndex:idx_registration_user_event;not null"`
	PaymentID        *uint     `json:"payment_id"` // references Transaction.ID, nil for free events
	PaymentStatus    string    `json:"payment_status" gorm:"default:'pending'"`
	RegistrationDate time.Time `json:"registration_date" gorm:"autoCreateTime"`
	User             User      `json:"-" gorm:"foreignKey:UserID"`
	Event            Event     `json:"-" gorm:"foreignKey:EventID"`
}
