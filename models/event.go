package models

import (
	"time"

	"gorm.io/gorm"
)

// Event represents a campus gaming event users can register for.
// Price is in rupees; it is converted to paise only when a gateway
// order is created.
type Event struct {
	gorm.Model
	Title           string  `json:"title" gorm:"not null"`
	Description     string  `json:"description"`
	EventType       string  `json:"event_type" gorm:"not null"` // BGMI, COC, Valorant, ...
	Campus          string  `json:"campus" gorm:"not null"`
	Location        string  `json:"location" gorm:"not null"`
	EventDate       string  `json:"event_date" gorm:"not null"` // YYYY-MM-DD
	EventTime       string  `json:"event_time" gorm:"not null"` // HH:MM
	OrganizerName   string  `json:"organizer_name" gorm:"not null"`
	MaxParticipants int     `json:"max_participants" gorm:"not null"`
	IsPaid          bool    `json:"is_paid" gorm:"default:false"`
	Price           float64 `json:"price" gorm:"default:0"`
	IsPromoted      bool    `json:"is_promoted" gorm:"default:false"`
	AdImageURL      string  `json:"ad_image_url"`
	CreatedBy       uint    `json:"created_by" gorm:"index;not null"`
	Creator         User    `json:"-" gorm:"foreignKey:CreatedBy"`
}

// EventParticipation records a user's result in a finished event.
// Points feed the leaderboard.
type EventParticipation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	EventID   uint      `json:"event_id" gorm:"uniqueIndex:idx_participation_event_user;not null"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_participation_event_user;not null"`
	Placement int       `json:"placement"`
	Points    int       `json:"points" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	Event     Event     `json:"-" gorm:"foreignKey:EventID"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}
