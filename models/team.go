package models

import (
	"time"

	"gorm.io/gorm"
)

// Team member roles
const (
	TeamRoleLeader = "leader"
	TeamRoleMember = "member"
)

// Team is a player-created squad
type Team struct {
	gorm.Model
	Name        string       `json:"name" gorm:"uniqueIndex;not null"`
	Description string       `json:"description"`
	LogoURL     string       `json:"logo_url"`
	CreatedBy   uint         `json:"created_by" gorm:"index;not null"`
	Members     []TeamMember `json:"members,omitempty" gorm:"foreignKey:TeamID"`
}

// TeamMember links a user to a team; a user joins a given team at most once
type TeamMember struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	TeamID   uint      `json:"team_id" gorm:"uniqueIndex:idx_team_member;not null"`
	UserID   uint      `json:"user_id" gorm:"uniqueIndex:idx_team_member;not null"`
	Role     string    `json:"role" gorm:"default:'member'"`
	JoinedAt time.Time `json:"joined_at" gorm:"autoCreateTime"`
	User     User      `json:"user" gorm:"foreignKey:UserID"`
}
