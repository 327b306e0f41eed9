package models

import "time"

// TeamMember links a user to a team. A (team, user) pair is unique.
type TeamMember struct {
	ID       uint64    `gorm:"primarykey" json:"id"`
	TeamID   uint64    `gorm:"not null;uniqueIndex:idx_team_members_team_user" json:"team_id"`
	UserID   uint64    `gorm:"not null;uniqueIndex:idx_team_members_team_user;index" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	// Relations
	Team Team `gorm:"foreignKey:TeamID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
