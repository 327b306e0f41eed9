package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "ToDo"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusDone       TaskStatus = "Done"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// Task keeps username snapshots of its creator and assignee next to their ids.
// AssigneeUsername must be rewritten whenever AssigneeID is set.
type Task struct {
	ID               uint64         `gorm:"primarykey" json:"id"`
	Title            string         `gorm:"not null" json:"title"`
	Description      string         `gorm:"type:text" json:"description"`
	Status           TaskStatus     `gorm:"type:varchar(20);not null;default:'ToDo';index" json:"status"`
	DueDate          *time.Time     `json:"due_date"`
	CreatorID        uint64         `gorm:"not null;index" json:"creator_id"`
	CreatorUsername  string         `gorm:"type:varchar(100);not null" json:"creator_username"`
	AssigneeID       uint64         `gorm:"not null;index" json:"assignee_id"`
	AssigneeUsername string         `gorm:"type:varchar(100);not null" json:"assignee_username"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Notes       []Note       `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
}
