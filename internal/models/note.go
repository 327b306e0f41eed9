package models

import "time"

type Note struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	TaskID         uint64    `gorm:"not null;index" json:"task_id"`
	Text           string    `gorm:"type:text;not null" json:"text"`
	AuthorID       uint64    `gorm:"not null" json:"author_id"`
	AuthorUsername string    `gorm:"type:varchar(100);not null" json:"author_username"`
	CreatedAt      time.Time `json:"created_at"`
}
