package models

import "time"

type Attachment struct {
	ID               uint64    `gorm:"primarykey" json:"id"`
	TaskID           uint64    `gorm:"not null;index" json:"task_id"`
	Data             []byte    `gorm:"not null" json:"-"`
	ContentType      string    `gorm:"type:varchar(255)" json:"content_type"`
	Filename         string    `gorm:"type:varchar(255);not null" json:"filename"`
	Size             int64     `gorm:"not null" json:"size"`
	UploaderID       uint64    `gorm:"not null" json:"uploader_id"`
	UploaderUsername string    `gorm:"type:varchar(100);not null" json:"uploader_username"`
	UploadedAt       time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
