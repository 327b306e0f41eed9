package dto

import (
	"time"

	"github.com/SaniTheWay/TaskManagmentSystem/internal/models"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64          `json:"id"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
}

// UserRefDTO is a denormalized user snapshot stored on tasks, notes and attachments
type UserRefDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	DueDate     *time.Time        `json:"due_date"`
	Creator     UserRefDTO        `json:"creator"`
	Assignee    UserRefDTO        `json:"assignee"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NoteDTO represents a note in API responses
type NoteDTO struct {
	ID        uint64     `json:"id"`
	Text      string     `json:"text"`
	Author    UserRefDTO `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
}

// AttachmentDTO represents attachment metadata; content is served separately
type AttachmentDTO struct {
	ID          uint64     `json:"id"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"content_type"`
	Size        int64      `json:"size"`
	Uploader    UserRefDTO `json:"uploader"`
	UploadedAt  time.Time  `json:"uploaded_at"`
}

// TaskDetailDTO represents a task with its notes and attachments
type TaskDetailDTO struct {
	TaskDTO
	Notes       []NoteDTO       `json:"notes"`
	Attachments []AttachmentDTO `json:"attachments"`
}

// TaskDraftDTO represents an AI drafted task that has not been saved
type TaskDraftDTO struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, user := range users {
		out[i] = ToUserDTO(user)
	}
	return out
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     task.DueDate,
		Creator:     UserRefDTO{ID: task.CreatorID, Username: task.CreatorUsername},
		Assignee:    UserRefDTO{ID: task.AssigneeID, Username: task.AssigneeUsername},
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		out[i] = ToTaskDTO(task)
	}
	return out
}

// ToNoteDTO converts a Note model to NoteDTO
func ToNoteDTO(note models.Note) NoteDTO {
	return NoteDTO{
		ID:        note.ID,
		Text:      note.Text,
		Author:    UserRefDTO{ID: note.AuthorID, Username: note.AuthorUsername},
		CreatedAt: note.CreatedAt,
	}
}

// ToAttachmentDTO converts an Attachment model to AttachmentDTO
func ToAttachmentDTO(attachment models.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:          attachment.ID,
		Filename:    attachment.Filename,
		ContentType: attachment.ContentType,
		Size:        attachment.Size,
		Uploader:    UserRefDTO{ID: attachment.UploaderID, Username: attachment.UploaderUsername},
		UploadedAt:  attachment.UploadedAt,
	}
}

// ToTaskDetailDTO converts a detail view to TaskDetailDTO
func ToTaskDetailDTO(detail services.TaskDetail) TaskDetailDTO {
	notes := make([]NoteDTO, len(detail.Notes))
	for i, note := range detail.Notes {
		notes[i] = ToNoteDTO(note)
	}

	attachments := make([]AttachmentDTO, len(detail.Attachments))
	for i, attachment := range detail.Attachments {
		attachments[i] = ToAttachmentDTO(attachment)
	}

	return TaskDetailDTO{
		TaskDTO:     ToTaskDTO(detail.Task),
		Notes:       notes,
		Attachments: attachments,
	}
}

// ToTaskDraftDTOs converts AI drafts
func ToTaskDraftDTOs(drafts []services.TaskDraft) []TaskDraftDTO {
	out := make([]TaskDraftDTO, len(drafts))
	for i, draft := range drafts {
		out[i] = TaskDraftDTO{
			Title:       draft.Title,
			Description: draft.Description,
			DueDate:     draft.DueDate,
		}
	}
	return out
}
