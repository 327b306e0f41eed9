package repository

import (
	"context"

	"github.com/SaniTheWay/TaskManagmentSystem/internal/models"
	"gorm.io/gorm"
)

// attachmentMetaColumns lists every attachment column except the binary content.
var attachmentMetaColumns = []string{
	"id", "task_id", "content_type", "filename", "size",
	"uploader_id", "uploader_username", "uploaded_at",
}

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *GormTaskRepository) CreateWithAttachment(ctx context.Context, task *models.Task, attachment *models.Attachment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}

		attachment.TaskID = task.ID
		return tx.Create(attachment).Error
	})
}

func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).
		Model(task).
		Select("title", "description", "due_date", "assignee_id", "assignee_username", "updated_at").
		Updates(task).Error
}

func (r *GormTaskRepository) SetStatus(ctx context.Context, id uint64, status models.TaskStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Task{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormTaskRepository) ListAll(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *GormTaskRepository) ListAssignedTo(ctx context.Context, userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).
		Where("assignee_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *GormTaskRepository) ListOfTeammates(ctx context.Context, userID uint64) ([]models.Task, error) {
	db := r.db.WithContext(ctx)
	teamIDs := db.Model(&models.TeamMember{}).Select("team_id").Where("user_id = ?", userID)
	mateIDs := db.Model(&models.TeamMember{}).Select("user_id").Where("team_id IN (?)", teamIDs)

	var tasks []models.Task
	if err := db.
		Where("assignee_id IN (?)", mateIDs).
		Where("assignee_id <> ?", userID).
		Order("created_at DESC, id DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *GormTaskRepository) AddNote(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *GormTaskRepository) ListNotes(ctx context.Context, taskID uint64) ([]models.Note, error) {
	notes := []models.Note{}
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC, id ASC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *GormTaskRepository) AddAttachment(ctx context.Context, attachment *models.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *GormTaskRepository) ListAttachments(ctx context.Context, taskID uint64) ([]models.Attachment, error) {
	attachments := []models.Attachment{}
	if err := r.db.WithContext(ctx).
		Select(attachmentMetaColumns).
		Where("task_id = ?", taskID).
		Order("uploaded_at ASC, id ASC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *GormTaskRepository) FindAttachment(ctx context.Context, id uint64) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := r.db.WithContext(ctx).First(&attachment, id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}
