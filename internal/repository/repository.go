package repository

import (
	"context"

	"github.com/SaniTheWay/TaskManagmentSystem/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// Update saves all fields of an existing user
	Update(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username, ignoring case
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// List returns all users ordered by ID
	List(ctx context.Context) ([]models.User, error)

	// CountByIDs counts how many of the given user IDs exist
	CountByIDs(ctx context.Context, ids []uint64) (int64, error)
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// Create creates a new team
	Create(ctx context.Context, team *models.Team) error

	// CreateWithMembers creates a team and its initial members in one transaction
	CreateWithMembers(ctx context.Context, team *models.Team, userIDs []uint64) error

	// FindByID finds a team by ID
	FindByID(ctx context.Context, id uint64) (*models.Team, error)

	// List returns all teams ordered by name
	List(ctx context.Context) ([]models.Team, error)

	// ListMembers returns the users linked to a team
	ListMembers(ctx context.Context, teamID uint64) ([]models.User, error)

	// ListNonMembers returns every user not linked to a team
	ListNonMembers(ctx context.Context, teamID uint64) ([]models.User, error)

	// AddMembers links users to a team, skipping links that already exist
	AddMembers(ctx context.Context, teamID uint64, userIDs []uint64) error

	// SharesTeam reports whether two users belong to at least one common team
	SharesTeam(ctx context.Context, userID, otherUserID uint64) (bool, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// CreateWithAttachment creates a task and its first attachment in one transaction
	CreateWithAttachment(ctx context.Context, task *models.Task, attachment *models.Attachment) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// Update overwrites title, description, due date and assignee of a task
	Update(ctx context.Context, task *models.Task) error

	// SetStatus changes only the status column of a task
	SetStatus(ctx context.Context, id uint64, status models.TaskStatus) error

	// Delete soft deletes a task and removes its notes and attachments
	Delete(ctx context.Context, id uint64) error

	// ListAll returns every task, newest first
	ListAll(ctx context.Context) ([]models.Task, error)

	// ListAssignedTo returns the tasks assigned to a user
	ListAssignedTo(ctx context.Context, userID uint64) ([]models.Task, error)

	// ListOfTeammates returns tasks assigned to users sharing a team with userID,
	// excluding tasks assigned to userID
	ListOfTeammates(ctx context.Context, userID uint64) ([]models.Task, error)

	// AddNote appends a note to a task
	AddNote(ctx context.Context, note *models.Note) error

	// ListNotes returns the notes of a task in chronological order
	ListNotes(ctx context.Context, taskID uint64) ([]models.Note, error)

	// AddAttachment appends an attachment to a task
	AddAttachment(ctx context.Context, attachment *models.Attachment) error

	// ListAttachments returns attachment metadata of a task in chronological order, without content
	ListAttachments(ctx context.Context, taskID uint64) ([]models.Attachment, error)

	// FindAttachment finds an attachment including its content
	FindAttachment(ctx context.Context, id uint64) (*models.Attachment, error)
}
