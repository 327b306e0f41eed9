package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SaniTheWay/TaskManagmentSystem/internal/constants"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/models"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrTaskNotFound       = notFoundError("task not found")
	ErrAttachmentNotFound = notFoundError("attachment not found")
	ErrTitleRequired      = validationError("title is required")
	ErrAssigneeRequired   = validationError("an assignee is required")
	ErrAssigneeNotFound   = validationError("assigned user does not exist")
	ErrInvalidTaskStatus  = validationError("status must be one of ToDo, InProgress, Done")
	ErrNoteEmpty          = validationError("note text cannot be empty")
	ErrEmptyAttachment    = validationError("attachment file is empty")
	ErrNotTaskCreator     = forbiddenError("only the task creator can delete this task")
	ErrSuggestTextEmpty   = validationError("text to extract tasks from is required")
	ErrAINoValidTasks     = validationError("no tasks could be extracted from the text")

	// ErrAIUnavailable reports that task drafting is not configured or the
	// model call failed.
	ErrAIUnavailable = errors.New("AI task drafting is unavailable")
)

const defaultAttachmentType = "application/octet-stream"

// TaskService handles task business logic and assembles the aggregate views.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	teamRepo repository.TeamRepository
	drafter  TaskDrafter
	log      *zap.SugaredLogger
}

// NewTaskService creates a new TaskService. drafter may be nil, in which
// case SuggestTasks reports ErrAIUnavailable.
func NewTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	teamRepo repository.TeamRepository,
	drafter TaskDrafter,
	log *zap.SugaredLogger,
) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		teamRepo: teamRepo,
		drafter:  drafter,
		log:      log,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	AssigneeID  uint64
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// unchanged.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	AssigneeID   *uint64
}

// FileUpload is an uploaded file as read from the request.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateTask stores a new ToDo task and, when file is given, its first
// attachment. Both are written in one transaction.
func (s *TaskService) CreateTask(ctx context.Context, actor Actor, input CreateTaskInput, file *FileUpload) (*TaskDetail, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if input.AssigneeID == 0 {
		return nil, ErrAssigneeRequired
	}
	if file != nil && len(file.Data) == 0 {
		return nil, ErrEmptyAttachment
	}

	creator, err := s.actorUser(ctx, actor)
	if err != nil {
		return nil, err
	}
	assignee, err := s.findAssignee(ctx, input.AssigneeID)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:            title,
		Description:      input.Description,
		Status:           models.TaskStatusToDo,
		DueDate:          input.DueDate,
		CreatorID:        creator.ID,
		CreatorUsername:  creator.Username,
		AssigneeID:       assignee.ID,
		AssigneeUsername: assignee.Username,
	}

	if file != nil {
		attachment := newAttachment(file, creator)
		err = s.taskRepo.CreateWithAttachment(ctx, task, attachment)
	} else {
		err = s.taskRepo.Create(ctx, task)
	}
	if err != nil {
		return nil, persistenceError(s.log, "create task", err)
	}

	s.log.Infow("task created", "task_id", task.ID, "assignee_id", task.AssigneeID, "actor_id", actor.UserID, "with_attachment", file != nil)
	return s.detail(ctx, task)
}

// UpdateTask overlays the given fields. Status is changed only via SetStatus.
func (s *TaskService) UpdateTask(ctx context.Context, actor Actor, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.visibleTask(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.AssigneeID != nil {
		if *input.AssigneeID == 0 {
			return nil, ErrAssigneeRequired
		}
		assignee, err := s.findAssignee(ctx, *input.AssigneeID)
		if err != nil {
			return nil, err
		}
		task.AssigneeID = assignee.ID
		task.AssigneeUsername = assignee.Username
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, persistenceError(s.log, "update task", err)
	}

	return task, nil
}

// SetStatus moves a task to any of the three states.
func (s *TaskService) SetStatus(ctx context.Context, actor Actor, taskID uint64, status string) (*models.Task, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	next := models.TaskStatus(status)
	if !next.IsValid() {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.visibleTask(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.SetStatus(ctx, task.ID, next); err != nil {
		return nil, lookupError(s.log, "set task status", err, ErrTaskNotFound)
	}

	s.log.Infow("task status changed", "task_id", task.ID, "from", task.Status, "to", next, "actor_id", actor.UserID)
	task.Status = next
	return task, nil
}

// AddNote appends a note and returns the refreshed detail view.
func (s *TaskService) AddNote(ctx context.Context, actor Actor, taskID uint64, text string) (*TaskDetail, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoteEmpty
	}

	task, err := s.visibleTask(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}
	author, err := s.actorUser(ctx, actor)
	if err != nil {
		return nil, err
	}

	note := &models.Note{
		TaskID:         task.ID,
		Text:           text,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
	}
	if err := s.taskRepo.AddNote(ctx, note); err != nil {
		return nil, persistenceError(s.log, "add note", err)
	}

	return s.detail(ctx, task)
}

// AddAttachment stores a file on a task and returns the refreshed detail view.
func (s *TaskService) AddAttachment(ctx context.Context, actor Actor, taskID uint64, file FileUpload) (*TaskDetail, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if len(file.Data) == 0 {
		return nil, ErrEmptyAttachment
	}

	task, err := s.visibleTask(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}
	uploader, err := s.actorUser(ctx, actor)
	if err != nil {
		return nil, err
	}

	attachment := newAttachment(&file, uploader)
	attachment.TaskID = task.ID
	if err := s.taskRepo.AddAttachment(ctx, attachment); err != nil {
		return nil, persistenceError(s.log, "add attachment", err)
	}

	s.log.Infow("attachment uploaded", "task_id", task.ID, "attachment_id", attachment.ID, "size", attachment.Size)
	return s.detail(ctx, task)
}

// GetAttachment returns an attachment including its content. Attachments of
// tasks the actor cannot see are reported as not found.
func (s *TaskService) GetAttachment(ctx context.Context, actor Actor, attachmentID uint64) (*models.Attachment, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	attachment, err := s.taskRepo.FindAttachment(ctx, attachmentID)
	if err != nil {
		return nil, lookupError(s.log, "find attachment", err, ErrAttachmentNotFound)
	}

	if _, err := s.visibleTask(ctx, actor, attachment.TaskID); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil, ErrAttachmentNotFound
		}
		return nil, err
	}

	return attachment, nil
}

// TaskDetail returns a task with its notes and attachments.
func (s *TaskService) TaskDetail(ctx context.Context, actor Actor, taskID uint64) (*TaskDetail, error) {
	task, err := s.visibleTask(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, task)
}

// DeleteTask removes a task with its notes and attachments. Only the creator
// or a CompanyAdmin may do this.
func (s *TaskService) DeleteTask(ctx context.Context, actor Actor, taskID uint64) error {
	task, err := s.visibleTask(ctx, actor, taskID)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() && task.CreatorID != actor.UserID {
		return ErrNotTaskCreator
	}

	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		return lookupError(s.log, "delete task", err, ErrTaskNotFound)
	}

	s.log.Infow("task deleted", "task_id", task.ID, "actor_id", actor.UserID)
	return nil
}

// Dashboard assembles the personal view: own tasks, teammates' tasks and the
// team and member lists.
func (s *TaskService) Dashboard(ctx context.Context, actor Actor) (*Dashboard, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	assigned, err := s.taskRepo.ListAssignedTo(ctx, actor.UserID)
	if err != nil {
		return nil, persistenceError(s.log, "list assigned tasks", err)
	}
	teammates, err := s.taskRepo.ListOfTeammates(ctx, actor.UserID)
	if err != nil {
		return nil, persistenceError(s.log, "list teammates tasks", err)
	}
	teams, members, err := s.teamsAndMembers(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		AssignedToMe:   assigned,
		TeammatesTasks: teammates,
		Teams:          teams,
		Members:        members,
	}, nil
}

// AdminOverview assembles the organization wide view. Admins see every task.
func (s *TaskService) AdminOverview(ctx context.Context, actor Actor) (*AdminOverview, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return nil, persistenceError(s.log, "list tasks", err)
	}
	teams, members, err := s.teamsAndMembers(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminOverview{
		Tasks:   tasks,
		Teams:   teams,
		Members: members,
	}, nil
}

// Home returns the view a user lands on after login.
func (s *TaskService) Home(ctx context.Context, actor Actor) (*Home, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	switch actor.Role {
	case models.RoleCompanyAdmin:
		overview, err := s.AdminOverview(ctx, actor)
		if err != nil {
			return nil, err
		}
		return &Home{Role: actor.Role, Admin: overview}, nil
	case models.RoleTeamMember:
		dashboard, err := s.Dashboard(ctx, actor)
		if err != nil {
			return nil, err
		}
		return &Home{Role: actor.Role, Dashboard: dashboard}, nil
	default:
		return nil, ErrUnauthenticated
	}
}

// SuggestTasks drafts tasks from free text. Drafts without a title are
// skipped, due dates in the past are dropped, and at most
// constants.MaxAIGeneratedTasks drafts are returned.
func (s *TaskService) SuggestTasks(ctx context.Context, actor Actor, text string) ([]TaskDraft, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrSuggestTextEmpty
	}
	if s.drafter == nil {
		return nil, ErrAIUnavailable
	}

	drafts, err := s.drafter.DraftTasks(ctx, text)
	if err != nil {
		s.log.Errorw("task drafting failed", "actor_id", actor.UserID, "error", err)
		return nil, ErrAIUnavailable
	}

	cutoff := time.Now().Add(-24 * time.Hour)
	valid := make([]TaskDraft, 0, len(drafts))
	for _, draft := range drafts {
		draft.Title = strings.TrimSpace(draft.Title)
		if draft.Title == "" {
			continue
		}
		if draft.DueDate != nil && draft.DueDate.Before(cutoff) {
			draft.DueDate = nil
		}

		valid = append(valid, draft)
		if len(valid) == constants.MaxAIGeneratedTasks {
			break
		}
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}
	return valid, nil
}

// visibleTask loads a task the actor may see. Tasks outside the actor's
// reach are reported as ErrTaskNotFound.
func (s *TaskService) visibleTask(ctx context.Context, actor Actor, taskID uint64) (*models.Task, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, lookupError(s.log, "find task", err, ErrTaskNotFound)
	}

	ok, err := s.canAccessTask(ctx, actor, task)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) canAccessTask(ctx context.Context, actor Actor, task *models.Task) (bool, error) {
	switch actor.Role {
	case models.RoleCompanyAdmin:
		return true, nil
	case models.RoleTeamMember:
		if task.CreatorID == actor.UserID || task.AssigneeID == actor.UserID {
			return true, nil
		}
		shares, err := s.teamRepo.SharesTeam(ctx, actor.UserID, task.AssigneeID)
		if err != nil {
			return false, persistenceError(s.log, "check team membership", err)
		}
		return shares, nil
	default:
		return false, nil
	}
}

func (s *TaskService) detail(ctx context.Context, task *models.Task) (*TaskDetail, error) {
	notes, err := s.taskRepo.ListNotes(ctx, task.ID)
	if err != nil {
		return nil, persistenceError(s.log, "list notes", err)
	}
	attachments, err := s.taskRepo.ListAttachments(ctx, task.ID)
	if err != nil {
		return nil, persistenceError(s.log, "list attachments", err)
	}

	return &TaskDetail{
		Task:        *task,
		Notes:       notes,
		Attachments: attachments,
	}, nil
}

func (s *TaskService) teamsAndMembers(ctx context.Context) ([]models.Team, []models.User, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, nil, persistenceError(s.log, "list teams", err)
	}
	members, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, nil, persistenceError(s.log, "list users", err)
	}
	return teams, members, nil
}

// actorUser loads the acting user for username snapshots. A session whose
// user no longer exists is treated as unauthenticated.
func (s *TaskService) actorUser(ctx context.Context, actor Actor) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, lookupError(s.log, "find user", err, ErrUnauthenticated)
	}
	return user, nil
}

func (s *TaskService) findAssignee(ctx context.Context, userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(s.log, "find assignee", err, ErrAssigneeNotFound)
	}
	return user, nil
}

func newAttachment(file *FileUpload, uploader *models.User) *models.Attachment {
	contentType := file.ContentType
	if contentType == "" {
		contentType = defaultAttachmentType
	}
	filename := file.Filename
	if filename == "" {
		filename = "attachment"
	}

	return &models.Attachment{
		Data:             file.Data,
		ContentType:      contentType,
		Filename:         filename,
		Size:             int64(len(file.Data)),
		UploaderID:       uploader.ID,
		UploaderUsername: uploader.Username,
	}
}
