package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SaniTheWay/TaskManagmentSystem/internal/dto"
	apierrors "github.com/SaniTheWay/TaskManagmentSystem/internal/errors"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/services"
	"github.com/gin-gonic/gin"
)

// TaskHandler serves the task and dashboard endpoints.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Home returns the dashboard or the admin overview depending on role
func (h *TaskHandler) Home(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	home, err := h.taskService.Home(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHomeDTO(*home))
}

// Dashboard returns the caller's tasks and their teammates' tasks
func (h *TaskHandler) Dashboard(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	dashboard, err := h.taskService.Dashboard(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardDTO(*dashboard))
}

// AdminOverview returns every task, team and user
func (h *TaskHandler) AdminOverview(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	overview, err := h.taskService.AdminOverview(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminOverviewDTO(*overview))
}

type createTaskRequest struct {
	Title       string  `json:"title" form:"title"`
	Description string  `json:"description" form:"description"`
	DueDate     *string `json:"due_date" form:"due_date"`
	AssigneeID  uint64  `json:"assignee_id" form:"assignee_id"`
}

// CreateTask creates a new task. A multipart request may carry the first
// attachment in the "file" field.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req createTaskRequest
	var file *services.FileUpload

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			apierrors.BadRequestWithDetails(c, "Invalid form data", err.Error())
			return
		}

		fh, err := c.FormFile("file")
		switch {
		case err == nil:
			upload, err := readUpload(fh)
			if err != nil {
				apierrors.BadRequest(c, "Failed to read uploaded file")
				return
			}
			file = &upload
		case !errors.Is(err, http.ErrMissingFile):
			apierrors.BadRequest(c, "Invalid file upload")
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	detail, err := h.taskService.CreateTask(c.Request.Context(), actor, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		AssigneeID:  req.AssigneeID,
	}, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDetailDTO(*detail))
}

// GetTask returns a task with its notes and attachments
func (h *TaskHandler) GetTask(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	taskID, ok := paramID(c, "id", "task ID")
	if !ok {
		return
	}

	detail, err := h.taskService.TaskDetail(c.Request.Context(), actor, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDetailDTO(*detail))
}

// UpdateTask updates title, description, due date and assignee. An empty
// due_date string clears the due date.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	type UpdateTaskRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		DueDate     *string `json:"due_date"`
		AssigneeID  *uint64 `json:"assignee_id"`
	}

	actor, ok := currentActor(c)
	if !ok {
		return
	}
	taskID, ok := paramID(c, "id", "task ID")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
	}
	if req.DueDate != nil {
		if strings.TrimSpace(*req.DueDate) == "" {
			input.ClearDueDate = true
		} else {
			dueDate, err := parseOptionalDate(req.DueDate)
			if err != nil {
				apierrors.BadRequest(c, err.Error())
				return
			}
			input.DueDate = dueDate
		}
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), actor, taskID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateStatus moves a task to ToDo, InProgress or Done
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	actor, ok := currentActor(c)
	if !ok {
		return
	}
	taskID, ok := paramID(c, "id", "task ID")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.SetStatus(c.Request.Context(), actor, taskID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task with its notes and attachments
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	taskID, ok := paramID(c, "id", "task ID")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), actor, taskID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// AddNote appends a note to a task
func (h *TaskHandler) AddNote(c *gin.Context) {
	type AddNoteRequest struct {
		Text string `json:"text"`
	}

	actor, ok := currentActor(c)
	if !ok {
		return
	}
	taskID, ok := paramID(c, "id", "task ID")
	if !ok {
		return
	}

	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	detail, err := h.taskService.AddNote(c.Request.Context(), actor, taskID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDetailDTO(*detail))
}

// AddAttachment stores the multipart "file" field on a task
func (h *TaskHandler) AddAttachment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	taskID, ok := paramID(c, "id", "task ID")
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "A file is required")
		return
	}
	upload, err := readUpload(fh)
	if err != nil {
		apierrors.BadRequest(c, "Failed to read uploaded file")
		return
	}

	detail, err := h.taskService.AddAttachment(c.Request.Context(), actor, taskID, upload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDetailDTO(*detail))
}

// GetAttachment streams an attachment's content
func (h *TaskHandler) GetAttachment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	attachmentID, ok := paramID(c, "id", "attachment ID")
	if !ok {
		return
	}

	attachment, err := h.taskService.GetAttachment(c.Request.Context(), actor, attachmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": attachment.Filename}))
	c.Header("Content-Length", strconv.FormatInt(attachment.Size, 10))
	c.Data(http.StatusOK, attachment.ContentType, attachment.Data)
}

// SuggestTasks drafts tasks from free text; nothing is saved
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	type SuggestTasksRequest struct {
		Text string `json:"text"`
	}

	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req SuggestTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafts, err := h.taskService.SuggestTasks(c.Request.Context(), actor, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDraftDTOs(drafts),
	})
}

// parseOptionalDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates.
func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}

	raw := strings.TrimSpace(*value)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("invalid due_date %q: use RFC3339 or YYYY-MM-DD", raw)
}

func readUpload(fh *multipart.FileHeader) (services.FileUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return services.FileUpload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return services.FileUpload{}, err
	}

	return services.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
