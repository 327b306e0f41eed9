package services

import "github.com/SaniTheWay/TaskManagmentSystem/internal/models"

// TaskDetail is a task with its notes and attachment metadata, both oldest first.
type TaskDetail struct {
	Task        models.Task
	Notes       []models.Note
	Attachments []models.Attachment
}

// Dashboard is the personal view of a TeamMember.
type Dashboard struct {
	AssignedToMe   []models.Task
	TeammatesTasks []models.Task
	Teams          []models.Team
	Members        []models.User
}

// AdminOverview is the organization wide view of a CompanyAdmin.
type AdminOverview struct {
	Tasks   []models.Task
	Teams   []models.Team
	Members []models.User
}

// Home is the post-login view. Exactly one of Dashboard and Admin is set,
// depending on Role.
type Home struct {
	Role      models.UserRole
	Dashboard *Dashboard
	Admin     *AdminOverview
}
