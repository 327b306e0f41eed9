package dto

import (
	"time"

	"github.com/SaniTheWay/TaskManagmentSystem/internal/models"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/services"
)

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardDTO is the personal view of a team member
type DashboardDTO struct {
	AssignedToMe   []TaskDTO `json:"assigned_to_me"`
	TeammatesTasks []TaskDTO `json:"teammates_tasks"`
	Teams          []TeamDTO `json:"teams"`
	Members        []UserDTO `json:"members"`
}

// AdminOverviewDTO is the organization wide view of a company admin
type AdminOverviewDTO struct {
	Tasks   []TaskDTO `json:"tasks"`
	Teams   []TeamDTO `json:"teams"`
	Members []UserDTO `json:"members"`
}

// HomeDTO is returned after login; exactly one of the views is present
type HomeDTO struct {
	Role      models.UserRole   `json:"role"`
	Dashboard *DashboardDTO     `json:"dashboard,omitempty"`
	Admin     *AdminOverviewDTO `json:"admin,omitempty"`
}

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team) TeamDTO {
	return TeamDTO{
		ID:        team.ID,
		Name:      team.Name,
		CreatedAt: team.CreatedAt,
	}
}

// ToTeamDTOs converts a slice of teams
func ToTeamDTOs(teams []models.Team) []TeamDTO {
	out := make([]TeamDTO, len(teams))
	for i, team := range teams {
		out[i] = ToTeamDTO(team)
	}
	return out
}

// ToDashboardDTO converts a dashboard view
func ToDashboardDTO(d services.Dashboard) DashboardDTO {
	return DashboardDTO{
		AssignedToMe:   ToTaskDTOs(d.AssignedToMe),
		TeammatesTasks: ToTaskDTOs(d.TeammatesTasks),
		Teams:          ToTeamDTOs(d.Teams),
		Members:        ToUserDTOs(d.Members),
	}
}

// ToAdminOverviewDTO converts an admin overview
func ToAdminOverviewDTO(o services.AdminOverview) AdminOverviewDTO {
	return AdminOverviewDTO{
		Tasks:   ToTaskDTOs(o.Tasks),
		Teams:   ToTeamDTOs(o.Teams),
		Members: ToUserDTOs(o.Members),
	}
}

// ToHomeDTO converts the post-login view
func ToHomeDTO(home services.Home) HomeDTO {
	dto := HomeDTO{Role: home.Role}
	if home.Dashboard != nil {
		dashboard := ToDashboardDTO(*home.Dashboard)
		dto.Dashboard = &dashboard
	}
	if home.Admin != nil {
		admin := ToAdminOverviewDTO(*home.Admin)
		dto.Admin = &admin
	}
	return dto
}
