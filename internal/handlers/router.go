package handlers

import (
	"net/http"

	"github.com/SaniTheWay/TaskManagmentSystem/internal/middleware"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/models"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/services"
	"github.com/gin-gonic/gin"
)

// Routes bundles the handlers and the collaborators the route table needs.
type Routes struct {
	Auth         *AuthHandler
	Tasks        *TaskHandler
	Teams        *TeamHandler
	Users        middleware.UserResolver
	LoginLimiter *middleware.IPRateLimiter
}

// NewRoutes builds the handlers for the given services.
func NewRoutes(auth *services.AuthService, teams *services.TeamService, tasks *services.TaskService, loginLimiter *middleware.IPRateLimiter) *Routes {
	return &Routes{
		Auth:         NewAuthHandler(auth, tasks),
		Tasks:        NewTaskHandler(tasks),
		Teams:        NewTeamHandler(teams),
		Users:        auth,
		LoginLimiter: loginLimiter,
	}
}

// Register mounts every endpoint on r. Session middleware must already be
// installed on r.
func (rt *Routes) Register(r *gin.Engine) {
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Management API is running",
		})
	})

	requireAuth := middleware.RequireAuth(rt.Users)
	requireAdmin := middleware.RequireRole(models.RoleCompanyAdmin)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", rt.Auth.Register)
			if rt.LoginLimiter != nil {
				auth.POST("/login", middleware.RateLimit(rt.LoginLimiter), rt.Auth.Login)
			} else {
				auth.POST("/login", rt.Auth.Login)
			}
			auth.POST("/logout", rt.Auth.Logout)
			auth.GET("/me", requireAuth, rt.Auth.GetCurrentUser)
			auth.PUT("/password", requireAuth, rt.Auth.ChangePassword)
		}

		protected := api.Group("")
		protected.Use(requireAuth)
		{
			protected.GET("/users", rt.Auth.ListUsers)
			protected.GET("/home", rt.Tasks.Home)
			protected.GET("/dashboard", rt.Tasks.Dashboard)
			protected.GET("/admin/overview", requireAdmin, rt.Tasks.AdminOverview)
			protected.GET("/attachments/:id", rt.Tasks.GetAttachment)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.POST("", rt.Tasks.CreateTask)
			tasks.POST("/suggest", rt.Tasks.SuggestTasks)
			tasks.GET("/:id", rt.Tasks.GetTask)
			tasks.PATCH("/:id", rt.Tasks.UpdateTask)
			tasks.DELETE("/:id", rt.Tasks.DeleteTask)
			tasks.PUT("/:id/status", rt.Tasks.UpdateStatus)
			tasks.POST("/:id/notes", rt.Tasks.AddNote)
			tasks.POST("/:id/attachments", rt.Tasks.AddAttachment)
		}

		// Team routes (protected)
		teams := api.Group("/teams")
		teams.Use(requireAuth)
		{
			teams.GET("", rt.Teams.ListTeams)
			teams.POST("", requireAdmin, rt.Teams.CreateTeam)
			teams.GET("/:id/members", rt.Teams.ListMembers)
			teams.GET("/:id/non-members", rt.Teams.ListNonMembers)
			teams.POST("/:id/members", requireAdmin, rt.Teams.AddMembers)
		}
	}
}
