package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SaniTheWay/TaskManagmentSystem/internal/config"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/constants"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/database"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/logger"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/middleware"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/models"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/repository"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "secret123"

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	auth   *services.AuthService
	teams  *services.TeamService
	tasks  *services.TaskService
}

func setupTestEnv(t *testing.T, limiter *middleware.IPRateLimiter) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(&config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   ":memory:",
		GinMode:  gin.TestMode,
	}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, logger.Nop()))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	env := &testEnv{
		db:    db,
		auth:  services.NewAuthService(userRepo, logger.Nop()),
		teams: services.NewTeamService(teamRepo, userRepo, logger.Nop()),
		tasks: services.NewTaskService(taskRepo, userRepo, teamRepo, nil, logger.Nop()),
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	NewRoutes(env.auth, env.teams, env.tasks, limiter).Register(r)
	env.router = r

	return env
}

// do sends a request with an optional JSON body and session cookies.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) register(t *testing.T, username string) *models.User {
	t.Helper()

	user, err := e.auth.Register(context.Background(), services.RegisterInput{Username: username, Password: testPassword})
	require.NoError(t, err)
	return user
}

func (e *testEnv) admin(t *testing.T) *models.User {
	t.Helper()

	user, err := e.auth.EnsureAdmin(context.Background(), "admin", testPassword)
	require.NoError(t, err)
	return user
}

// login returns the session cookies for a registered user.
func (e *testEnv) login(t *testing.T, username string) []*http.Cookie {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": testPassword,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
