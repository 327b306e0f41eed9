package services

import (
	"context"

	"github.com/SaniTheWay/TaskManagmentSystem/internal/config"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/database"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/logger"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/models"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/repository"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

const testPassword = "secret123"

// serviceSuite wires every service against a fresh in-memory SQLite database.
type serviceSuite struct {
	suite.Suite
	ctx     context.Context
	db      *gorm.DB
	auth    *AuthService
	teams   *TeamService
	tasks   *TaskService
	drafter *stubDrafter
}

func (s *serviceSuite) SetupTest() {
	var err error

	s.ctx = context.Background()
	s.db, err = database.Connect(&config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   ":memory:",
		GinMode:  "test",
	}, logger.Nop())
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(s.db, logger.Nop()))

	userRepo := repository.NewUserRepository(s.db)
	teamRepo := repository.NewTeamRepository(s.db)
	taskRepo := repository.NewTaskRepository(s.db)

	s.drafter = &stubDrafter{}
	s.auth = NewAuthService(userRepo, logger.Nop())
	s.teams = NewTeamService(teamRepo, userRepo, logger.Nop())
	s.tasks = NewTaskService(taskRepo, userRepo, teamRepo, s.drafter, logger.Nop())
}

func (s *serviceSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *serviceSuite) register(username string) (*models.User, Actor) {
	user, err := s.auth.Register(s.ctx, RegisterInput{Username: username, Password: testPassword})
	s.Require().NoError(err)
	return user, NewActor(user)
}

func (s *serviceSuite) admin() Actor {
	user, err := s.auth.EnsureAdmin(s.ctx, "admin", testPassword)
	s.Require().NoError(err)
	return NewActor(user)
}

func (s *serviceSuite) team(name string, members ...*models.User) *models.Team {
	ids := make([]uint64, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}

	team, err := s.teams.CreateTeam(s.ctx, s.admin(), CreateTeamInput{Name: name, MemberIDs: ids})
	s.Require().NoError(err)
	return team
}

func (s *serviceSuite) task(creator Actor, title string, assignee *models.User) *models.Task {
	detail, err := s.tasks.CreateTask(s.ctx, creator, CreateTaskInput{Title: title, AssigneeID: assignee.ID}, nil)
	s.Require().NoError(err)
	return &detail.Task
}

type stubDrafter struct {
	drafts []TaskDraft
	err    error
	calls  int
}

func (d *stubDrafter) DraftTasks(_ context.Context, _ string) ([]TaskDraft, error) {
	d.calls++
	return d.drafts, d.err
}
