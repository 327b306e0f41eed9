package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/config"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/database"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/logger"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(&config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   ":memory:",
		GinMode:  "test",
	}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, logger.Nop()))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func createUsers(t *testing.T, db *gorm.DB, names ...string) []models.User {
	t.Helper()

	users := make([]models.User, len(names))
	for i, name := range names {
		users[i] = models.User{Username: name, PasswordHash: "hashed", Role: models.RoleTeamMember}
		require.NoError(t, db.Create(&users[i]).Error)
	}
	return users
}

func createTask(t *testing.T, db *gorm.DB, title string, creator, assignee models.User) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:            title,
		Status:           models.TaskStatusToDo,
		CreatorID:        creator.ID,
		CreatorUsername:  creator.Username,
		AssigneeID:       assignee.ID,
		AssigneeUsername: assignee.Username,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func TestUserRepository_FindByUsernameIgnoresCase(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createUsers(t, db, "Alice")

	user, err := repo.FindByUsername(ctx, "aLiCe")
	require.NoError(t, err)
	require.Equal(t, "Alice", user.Username)

	_, err = repo.FindByUsername(ctx, "bob")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	createUsers(t, db, "Élodie")

	user, err = repo.FindByUsername(ctx, "élodie")
	require.NoError(t, err)
	require.Equal(t, "Élodie", user.Username)
	require.Equal(t, "élodie", user.UsernameKey)

	// The unique key rejects a second spelling of the same name.
	err = repo.Create(ctx, &models.User{Username: "ÉLODIE", PasswordHash: "hashed", Role: models.RoleTeamMember})
	require.Error(t, err)
	err = repo.Create(ctx, &models.User{Username: "ALICE", PasswordHash: "hashed", Role: models.RoleTeamMember})
	require.Error(t, err)
}

func TestUserRepository_UpdateRefreshesUsernameKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &createUsers(t, db, "alice")[0]
	user.Username = "Ana"
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.FindByUsername(ctx, "ANA")
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)

	_, err = repo.FindByUsername(ctx, "alice")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_CountByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	users := createUsers(t, db, "alice", "bob")

	count, err := repo.CountByIDs(context.Background(), []uint64{users[0].ID, users[1].ID, 999})
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestTeamRepository_AddMembersIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTeamRepository(db)
	ctx := context.Background()
	users := createUsers(t, db, "alice", "bob", "carol")

	team := &models.Team{Name: "Backend"}
	require.NoError(t, repo.CreateWithMembers(ctx, team, []uint64{users[0].ID, users[1].ID}))

	require.NoError(t, repo.AddMembers(ctx, team.ID, []uint64{users[0].ID, users[1].ID}))
	require.NoError(t, repo.AddMembers(ctx, team.ID, []uint64{users[0].ID, users[1].ID}))

	var rows int64
	require.NoError(t, db.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&rows).Error)
	require.EqualValues(t, 2, rows)

	members, err := repo.ListMembers(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, users[0].ID, members[0].ID)
	require.Equal(t, users[1].ID, members[1].ID)

	nonMembers, err := repo.ListNonMembers(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, nonMembers, 1)
	require.Equal(t, users[2].ID, nonMembers[0].ID)
}

func TestTeamRepository_SharesTeam(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTeamRepository(db)
	ctx := context.Background()
	users := createUsers(t, db, "alice", "bob", "carol")

	require.NoError(t, repo.CreateWithMembers(ctx, &models.Team{Name: "Backend"}, []uint64{users[0].ID, users[1].ID}))
	require.NoError(t, repo.CreateWithMembers(ctx, &models.Team{Name: "Design"}, []uint64{users[2].ID}))

	shared, err := repo.SharesTeam(ctx, users[0].ID, users[1].ID)
	require.NoError(t, err)
	require.True(t, shared)

	shared, err = repo.SharesTeam(ctx, users[0].ID, users[2].ID)
	require.NoError(t, err)
	require.False(t, shared)
}

func TestTaskRepository_ListOfTeammates(t *testing.T) {
	db := setupTestDB(t)
	teams := NewTeamRepository(db)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	users := createUsers(t, db, "alice", "bob", "carol", "dave")
	alice, bob, carol, dave := users[0], users[1], users[2], users[3]

	require.NoError(t, teams.CreateWithMembers(ctx, &models.Team{Name: "Backend"}, []uint64{alice.ID, bob.ID}))
	require.NoError(t, teams.CreateWithMembers(ctx, &models.Team{Name: "Ops"}, []uint64{alice.ID, carol.ID}))

	own := createTask(t, db, "own", bob, alice)
	bobs := createTask(t, db, "bob's", alice, bob)
	carols := createTask(t, db, "carol's", alice, carol)
	createTask(t, db, "dave's", alice, dave)

	tasks, err := repo.ListOfTeammates(ctx, alice.ID)
	require.NoError(t, err)

	ids := make([]uint64, 0, len(tasks))
	for _, task := range tasks {
		require.NotEqual(t, alice.ID, task.AssigneeID)
		ids = append(ids, task.ID)
	}
	require.ElementsMatch(t, []uint64{bobs.ID, carols.ID}, ids)
	require.NotContains(t, ids, own.ID)
}

func TestTaskRepository_SetStatusAndUpdateKeepStatusSeparate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	users := createUsers(t, db, "alice", "bob")

	task := createTask(t, db, "Fix bug", users[0], users[1])

	require.NoError(t, repo.SetStatus(ctx, task.ID, models.TaskStatusDone))

	// A stale copy must not overwrite the status.
	task.Title = "Fix bug quickly"
	task.Status = models.TaskStatusToDo
	require.NoError(t, repo.Update(ctx, task))

	stored, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, "Fix bug quickly", stored.Title)
	require.Equal(t, models.TaskStatusDone, stored.Status)

	require.ErrorIs(t, repo.SetStatus(ctx, 9999, models.TaskStatusDone), gorm.ErrRecordNotFound)
}

func TestTaskRepository_DeleteRemovesChildren(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	users := createUsers(t, db, "alice")

	task := &models.Task{
		Title:            "With file",
		Status:           models.TaskStatusToDo,
		CreatorID:        users[0].ID,
		CreatorUsername:  users[0].Username,
		AssigneeID:       users[0].ID,
		AssigneeUsername: users[0].Username,
	}
	attachment := &models.Attachment{
		Data:             []byte("hello"),
		Filename:         "hello.txt",
		ContentType:      "text/plain",
		Size:             5,
		UploaderID:       users[0].ID,
		UploaderUsername: users[0].Username,
	}
	require.NoError(t, repo.CreateWithAttachment(ctx, task, attachment))
	require.Equal(t, task.ID, attachment.TaskID)
	require.NoError(t, repo.AddNote(ctx, &models.Note{TaskID: task.ID, Text: "note", AuthorID: users[0].ID, AuthorUsername: "alice"}))

	attachments, err := repo.ListAttachments(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	require.Empty(t, attachments[0].Data)

	stored, err := repo.FindAttachment(ctx, attachment.ID)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), stored.Data)

	require.NoError(t, repo.Delete(ctx, task.ID))

	_, err = repo.FindByID(ctx, task.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	notes, err := repo.ListNotes(ctx, task.ID)
	require.NoError(t, err)
	require.Empty(t, notes)

	attachments, err = repo.ListAttachments(ctx, task.ID)
	require.NoError(t, err)
	require.Empty(t, attachments)
}

func TestUserRepository_FindByUsernamePropagatesDriverError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	driverErr := errors.New("connection refused")
	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnError(driverErr)

	_, err := repo.FindByUsername(context.Background(), "alice")
	require.ErrorIs(t, err, driverErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_SetStatusRollsBackOnDriverError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	driverErr := errors.New("deadlock found")
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks` SET").WillReturnError(driverErr)
	mock.ExpectRollback()

	err := repo.SetStatus(context.Background(), 1, models.TaskStatusDone)
	require.ErrorIs(t, err, driverErr)
	require.NoError(t, mock.ExpectationsWereMet())
}
