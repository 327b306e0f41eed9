package database

import (
	"testing"

	"github.com/SaniTheWay/TaskManagmentSystem/internal/config"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/logger"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/models"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestConnectAndMigrate_SQLiteMemory(t *testing.T) {
	cfg := &config.Config{DBDriver: config.DriverSQLite, DBPath: ":memory:", GinMode: "test"}

	db, err := Connect(cfg, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, Migrate(db, logger.Nop()))

	for _, model := range []any{
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Task{},
		&models.Note{},
		&models.Attachment{},
	} {
		require.True(t, db.Migrator().HasTable(model))
	}
	require.True(t, db.Migrator().HasIndex(&models.TeamMember{}, "idx_team_members_team_user"))
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect(&config.Config{DBDriver: "oracle"}, logger.Nop())
	require.Error(t, err)
}

func TestLogLevelFor(t *testing.T) {
	require.Equal(t, gormlogger.Warn, logLevelFor("release"))
	require.Equal(t, gormlogger.Silent, logLevelFor("test"))
	require.Equal(t, gormlogger.Info, logLevelFor("debug"))
}
