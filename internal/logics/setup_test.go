package logics_test

import (
	"testing"
	"time"

	"taskhub-server/internal/logics"
	"taskhub-server/internal/models"
	"taskhub-server/internal/repositories"
	"taskhub-server/internal/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// The in-memory database exists per connection.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repositories.AutoMigrateInOrder(db))
	return db
}

type testServices struct {
	db            *gorm.DB
	activity      *logics.ActivityService
	notifications *logics.NotificationService
	users         *logics.UserService
	teams         *logics.TeamService
	projects      *logics.ProjectService
	tasks         *logics.TaskService
	comments      *logics.CommentService
	timeLogs      *logics.TimeLogService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	db := newTestDB(t)
	log := zap.NewNop()
	activity := logics.NewActivityService(db, log)
	notifications := logics.NewNotificationService(db, nil, activity, log)
	return &testServices{
		db:            db,
		activity:      activity,
		notifications: notifications,
		users:         logics.NewUserService(db, activity, testJWTSecret, time.Hour, log),
		teams:         logics.NewTeamService(db, activity, log),
		projects:      logics.NewProjectService(db, activity, log),
		tasks:         logics.NewTaskService(db, activity, notifications, log),
		comments:      logics.NewCommentService(db, activity, notifications, log),
		timeLogs:      logics.NewTimeLogService(db, activity, log),
	}
}

func makeUser(t *testing.T, db *gorm.DB, name, role string) *models.User {
	t.Helper()

	id, err := utils.GenerateUniqueID(utils.PrefixUser)
	require.NoError(t, err)
	user := &models.User{
		ID:           id,
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Language:     "en",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func makeTeam(t *testing.T, db *gorm.DB, manager *models.User) *models.Team {
	t.Helper()

	id, err := utils.GenerateUniqueID(utils.PrefixTeam)
	require.NoError(t, err)
	team := &models.Team{ID: id, Name: "Team " + id, ManagerID: manager.ID}
	require.NoError(t, db.Create(team).Error)
	require.NoError(t, db.Create(&models.TeamMember{TeamID: team.ID, UserID: manager.ID}).Error)
	require.NoError(t, db.Model(manager).Update("team_id", team.ID).Error)
	manager.TeamID = &team.ID
	return team
}

func makeProject(t *testing.T, db *gorm.DB, team *models.Team) *models.Project {
	t.Helper()

	id, err := utils.GenerateUniqueID(utils.PrefixProject)
	require.NoError(t, err)
	project := &models.Project{
		ID:     id,
		Name:   "Project " + id,
		TeamID: team.ID,
		Status: models.ProjectStatusActive,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func joinTeam(t *testing.T, db *gorm.DB, team *models.Team, user *models.User) {
	t.Helper()

	require.NoError(t, db.Create(&models.TeamMember{TeamID: team.ID, UserID: user.ID}).Error)
	require.NoError(t, db.Model(user).Update("team_id", team.ID).Error)
	user.TeamID = &team.ID
}
