package logics

import (
	"errors"
	"fmt"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/models"
	"taskhub-server/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TeamService manages teams and their memberships.
type TeamService struct {
	db       *gorm.DB
	activity *ActivityService
	logger   *zap.Logger
}

// NewTeamService creates a new TeamService instance.
func NewTeamService(db *gorm.DB, activity *ActivityService, logger *zap.Logger) *TeamService {
	return &TeamService{db: db, activity: activity, logger: logger}
}

// List returns all teams with their manager and members preloaded.
func (s *TeamService) List() ([]models.Team, error) {
	var teams []models.Team
	if err := s.db.
		Preload("Manager").
		Preload("Members").
		Order("created_at ASC").
		Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// GetByID returns one team with manager and members preloaded.
func (s *TeamService) GetByID(id string) (*models.Team, error) {
	var team models.Team
	if err := s.db.
		Preload("Manager").
		Preload("Members").
		First(&team, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("team not found")
		}
		return nil, fmt.Errorf("failed to find team %s: %w", id, err)
	}
	return &team, nil
}

// Create creates a team with the given manager, who becomes its first member.
// The designated manager must exist and hold the manager role.
func (s *TeamService) Create(req *models.CreateTeamRequest, actorID string) (*models.Team, error) {
	var manager models.User
	if err := s.db.First(&manager, "id = ?", req.ManagerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("manager not found")
		}
		return nil, fmt.Errorf("failed to find manager %s: %w", req.ManagerID, err)
	}
	if manager.Role != models.RoleManager && manager.Role != models.RoleAdmin {
		return nil, apperrors.InvalidArgument("designated manager must hold the manager role")
	}

	id, err := utils.GenerateUniqueID(utils.PrefixTeam)
	if err != nil {
		return nil, fmt.Errorf("failed to generate team id: %w", err)
	}

	team := models.Team{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   req.ManagerID,
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	if err := tx.Create(&team).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	if err := tx.Create(&models.TeamMember{TeamID: team.ID, UserID: manager.ID}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to add manager to team: %w", err)
	}
	if err := tx.Model(&manager).Update("team_id", team.ID).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to set manager's team: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit team creation: %w", err)
	}

	s.activity.Record(actorID, models.ActionCreate, models.EntityTypeTeam, team.ID, map[string]interface{}{
		"name": team.Name,
	})
	return s.GetByID(team.ID)
}

// AddMember adds a user to a team. Only the team's manager or an admin may
// do so; adding an existing member is a conflict.
func (s *TeamService) AddMember(teamID, userID string, actor *models.User) (*models.Team, error) {
	team, err := s.GetByID(teamID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin && team.ManagerID != actor.ID {
		return nil, apperrors.Forbidden("only the team manager or an admin can add members")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	var count int64
	if err := s.db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if count > 0 {
		return nil, apperrors.Conflict("user is already a member of this team")
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	if err := tx.Create(&models.TeamMember{TeamID: teamID, UserID: userID}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	if err := tx.Model(&user).Update("team_id", teamID).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to set member's team: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit membership: %w", err)
	}

	s.activity.Record(actor.ID, models.ActionUpdate, models.EntityTypeTeam, teamID, map[string]interface{}{
		"added_member": userID,
	})
	return s.GetByID(teamID)
}
