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

// ProjectService manages projects. Visibility is team-scoped: admins see
// everything, everyone else only their own team's projects.
type ProjectService struct {
	db       *gorm.DB
	activity *ActivityService
	logger   *zap.Logger
}

// NewProjectService creates a new ProjectService instance.
func NewProjectService(db *gorm.DB, activity *ActivityService, logger *zap.Logger) *ProjectService {
	return &ProjectService{db: db, activity: activity, logger: logger}
}

// List returns the projects visible to the actor. Users without a team see
// an empty list.
func (s *ProjectService) List(actor *models.User) ([]models.Project, error) {
	query := s.db.Preload("Team").Order("created_at DESC")
	if actor.Role != models.RoleAdmin {
		if actor.TeamID == nil {
			return []models.Project{}, nil
		}
		query = query.Where("team_id = ?", *actor.TeamID)
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetByID returns one project with its team preloaded.
func (s *ProjectService) GetByID(id string) (*models.Project, error) {
	var project models.Project
	if err := s.db.Preload("Team").First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("project not found")
		}
		return nil, fmt.Errorf("failed to find project %s: %w", id, err)
	}
	return &project, nil
}

// Create creates a project under a team. Only the team's manager or an
// admin may create projects for that team.
func (s *ProjectService) Create(req *models.CreateProjectRequest, actor *models.User) (*models.Project, error) {
	var team models.Team
	if err := s.db.First(&team, "id = ?", req.TeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("team not found")
		}
		return nil, fmt.Errorf("failed to find team %s: %w", req.TeamID, err)
	}
	if actor.Role != models.RoleAdmin && team.ManagerID != actor.ID {
		return nil, apperrors.Forbidden("only the team manager or an admin can create projects")
	}

	id, err := utils.GenerateUniqueID(utils.PrefixProject)
	if err != nil {
		return nil, fmt.Errorf("failed to generate project id: %w", err)
	}

	project := models.Project{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		TeamID:      req.TeamID,
		Status:      models.ProjectStatusPlanning,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.activity.Record(actor.ID, models.ActionCreate, models.EntityTypeProject, project.ID, map[string]interface{}{
		"name": project.Name,
	})
	return s.GetByID(project.ID)
}

// UpdateStatus moves a project to a new lifecycle status.
func (s *ProjectService) UpdateStatus(id, status string, actor *models.User) (*models.Project, error) {
	if !models.ValidProjectStatus(status) {
		return nil, apperrors.InvalidArgument(fmt.Sprintf("invalid project status: %s", status))
	}

	project, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin && project.Team.ManagerID != actor.ID {
		return nil, apperrors.Forbidden("only the team manager or an admin can update project status")
	}

	previous := project.Status
	if err := s.db.Model(project).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update project %s status: %w", id, err)
	}

	s.activity.Record(actor.ID, models.ActionUpdate, models.EntityTypeProject, id, map[string]interface{}{
		"field":     "status",
		"old_value": previous,
		"new_value": status,
	})
	return s.GetByID(id)
}
