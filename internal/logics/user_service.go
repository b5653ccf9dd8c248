package logics

import (
	"errors"
	"fmt"
	"time"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/models"
	"taskhub-server/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles account lifecycle and authentication.
type UserService struct {
	db        *gorm.DB
	activity  *ActivityService
	jwtSecret string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(db *gorm.DB, activity *ActivityService, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) *UserService {
	return &UserService{
		db:        db,
		activity:  activity,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates a new member account and returns it with a signed token.
// Duplicate emails are rejected with a conflict error.
func (s *UserService) Register(req *models.RegisterRequest) (*models.AuthResponse, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if count > 0 {
		return nil, apperrors.Conflict("email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := utils.GenerateUniqueID(utils.PrefixUser)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user id: %w", err)
	}

	user := models.User{
		ID:           id,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleMember,
		Language:     req.Language,
	}
	if user.Language == "" {
		user.Language = "en"
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := utils.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.activity.Record(user.ID, models.ActionCreate, models.EntityTypeUser, user.ID, nil)
	return &models.AuthResponse{User: &user, Token: token}, nil
}

// Login verifies credentials and returns the user with a signed token.
// Unknown emails and wrong passwords produce the same error.
func (s *UserService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthenticated("invalid email or password")
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthenticated("invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.activity.Record(user.ID, models.ActionLogin, models.EntityTypeUser, user.ID, nil)
	return &models.AuthResponse{User: &user, Token: token}, nil
}

// GetByID returns one user with their team preloaded.
func (s *UserService) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Team").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("failed to find user %s: %w", id, err)
	}
	return &user, nil
}

// List returns all users. Admin only; the controller enforces the role.
func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateProfile applies a partial self-service update and returns the
// refreshed user.
func (s *UserService) UpdateProfile(id string, update *models.UserUpdate) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if update.Name != nil {
		changes["name"] = *update.Name
	}
	if update.AvatarURL != nil {
		changes["avatar_url"] = *update.AvatarURL
	}
	if update.Language != nil {
		changes["language"] = *update.Language
	}
	if update.Password != nil {
		if len(*update.Password) < 6 {
			return nil, apperrors.InvalidArgument("password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		changes["password_hash"] = string(hash)
	}
	if len(changes) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}

	s.activity.Record(id, models.ActionUpdate, models.EntityTypeUser, id, nil)
	return s.GetByID(id)
}

// AdminUpdate applies a partial update on behalf of an administrator,
// including role and team changes.
func (s *UserService) AdminUpdate(id string, update *models.AdminUserUpdate, actorID string) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if update.Name != nil {
		changes["name"] = *update.Name
	}
	if update.AvatarURL != nil {
		changes["avatar_url"] = *update.AvatarURL
	}
	if update.Language != nil {
		changes["language"] = *update.Language
	}
	if update.Role != nil {
		if !models.ValidRole(*update.Role) {
			return nil, apperrors.InvalidArgument(fmt.Sprintf("invalid role: %s", *update.Role))
		}
		changes["role"] = *update.Role
	}
	if update.TeamID != nil {
		if *update.TeamID == "" {
			changes["team_id"] = nil
		} else {
			var count int64
			if err := s.db.Model(&models.Team{}).Where("id = ?", *update.TeamID).Count(&count).Error; err != nil {
				return nil, fmt.Errorf("failed to check team %s: %w", *update.TeamID, err)
			}
			if count == 0 {
				return nil, apperrors.NotFound("team not found")
			}
			changes["team_id"] = *update.TeamID
		}
	}
	if len(changes) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}

	s.activity.Record(actorID, models.ActionUpdate, models.EntityTypeUser, id, nil)
	return s.GetByID(id)
}

// Delete removes a user and their team memberships. Tasks created by or
// assigned to the user are left in place.
func (s *UserService) Delete(id, actorID string) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	if err := tx.Where("user_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to remove team memberships for user %s: %w", id, err)
	}
	if err := tx.Delete(user).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit user deletion: %w", err)
	}

	s.activity.Record(actorID, models.ActionDelete, models.EntityTypeUser, id, nil)
	return nil
}
