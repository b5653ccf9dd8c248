package controllers

import (
	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/logics"
	"taskhub-server/internal/middlewares"
	"taskhub-server/internal/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// BaseController provides helpers shared by all controllers.
type BaseController struct {
	UserService *logics.UserService
	Logger      *zap.Logger
}

// NewBaseController creates a new BaseController instance.
func NewBaseController(userService *logics.UserService, logger *zap.Logger) BaseController {
	return BaseController{UserService: userService, Logger: logger}
}

// Error writes the canonical error body. Errors without a mapped code are
// logged with their cause before the client sees the opaque internal error.
func (bc *BaseController) Error(c echo.Context, err error) error {
	var appErr *apperrors.AppError
	var echoErr *echo.HTTPError
	if !apperrors.As(err, &appErr) && !apperrors.As(err, &echoErr) {
		apperrors.LogError(bc.Logger, err, "request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
		)
	}
	return apperrors.JSON(c, err)
}

// GetUserFromContext resolves the authenticated user set by the JWT
// middleware into a full user record.
func (bc *BaseController) GetUserFromContext(c echo.Context) (*models.User, error) {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return nil, err
	}
	user, err := bc.UserService.GetByID(userID)
	if err != nil {
		var appErr *apperrors.AppError
		if apperrors.As(err, &appErr) && appErr.Code() == apperrors.ErrNotFound {
			return nil, apperrors.Unauthenticated("account no longer exists")
		}
		return nil, err
	}
	return user, nil
}

// RequireAdmin resolves the authenticated user and rejects non-admins.
func (bc *BaseController) RequireAdmin(c echo.Context) (*models.User, error) {
	user, err := bc.GetUserFromContext(c)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleAdmin {
		return nil, apperrors.Forbidden("admin access required")
	}
	return user, nil
}
