package controllers

import (
	"net/http"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/logics"
	"taskhub-server/internal/models"

	"github.com/labstack/echo/v4"
)

// UserController handles profile self-service and admin user management.
type UserController struct {
	BaseController
	userService *logics.UserService
}

// NewUserController creates a new UserController instance.
func NewUserController(base BaseController, userService *logics.UserService) *UserController {
	return &UserController{BaseController: base, userService: userService}
}

// GetProfile handles GET /api/users/profile.
func (uc *UserController) GetProfile(c echo.Context) error {
	user, err := uc.GetUserFromContext(c)
	if err != nil {
		return uc.Error(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /api/users/profile.
func (uc *UserController) UpdateProfile(c echo.Context) error {
	user, err := uc.GetUserFromContext(c)
	if err != nil {
		return uc.Error(c, err)
	}

	var update models.UserUpdate
	if err := c.Bind(&update); err != nil {
		return uc.Error(c, apperrors.InvalidArgument("invalid request body"))
	}

	updated, err := uc.userService.UpdateProfile(user.ID, &update)
	if err != nil {
		return uc.Error(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// ListUsers handles GET /api/users. Admin only.
func (uc *UserController) ListUsers(c echo.Context) error {
	if _, err := uc.RequireAdmin(c); err != nil {
		return uc.Error(c, err)
	}

	users, err := uc.userService.List()
	if err != nil {
		return uc.Error(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser handles GET /api/users/:id.
func (uc *UserController) GetUser(c echo.Context) error {
	if _, err := uc.GetUserFromContext(c); err != nil {
		return uc.Error(c, err)
	}

	user, err := uc.userService.GetByID(c.Param("id"))
	if err != nil {
		return uc.Error(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser handles PUT /api/users/:id. Admin only.
func (uc *UserController) UpdateUser(c echo.Context) error {
	admin, err := uc.RequireAdmin(c)
	if err != nil {
		return uc.Error(c, err)
	}

	var update models.AdminUserUpdate
	if err := c.Bind(&update); err != nil {
		return uc.Error(c, apperrors.InvalidArgument("invalid request body"))
	}

	updated, err := uc.userService.AdminUpdate(c.Param("id"), &update, admin.ID)
	if err != nil {
		return uc.Error(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteUser handles DELETE /api/users/:id. Admin only.
func (uc *UserController) DeleteUser(c echo.Context) error {
	admin, err := uc.RequireAdmin(c)
	if err != nil {
		return uc.Error(c, err)
	}

	if err := uc.userService.Delete(c.Param("id"), admin.ID); err != nil {
		return uc.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}
