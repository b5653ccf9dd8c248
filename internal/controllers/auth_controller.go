package controllers

import (
	"net/http"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/logics"
	"taskhub-server/internal/models"

	"github.com/labstack/echo/v4"
)

// AuthController handles registration and login.
type AuthController struct {
	BaseController
	userService *logics.UserService
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(base BaseController, userService *logics.UserService) *AuthController {
	return &AuthController{BaseController: base, userService: userService}
}

// Register handles POST /api/users/register.
func (ac *AuthController) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return ac.Error(c, apperrors.InvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return ac.Error(c, apperrors.InvalidArgument(err.Error()))
	}

	resp, err := ac.userService.Register(&req)
	if err != nil {
		return ac.Error(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/users/login.
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return ac.Error(c, apperrors.InvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return ac.Error(c, apperrors.InvalidArgument(err.Error()))
	}

	resp, err := ac.userService.Login(&req)
	if err != nil {
		return ac.Error(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
