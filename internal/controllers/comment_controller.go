package controllers

import (
	"net/http"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/logics"
	"taskhub-server/internal/models"

	"github.com/labstack/echo/v4"
)

// CommentController handles comment threads on tasks.
type CommentController struct {
	BaseController
	commentService *logics.CommentService
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(base BaseController, commentService *logics.CommentService) *CommentController {
	return &CommentController{BaseController: base, commentService: commentService}
}

// ListComments handles GET /api/tasks/:id/comments.
func (cc *CommentController) ListComments(c echo.Context) error {
	if _, err := cc.GetUserFromContext(c); err != nil {
		return cc.Error(c, err)
	}

	threads, err := cc.commentService.ListForTask(c.Param("id"))
	if err != nil {
		return cc.Error(c, err)
	}
	return c.JSON(http.StatusOK, threads)
}

// CreateComment handles POST /api/tasks/:id/comments.
func (cc *CommentController) CreateComment(c echo.Context) error {
	author, err := cc.GetUserFromContext(c)
	if err != nil {
		return cc.Error(c, err)
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return cc.Error(c, apperrors.InvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return cc.Error(c, apperrors.InvalidArgument(err.Error()))
	}

	comment, err := cc.commentService.Create(c.Param("id"), &req, author)
	if err != nil {
		return cc.Error(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// UpdateComment handles PUT /api/comments/:id.
func (cc *CommentController) UpdateComment(c echo.Context) error {
	actor, err := cc.GetUserFromContext(c)
	if err != nil {
		return cc.Error(c, err)
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return cc.Error(c, apperrors.InvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return cc.Error(c, apperrors.InvalidArgument(err.Error()))
	}

	comment, err := cc.commentService.Update(c.Param("id"), req.Text, actor.ID)
	if err != nil {
		return cc.Error(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment handles DELETE /api/comments/:id.
func (cc *CommentController) DeleteComment(c echo.Context) error {
	actor, err := cc.GetUserFromContext(c)
	if err != nil {
		return cc.Error(c, err)
	}

	if err := cc.commentService.Delete(c.Param("id"), actor.ID); err != nil {
		return cc.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "comment deleted"})
}
