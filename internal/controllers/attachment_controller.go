package controllers

import (
	"net/http"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/logics"

	"github.com/labstack/echo/v4"
)

// AttachmentController handles file uploads and downloads.
type AttachmentController struct {
	BaseController
	attachmentService *logics.AttachmentService
}

// NewAttachmentController creates a new AttachmentController instance.
func NewAttachmentController(base BaseController, attachmentService *logics.AttachmentService) *AttachmentController {
	return &AttachmentController{BaseController: base, attachmentService: attachmentService}
}

// UploadToTask handles POST /api/tasks/:id/attachments. The file is
// expected in the "file" multipart field.
func (ac *AttachmentController) UploadToTask(c echo.Context) error {
	uploader, err := ac.GetUserFromContext(c)
	if err != nil {
		return ac.Error(c, err)
	}

	header, err := c.FormFile("file")
	if err != nil {
		return ac.Error(c, apperrors.InvalidArgument("file is required"))
	}
	src, err := header.Open()
	if err != nil {
		return ac.Error(c, apperrors.InvalidArgument("failed to read uploaded file"))
	}
	defer src.Close()

	attachment, err := ac.attachmentService.UploadToTask(c.Param("id"), src, header, uploader)
	if err != nil {
		return ac.Error(c, err)
	}
	return c.JSON(http.StatusCreated, attachment)
}

// UploadToComment handles POST /api/comments/:id/attachments.
func (ac *AttachmentController) UploadToComment(c echo.Context) error {
	uploader, err := ac.GetUserFromContext(c)
	if err != nil {
		return ac.Error(c, err)
	}

	header, err := c.FormFile("file")
	if err != nil {
		return ac.Error(c, apperrors.InvalidArgument("file is required"))
	}
	src, err := header.Open()
	if err != nil {
		return ac.Error(c, apperrors.InvalidArgument("failed to read uploaded file"))
	}
	defer src.Close()

	attachment, err := ac.attachmentService.UploadToComment(c.Param("id"), src, header, uploader)
	if err != nil {
		return ac.Error(c, err)
	}
	return c.JSON(http.StatusCreated, attachment)
}

// Download handles GET /api/files/:filename, streaming the stored
// bytes with the original content type.
func (ac *AttachmentController) Download(c echo.Context) error {
	if _, err := ac.GetUserFromContext(c); err != nil {
		return ac.Error(c, err)
	}

	attachment, f, err := ac.attachmentService.Open(c.Param("filename"))
	if err != nil {
		return ac.Error(c, err)
	}
	defer f.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="`+attachment.OriginalName+`"`)
	return c.Stream(http.StatusOK, attachment.Mimetype, f)
}

// DeleteAttachment handles DELETE /api/attachments/:id.
func (ac *AttachmentController) DeleteAttachment(c echo.Context) error {
	actor, err := ac.GetUserFromContext(c)
	if err != nil {
		return ac.Error(c, err)
	}

	if err := ac.attachmentService.Delete(c.Param("id"), actor.ID); err != nil {
		return ac.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "attachment deleted"})
}
