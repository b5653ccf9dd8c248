package logics

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/models"
	"taskhub-server/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AttachmentService stores uploaded files on the local disk and tracks
// their metadata. Every attachment belongs to exactly one task or comment.
type AttachmentService struct {
	db        *gorm.DB
	activity  *ActivityService
	uploadDir string
	logger    *zap.Logger
}

// NewAttachmentService creates a new AttachmentService instance. The upload
// directory is created if missing.
func NewAttachmentService(db *gorm.DB, activity *ActivityService, uploadDir string, logger *zap.Logger) (*AttachmentService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", uploadDir, err)
	}
	return &AttachmentService{db: db, activity: activity, uploadDir: uploadDir, logger: logger}, nil
}

// UploadToTask stores a file and attaches it to a task.
func (s *AttachmentService) UploadToTask(taskID string, file multipart.File, header *multipart.FileHeader, uploader *models.User) (*models.Attachment, error) {
	var count int64
	if err := s.db.Model(&models.Task{}).Where("id = ?", taskID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check task %s: %w", taskID, err)
	}
	if count == 0 {
		return nil, apperrors.NotFound("task not found")
	}
	return s.store(file, header, uploader, &taskID, nil)
}

// UploadToComment stores a file and attaches it to a comment.
func (s *AttachmentService) UploadToComment(commentID string, file multipart.File, header *multipart.FileHeader, uploader *models.User) (*models.Attachment, error) {
	var count int64
	if err := s.db.Model(&models.Comment{}).Where("id = ?", commentID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check comment %s: %w", commentID, err)
	}
	if count == 0 {
		return nil, apperrors.NotFound("comment not found")
	}
	return s.store(file, header, uploader, nil, &commentID)
}

func (s *AttachmentService) store(file multipart.File, header *multipart.FileHeader, uploader *models.User, taskID, commentID *string) (*models.Attachment, error) {
	id, err := utils.GenerateUniqueID(utils.PrefixAttachment)
	if err != nil {
		return nil, fmt.Errorf("failed to generate attachment id: %w", err)
	}

	filename := uuid.NewString() + filepath.Ext(header.Filename)
	path := filepath.Join(s.uploadDir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write file %s: %w", path, err)
	}

	mimetype := header.Header.Get("Content-Type")
	if mimetype == "" {
		mimetype = "application/octet-stream"
	}

	attachment := models.Attachment{
		ID:           id,
		Filename:     filename,
		OriginalName: header.Filename,
		Mimetype:     mimetype,
		Size:         header.Size,
		Path:         path,
		URL:          "/api/files/" + filename,
		UploadedByID: uploader.ID,
		TaskID:       taskID,
		CommentID:    commentID,
	}
	if err := s.db.Create(&attachment).Error; err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to create attachment record: %w", err)
	}

	metadata := map[string]interface{}{"filename": header.Filename}
	if taskID != nil {
		metadata["task_id"] = *taskID
	}
	if commentID != nil {
		metadata["comment_id"] = *commentID
	}
	s.activity.Record(uploader.ID, models.ActionCreate, models.EntityTypeAttachment, id, metadata)
	return &attachment, nil
}

// Open resolves a stored filename to its metadata and an open file handle.
// The caller must close the file.
func (s *AttachmentService) Open(filename string) (*models.Attachment, *os.File, error) {
	var attachment models.Attachment
	if err := s.db.First(&attachment, "filename = ?", filename).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFound("attachment not found")
		}
		return nil, nil, fmt.Errorf("failed to find attachment %s: %w", filename, err)
	}

	f, err := os.Open(attachment.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, apperrors.NotFound("attachment file missing from storage")
		}
		return nil, nil, fmt.Errorf("failed to open attachment file %s: %w", attachment.Path, err)
	}
	return &attachment, f, nil
}

// Delete removes an attachment record and its file. Only the uploader may
// do so; a missing file on disk does not fail the deletion.
func (s *AttachmentService) Delete(id, actorID string) error {
	var attachment models.Attachment
	if err := s.db.First(&attachment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("attachment not found")
		}
		return fmt.Errorf("failed to find attachment %s: %w", id, err)
	}
	if attachment.UploadedByID != actorID {
		return apperrors.Forbidden("only the uploader can delete an attachment")
	}

	if err := s.db.Delete(&attachment).Error; err != nil {
		return fmt.Errorf("failed to delete attachment %s: %w", id, err)
	}
	if err := os.Remove(attachment.Path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove attachment file",
			zap.Error(err),
			zap.String("path", attachment.Path),
		)
	}

	s.activity.Record(actorID, models.ActionDelete, models.EntityTypeAttachment, id, map[string]interface{}{
		"filename": attachment.OriginalName,
	})
	return nil
}
