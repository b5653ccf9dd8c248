package logics_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/logics"
	"taskhub-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func uploadInput(name, contentType string, data []byte) (multipart.File, *multipart.FileHeader) {
	header := &multipart.FileHeader{
		Filename: name,
		Size:     int64(len(data)),
		Header:   textproto.MIMEHeader{},
	}
	if contentType != "" {
		header.Header.Set("Content-Type", contentType)
	}
	return memFile{bytes.NewReader(data)}, header
}

func newAttachmentFixture(t *testing.T) (*testServices, *logics.AttachmentService, *models.User, *models.Task, string) {
	t.Helper()

	s := newTestServices(t)
	dir := t.TempDir()
	attachments, err := logics.NewAttachmentService(s.db, s.activity, dir, zap.NewNop())
	require.NoError(t, err)

	manager := makeUser(t, s.db, "manager", models.RoleManager)
	team := makeTeam(t, s.db, manager)
	project := makeProject(t, s.db, team)
	task, err := s.tasks.Create(&models.CreateTaskRequest{Title: "Files", ProjectID: project.ID}, manager)
	require.NoError(t, err)
	return s, attachments, manager, task, dir
}

func TestAttachmentService_UploadToTask(t *testing.T) {
	_, attachments, manager, task, dir := newAttachmentFixture(t)

	file, header := uploadInput("report.txt", "text/plain", []byte("hello"))
	attachment, err := attachments.UploadToTask(task.ID, file, header, manager)
	require.NoError(t, err)

	assert.Equal(t, "report.txt", attachment.OriginalName)
	assert.NotEqual(t, "report.txt", attachment.Filename, "stored name must be randomized")
	assert.Equal(t, ".txt", filepath.Ext(attachment.Filename))
	assert.Equal(t, "text/plain", attachment.Mimetype)
	assert.EqualValues(t, 5, attachment.Size)
	require.NotNil(t, attachment.TaskID)
	assert.Equal(t, task.ID, *attachment.TaskID)
	assert.Nil(t, attachment.CommentID)

	stored, err := os.ReadFile(filepath.Join(dir, attachment.Filename))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), stored)
}

func TestAttachmentService_UploadToComment(t *testing.T) {
	s, attachments, manager, task, _ := newAttachmentFixture(t)

	comment, err := s.comments.Create(task.ID, &models.CreateCommentRequest{Text: "see attached"}, manager)
	require.NoError(t, err)

	file, header := uploadInput("diagram.png", "image/png", []byte{0x89, 0x50})
	attachment, err := attachments.UploadToComment(comment.ID, file, header, manager)
	require.NoError(t, err)
	require.NotNil(t, attachment.CommentID)
	assert.Equal(t, comment.ID, *attachment.CommentID)
	assert.Nil(t, attachment.TaskID)

	t.Run("unknown comment not found", func(t *testing.T) {
		file, header := uploadInput("x.txt", "", []byte("x"))
		_, err := attachments.UploadToComment("CM00NOTEXIST0", file, header, manager)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrNotFound, appErr.Code())
	})
}

func TestAttachmentService_AuditTrail(t *testing.T) {
	s, attachments, manager, task, _ := newAttachmentFixture(t)

	comment, err := s.comments.Create(task.ID, &models.CreateCommentRequest{Text: "thread"}, manager)
	require.NoError(t, err)

	file, header := uploadInput("spec.pdf", "application/pdf", []byte("pdf"))
	taskAttachment, err := attachments.UploadToTask(task.ID, file, header, manager)
	require.NoError(t, err)

	file, header = uploadInput("shot.png", "image/png", []byte{0x89})
	commentAttachment, err := attachments.UploadToComment(comment.ID, file, header, manager)
	require.NoError(t, err)

	t.Run("upload recorded against the attachment", func(t *testing.T) {
		var entry models.ActivityLog
		require.NoError(t, s.db.
			Where("entity_type = ? AND entity_id = ? AND action = ?", models.EntityTypeAttachment, taskAttachment.ID, models.ActionCreate).
			First(&entry).Error)
		assert.Contains(t, string(entry.Metadata), `"task_id":"`+task.ID+`"`)

		entry = models.ActivityLog{}
		require.NoError(t, s.db.
			Where("entity_type = ? AND entity_id = ? AND action = ?", models.EntityTypeAttachment, commentAttachment.ID, models.ActionCreate).
			First(&entry).Error)
		assert.Contains(t, string(entry.Metadata), `"comment_id":"`+comment.ID+`"`)
	})

	t.Run("delete recorded against the attachment", func(t *testing.T) {
		require.NoError(t, attachments.Delete(taskAttachment.ID, manager.ID))

		var entry models.ActivityLog
		require.NoError(t, s.db.
			Where("entity_type = ? AND entity_id = ? AND action = ?", models.EntityTypeAttachment, taskAttachment.ID, models.ActionDelete).
			First(&entry).Error)
		assert.Contains(t, string(entry.Metadata), `"filename":"spec.pdf"`)
	})
}

func TestAttachmentService_Open(t *testing.T) {
	_, attachments, manager, task, _ := newAttachmentFixture(t)

	file, header := uploadInput("notes.md", "text/markdown", []byte("# notes"))
	attachment, err := attachments.UploadToTask(task.ID, file, header, manager)
	require.NoError(t, err)

	meta, f, err := attachments.Open(attachment.Filename)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "text/markdown", meta.Mimetype)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("# notes"), data)

	t.Run("unknown filename not found", func(t *testing.T) {
		_, _, err := attachments.Open("nope.bin")
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrNotFound, appErr.Code())
	})

	t.Run("missing blob reported as not found", func(t *testing.T) {
		require.NoError(t, os.Remove(attachment.Path))
		_, _, err := attachments.Open(attachment.Filename)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrNotFound, appErr.Code())
	})
}

func TestAttachmentService_Delete(t *testing.T) {
	s, attachments, manager, task, _ := newAttachmentFixture(t)
	other := makeUser(t, s.db, "other", models.RoleMember)

	file, header := uploadInput("temp.txt", "text/plain", []byte("bye"))
	attachment, err := attachments.UploadToTask(task.ID, file, header, manager)
	require.NoError(t, err)

	t.Run("non-uploader forbidden", func(t *testing.T) {
		err := attachments.Delete(attachment.ID, other.ID)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code())
	})

	t.Run("uploader deletes record and blob", func(t *testing.T) {
		require.NoError(t, attachments.Delete(attachment.ID, manager.ID))

		var count int64
		require.NoError(t, s.db.Model(&models.Attachment{}).Where("id = ?", attachment.ID).Count(&count).Error)
		assert.Zero(t, count)
		_, err := os.Stat(attachment.Path)
		assert.True(t, os.IsNotExist(err))
	})
}
