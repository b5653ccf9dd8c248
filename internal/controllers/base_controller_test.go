package controllers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/controllers"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newErrorContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBaseController_Error(t *testing.T) {
	t.Run("unmapped error logged with its cause", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		base := controllers.NewBaseController(nil, zap.New(core))
		c, rec := newErrorContext()

		require.NoError(t, base.Error(c, errors.New("connection reset")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "internal server error")
		assert.NotContains(t, rec.Body.String(), "connection reset", "cause must stay server-side")

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "request failed", entry.Message)
		fields := entry.ContextMap()
		assert.Equal(t, "connection reset", fields["error"])
		assert.Equal(t, http.MethodGet, fields["method"])
	})

	t.Run("coded error passes through unlogged", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		base := controllers.NewBaseController(nil, zap.New(core))
		c, rec := newErrorContext()

		require.NoError(t, base.Error(c, apperrors.NotFound("task not found")))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "task not found")
		assert.Zero(t, logs.Len())
	})
}
