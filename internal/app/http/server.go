package httpEngine

import (
	"context"
	"net/http"

	"taskhub-server/configs"
	"taskhub-server/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	e      *echo.Echo
	logger *zap.Logger
}

// requestValidator plugs go-playground/validator into Echo's c.Validate.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// NewServer instantiates Echo, registers middleware and all routes.
func NewServer(log *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.IPExtractor = echo.ExtractIPFromRealIPHeader()
	e.Validator = &requestValidator{validate: validator.New()}

	origins := configs.Configs.Service.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     origins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())

	RegisterRoutes(e, log)

	return &Server{e: e, logger: log}
}

// Start runs the Echo server on the configured HTTP port. The error is
// returned instead of fatally logged so the caller can shut down gracefully.
func (s *Server) Start() error {
	port := configs.Configs.Service.HTTPPort
	if port == "" {
		port = "8080"
	}
	return s.e.Start(":" + port)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
