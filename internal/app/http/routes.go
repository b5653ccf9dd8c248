package httpEngine

import (
	"net/http"
	"time"

	"taskhub-server/configs"
	"taskhub-server/internal/controllers"
	"taskhub-server/internal/logics"
	"taskhub-server/internal/middlewares"
	"taskhub-server/internal/repositories"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RegisterRoutes wires services, controllers and the full route table.
func RegisterRoutes(e *echo.Echo, log *zap.Logger) {
	// Health check, no auth.
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "TaskHub API is running")
	})

	db := repositories.DBS.Postgres
	tokenTTL := time.Duration(configs.Configs.Auth.TokenTTLHours) * time.Hour

	activityService := logics.NewActivityService(db, log)
	notificationService := logics.NewNotificationService(db, repositories.DBS.Redis, activityService, log)
	userService := logics.NewUserService(db, activityService, configs.Configs.Auth.JWTSecret, tokenTTL, log)
	teamService := logics.NewTeamService(db, activityService, log)
	projectService := logics.NewProjectService(db, activityService, log)
	taskService := logics.NewTaskService(db, activityService, notificationService, log)
	commentService := logics.NewCommentService(db, activityService, notificationService, log)
	timeLogService := logics.NewTimeLogService(db, activityService, log)
	attachmentService, err := logics.NewAttachmentService(db, activityService, configs.Configs.Uploads.Dir, log)
	if err != nil {
		log.Fatal("failed to initialize attachment storage", zap.Error(err))
	}

	base := controllers.NewBaseController(userService, log)
	authController := controllers.NewAuthController(base, userService)
	userController := controllers.NewUserController(base, userService)
	teamController := controllers.NewTeamController(base, teamService)
	projectController := controllers.NewProjectController(base, projectService)
	taskController := controllers.NewTaskController(base, taskService)
	commentController := controllers.NewCommentController(base, commentService)
	attachmentController := controllers.NewAttachmentController(base, attachmentService)
	notificationController := controllers.NewNotificationController(base, notificationService)
	activityController := controllers.NewActivityController(base, activityService)
	timeLogController := controllers.NewTimeLogController(base, timeLogService)

	// Public endpoints.
	e.POST("/api/users/register", authController.Register)
	e.POST("/api/users/login", authController.Login)

	api := e.Group("/api")
	api.Use(middlewares.JWTMiddleware(middlewares.JWTConfig{
		Secret: configs.Configs.Auth.JWTSecret,
		Logger: log,
	}))

	// Profile and user administration.
	api.GET("/users/profile", userController.GetProfile)
	api.PUT("/users/profile", userController.UpdateProfile)
	api.GET("/users", userController.ListUsers)
	api.GET("/users/:id", userController.GetUser)
	api.PUT("/users/:id", userController.UpdateUser)
	api.DELETE("/users/:id", userController.DeleteUser)

	// Teams.
	api.GET("/teams", teamController.ListTeams)
	api.POST("/teams", teamController.CreateTeam)
	api.PUT("/teams/:id/members", teamController.AddMember)

	// Projects.
	api.GET("/projects", projectController.ListProjects)
	api.GET("/projects/:id", projectController.GetProject)
	api.POST("/projects", projectController.CreateProject)
	api.PUT("/projects/:id/status", projectController.UpdateProjectStatus)

	// Tasks and subtasks.
	api.GET("/tasks", taskController.ListTasks)
	api.GET("/tasks/:id", taskController.GetTask)
	api.POST("/tasks", taskController.CreateTask)
	api.PUT("/tasks/:id", taskController.UpdateTask)
	api.DELETE("/tasks/:id", taskController.DeleteTask)
	api.GET("/tasks/:id/subtasks", taskController.ListSubtasks)

	// Comments.
	api.GET("/tasks/:id/comments", commentController.ListComments)
	api.POST("/tasks/:id/comments", commentController.CreateComment)
	api.PUT("/comments/:id", commentController.UpdateComment)
	api.DELETE("/comments/:id", commentController.DeleteComment)

	// Attachments.
	api.POST("/tasks/:id/attachments", attachmentController.UploadToTask)
	api.POST("/comments/:id/attachments", attachmentController.UploadToComment)
	api.GET("/files/:filename", attachmentController.Download)
	api.DELETE("/attachments/:id", attachmentController.DeleteAttachment)

	// Time logs.
	api.GET("/tasks/:id/timelogs", timeLogController.ListTimeLogs)
	api.POST("/tasks/:id/timelogs", timeLogController.CreateTimeLog)

	// Notifications.
	api.GET("/notifications", notificationController.ListNotifications)
	api.GET("/notifications/unread-count", notificationController.UnreadCount)
	api.PUT("/notifications/:id/read", notificationController.MarkRead)

	// Audit trail.
	api.GET("/activitylogs", activityController.ListAll)
	api.GET("/activitylogs/me", activityController.ListMine)
}
