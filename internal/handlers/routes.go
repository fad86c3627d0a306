package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/project-tracker/internal/errors"
	"github.com/yukikurage/project-tracker/internal/middleware"
	"github.com/yukikurage/project-tracker/internal/repository"
	"github.com/yukikurage/project-tracker/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handlers groups every HTTP handler of the API.
type Handlers struct {
	Auth    *AuthHandler
	Account *AccountHandler
	Project *ProjectHandler
	Task    *TaskHandler

	taskService *services.TaskService
	db          *gorm.DB
}

// New wires repositories, services and handlers on top of db.
func New(db *gorm.DB, log *zap.Logger) *Handlers {
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	jobRepo := repository.NewJobRepository(db)
	lookupRepo := repository.NewLookupRepository(db)

	accountService := services.NewAccountService(userRepo, log)
	projectService := services.NewProjectService(projectRepo, userRepo, log)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, jobRepo, log)

	return &Handlers{
		Auth:        NewAuthHandler(accountService, log),
		Account:     NewAccountHandler(accountService, lookupRepo, log),
		Project:     NewProjectHandler(projectService, log),
		Task:        NewTaskHandler(taskService, log),
		taskService: taskService,
		db:          db,
	}
}

// Health reports whether the database answers.
func (h *Handlers) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		apierrors.ServiceUnavailable(c, "Database unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Project Tracker API is running",
	})
}

// RegisterRoutes mounts the API on r. Session middleware must already be installed.
func (h *Handlers) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/lookups", h.Account.Lookups)
		api.POST("/clients", h.Account.RegisterClient)
		api.POST("/employees", h.Account.RegisterEmployee)

		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/me", middleware.RequireAuth(), h.Auth.GetCurrentUser)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("/:id", h.Account.GetUser)
			users.POST("/:id/contacts", middleware.RequireSelf(), h.Account.AddContact)
			users.PUT("/:id/login", middleware.RequireSelf(), h.Account.SetLogin)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.POST("", h.Project.CreateProject)
			projects.GET("", h.Project.ListProjects)
			projects.GET("/:id", h.Project.GetProject)
			projects.PATCH("/:id", h.Project.UpdateProject)
			projects.DELETE("/:id", h.Project.DeleteProject)
			projects.POST("/:id/tasks", h.Task.CreateTask)
			projects.GET("/:id/tasks", h.Task.ListTasks)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			loadTask := middleware.LoadTask(h.taskService)
			tasks.GET("/:id", loadTask, h.Task.GetTask)
			tasks.PATCH("/:id", loadTask, h.Task.UpdateTask)
			tasks.DELETE("/:id", loadTask, h.Task.DeleteTask)
			tasks.POST("/:id/pushes", loadTask, h.Task.PushTask)
			tasks.GET("/:id/owner", loadTask, h.Task.GetOwner)
			tasks.POST("/:id/jobs", loadTask, h.Task.LogJob)
			tasks.GET("/:id/jobs", loadTask, h.Task.ListJobs)
		}
	}
}
