package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker/internal/dto"
	apierrors "github.com/yukikurage/project-tracker/internal/errors"
	"github.com/yukikurage/project-tracker/internal/middleware"
	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/services"
	"github.com/yukikurage/project-tracker/internal/utils"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService *services.TaskService
	log         *zap.Logger
}

func NewTaskHandler(taskService *services.TaskService, log *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log,
	}
}

// CreateTask creates a task in the project named by :id
func (h *TaskHandler) CreateTask(c *gin.Context) {
	projectID, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title string `json:"title" binding:"required,max=100"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		ProjectID: projectID,
		Title:     req.Title,
		Actor:     middleware.CurrentActor(c),
	})
	if err != nil {
		respondTaskError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks returns the live tasks of the project named by :id
func (h *TaskHandler) ListTasks(c *gin.Context) {
	projectID, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	tasks, total, err := h.taskService.ListTasks(projectID, params)
	if err != nil {
		respondTaskError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params, total))
}

// GetTask returns a specific task
// Task is already loaded with its pushes by the LoadTask middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask updates the title or status of a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	type UpdateTaskRequest struct {
		Title    *string `json:"title" binding:"omitempty,max=100"`
		StatusID *int    `json:"status_id"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title: req.Title,
		Actor: middleware.CurrentActor(c),
	}
	if req.StatusID != nil {
		status := models.TaskStatus(*req.StatusID)
		input.Status = &status
	}

	updated, err := h.taskService.UpdateTask(task.ID, input)
	if err != nil {
		respondTaskError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// DeleteTask soft-deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.DeleteTask(task.ID, middleware.CurrentActor(c)); err != nil {
		respondTaskError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// PushTask hands the task to another employee
func (h *TaskHandler) PushTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	type PushTaskRequest struct {
		ToEmployeeID uint64 `json:"to_employee_id" binding:"required"`
		Comment      string `json:"comment" binding:"max=2000"`
	}

	var req PushTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	push, err := h.taskService.PushTask(services.PushTaskInput{
		TaskID:       task.ID,
		ToEmployeeID: req.ToEmployeeID,
		Comment:      req.Comment,
		Actor:        middleware.CurrentActor(c),
	})
	if err != nil {
		respondTaskError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskPushDTO(*push))
}

// GetOwner returns the employee the task was last pushed to
func (h *TaskHandler) GetOwner(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	owner, err := h.taskService.GetOwner(task.ID)
	if err != nil {
		respondTaskError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*owner))
}

// LogJob records time spent on the task
func (h *TaskHandler) LogJob(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	type LogJobRequest struct {
		Description     string `json:"description" binding:"max=200"`
		DurationMinutes int    `json:"duration_minutes"`
	}

	var req LogJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	job, err := h.taskService.LogJob(services.LogJobInput{
		TaskID:          task.ID,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Actor:           middleware.CurrentActor(c),
	})
	if err != nil {
		respondTaskError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJobDTO(*job))
}

// ListJobs returns the jobs logged on the task and their total duration
func (h *TaskHandler) ListJobs(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	jobs, total, err := h.taskService.ListJobs(task.ID)
	if err != nil {
		respondTaskError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobListResponse(jobs, total))
}

func respondTaskError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidModel):
		respondInvalidModel(c, err)
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrNonPositiveDuration):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNoTaskOwner):
		apierrors.NoOwner(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrPushTargetNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrDuplicatePush):
		apierrors.Conflict(c, err.Error())
	default:
		log.Error("task request failed", zap.Error(err))
		apierrors.InternalError(c, "Internal server error")
	}
}
