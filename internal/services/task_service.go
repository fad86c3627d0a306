package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/repository"
	"github.com/yukikurage/project-tracker/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTitleRequired       = errors.New("title is required")
	ErrInvalidTaskStatus   = errors.New("unknown task status")
	ErrPushTargetNotFound  = errors.New("push target employee not found")
	ErrDuplicatePush       = errors.New("task was already pushed at this time")
	ErrNoTaskOwner         = models.ErrNoTaskOwner
	ErrNonPositiveDuration = models.ErrNonPositiveDuration
)

// TaskService handles task, push and job business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	jobRepo     repository.JobRepository
	log         *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	jobRepo repository.JobRepository,
	log *zap.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		jobRepo:     jobRepo,
		log:         log,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	ProjectID uint64
	Title     string
	Actor     models.Actor
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Title  *string
	Status *models.TaskStatus
	Actor  models.Actor
}

// PushTaskInput represents a reassignment of a task to an employee
type PushTaskInput struct {
	TaskID       uint64
	ToEmployeeID uint64
	Comment      string
	Actor        models.Actor
}

// LogJobInput represents time logged against a task
type LogJobInput struct {
	TaskID          uint64
	Description     string
	DurationMinutes int
	Actor           models.Actor
}

// CreateTask creates a new task in a live project
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if err := s.ensureProject(input.ProjectID); err != nil {
		return nil, err
	}

	task := models.NewTask(title)
	task.ProjectID = input.ProjectID
	if err := models.Validate(task); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(task, input.Actor); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.log.Info("task created",
		zap.Uint64("task_id", task.ID),
		zap.Uint64("project_id", task.ProjectID),
	)
	return task, nil
}

// GetTask returns a live task of a live project with its push history
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.ensureProject(task.ProjectID); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

// ListTasks returns the live tasks of a live project
func (s *TaskService) ListTasks(projectID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	if err := s.ensureProject(projectID); err != nil {
		return nil, 0, err
	}

	tasks, total, err := s.taskRepo.ListByProject(projectID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// UpdateTask updates the title or status of a task. Any status may follow any other.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = title
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidTaskStatus
		}
		task.StatusID = *input.Status
		task.Status = nil
	}
	if err := models.Validate(task); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(task, input.Actor); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.GetTask(taskID)
}

// DeleteTask soft-deletes a task
func (s *TaskService) DeleteTask(taskID uint64, actor models.Actor) error {
	if _, err := s.GetTask(taskID); err != nil {
		return err
	}

	if err := s.taskRepo.SoftDelete(taskID, actor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.log.Info("task deleted", zap.Uint64("task_id", taskID))
	return nil
}

// PushTask hands a task to an employee. The acting user is recorded as the
// pusher when they are an employee.
func (s *TaskService) PushTask(input PushTaskInput) (*models.TaskPush, error) {
	if _, err := s.GetTask(input.TaskID); err != nil {
		return nil, err
	}

	target, err := s.userRepo.FindEmployeeByID(input.ToEmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPushTargetNotFound
		}
		return nil, fmt.Errorf("failed to find push target: %w", err)
	}

	by, err := s.pusher(input.Actor)
	if err != nil {
		return nil, err
	}

	push := models.NewTaskPush(strings.TrimSpace(input.Comment), by, target)
	push.TaskID = input.TaskID
	if err := models.Validate(push); err != nil {
		return nil, err
	}

	if err := s.taskRepo.AddPush(push); err != nil {
		if errors.Is(err, repository.ErrDuplicatePush) {
			return nil, ErrDuplicatePush
		}
		return nil, fmt.Errorf("failed to push task: %w", err)
	}

	s.log.Info("task pushed",
		zap.Uint64("task_id", push.TaskID),
		zap.Uint64("to_employee_id", push.PushToEmployeeID),
	)
	return push, nil
}

func (s *TaskService) pusher(actor models.Actor) (*models.Employee, error) {
	userID, ok := actor.UserID()
	if !ok {
		return nil, nil
	}

	employee, err := s.userRepo.FindEmployeeByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find pushing employee: %w", err)
	}
	return employee, nil
}

// GetOwner returns the employee the task was most recently pushed to
func (s *TaskService) GetOwner(taskID uint64) (*models.Employee, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	owner, err := task.Owner()
	if err != nil {
		return nil, err
	}
	return owner, nil
}

// LogJob records time spent on a task
func (s *TaskService) LogJob(input LogJobInput) (*models.Job, error) {
	job, err := models.NewJob(strings.TrimSpace(input.Description), input.DurationMinutes)
	if err != nil {
		return nil, err
	}

	if _, err := s.GetTask(input.TaskID); err != nil {
		return nil, err
	}

	job.TaskID = input.TaskID
	if err := models.Validate(job); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Create(job, input.Actor); err != nil {
		return nil, fmt.Errorf("failed to log job: %w", err)
	}

	return job, nil
}

// ListJobs returns the jobs of a task and their total duration in minutes
func (s *TaskService) ListJobs(taskID uint64) ([]models.Job, int64, error) {
	if _, err := s.GetTask(taskID); err != nil {
		return nil, 0, err
	}

	jobs, err := s.jobRepo.ListByTask(taskID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}

	total, err := s.jobRepo.TotalMinutes(taskID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to sum job durations: %w", err)
	}

	return jobs, total, nil
}

func (s *TaskService) ensureProject(projectID uint64) error {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}
	return nil
}
