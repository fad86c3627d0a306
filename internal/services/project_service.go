package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/repository"
	"github.com/yukikurage/project-tracker/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrInvalidProjectTitle  = errors.New("project title cannot be empty")
	ErrInvalidProjectStatus = errors.New("unknown project status")
	ErrNegativePayment      = errors.New("monthly payment cannot be negative")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	log         *zap.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, log *zap.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		log:         log,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	ClientID     uint64
	Title        string
	ProjectStart *time.Time
	MonthPayment *decimal.Decimal
	Actor        models.Actor
}

// CreateProject creates an active project for an existing client.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidProjectTitle
	}

	client, err := s.userRepo.FindClientByID(input.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	start := models.Today()
	if input.ProjectStart != nil {
		start = *input.ProjectStart
	}

	project := models.NewProject(client, title, start)
	if input.MonthPayment != nil {
		if input.MonthPayment.IsNegative() {
			return nil, ErrNegativePayment
		}
		project.MonthPayment = *input.MonthPayment
	}
	if err := models.Validate(project); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(project, input.Actor); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.log.Info("project created",
		zap.Uint64("project_id", project.ID),
		zap.Uint64("client_id", project.OwnerClientID),
	)
	return project, nil
}

// GetProject returns a live project.
func (s *ProjectService) GetProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// ListProjectsInput represents filters for listing projects.
type ListProjectsInput struct {
	ClientID   *uint64
	Status     *models.ProjectStatus
	Pagination utils.PaginationParams
}

// ListProjects returns live projects matching the filters.
func (s *ProjectService) ListProjects(input ListProjectsInput) ([]models.Project, int64, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, 0, ErrInvalidProjectStatus
	}

	projects, total, err := s.projectRepo.List(repository.ProjectFilter{
		ClientID:   input.ClientID,
		Status:     input.Status,
		Pagination: input.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// UpdateProjectInput represents a partial project update.
type UpdateProjectInput struct {
	Title        *string
	Status       *models.ProjectStatus
	MonthPayment *decimal.Decimal
	Actor        models.Actor
}

// UpdateProject changes the title, status or monthly payment of a project.
func (s *ProjectService) UpdateProject(id uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrInvalidProjectTitle
		}
		project.Title = title
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidProjectStatus
		}
		project.StatusID = *input.Status
		project.Status = nil
	}
	if input.MonthPayment != nil {
		if input.MonthPayment.IsNegative() {
			return nil, ErrNegativePayment
		}
		project.MonthPayment = *input.MonthPayment
	}
	if err := models.Validate(project); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(project, input.Actor); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.GetProject(id)
}

// DeleteProject soft-deletes a project.
func (s *ProjectService) DeleteProject(id uint64, actor models.Actor) error {
	if err := s.projectRepo.SoftDelete(id, actor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.log.Info("project deleted", zap.Uint64("project_id", id))
	return nil
}
