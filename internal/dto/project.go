package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/utils"
)

// AuditDTO exposes the audit entity of a project, task or job
type AuditDTO struct {
	Created         time.Time  `json:"created"`
	CreatedByUserID *uint64    `json:"created_by_user_id"`
	Updated         time.Time  `json:"updated"`
	UpdatedByUserID *uint64    `json:"updated_by_user_id"`
	Deleted         *time.Time `json:"deleted,omitempty"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID           uint64               `json:"id"`
	ClientID     uint64               `json:"client_id"`
	Title        string               `json:"title"`
	ProjectStart time.Time            `json:"project_start"`
	StatusID     models.ProjectStatus `json:"status_id"`
	StatusName   string               `json:"status_name"`
	MonthPayment decimal.Decimal      `json:"month_payment"`
	Client       *ClientDTO           `json:"client,omitempty"`
	Audit        *AuditDTO            `json:"audit,omitempty"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects   []ProjectDTO             `json:"projects"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToAuditDTO converts an Entity model to AuditDTO. A nil entity gives nil.
func ToAuditDTO(entity *models.Entity) *AuditDTO {
	if entity == nil {
		return nil
	}
	return &AuditDTO{
		Created:         entity.Created,
		CreatedByUserID: entity.CreatedByUserID,
		Updated:         entity.Updated,
		UpdatedByUserID: entity.UpdatedByUserID,
		Deleted:         entity.Deleted,
	}
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:           project.ID,
		ClientID:     project.OwnerClientID,
		Title:        project.Title,
		ProjectStart: project.ProjectStart,
		StatusID:     project.StatusID,
		StatusName:   project.StatusName(),
		MonthPayment: project.MonthPayment,
		Audit:        ToAuditDTO(project.Entity),
	}

	if project.Client != nil {
		client := ToClientDTO(*project.Client)
		dto.Client = &client
	}

	return dto
}

// ToProjectListResponse converts a page of projects
func ToProjectListResponse(projects []models.Project, params utils.PaginationParams, total int64) ProjectListResponse {
	items := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectDTO(project)
	}

	return ProjectListResponse{
		Projects:   items,
		Pagination: params.Response(total),
	}
}
