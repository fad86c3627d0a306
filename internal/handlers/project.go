package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yukikurage/project-tracker/internal/dto"
	apierrors "github.com/yukikurage/project-tracker/internal/errors"
	"github.com/yukikurage/project-tracker/internal/middleware"
	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/services"
	"github.com/yukikurage/project-tracker/internal/utils"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	log            *zap.Logger
}

func NewProjectHandler(projectService *services.ProjectService, log *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		log:            log,
	}
}

// CreateProject creates a new project for a client
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		ClientID     uint64           `json:"client_id" binding:"required"`
		Title        string           `json:"title" binding:"required,max=100"`
		ProjectStart string           `json:"project_start"`
		MonthPayment *decimal.Decimal `json:"month_payment"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateProjectInput{
		ClientID:     req.ClientID,
		Title:        req.Title,
		MonthPayment: req.MonthPayment,
		Actor:        middleware.CurrentActor(c),
	}
	if req.ProjectStart != "" {
		start, err := time.ParseInLocation(time.DateOnly, req.ProjectStart, time.Local)
		if err != nil {
			apierrors.InvalidFormat(c, "project_start must be YYYY-MM-DD")
			return
		}
		input.ProjectStart = &start
	}

	project, err := h.projectService.CreateProject(input)
	if err != nil {
		respondProjectError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects returns live projects, optionally filtered by client_id and status
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	input := services.ListProjectsInput{
		Pagination: utils.GetPaginationParams(c),
	}

	if raw := c.Query("client_id"); raw != "" {
		clientID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.InvalidFormat(c, "Invalid client_id")
			return
		}
		input.ClientID = &clientID
	}
	if raw := c.Query("status"); raw != "" {
		code, err := strconv.Atoi(raw)
		if err != nil {
			apierrors.InvalidFormat(c, "Invalid status")
			return
		}
		status := models.ProjectStatus(code)
		input.Status = &status
	}

	projects, total, err := h.projectService.ListProjects(input)
	if err != nil {
		respondProjectError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectListResponse(projects, input.Pagination, total))
}

// GetProject returns a single live project
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(projectID)
	if err != nil {
		respondProjectError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// UpdateProject changes title, status or monthly payment
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateProjectRequest struct {
		Title        *string          `json:"title" binding:"omitempty,max=100"`
		StatusID     *int             `json:"status_id"`
		MonthPayment *decimal.Decimal `json:"month_payment"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateProjectInput{
		Title:        req.Title,
		MonthPayment: req.MonthPayment,
		Actor:        middleware.CurrentActor(c),
	}
	if req.StatusID != nil {
		status := models.ProjectStatus(*req.StatusID)
		input.Status = &status
	}

	project, err := h.projectService.UpdateProject(projectID, input)
	if err != nil {
		respondProjectError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject soft-deletes a project
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(projectID, middleware.CurrentActor(c)); err != nil {
		respondProjectError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

func respondProjectError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidModel):
		respondInvalidModel(c, err)
	case errors.Is(err, services.ErrInvalidProjectTitle),
		errors.Is(err, services.ErrInvalidProjectStatus),
		errors.Is(err, services.ErrNegativePayment):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrClientNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		log.Error("project request failed", zap.Error(err))
		apierrors.InternalError(c, "Internal server error")
	}
}
