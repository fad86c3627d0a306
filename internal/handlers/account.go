package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker/internal/dto"
	apierrors "github.com/yukikurage/project-tracker/internal/errors"
	"github.com/yukikurage/project-tracker/internal/middleware"
	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/repository"
	"github.com/yukikurage/project-tracker/internal/services"
	"go.uber.org/zap"
)

// AccountHandler serves registration, user and lookup endpoints.
type AccountHandler struct {
	accountService *services.AccountService
	lookupRepo     repository.LookupRepository
	log            *zap.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService *services.AccountService, lookupRepo repository.LookupRepository, log *zap.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		lookupRepo:     lookupRepo,
		log:            log,
	}
}

type credentialsRequest struct {
	Login    string `json:"login" binding:"omitempty,max=20"`
	Password string `json:"password"`
}

func (r credentialsRequest) input() services.CredentialsInput {
	return services.CredentialsInput{Login: r.Login, Password: r.Password}
}

// RegisterClient creates a client, optionally with a login.
func (h *AccountHandler) RegisterClient(c *gin.Context) {
	type RegisterClientRequest struct {
		FirstName string `json:"first_name" binding:"required,max=20"`
		LastName  string `json:"last_name" binding:"required,max=20"`
		credentialsRequest
	}

	var req RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.accountService.RegisterClient(services.RegisterClientInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Credentials: req.input(),
	})
	if err != nil {
		respondAccountError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToClientDTO(*client))
}

// RegisterEmployee creates an employee, optionally with a login.
func (h *AccountHandler) RegisterEmployee(c *gin.Context) {
	type RegisterEmployeeRequest struct {
		FirstName string `json:"first_name" binding:"required,max=20"`
		LastName  string `json:"last_name" binding:"required,max=20"`
		TimeZone  int    `json:"time_zone" binding:"min=-12,max=14"`
		BirthDate string `json:"birth_date"`
		credentialsRequest
	}

	var req RegisterEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var birthDate *time.Time
	if req.BirthDate != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, req.BirthDate, time.Local)
		if err != nil {
			apierrors.InvalidFormat(c, "birth_date must be YYYY-MM-DD")
			return
		}
		birthDate = &parsed
	}

	employee, err := h.accountService.RegisterEmployee(services.RegisterEmployeeInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		TimeZone:    req.TimeZone,
		BirthDate:   birthDate,
		Credentials: req.input(),
	})
	if err != nil {
		respondAccountError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeDTO(*employee))
}

// GetUser returns a user with contacts.
func (h *AccountHandler) GetUser(c *gin.Context) {
	userID, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.accountService.GetUser(userID)
	if err != nil {
		respondAccountError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// AddContact stores a contact for the user in the path.
func (h *AccountHandler) AddContact(c *gin.Context) {
	userID, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	type AddContactRequest struct {
		TypeID  int    `json:"type_id" binding:"required"`
		Contact string `json:"contact" binding:"required,max=40"`
	}

	var req AddContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	contact, err := h.accountService.AddContact(services.AddContactInput{
		UserID:  userID,
		Type:    models.ContactInfoType(req.TypeID),
		Contact: req.Contact,
	})
	if err != nil {
		respondAccountError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToContactDTO(*contact))
}

// SetLogin gives the user in the path a login.
func (h *AccountHandler) SetLogin(c *gin.Context) {
	userID, ok := middleware.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Login == "" {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.accountService.SetLogin(userID, req.input())
	if err != nil {
		respondAccountError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Lookups lists contact types and statuses.
func (h *AccountHandler) Lookups(c *gin.Context) {
	contactTypes, err := h.lookupRepo.ListContactInfoTypes()
	if err != nil {
		h.log.Error("failed to list contact info types", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch lookups")
		return
	}
	projectStatuses, err := h.lookupRepo.ListProjectStatuses()
	if err != nil {
		h.log.Error("failed to list project statuses", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch lookups")
		return
	}
	taskStatuses, err := h.lookupRepo.ListTaskStatuses()
	if err != nil {
		h.log.Error("failed to list task statuses", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch lookups")
		return
	}

	c.JSON(http.StatusOK, dto.ToLookupsResponse(contactTypes, projectStatuses, taskStatuses))
}
