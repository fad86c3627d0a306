package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/project-tracker/internal/constants"
	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrLoginTaken           = errors.New("login already exists")
	ErrInvalidCredentials   = errors.New("invalid login or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrPasswordWithoutLogin = errors.New("password given without a login")
	ErrLoginAlreadySet      = errors.New("user already has a login")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrInvalidContactType   = errors.New("unknown contact info type")
	ErrDuplicateContact     = errors.New("user already has a contact of this type")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// AccountService handles registration, authentication and contact details.
type AccountService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(userRepo repository.UserRepository, log *zap.Logger) *AccountService {
	return &AccountService{
		userRepo: userRepo,
		log:      log,
	}
}

// CredentialsInput is an optional login for a new user. Both fields empty means no login.
type CredentialsInput struct {
	Login    string
	Password string
}

// RegisterClientInput represents the information needed to create a client.
type RegisterClientInput struct {
	FirstName   string
	LastName    string
	Credentials CredentialsInput
}

// RegisterEmployeeInput represents the information needed to create an employee.
type RegisterEmployeeInput struct {
	FirstName   string
	LastName    string
	TimeZone    int
	BirthDate   *time.Time
	Credentials CredentialsInput
}

// RegisterClient creates a client and its base user.
func (s *AccountService) RegisterClient(input RegisterClientInput) (*models.Client, error) {
	client := models.NewClient(strings.TrimSpace(input.FirstName), strings.TrimSpace(input.LastName))
	if err := models.Validate(client); err != nil {
		return nil, err
	}

	auth, err := s.prepareAuthorization(input.Credentials)
	if err != nil {
		return nil, err
	}
	client.User.Authorization = auth

	if err := s.userRepo.CreateClient(client); err != nil {
		return nil, s.registrationError(err)
	}

	s.log.Info("client registered",
		zap.Uint64("client_id", client.ID),
		zap.Uint64("user_id", client.BaseUserID),
	)
	return client, nil
}

// RegisterEmployee creates an employee and its base user.
func (s *AccountService) RegisterEmployee(input RegisterEmployeeInput) (*models.Employee, error) {
	employee := models.NewEmployee(
		strings.TrimSpace(input.FirstName),
		strings.TrimSpace(input.LastName),
		input.TimeZone,
		input.BirthDate,
	)
	if err := models.Validate(employee); err != nil {
		return nil, err
	}

	auth, err := s.prepareAuthorization(input.Credentials)
	if err != nil {
		return nil, err
	}
	employee.User.Authorization = auth

	if err := s.userRepo.CreateEmployee(employee); err != nil {
		return nil, s.registrationError(err)
	}

	s.log.Info("employee registered",
		zap.Uint64("employee_id", employee.ID),
		zap.Uint64("user_id", employee.BaseUserID),
	)
	return employee, nil
}

// prepareAuthorization checks the credentials and hashes the password.
// A nil result means the user is created without a login.
func (s *AccountService) prepareAuthorization(input CredentialsInput) (*models.Authorization, error) {
	login := strings.TrimSpace(input.Login)
	if login == "" {
		if input.Password != "" {
			return nil, ErrPasswordWithoutLogin
		}
		return nil, nil
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByLogin(login); err == nil {
		return nil, ErrLoginTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check login: %w", err)
	}

	auth, err := models.NewAuthorization(login, input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}
	if err := models.Validate(auth); err != nil {
		return nil, err
	}
	return auth, nil
}

func (s *AccountService) registrationError(err error) error {
	switch {
	case errors.Is(err, repository.ErrLoginTaken):
		return ErrLoginTaken
	case errors.Is(err, repository.ErrCreateUser),
		errors.Is(err, repository.ErrCreateSpecialization):
		s.log.Error("registration failed", zap.Error(err))
		return ErrFailedToCreateUser
	default:
		return fmt.Errorf("failed to complete registration: %w", err)
	}
}

// SetLogin gives an existing user without a login a credential.
func (s *AccountService) SetLogin(userID uint64, input CredentialsInput) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user.LoginID != nil {
		return nil, ErrLoginAlreadySet
	}
	if strings.TrimSpace(input.Login) == "" {
		return nil, ErrInvalidCredentials
	}

	auth, err := s.prepareAuthorization(input)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.AttachAuthorization(userID, auth); err != nil {
		if errors.Is(err, repository.ErrLoginTaken) {
			return nil, ErrLoginTaken
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to attach login: %w", err)
	}

	user.LoginID = &auth.Login
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Login    string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AccountService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByLogin(input.Login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.Authorization == nil || !user.Authorization.CheckPassword(input.Password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user with contacts by ID.
func (s *AccountService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// EmployeeForUser resolves the employee specialization of a user.
func (s *AccountService) EmployeeForUser(userID uint64) (*models.Employee, error) {
	employee, err := s.userRepo.FindEmployeeByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return employee, nil
}

// AddContactInput represents a new contact for a user.
type AddContactInput struct {
	UserID  uint64
	Type    models.ContactInfoType
	Contact string
}

// AddContact stores one contact per user and type.
func (s *AccountService) AddContact(input AddContactInput) (*models.ContactInfo, error) {
	if !input.Type.Valid() {
		return nil, ErrInvalidContactType
	}

	contact := models.NewContactInfo(input.Type, strings.TrimSpace(input.Contact))
	contact.UserID = input.UserID
	if err := models.Validate(contact); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.ListContacts(input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	for _, c := range existing {
		if c.TypeID == input.Type {
			return nil, ErrDuplicateContact
		}
	}

	if _, err := s.userRepo.BaseUser(input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.AddContact(contact); err != nil {
		if errors.Is(err, repository.ErrDuplicateContact) {
			return nil, ErrDuplicateContact
		}
		return nil, fmt.Errorf("failed to add contact: %w", err)
	}

	return contact, nil
}
