package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/project-tracker/internal/database"
	"github.com/yukikurage/project-tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating the base user fails inside a registration transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateSpecialization is returned when creating the client or employee row fails.
	ErrCreateSpecialization = errors.New("user repository: create client or employee failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateClient creates the base user and the client atomically.
func (r *GormUserRepository) CreateClient(client *models.Client) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		userID, err := createBaseUser(tx, client.User)
		if err != nil {
			return err
		}
		client.BaseUserID = userID

		if err := tx.Omit(clause.Associations).Create(client).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateSpecialization, err)
		}
		return nil
	})
}

// CreateEmployee creates the base user and the employee atomically.
func (r *GormUserRepository) CreateEmployee(employee *models.Employee) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		userID, err := createBaseUser(tx, employee.User)
		if err != nil {
			return err
		}
		employee.BaseUserID = userID

		if err := tx.Omit(clause.Associations).Create(employee).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateSpecialization, err)
		}
		return nil
	})
}

// createBaseUser stores the user and, when present, its authorization first.
func createBaseUser(tx *gorm.DB, user *models.User) (uint64, error) {
	if user == nil {
		return 0, fmt.Errorf("%w: base user is missing", ErrCreateUser)
	}
	if auth := user.Authorization; auth != nil {
		if err := createAuthorization(tx, auth); err != nil {
			return 0, err
		}
		user.LoginID = &auth.Login
	}
	if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCreateUser, err)
	}
	return user.ID, nil
}

func createAuthorization(tx *gorm.DB, auth *models.Authorization) error {
	if err := tx.Create(auth).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrLoginTaken
		}
		return err
	}
	return nil
}

// FindUserByID finds a user by ID
func (r *GormUserRepository) FindUserByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Contacts.Type").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindClientByID finds a client by ID
func (r *GormUserRepository) FindClientByID(id uint64) (*models.Client, error) {
	var client models.Client
	if err := r.db.Preload("User").First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindEmployeeByID finds an employee by ID
func (r *GormUserRepository) FindEmployeeByID(id uint64) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Preload("User").First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindEmployeeByUserID finds the employee row of a user
func (r *GormUserRepository) FindEmployeeByUserID(userID uint64) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Preload("User").
		Where(map[string]interface{}{"UserID": userID}).
		First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// BaseUser looks up the base user row referenced by a client or employee
func (r *GormUserRepository) BaseUser(userID uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByLogin finds a user by login
func (r *GormUserRepository) FindByLogin(login string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Authorization").
		Where(map[string]interface{}{"LoginID": login}).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AttachAuthorization creates the credential and links it to an existing user atomically.
func (r *GormUserRepository) AttachAuthorization(userID uint64, auth *models.Authorization) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := createAuthorization(tx, auth); err != nil {
			return err
		}

		result := tx.Model(&models.User{ID: userID}).Update("LoginID", auth.Login)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AddContact stores a contact; a second contact of the same type is rejected.
func (r *GormUserRepository) AddContact(contact *models.ContactInfo) error {
	if err := r.db.Omit(clause.Associations).Create(contact).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateContact
		}
		return err
	}
	return nil
}

// ListContacts lists all contacts of a user ordered by type
func (r *GormUserRepository) ListContacts(userID uint64) ([]models.ContactInfo, error) {
	var contacts []models.ContactInfo
	if err := r.db.Preload("Type").
		Where(map[string]interface{}{"UserID": userID}).
		Scopes(database.OrderBy("ContactInfoTypeID")).
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}
