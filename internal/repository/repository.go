package repository

import (
	"errors"
	"time"

	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrDuplicateContact is returned when a user already has a contact of the same type.
	ErrDuplicateContact = errors.New("user already has a contact of this type")
	// ErrDuplicatePush is returned when a task already has a push at the same instant.
	ErrDuplicatePush = errors.New("task already has a push at this time")
	// ErrLoginTaken is returned when the login is already used by another authorization.
	ErrLoginTaken = errors.New("login already exists")
)

// UserRepository defines the interface for user, client and employee data access
type UserRepository interface {
	// CreateClient creates the base user, its optional authorization and the client row in one transaction
	CreateClient(client *models.Client) error

	// CreateEmployee creates the base user, its optional authorization and the employee row in one transaction
	CreateEmployee(employee *models.Employee) error

	// FindUserByID finds a user with contacts and contact types loaded
	FindUserByID(id uint64) (*models.User, error)

	// FindClientByID finds a client with its base user loaded
	FindClientByID(id uint64) (*models.Client, error)

	// FindEmployeeByID finds an employee with its base user loaded
	FindEmployeeByID(id uint64) (*models.Employee, error)

	// FindEmployeeByUserID finds the employee specialization of a user
	FindEmployeeByUserID(userID uint64) (*models.Employee, error)

	// BaseUser looks up the base user row of a client or employee
	BaseUser(userID uint64) (*models.User, error)

	// FindByLogin finds the user owning a login, with the authorization loaded
	FindByLogin(login string) (*models.User, error)

	// AttachAuthorization stores a credential and links it to an existing user
	AttachAuthorization(userID uint64, auth *models.Authorization) error

	// AddContact stores a contact for a user
	AddContact(contact *models.ContactInfo) error

	// ListContacts lists a user's contacts with types loaded
	ListContacts(userID uint64) ([]models.ContactInfo, error)
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	ClientID   *uint64
	Status     *models.ProjectStatus
	Pagination utils.PaginationParams
}

// ProjectRepository defines the interface for project data access.
// Soft-deleted projects are never returned.
type ProjectRepository interface {
	// Create stores the audit entity and the project in one transaction
	Create(project *models.Project, actor models.Actor) error

	// FindByID finds a live project with entity, status and client loaded
	FindByID(id uint64) (*models.Project, error)

	// List retrieves live projects with filtering and pagination
	List(filter ProjectFilter) ([]models.Project, int64, error)

	// Update saves the project and touches its audit entity
	Update(project *models.Project, actor models.Actor) error

	// SoftDelete marks the project's audit entity deleted
	SoftDelete(id uint64, actor models.Actor) error
}

// TaskRepository defines the interface for task data access.
// Soft-deleted tasks are never returned.
type TaskRepository interface {
	// Create stores the audit entity and the task in one transaction
	Create(task *models.Task, actor models.Actor) error

	// FindByID finds a live task with status, entity and pushes loaded
	FindByID(id uint64) (*models.Task, error)

	// ListByProject lists live tasks of a project
	ListByProject(projectID uint64, params utils.PaginationParams) ([]models.Task, int64, error)

	// Update saves the task and touches its audit entity
	Update(task *models.Task, actor models.Actor) error

	// SoftDelete marks the task's audit entity deleted
	SoftDelete(id uint64, actor models.Actor) error

	// AddPush appends a push to the task history
	AddPush(push *models.TaskPush) error
}

// JobRepository defines the interface for job data access
type JobRepository interface {
	// Create stores the audit entity and the job in one transaction
	Create(job *models.Job, actor models.Actor) error

	// ListByTask lists live jobs of a task
	ListByTask(taskID uint64) ([]models.Job, error)

	// TotalMinutes sums the duration of live jobs of a task
	TotalMinutes(taskID uint64) (int64, error)
}

// LookupRepository reads the fixed lookup tables
type LookupRepository interface {
	ListContactInfoTypes() ([]models.ContactInfoTypeRecord, error)
	ListProjectStatuses() ([]models.ProjectStatusRecord, error)
	ListTaskStatuses() ([]models.TaskStatusRecord, error)
}

// liveEntities restricts a query to rows whose audit entity is not deleted.
func liveEntities(db *gorm.DB) *gorm.DB {
	live := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Entity{}).
		Select("EntityID").
		Where(map[string]interface{}{"Deleted": nil})

	return db.Where("? IN (?)", clause.Column{Table: clause.CurrentTable, Name: "EntityID"}, live)
}

// createWithEntity stores a fresh audit entity for actor and hands its id to create.
func createWithEntity(db *gorm.DB, actor models.Actor, create func(tx *gorm.DB, entity *models.Entity) error) error {
	return db.Transaction(func(tx *gorm.DB) error {
		entity := models.NewEntity(actor)
		if err := tx.Create(entity).Error; err != nil {
			return err
		}
		return create(tx, entity)
	})
}

// touchEntity records an update by actor on the entity with the given id.
func touchEntity(tx *gorm.DB, entityID uint64, actor models.Actor) error {
	var entity models.Entity
	if err := tx.First(&entity, entityID).Error; err != nil {
		return err
	}
	entity.Touch(actor)
	return tx.Save(&entity).Error
}

// softDeleteEntity marks the entity with the given id deleted as of today.
func softDeleteEntity(tx *gorm.DB, entityID uint64, actor models.Actor) error {
	var entity models.Entity
	if err := tx.First(&entity, entityID).Error; err != nil {
		return err
	}
	if err := entity.MarkDeleted(time.Now(), actor); err != nil {
		return err
	}
	return tx.Save(&entity).Error
}
