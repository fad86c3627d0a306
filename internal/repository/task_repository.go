package repository

import (
	"errors"

	"github.com/yukikurage/project-tracker/internal/database"
	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task together with its audit entity
func (r *GormTaskRepository) Create(task *models.Task, actor models.Actor) error {
	return createWithEntity(r.db, actor, func(tx *gorm.DB, entity *models.Entity) error {
		task.AuditEntityID = entity.ID
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		task.Entity = entity
		return nil
	})
}

// FindByID finds a live task with its push history in date order
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Scopes(liveEntities).
		Preload("Entity").
		Preload("Status").
		Preload("Pushes", orderByPushDate).
		Preload("Pushes.PushBy.User").
		Preload("Pushes.PushTo.User").
		First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

var orderByPushDate = database.OrderBy("PushDate")

// ListByProject lists live tasks of a project, newest first
func (r *GormTaskRepository) ListByProject(projectID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).
		Scopes(liveEntities).
		Where(map[string]interface{}{"ProjectID": projectID}).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Scopes(database.OrderByDesc("TaskID"), database.Paginate(params)).
		Preload("Status").
		Preload("Pushes", orderByPushDate).
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update saves a task and records the update on its audit entity
func (r *GormTaskRepository) Update(task *models.Task, actor models.Actor) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(task).Error; err != nil {
			return err
		}
		return touchEntity(tx, task.AuditEntityID, actor)
	})
}

// SoftDelete marks a live task deleted
func (r *GormTaskRepository) SoftDelete(id uint64, actor models.Actor) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Scopes(liveEntities).First(&task, id).Error; err != nil {
			return err
		}
		return softDeleteEntity(tx, task.AuditEntityID, actor)
	})
}

// AddPush appends a push; pushes are never updated or removed.
func (r *GormTaskRepository) AddPush(push *models.TaskPush) error {
	if err := r.db.Omit(clause.Associations).Create(push).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePush
		}
		return err
	}
	return nil
}
