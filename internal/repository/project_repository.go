package repository

import (
	"github.com/yukikurage/project-tracker/internal/database"
	"github.com/yukikurage/project-tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project together with its audit entity
func (r *GormProjectRepository) Create(project *models.Project, actor models.Actor) error {
	return createWithEntity(r.db, actor, func(tx *gorm.DB, entity *models.Entity) error {
		project.AuditEntityID = entity.ID
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		project.Entity = entity
		return nil
	})
}

// FindByID finds a live project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.Scopes(liveEntities).
		Preload("Entity").
		Preload("Status").
		Preload("Client.User").
		First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves live projects with filtering and pagination
func (r *GormProjectRepository) List(filter ProjectFilter) ([]models.Project, int64, error) {
	var projects []models.Project

	query := r.db.Model(&models.Project{}).Scopes(liveEntities)
	if filter.ClientID != nil {
		query = query.Where(map[string]interface{}{"ClientID": *filter.ClientID})
	}
	if filter.Status != nil {
		query = query.Where(map[string]interface{}{"ProjectStatusID": *filter.Status})
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Scopes(
			database.OrderByDesc("ProjectStart"),
			database.OrderBy("ProjectID"),
			database.Paginate(filter.Pagination),
		).
		Preload("Status").
		Preload("Client.User").
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update saves a project and records the update on its audit entity
func (r *GormProjectRepository) Update(project *models.Project, actor models.Actor) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(project).Error; err != nil {
			return err
		}
		return touchEntity(tx, project.AuditEntityID, actor)
	})
}

// SoftDelete marks a live project deleted
func (r *GormProjectRepository) SoftDelete(id uint64, actor models.Actor) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Scopes(liveEntities).First(&project, id).Error; err != nil {
			return err
		}
		return softDeleteEntity(tx, project.AuditEntityID, actor)
	})
}
