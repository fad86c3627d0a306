package repository

import (
	"github.com/yukikurage/project-tracker/internal/database"
	"github.com/yukikurage/project-tracker/internal/models"
	"gorm.io/gorm"
)

// GormLookupRepository is a GORM implementation of LookupRepository
type GormLookupRepository struct {
	db *gorm.DB
}

// NewLookupRepository creates a new LookupRepository
func NewLookupRepository(db *gorm.DB) LookupRepository {
	return &GormLookupRepository{db: db}
}

func (r *GormLookupRepository) ListContactInfoTypes() ([]models.ContactInfoTypeRecord, error) {
	var rows []models.ContactInfoTypeRecord
	err := r.db.Scopes(database.OrderBy("ContactInfoTypeID")).Find(&rows).Error
	return rows, err
}

func (r *GormLookupRepository) ListProjectStatuses() ([]models.ProjectStatusRecord, error) {
	var rows []models.ProjectStatusRecord
	err := r.db.Scopes(database.OrderBy("ProjectStatusID")).Find(&rows).Error
	return rows, err
}

func (r *GormLookupRepository) ListTaskStatuses() ([]models.TaskStatusRecord, error) {
	var rows []models.TaskStatusRecord
	err := r.db.Scopes(database.OrderBy("TaskStatusID")).Find(&rows).Error
	return rows, err
}
