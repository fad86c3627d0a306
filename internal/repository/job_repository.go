package repository

import (
	"github.com/yukikurage/project-tracker/internal/database"
	"github.com/yukikurage/project-tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormJobRepository is a GORM implementation of JobRepository
type GormJobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &GormJobRepository{db: db}
}

// Create creates a new job together with its audit entity
func (r *GormJobRepository) Create(job *models.Job, actor models.Actor) error {
	return createWithEntity(r.db, actor, func(tx *gorm.DB, entity *models.Entity) error {
		job.AuditEntityID = entity.ID
		if err := tx.Omit(clause.Associations).Create(job).Error; err != nil {
			return err
		}
		job.Entity = entity
		return nil
	})
}

// ListByTask lists live jobs of a task in creation order
func (r *GormJobRepository) ListByTask(taskID uint64) ([]models.Job, error) {
	var jobs []models.Job
	if err := r.db.Scopes(liveEntities).
		Where(map[string]interface{}{"TaskID": taskID}).
		Scopes(database.OrderBy("JobID")).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// TotalMinutes sums the logged minutes of live jobs of a task
func (r *GormJobRepository) TotalMinutes(taskID uint64) (int64, error) {
	var total int64
	err := r.db.Model(&models.Job{}).
		Scopes(liveEntities).
		Where(map[string]interface{}{"TaskID": taskID}).
		Select("COALESCE(SUM(?), 0)", clause.Column{Name: "DurationMinutes"}).
		Scan(&total).Error
	return total, err
}
