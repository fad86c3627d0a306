package database

import (
	"fmt"

	"github.com/yukikurage/project-tracker/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models lists every mapped table in foreign key order.
func Models() []interface{} {
	return []interface{}{
		&models.ContactInfoTypeRecord{},
		&models.ProjectStatusRecord{},
		&models.TaskStatusRecord{},
		&models.Authorization{},
		&models.User{},
		&models.Entity{},
		&models.Client{},
		&models.Employee{},
		&models.ContactInfo{},
		&models.Project{},
		&models.Task{},
		&models.TaskPush{},
		&models.Job{},
	}
}

// Migrate creates the schema and seeds the lookup tables.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := SeedLookups(db); err != nil {
		return err
	}
	log.Info("database migrations completed")
	return nil
}

// SeedLookups inserts the fixed status and contact type rows. Existing rows are kept.
func SeedLookups(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		ignore := clause.OnConflict{DoNothing: true}

		contactTypes := models.ContactInfoTypes()
		if err := tx.Clauses(ignore).Create(&contactTypes).Error; err != nil {
			return fmt.Errorf("failed to seed contact info types: %w", err)
		}

		projectStatuses := models.ProjectStatuses()
		if err := tx.Clauses(ignore).Create(&projectStatuses).Error; err != nil {
			return fmt.Errorf("failed to seed project statuses: %w", err)
		}

		taskStatuses := models.TaskStatuses()
		if err := tx.Clauses(ignore).Create(&taskStatuses).Error; err != nil {
			return fmt.Errorf("failed to seed task statuses: %w", err)
		}

		return nil
	})
}
