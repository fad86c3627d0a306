package models

import (
	"errors"
	"fmt"
)

var ErrNonPositiveDuration = errors.New("job duration must be positive")

// Job is time logged against a task.
type Job struct {
	ID              uint64 `gorm:"column:JobID;primaryKey" json:"id"`
	AuditEntityID   uint64 `gorm:"column:EntityID;not null;uniqueIndex" json:"entity_id"`
	TaskID          uint64 `gorm:"column:TaskID;not null;index" json:"task_id"`
	Description     string `gorm:"column:Description;type:varchar(200)" json:"description" validate:"max=200"`
	DurationMinutes int    `gorm:"column:DurationMinutes;not null" json:"duration_minutes" validate:"gt=0"`

	// Relations. The task link is declared on Task.Jobs.
	Entity *Entity `gorm:"foreignKey:AuditEntityID" json:"entity,omitempty"`
}

func (Job) TableName() string { return "Jobs" }

func NewJob(description string, durationMinutes int) (*Job, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d minutes", ErrNonPositiveDuration, durationMinutes)
	}
	return &Job{
		Description:     description,
		DurationMinutes: durationMinutes,
	}, nil
}
