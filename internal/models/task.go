package models

import (
	"errors"
	"time"
)

var (
	// ErrNoTaskOwner is returned when ownership is derived for a task that was never pushed.
	ErrNoTaskOwner = errors.New("task has no pushes and therefore no owner")
	// ErrOwnerNotLoaded is returned when the latest push was loaded without its target employee.
	ErrOwnerNotLoaded = errors.New("task owner employee is not loaded")
)

type Task struct {
	ID            uint64     `gorm:"column:TaskID;primaryKey" json:"id"`
	AuditEntityID uint64     `gorm:"column:EntityID;not null;uniqueIndex" json:"entity_id"`
	ProjectID     uint64     `gorm:"column:ProjectID;not null;index" json:"project_id"`
	Title         string     `gorm:"column:Title;type:varchar(100);not null" json:"title" validate:"required,max=100"`
	StatusID      TaskStatus `gorm:"column:TaskStatusID;not null;index" json:"status_id"`

	// Relations. The project link is declared on Project.Tasks.
	Entity *Entity           `gorm:"foreignKey:AuditEntityID" json:"entity,omitempty"`
	Status *TaskStatusRecord `gorm:"foreignKey:StatusID" json:"-"`
	Pushes []TaskPush        `gorm:"foreignKey:TaskID" json:"pushes,omitempty"`
	Jobs   []Job             `gorm:"foreignKey:TaskID" json:"-"`
}

func (Task) TableName() string { return "Tasks" }

func NewTask(title string) *Task {
	return &Task{
		Title:    title,
		StatusID: TaskNew,
	}
}

func (t Task) StatusName() string {
	if t.Status != nil {
		return t.Status.StatusName
	}
	return t.StatusID.String()
}

// AddPush appends p to the task's push history.
func (t *Task) AddPush(p *TaskPush) {
	p.TaskID = t.ID
	t.Pushes = append(t.Pushes, *p)
}

// LatestPush returns the push with the greatest date. On equal dates the
// later element of Pushes wins.
func (t Task) LatestPush() (*TaskPush, error) {
	if len(t.Pushes) == 0 {
		return nil, ErrNoTaskOwner
	}
	latest := 0
	for i := 1; i < len(t.Pushes); i++ {
		if !t.Pushes[i].Date.Before(t.Pushes[latest].Date) {
			latest = i
		}
	}
	return &t.Pushes[latest], nil
}

// OwnerID is the employee the task was most recently pushed to.
func (t Task) OwnerID() (uint64, error) {
	p, err := t.LatestPush()
	if err != nil {
		return 0, err
	}
	return p.PushToEmployeeID, nil
}

func (t Task) Owner() (*Employee, error) {
	p, err := t.LatestPush()
	if err != nil {
		return nil, err
	}
	if p.PushTo == nil {
		return nil, ErrOwnerNotLoaded
	}
	return p.PushTo, nil
}

// TaskPush records a reassignment of a task. Date is captured at construction.
type TaskPush struct {
	TaskID           uint64    `gorm:"column:TaskID;primaryKey;autoIncrement:false" json:"task_id"`
	Date             time.Time `gorm:"column:PushDate;primaryKey" json:"date"`
	PushByEmployeeID *uint64   `gorm:"column:PushByEmployeeID" json:"push_by_employee_id"`
	PushToEmployeeID uint64    `gorm:"column:PushToEmployeeID;not null;index" json:"push_to_employee_id" validate:"required"`
	Comment          string    `gorm:"column:PushComment;type:varchar(2000)" json:"comment" validate:"max=2000"`

	// Relations
	PushBy *Employee `gorm:"foreignKey:PushByEmployeeID" json:"push_by,omitempty"`
	PushTo *Employee `gorm:"foreignKey:PushToEmployeeID" json:"push_to,omitempty"`
}

func (TaskPush) TableName() string { return "TaskPushes" }

// NewTaskPush records a push from by (may be nil) to to, dated now.
func NewTaskPush(comment string, by, to *Employee) *TaskPush {
	p := &TaskPush{
		Date:    time.Now(),
		Comment: comment,
		PushBy:  by,
		PushTo:  to,
	}
	if by != nil {
		id := by.ID
		p.PushByEmployeeID = &id
	}
	if to != nil {
		p.PushToEmployeeID = to.ID
	}
	return p
}
