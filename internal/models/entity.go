package models

import (
	"errors"
	"time"
)

var (
	ErrDeletedBeforeCreated = errors.New("entity cannot be deleted before it was created")
	ErrUpdatedBeforeCreated = errors.New("entity cannot be updated before it was created")
	ErrAlreadyDeleted       = errors.New("entity is already deleted")
)

// Actor identifies the user responsible for a change. The zero value is NoActor.
type Actor struct {
	userID uint64
	set    bool
}

// NoActor records a change without a responsible user.
var NoActor = Actor{}

// ActorRef refers to a user by identifier.
func ActorRef(userID uint64) Actor {
	return Actor{userID: userID, set: true}
}

// ActorOf refers to a user record. A nil user yields NoActor.
func ActorOf(user *User) Actor {
	if user == nil {
		return NoActor
	}
	return ActorRef(user.ID)
}

// UserID returns the referenced user id, if any.
func (a Actor) UserID() (uint64, bool) {
	return a.userID, a.set
}

func (a Actor) ref() *uint64 {
	if !a.set {
		return nil
	}
	id := a.userID
	return &id
}

// Entity is the audit record shared by projects, tasks and jobs.
type Entity struct {
	ID              uint64     `gorm:"column:EntityID;primaryKey" json:"id"`
	Created         time.Time  `gorm:"column:Created;type:date;not null" json:"created"`
	CreatedByUserID *uint64    `gorm:"column:CreatedByUserID" json:"created_by_user_id"`
	Updated         time.Time  `gorm:"column:Updated;type:date;not null" json:"updated"`
	UpdatedByUserID *uint64    `gorm:"column:UpdatedByUserID" json:"updated_by_user_id"`
	Deleted         *time.Time `gorm:"column:Deleted;type:date" json:"deleted,omitempty"`

	// Relations
	CreatedBy *User `gorm:"foreignKey:CreatedByUserID;constraint:OnDelete:SET NULL" json:"-"`
	UpdatedBy *User `gorm:"foreignKey:UpdatedByUserID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Entity) TableName() string { return "Entities" }

// NewEntity stamps creation and update with today's date and the given actor.
func NewEntity(actor Actor) *Entity {
	today := Today()
	return &Entity{
		Created:         today,
		CreatedByUserID: actor.ref(),
		Updated:         today,
		UpdatedByUserID: actor.ref(),
	}
}

// Touch records an update by actor.
func (e *Entity) Touch(actor Actor) {
	today := Today()
	if dateOf(today).Before(dateOf(e.Created)) {
		today = e.Created
	}
	e.Updated = today
	e.UpdatedByUserID = actor.ref()
}

// MarkDeleted soft-deletes the entity as of at.
func (e *Entity) MarkDeleted(at time.Time, actor Actor) error {
	if e.IsDeleted() {
		return ErrAlreadyDeleted
	}
	day := truncateToDay(at)
	if dateOf(day).Before(dateOf(e.Created)) {
		return ErrDeletedBeforeCreated
	}
	e.Deleted = &day
	e.Touch(actor)
	return nil
}

func (e *Entity) IsDeleted() bool {
	return e.Deleted != nil
}

// Validate checks the ordering of the audit dates.
func (e *Entity) Validate() error {
	created := dateOf(e.Created)
	if dateOf(e.Updated).Before(created) {
		return ErrUpdatedBeforeCreated
	}
	if e.Deleted != nil && dateOf(*e.Deleted).Before(created) {
		return ErrDeletedBeforeCreated
	}
	return nil
}

// Today returns the current local date at midnight.
func Today() time.Time {
	return truncateToDay(time.Now())
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dateOf keeps the calendar date of t and drops its location, so values
// read back from date columns compare equal to local dates.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
