package models

import (
	"errors"
	"fmt"
	"time"
)

var ErrBaseUserNotLoaded = errors.New("base user is not loaded")

type User struct {
	ID        uint64  `gorm:"column:UserID;primaryKey" json:"id"`
	FirstName string  `gorm:"column:FirstName;type:varchar(20);not null" json:"first_name" validate:"required,max=20"`
	LastName  string  `gorm:"column:LastName;type:varchar(20);not null" json:"last_name" validate:"required,max=20"`
	LoginID   *string `gorm:"column:LoginID;type:varchar(20);uniqueIndex" json:"login,omitempty"`

	// Relations
	Authorization *Authorization `gorm:"foreignKey:LoginID;references:Login" json:"-"`
	Contacts      []ContactInfo  `gorm:"foreignKey:UserID" json:"contacts,omitempty"`
}

func (User) TableName() string { return "Users" }

func NewUser(firstName, lastName string) *User {
	return &User{
		FirstName: firstName,
		LastName:  lastName,
	}
}

// FullName is derived from the stored names and never persisted.
func (u User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

func (u User) String() string {
	return fmt.Sprintf("<User(%q, %q)>", u.FirstName, u.LastName)
}

// Client is a user who owns projects.
type Client struct {
	ID         uint64 `gorm:"column:ClientID;primaryKey" json:"id"`
	BaseUserID uint64 `gorm:"column:UserID;not null;uniqueIndex" json:"user_id"`

	// Relations
	User *User `gorm:"foreignKey:BaseUserID" json:"user,omitempty"`
}

func (Client) TableName() string { return "Clients" }

func NewClient(firstName, lastName string) *Client {
	return &Client{User: NewUser(firstName, lastName)}
}

// BaseUser returns the loaded base user row.
func (c *Client) BaseUser() (*User, error) {
	if c.User == nil {
		return nil, ErrBaseUserNotLoaded
	}
	return c.User, nil
}

// Employee is a user who works on tasks.
type Employee struct {
	ID         uint64     `gorm:"column:EmployeeID;primaryKey" json:"id"`
	BaseUserID uint64     `gorm:"column:UserID;not null;uniqueIndex" json:"user_id"`
	TimeZone   int        `gorm:"column:TimeZone;not null;default:0" json:"time_zone" validate:"min=-12,max=14"`
	BirthDate  *time.Time `gorm:"column:BirthDate;type:date" json:"birth_date,omitempty"`

	// Relations
	User *User `gorm:"foreignKey:BaseUserID" json:"user,omitempty"`
}

func (Employee) TableName() string { return "Employees" }

func NewEmployee(firstName, lastName string, timeZone int, birthDate *time.Time) *Employee {
	return &Employee{
		User:      NewUser(firstName, lastName),
		TimeZone:  timeZone,
		BirthDate: birthDate,
	}
}

// BaseUser returns the loaded base user row.
func (e *Employee) BaseUser() (*User, error) {
	if e.User == nil {
		return nil, ErrBaseUserNotLoaded
	}
	return e.User, nil
}
