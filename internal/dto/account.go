package dto

import (
	"time"

	"github.com/yukikurage/project-tracker/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64       `json:"id"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	FullName  string       `json:"full_name"`
	Login     *string      `json:"login,omitempty"`
	Contacts  []ContactDTO `json:"contacts,omitempty"`
}

// ContactDTO represents one contact channel of a user
type ContactDTO struct {
	TypeID   models.ContactInfoType `json:"type_id"`
	TypeName string                 `json:"type_name"`
	Contact  string                 `json:"contact"`
}

// ClientDTO represents a client in API responses
type ClientDTO struct {
	ID   uint64   `json:"id"`
	User *UserDTO `json:"user,omitempty"`
}

// EmployeeDTO represents an employee in API responses
type EmployeeDTO struct {
	ID        uint64     `json:"id"`
	TimeZone  int        `json:"time_zone"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	User      *UserDTO   `json:"user,omitempty"`
}

// LookupDTO is one row of a lookup table
type LookupDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// LookupsResponse lists every lookup table
type LookupsResponse struct {
	ContactInfoTypes []LookupDTO `json:"contact_info_types"`
	ProjectStatuses  []LookupDTO `json:"project_statuses"`
	TaskStatuses     []LookupDTO `json:"task_statuses"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName(),
		Login:     user.LoginID,
	}

	if len(user.Contacts) > 0 {
		dto.Contacts = make([]ContactDTO, len(user.Contacts))
		for i, contact := range user.Contacts {
			dto.Contacts[i] = ToContactDTO(contact)
		}
	}

	return dto
}

// ToContactDTO converts a ContactInfo model to ContactDTO
func ToContactDTO(contact models.ContactInfo) ContactDTO {
	return ContactDTO{
		TypeID:   contact.TypeID,
		TypeName: contact.TypeName(),
		Contact:  contact.Contact,
	}
}

// ToClientDTO converts a Client model to ClientDTO
func ToClientDTO(client models.Client) ClientDTO {
	dto := ClientDTO{ID: client.ID}
	if client.User != nil {
		user := ToUserDTO(*client.User)
		dto.User = &user
	}
	return dto
}

// ToEmployeeDTO converts an Employee model to EmployeeDTO
func ToEmployeeDTO(employee models.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:        employee.ID,
		TimeZone:  employee.TimeZone,
		BirthDate: employee.BirthDate,
	}
	if employee.User != nil {
		user := ToUserDTO(*employee.User)
		dto.User = &user
	}
	return dto
}

// ToLookupsResponse converts the lookup tables to a single response
func ToLookupsResponse(
	contactTypes []models.ContactInfoTypeRecord,
	projectStatuses []models.ProjectStatusRecord,
	taskStatuses []models.TaskStatusRecord,
) LookupsResponse {
	resp := LookupsResponse{
		ContactInfoTypes: make([]LookupDTO, len(contactTypes)),
		ProjectStatuses:  make([]LookupDTO, len(projectStatuses)),
		TaskStatuses:     make([]LookupDTO, len(taskStatuses)),
	}
	for i, row := range contactTypes {
		resp.ContactInfoTypes[i] = LookupDTO{ID: int(row.ID), Name: row.TypeName}
	}
	for i, row := range projectStatuses {
		resp.ProjectStatuses[i] = LookupDTO{ID: int(row.ID), Name: row.StatusName}
	}
	for i, row := range taskStatuses {
		resp.TaskStatuses[i] = LookupDTO{ID: int(row.ID), Name: row.StatusName}
	}
	return resp
}
