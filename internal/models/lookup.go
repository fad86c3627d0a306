package models

import "fmt"

// ContactInfoType codes are stored verbatim. Code 2 is retired and stays unused.
type ContactInfoType int

const (
	ContactSkype          ContactInfoType = 1
	ContactPrimaryEmail   ContactInfoType = 3
	ContactSecondaryEmail ContactInfoType = 4
	ContactPhone          ContactInfoType = 5
)

var contactInfoTypeNames = map[ContactInfoType]string{
	ContactSkype:          "skype",
	ContactPrimaryEmail:   "primary_email",
	ContactSecondaryEmail: "secondary_email",
	ContactPhone:          "phone",
}

func (t ContactInfoType) String() string {
	if name, ok := contactInfoTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ContactInfoType(%d)", int(t))
}

func (t ContactInfoType) Valid() bool {
	_, ok := contactInfoTypeNames[t]
	return ok
}

type ContactInfoTypeRecord struct {
	ID       ContactInfoType `gorm:"column:ContactInfoTypeID;primaryKey;autoIncrement:false" json:"id"`
	TypeName string          `gorm:"column:ContactInfoTypeName;type:varchar(20);not null" json:"type_name"`
}

func (ContactInfoTypeRecord) TableName() string { return "ContactInfoTypes" }

// ContactInfoTypes lists the seed rows of the ContactInfoTypes table.
func ContactInfoTypes() []ContactInfoTypeRecord {
	codes := []ContactInfoType{ContactSkype, ContactPrimaryEmail, ContactSecondaryEmail, ContactPhone}
	rows := make([]ContactInfoTypeRecord, len(codes))
	for i, code := range codes {
		rows[i] = ContactInfoTypeRecord{ID: code, TypeName: code.String()}
	}
	return rows
}

type ProjectStatus int

const (
	ProjectActive    ProjectStatus = 1
	ProjectCompleted ProjectStatus = 2
	ProjectClosed    ProjectStatus = 3
)

var projectStatusNames = map[ProjectStatus]string{
	ProjectActive:    "active",
	ProjectCompleted: "completed",
	ProjectClosed:    "closed",
}

func (s ProjectStatus) String() string {
	if name, ok := projectStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ProjectStatus(%d)", int(s))
}

func (s ProjectStatus) Valid() bool {
	_, ok := projectStatusNames[s]
	return ok
}

type ProjectStatusRecord struct {
	ID         ProjectStatus `gorm:"column:ProjectStatusID;primaryKey;autoIncrement:false" json:"id"`
	StatusName string        `gorm:"column:StatusName;type:varchar(20);not null" json:"status_name"`
}

func (ProjectStatusRecord) TableName() string { return "ProjectStatuses" }

func ProjectStatuses() []ProjectStatusRecord {
	codes := []ProjectStatus{ProjectActive, ProjectCompleted, ProjectClosed}
	rows := make([]ProjectStatusRecord, len(codes))
	for i, code := range codes {
		rows[i] = ProjectStatusRecord{ID: code, StatusName: code.String()}
	}
	return rows
}

type TaskStatus int

const (
	TaskNew       TaskStatus = 1
	TaskPushed    TaskStatus = 2
	TaskFixed     TaskStatus = 3
	TaskReopened  TaskStatus = 4
	TaskCompleted TaskStatus = 5
	TaskCancelled TaskStatus = 6
)

var taskStatusNames = map[TaskStatus]string{
	TaskNew:       "new",
	TaskPushed:    "pushed",
	TaskFixed:     "fixed",
	TaskReopened:  "reopened",
	TaskCompleted: "completed",
	TaskCancelled: "cancelled",
}

func (s TaskStatus) String() string {
	if name, ok := taskStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TaskStatus(%d)", int(s))
}

func (s TaskStatus) Valid() bool {
	_, ok := taskStatusNames[s]
	return ok
}

type TaskStatusRecord struct {
	ID         TaskStatus `gorm:"column:TaskStatusID;primaryKey;autoIncrement:false" json:"id"`
	StatusName string     `gorm:"column:StatusName;type:varchar(20);not null" json:"status_name"`
}

func (TaskStatusRecord) TableName() string { return "TaskStatuses" }

func TaskStatuses() []TaskStatusRecord {
	codes := []TaskStatus{TaskNew, TaskPushed, TaskFixed, TaskReopened, TaskCompleted, TaskCancelled}
	rows := make([]TaskStatusRecord, len(codes))
	for i, code := range codes {
		rows[i] = TaskStatusRecord{ID: code, StatusName: code.String()}
	}
	return rows
}
