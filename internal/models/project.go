package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Project struct {
	ID            uint64          `gorm:"column:ProjectID;primaryKey" json:"id"`
	AuditEntityID uint64          `gorm:"column:EntityID;not null;uniqueIndex" json:"entity_id"`
	OwnerClientID uint64          `gorm:"column:ClientID;not null;index" json:"client_id" validate:"required"`
	ProjectStart  time.Time       `gorm:"column:ProjectStart;type:date" json:"project_start"`
	Title         string          `gorm:"column:Title;type:varchar(100);not null" json:"title" validate:"required,max=100"`
	StatusID      ProjectStatus   `gorm:"column:ProjectStatusID;not null;index" json:"status_id"`
	MonthPayment  decimal.Decimal `gorm:"column:MonthPaymentDollars;type:decimal(12,2);not null" json:"month_payment"`

	// Relations
	Entity *Entity              `gorm:"foreignKey:AuditEntityID" json:"entity,omitempty"`
	Client *Client              `gorm:"foreignKey:OwnerClientID" json:"client,omitempty"`
	Status *ProjectStatusRecord `gorm:"foreignKey:StatusID" json:"-"`
	Tasks  []Task               `gorm:"foreignKey:ProjectID" json:"-"`
}

func (Project) TableName() string { return "Projects" }

// NewProject starts an active project for client with no monthly payment.
func NewProject(client *Client, title string, start time.Time) *Project {
	p := &Project{
		Client:       client,
		Title:        title,
		ProjectStart: start,
		StatusID:     ProjectActive,
		MonthPayment: decimal.Zero,
	}
	if client != nil {
		p.OwnerClientID = client.ID
	}
	return p
}

func (p Project) StatusName() string {
	if p.Status != nil {
		return p.Status.StatusName
	}
	return p.StatusID.String()
}
