package models

// ContactInfo holds at most one contact per user and channel type.
type ContactInfo struct {
	UserID  uint64          `gorm:"column:UserID;primaryKey;autoIncrement:false" json:"user_id"`
	TypeID  ContactInfoType `gorm:"column:ContactInfoTypeID;primaryKey;autoIncrement:false" json:"type_id" validate:"required"`
	Contact string          `gorm:"column:Contact;type:varchar(40);not null" json:"contact" validate:"required,max=40"`

	// Relations
	Type *ContactInfoTypeRecord `gorm:"foreignKey:TypeID" json:"-"`
}

func (ContactInfo) TableName() string { return "ContactInfo" }

func NewContactInfo(contactType ContactInfoType, contact string) *ContactInfo {
	return &ContactInfo{
		TypeID:  contactType,
		Contact: contact,
	}
}

// TypeName follows the loaded type row and falls back to the code's name.
func (c ContactInfo) TypeName() string {
	if c.Type != nil {
		return c.Type.TypeName
	}
	return c.TypeID.String()
}
