package models

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Authorization is a login credential. Password holds a bcrypt hash.
type Authorization struct {
	Login    string `gorm:"column:Login;type:varchar(20);primaryKey" json:"login" validate:"required,max=20"`
	Password string `gorm:"column:Password;type:varchar(60);not null" json:"-"`
}

func (Authorization) TableName() string { return "Authorizations" }

// NewAuthorization hashes password for storage.
func NewAuthorization(login, password string) (*Authorization, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &Authorization{
		Login:    login,
		Password: string(hashed),
	}, nil
}

// CheckPassword reports whether plain matches the stored hash.
func (a *Authorization) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(plain)) == nil
}
