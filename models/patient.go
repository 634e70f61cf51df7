package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient is a person registered at the hospital reception
type Patient struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name      string     `gorm:"size:200;not null" json:"name"`
	CPF       *string    `gorm:"size:14;uniqueIndex" json:"cpf,omitempty"` // Brazilian taxpayer id, optional
	Phone     string     `gorm:"size:20" json:"phone,omitempty"`
	Email     string     `gorm:"size:255" json:"email,omitempty"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
}

// BeforeCreate hook to generate UUID
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Patient model
func (Patient) TableName() string {
	return "patients"
}
