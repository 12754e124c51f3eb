package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Ceremony struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Slug        string          `gorm:"uniqueIndex" json:"slug"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	StartsAt    time.Time       `json:"starts_at"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	Capacity    int             `gorm:"default:0" json:"capacity"` // 0 = unlimited
	IsActive    bool            `gorm:"default:true" json:"is_active"`
}

func (c *Ceremony) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	return nil
}

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCanceled  RegistrationStatus = "canceled"
)

// CeremonyRegistration carries the participant's health intake alongside the
// contact snapshot. ConsentGiven must be true before a row is created.
type CeremonyRegistration struct {
	ID         uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	CeremonyID uint               `gorm:"index;not null" json:"ceremony_id"`
	Ceremony   Ceremony           `gorm:"foreignKey:CeremonyID" json:"ceremony,omitempty"`
	UserID     *uint              `gorm:"index" json:"user_id"`
	FullName   string             `gorm:"not null" json:"full_name"`
	Email      string             `gorm:"not null" json:"email"`
	Phone      string             `json:"phone"`

	MedicalConditions   string `json:"medical_conditions"`
	Medications         string `json:"medications"`
	DietaryRestrictions string `json:"dietary_restrictions"`
	EmergencyContact    string `json:"emergency_contact"`
	EmergencyPhone      string `json:"emergency_phone"`
	ConsentGiven        bool   `gorm:"not null" json:"consent_given"`

	Status    RegistrationStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}
