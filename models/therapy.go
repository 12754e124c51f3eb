package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Therapy struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string          `gorm:"unique;not null" json:"name"`
	Slug            string          `gorm:"uniqueIndex" json:"slug"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	DurationMinutes int             `gorm:"default:60" json:"duration_minutes"`
	Image           string          `json:"image"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
}

func (t *Therapy) BeforeCreate(tx *gorm.DB) error {
	if t.Slug == "" {
		t.Slug = Slugify(t.Name)
	}
	return nil
}

type AppointmentStatus string

const (
	AppointmentRequested AppointmentStatus = "requested"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCanceled  AppointmentStatus = "canceled"
)

type Appointment struct {
	ID          uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	TherapyID   uint              `gorm:"index;not null" json:"therapy_id"`
	Therapy     Therapy           `gorm:"foreignKey:TherapyID" json:"therapy,omitempty"`
	UserID      *uint             `gorm:"index" json:"user_id"`
	FullName    string            `gorm:"not null" json:"full_name"`
	Email       string            `gorm:"not null" json:"email"`
	Phone       string            `json:"phone"`
	ScheduledAt time.Time         `gorm:"not null" json:"scheduled_at"`
	Status      AppointmentStatus `gorm:"type:VARCHAR(20);default:'requested'" json:"status"`
	Notes       string            `json:"notes"`
	CreatedAt   time.Time         `json:"created_at"`
}
