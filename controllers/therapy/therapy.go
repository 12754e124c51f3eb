package therapyControllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jbritogeral-a11y/loja-api/mailer"
	"github.com/jbritogeral-a11y/loja-api/models"
	"github.com/jbritogeral-a11y/loja-api/settings"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GET /therapies
func GetTherapies(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var therapies []models.Therapy
		if err := db.Where("is_active = ?", true).Order("name").Find(&therapies).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch therapies"})
			return
		}
		c.JSON(http.StatusOK, therapies)
	}
}

// GET /therapies/:slug
func GetTherapyBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var therapy models.Therapy
		err := db.First(&therapy, "slug = ? AND is_active = ?", c.Param("slug"), true).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Therapy not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch therapy"})
			return
		}
		c.JSON(http.StatusOK, therapy)
	}
}

type AppointmentInput struct {
	TherapyID   uint      `json:"therapy_id" binding:"required"`
	FullName    string    `json:"full_name" binding:"required"`
	Email       string    `json:"email" binding:"required,email"`
	Phone       string    `json:"phone"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Notes       string    `json:"notes"`
}

// Scheduler is the persistence seam appointment booking goes through, so the
// inactive-therapy path is testable without a database.
type Scheduler interface {
	// ActiveTherapy returns the therapy when it exists and is bookable.
	ActiveTherapy(id uint) (*models.Therapy, error)
	CreateAppointment(a *models.Appointment) error
}

type gormScheduler struct {
	db *gorm.DB
}

// NewScheduler wraps a GORM connection as the appointment Scheduler.
func NewScheduler(db *gorm.DB) Scheduler {
	return gormScheduler{db: db}
}

func (g gormScheduler) ActiveTherapy(id uint) (*models.Therapy, error) {
	var therapy models.Therapy
	err := g.db.First(&therapy, "id = ? AND is_active = ?", id, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errTherapyUnavailable
	}
	if err != nil {
		return nil, err
	}
	return &therapy, nil
}

func (g gormScheduler) CreateAppointment(a *models.Appointment) error {
	return g.db.Create(a).Error
}

var errTherapyUnavailable = errors.New("therapy is not available")

// POST /appointments
func CreateAppointment(sched Scheduler, sender mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AppointmentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		therapy, err := sched.ActiveTherapy(input.TherapyID)
		if errors.Is(err, errTherapyUnavailable) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Therapy is not available"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate therapy"})
			return
		}

		if input.ScheduledAt.Before(time.Now()) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "scheduled_at must be in the future"})
			return
		}

		appointment := models.Appointment{
			TherapyID:   therapy.ID,
			UserID:      optionalUserID(c),
			FullName:    input.FullName,
			Email:       input.Email,
			Phone:       input.Phone,
			ScheduledAt: input.ScheduledAt,
			Status:      models.AppointmentRequested,
			Notes:       input.Notes,
			CreatedAt:   time.Now(),
		}
		if err := sched.CreateAppointment(&appointment); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appointment"})
			return
		}

		cfg := settings.Get()
		subject := fmt.Sprintf("%s — %s session requested", cfg.StoreName, therapy.Name)
		body := fmt.Sprintf("Hello %s,\n\nyour %s session request for %s was received. We will confirm shortly.",
			input.FullName, therapy.Name, input.ScheduledAt.Format("2006-01-02 15:04"))
		mailer.BestEffort(sender, subject, body, cfg.FromEmail, []string{input.Email})
		mailer.BestEffort(sender, subject, body, cfg.FromEmail, []string{cfg.ContactEmail})

		c.JSON(http.StatusCreated, appointment)
	}
}

// GET /user/appointments
func GetUserAppointments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var appointments []models.Appointment
		if err := db.
			Where("user_id = ?", userID).
			Preload("Therapy").
			Order("scheduled_at DESC").
			Find(&appointments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
			return
		}
		c.JSON(http.StatusOK, appointments)
	}
}

// GET /admin/appointments
func GetAllAppointments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Therapy").Order("scheduled_at DESC")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var appointments []models.Appointment
		if err := query.Find(&appointments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
			return
		}
		c.JSON(http.StatusOK, appointments)
	}
}

type AppointmentStatusInput struct {
	Status models.AppointmentStatus `json:"status" binding:"required"`
}

// PUT /admin/appointments/:id/status
func UpdateAppointmentStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AppointmentStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		switch input.Status {
		case models.AppointmentRequested, models.AppointmentConfirmed,
			models.AppointmentCompleted, models.AppointmentCanceled:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment status"})
			return
		}

		result := db.Model(&models.Appointment{}).
			Where("id = ?", c.Param("id")).
			Update("status", input.Status)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Appointment updated"})
	}
}

type TherapyInput struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price" binding:"required"`
	DurationMinutes int             `json:"duration_minutes"`
	Image           string          `json:"image"`
	IsActive        *bool           `json:"is_active"`
}

// POST /admin/therapies
func CreateTherapy(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input TherapyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		therapy := models.Therapy{
			Name:            input.Name,
			Description:     input.Description,
			Price:           input.Price,
			DurationMinutes: input.DurationMinutes,
			Image:           input.Image,
			IsActive:        true,
		}
		if input.IsActive != nil {
			therapy.IsActive = *input.IsActive
		}
		if therapy.DurationMinutes == 0 {
			therapy.DurationMinutes = 60
		}

		if err := db.Create(&therapy).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Therapy already exists"})
			return
		}
		c.JSON(http.StatusCreated, therapy)
	}
}

// PUT /admin/therapies/:id
func UpdateTherapy(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var therapy models.Therapy
		if err := db.First(&therapy, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Therapy not found"})
			return
		}

		var input TherapyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := map[string]interface{}{
			"name":             input.Name,
			"description":      input.Description,
			"price":            input.Price,
			"duration_minutes": input.DurationMinutes,
			"image":            input.Image,
		}
		if input.IsActive != nil {
			updates["is_active"] = *input.IsActive
		}

		if err := db.Model(&therapy).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update therapy"})
			return
		}
		c.JSON(http.StatusOK, therapy)
	}
}

// DELETE /admin/therapies/:id
func DeleteTherapy(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Therapy{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete therapy"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Therapy not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Therapy deleted"})
	}
}

func optionalUserID(c *gin.Context) *uint {
	if id, exists := c.Get("user_id"); exists {
		if uid, ok := id.(uint); ok {
			return &uid
		}
	}
	return nil
}
