package ceremonyControllers

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
	"gorm.io/gorm/clause"
)

// GET /ceremonies
func GetCeremonies(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ceremonies []models.Ceremony
		if err := db.Where("is_active = ?", true).Order("starts_at").Find(&ceremonies).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ceremonies"})
			return
		}
		c.JSON(http.StatusOK, ceremonies)
	}
}

// GET /ceremonies/:slug
func GetCeremonyBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ceremony models.Ceremony
		err := db.First(&ceremony, "slug = ? AND is_active = ?", c.Param("slug"), true).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ceremony not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ceremony"})
			return
		}
		c.JSON(http.StatusOK, ceremony)
	}
}

// RegistrationInput is the health-intake form. Consent is mandatory.
type RegistrationInput struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`

	MedicalConditions   string `json:"medical_conditions"`
	Medications         string `json:"medications"`
	DietaryRestrictions string `json:"dietary_restrictions"`
	EmergencyContact    string `json:"emergency_contact" binding:"required"`
	EmergencyPhone      string `json:"emergency_phone" binding:"required"`
	ConsentGiven        bool   `json:"consent_given"`
}

// Registry is the persistence surface registration needs. The ceremony row is
// read under a lock held until the transaction ends, so two concurrent
// registrations cannot both take the last seat.
type Registry interface {
	InTx(fn func(tx Registry) error) error
	// ActiveCeremonyForUpdate loads an active ceremony by slug under a row
	// lock. Returns errCeremonyNotFound when absent or inactive.
	ActiveCeremonyForUpdate(slug string) (*models.Ceremony, error)
	// TakenSeats counts the ceremony's non-canceled registrations.
	TakenSeats(ceremonyID uint) (int64, error)
	CreateRegistration(r *models.CeremonyRegistration) error
}

type gormRegistry struct {
	db *gorm.DB
}

// NewRegistry wraps a GORM connection as the registration Registry.
func NewRegistry(db *gorm.DB) Registry {
	return gormRegistry{db: db}
}

func (g gormRegistry) InTx(fn func(tx Registry) error) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		return fn(gormRegistry{db: tx})
	})
}

func (g gormRegistry) ActiveCeremonyForUpdate(slug string) (*models.Ceremony, error) {
	var ceremony models.Ceremony
	err := g.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ceremony, "slug = ? AND is_active = ?", slug, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errCeremonyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ceremony, nil
}

func (g gormRegistry) TakenSeats(ceremonyID uint) (int64, error) {
	var taken int64
	err := g.db.Model(&models.CeremonyRegistration{}).
		Where("ceremony_id = ? AND status <> ?", ceremonyID, models.RegistrationCanceled).
		Count(&taken).Error
	return taken, err
}

func (g gormRegistry) CreateRegistration(r *models.CeremonyRegistration) error {
	return g.db.Create(r).Error
}

var (
	errCeremonyNotFound = errors.New("ceremony not found")
	errCeremonyFull     = errors.New("ceremony is fully booked")
)

// POST /ceremonies/:slug/registrations
func Register(reg Registry, sender mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegistrationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !input.ConsentGiven {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Consent is required to register"})
			return
		}

		registration := models.CeremonyRegistration{
			UserID:              optionalUserID(c),
			FullName:            input.FullName,
			Email:               input.Email,
			Phone:               input.Phone,
			MedicalConditions:   input.MedicalConditions,
			Medications:         input.Medications,
			DietaryRestrictions: input.DietaryRestrictions,
			EmergencyContact:    input.EmergencyContact,
			EmergencyPhone:      input.EmergencyPhone,
			ConsentGiven:        true,
			Status:              models.RegistrationPending,
			CreatedAt:           time.Now(),
		}

		var ceremony models.Ceremony
		err := reg.InTx(func(tx Registry) error {
			found, err := tx.ActiveCeremonyForUpdate(c.Param("slug"))
			if err != nil {
				return err
			}
			if found.Capacity > 0 {
				taken, err := tx.TakenSeats(found.ID)
				if err != nil {
					return err
				}
				if taken >= int64(found.Capacity) {
					return errCeremonyFull
				}
			}
			ceremony = *found
			registration.CeremonyID = found.ID
			return tx.CreateRegistration(&registration)
		})
		switch {
		case errors.Is(err, errCeremonyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Ceremony not found"})
			return
		case errors.Is(err, errCeremonyFull):
			c.JSON(http.StatusConflict, gin.H{"error": "Ceremony is fully booked"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
			return
		}

		cfg := settings.Get()
		subject := fmt.Sprintf("%s — registration for %s received", cfg.StoreName, ceremony.Name)
		body := fmt.Sprintf("Hello %s,\n\nyour registration for %s on %s was received.",
			input.FullName, ceremony.Name, ceremony.StartsAt.Format("2006-01-02 15:04"))
		mailer.BestEffort(sender, subject, body, cfg.FromEmail, []string{input.Email})
		mailer.BestEffort(sender, subject, body, cfg.FromEmail, []string{cfg.ContactEmail})

		c.JSON(http.StatusCreated, registration)
	}
}

// GET /user/registrations
func GetUserRegistrations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var registrations []models.CeremonyRegistration
		if err := db.
			Where("user_id = ?", userID).
			Preload("Ceremony").
			Order("created_at DESC").
			Find(&registrations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrations"})
			return
		}
		c.JSON(http.StatusOK, registrations)
	}
}

// GET /admin/ceremonies/:id/registrations
func GetCeremonyRegistrations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var registrations []models.CeremonyRegistration
		if err := db.
			Where("ceremony_id = ?", c.Param("id")).
			Order("created_at").
			Find(&registrations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrations"})
			return
		}
		c.JSON(http.StatusOK, registrations)
	}
}

type RegistrationStatusInput struct {
	Status models.RegistrationStatus `json:"status" binding:"required"`
}

// PUT /admin/registrations/:id/status
func UpdateRegistrationStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegistrationStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		switch input.Status {
		case models.RegistrationPending, models.RegistrationConfirmed, models.RegistrationCanceled:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration status"})
			return
		}

		result := db.Model(&models.CeremonyRegistration{}).
			Where("id = ?", c.Param("id")).
			Update("status", input.Status)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update registration"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Registration updated"})
	}
}

type CeremonyInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	StartsAt    time.Time       `json:"starts_at" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Capacity    int             `json:"capacity"`
	IsActive    *bool           `json:"is_active"`
}

// POST /admin/ceremonies
func CreateCeremony(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CeremonyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ceremony := models.Ceremony{
			Name:        input.Name,
			Description: input.Description,
			Location:    input.Location,
			StartsAt:    input.StartsAt,
			Price:       input.Price,
			Capacity:    input.Capacity,
			IsActive:    true,
		}
		if input.IsActive != nil {
			ceremony.IsActive = *input.IsActive
		}

		if err := db.Create(&ceremony).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ceremony"})
			return
		}
		c.JSON(http.StatusCreated, ceremony)
	}
}

// PUT /admin/ceremonies/:id
func UpdateCeremony(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ceremony models.Ceremony
		if err := db.First(&ceremony, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ceremony not found"})
			return
		}

		var input CeremonyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := map[string]interface{}{
			"name":        input.Name,
			"description": input.Description,
			"location":    input.Location,
			"starts_at":   input.StartsAt,
			"price":       input.Price,
			"capacity":    input.Capacity,
		}
		if input.IsActive != nil {
			updates["is_active"] = *input.IsActive
		}

		if err := db.Model(&ceremony).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ceremony"})
			return
		}
		c.JSON(http.StatusOK, ceremony)
	}
}

// DELETE /admin/ceremonies/:id
func DeleteCeremony(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Ceremony{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete ceremony"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ceremony not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Ceremony deleted"})
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
