package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jbritogeral-a11y/loja-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentMethodInput struct {
	Name     string `json:"name" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

// GET /payment-methods (public: checkout form options)
func GetPaymentMethods(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var methods []models.PaymentMethod
		if err := db.Where("is_active = ?", true).Order("name").Find(&methods).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment methods"})
			return
		}
		c.JSON(http.StatusOK, methods)
	}
}

// POST /admin/payment-methods
func CreatePaymentMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PaymentMethodInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		method := models.PaymentMethod{Name: input.Name, IsActive: true}
		if input.IsActive != nil {
			method.IsActive = *input.IsActive
		}
		if err := db.Create(&method).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment method"})
			return
		}
		c.JSON(http.StatusCreated, method)
	}
}

// DELETE /admin/payment-methods/:id
func DeletePaymentMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.PaymentMethod{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment method"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment method deleted"})
	}
}

type ShippingMethodInput struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	IsActive *bool           `json:"is_active"`
}

// GET /shipping-methods (public: checkout form options)
func GetShippingMethods(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var methods []models.ShippingMethod
		if err := db.Where("is_active = ?", true).Order("name").Find(&methods).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shipping methods"})
			return
		}
		c.JSON(http.StatusOK, methods)
	}
}

// POST /admin/shipping-methods
func CreateShippingMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ShippingMethodInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		method := models.ShippingMethod{Name: input.Name, Price: input.Price, IsActive: true}
		if input.IsActive != nil {
			method.IsActive = *input.IsActive
		}
		if err := db.Create(&method).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shipping method"})
			return
		}
		c.JSON(http.StatusCreated, method)
	}
}

// DELETE /admin/shipping-methods/:id
func DeleteShippingMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.ShippingMethod{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete shipping method"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shipping method not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Shipping method deleted"})
	}
}
