package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jbritogeral-a11y/loja-api/cart"
	"github.com/jbritogeral-a11y/loja-api/middleware"
	"github.com/jbritogeral-a11y/loja-api/models"
	"gorm.io/gorm"
)

type AddItemInput struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" binding:"omitempty,min=1"`
}

func sessionCart(c *gin.Context, store *cart.Store) *cart.Cart {
	sessionID := c.GetString(middleware.SessionKey)
	return store.Get(sessionID)
}

// GET /cart
func GetCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := sessionCart(c, store)
		c.JSON(http.StatusOK, gin.H{
			"items":       sc.Items(),
			"total_price": sc.TotalPrice(),
			"length":      sc.Len(),
		})
	}
}

// POST /cart/items
func AddItem(db *gorm.DB, store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
		}

		var product models.Product
		err := db.First(&product, "id = ? AND is_active = ?", input.ProductID, true).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		var variant *models.ProductVariant
		if input.VariantID != nil {
			var v models.ProductVariant
			err := db.First(&v, "id = ? AND product_id = ?", *input.VariantID, product.ID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Variant does not exist for this product"})
				return
			}
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate variant"})
				return
			}
			variant = &v
		}

		sc := sessionCart(c, store)
		sc.Add(product, variant, input.Quantity)

		c.JSON(http.StatusOK, gin.H{
			"items":       sc.Items(),
			"total_price": sc.TotalPrice(),
			"length":      sc.Len(),
		})
	}
}

// DELETE /cart/items/:key
func RemoveItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := sessionCart(c, store)
		sc.Remove(c.Param("key"))
		c.JSON(http.StatusOK, gin.H{
			"items":       sc.Items(),
			"total_price": sc.TotalPrice(),
			"length":      sc.Len(),
		})
	}
}
