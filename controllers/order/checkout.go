package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jbritogeral-a11y/loja-api/cart"
	"github.com/jbritogeral-a11y/loja-api/checkout"
	"github.com/jbritogeral-a11y/loja-api/middleware"
	"github.com/jbritogeral-a11y/loja-api/models"
	"gorm.io/gorm"
)

// POST /checkout
func Checkout(db *gorm.DB, store *cart.Store, svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form checkout.BuyerForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		sessionID := c.GetString(middleware.SessionKey)

		// Serialize submissions for this session: a double submit waits here
		// and then sees the cleared cart.
		lock := store.CheckoutLock(sessionID)
		lock.Lock()
		defer lock.Unlock()

		var buyer *models.User
		if userID, exists := c.Get("user_id"); exists {
			var user models.User
			if err := db.First(&user, "id = ?", userID).Error; err == nil {
				buyer = &user
			}
		}

		result, err := svc.Place(store.Get(sessionID), form, buyer)
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "redirect": "/products"})
			return
		case errors.Is(err, checkout.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
			return
		}

		broadcastNewOrder(result.Order)
		c.JSON(http.StatusCreated, result)
	}
}

// GET /checkout/prefill
func Prefill(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusOK, gin.H{})
			return
		}

		form, err := svc.Prefill(userID.(uint))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load previous order"})
			return
		}
		if form == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		c.JSON(http.StatusOK, form)
	}
}
