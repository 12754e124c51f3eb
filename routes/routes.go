package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jbritogeral-a11y/loja-api/cart"
	"github.com/jbritogeral-a11y/loja-api/checkout"
	"github.com/jbritogeral-a11y/loja-api/mailer"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public store,
// authenticated user and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, store *cart.Store, svc *checkout.Service, sender mailer.Sender) {
	// Public storefront routes (cart session cookie, optional JWT)
	SetupStoreRoutes(r, db, store, svc, sender)

	// Customer routes (JWT-protected)
	SetupUserRoutes(r, db)

	// Admin routes (JWT + administrator role)
	SetupAdminRoutes(r, db)
}
