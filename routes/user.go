package routes

import (
	"github.com/gin-gonic/gin"
	ceremonyControllers "github.com/jbritogeral-a11y/loja-api/controllers/ceremony"
	orderControllers "github.com/jbritogeral-a11y/loja-api/controllers/order"
	therapyControllers "github.com/jbritogeral-a11y/loja-api/controllers/therapy"
	userControllers "github.com/jbritogeral-a11y/loja-api/controllers/user"
	"github.com/jbritogeral-a11y/loja-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ─────────── Profile ───────────
		userGroup.GET("/", userControllers.GetUser(db))
		userGroup.PUT("/", userControllers.UpdateUser(db))

		// ─────────── History ───────────
		userGroup.GET("/orders", orderControllers.GetUserOrders(db))
		userGroup.GET("/appointments", therapyControllers.GetUserAppointments(db))
		userGroup.GET("/registrations", ceremonyControllers.GetUserRegistrations(db))
	}
}
