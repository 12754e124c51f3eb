package routes

import (
	"github.com/gin-gonic/gin"
	adminControllers "github.com/jbritogeral-a11y/loja-api/controllers/admin"
	ceremonyControllers "github.com/jbritogeral-a11y/loja-api/controllers/ceremony"
	orderControllers "github.com/jbritogeral-a11y/loja-api/controllers/order"
	productControllers "github.com/jbritogeral-a11y/loja-api/controllers/product"
	therapyControllers "github.com/jbritogeral-a11y/loja-api/controllers/therapy"
	userControllers "github.com/jbritogeral-a11y/loja-api/controllers/user"
	"github.com/jbritogeral-a11y/loja-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires a JWT with the
// administrator role.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdministrator)
	{
		// ─────────── Users ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// ─────────── Catalog Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(db))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(db))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(db))
			productAdmin.POST("/:id/variants", productControllers.CreateVariant(db))
			productAdmin.DELETE("/:id/variants/:variantID", productControllers.DeleteVariant(db))
		}

		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productControllers.CreateCategory(db))
			categoryAdmin.PUT("/:id", productControllers.UpdateCategory(db))
			categoryAdmin.DELETE("/:id", productControllers.DeleteCategory(db))
		}

		// ─────────── Orders ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrders(db))
			orderAdmin.GET("/export", orderControllers.ExportOrdersToExcel(db))
			orderAdmin.GET("/ws", orderControllers.OrderFeed)
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByID(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatus(db))
		}

		// ─────────── Therapies & Appointments ───────────
		therapyAdmin := adminGroup.Group("/therapies")
		{
			therapyAdmin.POST("", therapyControllers.CreateTherapy(db))
			therapyAdmin.PUT("/:id", therapyControllers.UpdateTherapy(db))
			therapyAdmin.DELETE("/:id", therapyControllers.DeleteTherapy(db))
		}
		adminGroup.GET("/appointments", therapyControllers.GetAllAppointments(db))
		adminGroup.PUT("/appointments/:id/status", therapyControllers.UpdateAppointmentStatus(db))

		// ─────────── Ceremonies & Registrations ───────────
		ceremonyAdmin := adminGroup.Group("/ceremonies")
		{
			ceremonyAdmin.POST("", ceremonyControllers.CreateCeremony(db))
			ceremonyAdmin.PUT("/:id", ceremonyControllers.UpdateCeremony(db))
			ceremonyAdmin.DELETE("/:id", ceremonyControllers.DeleteCeremony(db))
			ceremonyAdmin.GET("/:id/registrations", ceremonyControllers.GetCeremonyRegistrations(db))
		}
		adminGroup.PUT("/registrations/:id/status", ceremonyControllers.UpdateRegistrationStatus(db))

		// ─────────── Methods & Settings ───────────
		adminGroup.POST("/payment-methods", adminControllers.CreatePaymentMethod(db))
		adminGroup.DELETE("/payment-methods/:id", adminControllers.DeletePaymentMethod(db))
		adminGroup.POST("/shipping-methods", adminControllers.CreateShippingMethod(db))
		adminGroup.DELETE("/shipping-methods/:id", adminControllers.DeleteShippingMethod(db))
		adminGroup.POST("/settings/reload", adminControllers.ReloadSettings)
	}
}
