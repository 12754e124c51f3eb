package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jbritogeral-a11y/loja-api/auth"
	"github.com/jbritogeral-a11y/loja-api/cart"
	"github.com/jbritogeral-a11y/loja-api/checkout"
	adminControllers "github.com/jbritogeral-a11y/loja-api/controllers/admin"
	cartControllers "github.com/jbritogeral-a11y/loja-api/controllers/cart"
	ceremonyControllers "github.com/jbritogeral-a11y/loja-api/controllers/ceremony"
	orderControllers "github.com/jbritogeral-a11y/loja-api/controllers/order"
	productControllers "github.com/jbritogeral-a11y/loja-api/controllers/product"
	therapyControllers "github.com/jbritogeral-a11y/loja-api/controllers/therapy"
	"github.com/jbritogeral-a11y/loja-api/mailer"
	"github.com/jbritogeral-a11y/loja-api/middleware"
	"gorm.io/gorm"
)

// SetupStoreRoutes registers the public storefront endpoints.
func SetupStoreRoutes(r *gin.Engine, db *gorm.DB, store *cart.Store, svc *checkout.Service, sender mailer.Sender) {
	// ─────────── Auth ───────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(db))
		authGroup.POST("/login", auth.Login(db))
	}

	// ─────────── Catalog ───────────
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:slug", productControllers.GetProductBySlug(db))
	r.GET("/categories", productControllers.GetAllCategories(db))
	r.GET("/payment-methods", adminControllers.GetPaymentMethods(db))
	r.GET("/shipping-methods", adminControllers.GetShippingMethods(db))

	// ─────────── Therapies & Ceremonies ───────────
	r.GET("/therapies", therapyControllers.GetTherapies(db))
	r.GET("/therapies/:slug", therapyControllers.GetTherapyBySlug(db))
	r.GET("/ceremonies", ceremonyControllers.GetCeremonies(db))
	r.GET("/ceremonies/:slug", ceremonyControllers.GetCeremonyBySlug(db))
	r.POST("/appointments", middleware.OptionalToken,
		therapyControllers.CreateAppointment(therapyControllers.NewScheduler(db), sender))
	r.POST("/ceremonies/:slug/registrations", middleware.OptionalToken,
		ceremonyControllers.Register(ceremonyControllers.NewRegistry(db), sender))

	// ─────────── Cart & Checkout (session cookie) ───────────
	session := r.Group("/", middleware.CartSession(store))
	{
		session.GET("/cart", cartControllers.GetCart(store))
		session.POST("/cart/items", cartControllers.AddItem(db, store))
		session.DELETE("/cart/items/:key", cartControllers.RemoveItem(store))

		session.POST("/checkout", middleware.OptionalToken, orderControllers.Checkout(db, store, svc))
		session.GET("/checkout/prefill", middleware.OptionalToken, orderControllers.Prefill(svc))
	}
}
