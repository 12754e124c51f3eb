package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jbritogeral-a11y/loja-api/settings"
)

// POST /admin/settings/reload
func ReloadSettings(c *gin.Context) {
	if err := settings.Reload(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s := settings.Get()
	c.JSON(http.StatusOK, gin.H{
		"store_name":    s.StoreName,
		"contact_email": s.ContactEmail,
		"stock_policy":  s.StockPolicy,
		"session_ttl":   s.SessionTTL.String(),
	})
}
