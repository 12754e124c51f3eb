package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitUsesDefaults(t *testing.T) {
	require.NoError(t, Init())

	s := Get()
	assert.Equal(t, "Minha Loja", s.StoreName)
	assert.Equal(t, StockPolicyRejectOrder, s.StockPolicy)
	assert.Equal(t, "24h", s.SessionTTL.String())
}

func TestReloadPicksUpEnvironmentChanges(t *testing.T) {
	t.Setenv("STORE_NAME", "Loja de Terapias")
	t.Setenv("STOCK_POLICY", "ignore")
	t.Setenv("CART_SESSION_TTL", "2h")

	require.NoError(t, Reload())

	s := Get()
	assert.Equal(t, "Loja de Terapias", s.StoreName)
	assert.Equal(t, StockPolicyIgnore, s.StockPolicy)
	assert.Equal(t, "2h0m0s", s.SessionTTL.String())
}

func TestReloadRejectsUnknownStockPolicy(t *testing.T) {
	t.Setenv("STOCK_POLICY", "shrug")
	assert.Error(t, Reload())
}

func TestReloadRejectsMalformedSessionTTL(t *testing.T) {
	t.Setenv("CART_SESSION_TTL", "soon")
	assert.Error(t, Reload())
}
