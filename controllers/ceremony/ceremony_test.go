package ceremonyControllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jbritogeral-a11y/loja-api/models"
	"github.com/jbritogeral-a11y/loja-api/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct{ sent int }

func (r *recordingSender) Send(subject, body, from string, to []string) error {
	r.sent++
	return nil
}

type fakeRegistry struct {
	ceremony      *models.Ceremony
	taken         int64
	registrations []models.CeremonyRegistration
}

func (f *fakeRegistry) InTx(fn func(tx Registry) error) error {
	before := len(f.registrations)
	if err := fn(f); err != nil {
		f.registrations = f.registrations[:before]
		return err
	}
	return nil
}

func (f *fakeRegistry) ActiveCeremonyForUpdate(slug string) (*models.Ceremony, error) {
	if f.ceremony == nil || f.ceremony.Slug != slug {
		return nil, errCeremonyNotFound
	}
	return f.ceremony, nil
}

func (f *fakeRegistry) TakenSeats(ceremonyID uint) (int64, error) {
	return f.taken, nil
}

func (f *fakeRegistry) CreateRegistration(r *models.CeremonyRegistration) error {
	f.registrations = append(f.registrations, *r)
	return nil
}

func fullMoonCeremony(capacity int) *models.Ceremony {
	return &models.Ceremony{ID: 3, Name: "Cerimônia de Lua Cheia", Slug: "lua-cheia", Capacity: capacity, IsActive: true}
}

func validRegistration() string {
	return `{
		"full_name": "Maria Santos",
		"email": "maria@example.com",
		"emergency_contact": "João Santos",
		"emergency_phone": "911111111",
		"consent_given": true
	}`
}

func postRegistration(t *testing.T, reg Registry, sender *recordingSender, payload string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("STORE_CONTACT_EMAIL", "loja@example.com")
	require.NoError(t, settings.Reload())

	r := gin.New()
	r.POST("/ceremonies/:slug/registrations", Register(reg, sender))

	req := httptest.NewRequest(http.MethodPost, "/ceremonies/lua-cheia/registrations",
		strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRejectsMissingConsent(t *testing.T) {
	sender := &recordingSender{}
	reg := &fakeRegistry{ceremony: fullMoonCeremony(12)}
	w := postRegistration(t, reg, sender, `{
		"full_name": "Maria Santos",
		"email": "maria@example.com",
		"emergency_contact": "João Santos",
		"emergency_phone": "911111111",
		"consent_given": false
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Consent is required")
	assert.Empty(t, reg.registrations)
	assert.Equal(t, 0, sender.sent)
}

func TestRegisterRejectsIncompleteHealthIntake(t *testing.T) {
	sender := &recordingSender{}
	reg := &fakeRegistry{ceremony: fullMoonCeremony(12)}
	w := postRegistration(t, reg, sender, `{
		"full_name": "Maria Santos",
		"email": "maria@example.com",
		"consent_given": true
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, reg.registrations)
	assert.Equal(t, 0, sender.sent)
}

func TestRegisterRejectsFullCeremony(t *testing.T) {
	sender := &recordingSender{}
	reg := &fakeRegistry{ceremony: fullMoonCeremony(12), taken: 12}
	w := postRegistration(t, reg, sender, validRegistration())

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "fully booked")
	assert.Empty(t, reg.registrations)
	assert.Equal(t, 0, sender.sent)
}

func TestRegisterTakesLastSeat(t *testing.T) {
	sender := &recordingSender{}
	reg := &fakeRegistry{ceremony: fullMoonCeremony(12), taken: 11}
	w := postRegistration(t, reg, sender, validRegistration())

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, reg.registrations, 1)
	assert.Equal(t, uint(3), reg.registrations[0].CeremonyID)
	assert.Equal(t, models.RegistrationPending, reg.registrations[0].Status)
	assert.True(t, reg.registrations[0].ConsentGiven)
	assert.Equal(t, 2, sender.sent)
}

func TestRegisterZeroCapacityIsUnlimited(t *testing.T) {
	sender := &recordingSender{}
	reg := &fakeRegistry{ceremony: fullMoonCeremony(0), taken: 999}
	w := postRegistration(t, reg, sender, validRegistration())

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, reg.registrations, 1)
}

func TestRegisterUnknownCeremonyIs404(t *testing.T) {
	sender := &recordingSender{}
	reg := &fakeRegistry{}
	w := postRegistration(t, reg, sender, validRegistration())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, sender.sent)
}
