package checkout

import (
	"errors"
	"sync"
	"testing"

	"github.com/jbritogeral-a11y/loja-api/cart"
	"github.com/jbritogeral-a11y/loja-api/models"
	"github.com/jbritogeral-a11y/loja-api/settings"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu       sync.Mutex
	products map[uint]models.Product
	orders   []models.Order
	items    []models.OrderItem
	nextID   uint
	latest   *models.Order
}

func newFakeStore(products ...models.Product) *fakeStore {
	f := &fakeStore{products: make(map[uint]models.Product)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeStore) InTx(fn func(tx Store) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Snapshot for rollback on error.
	products := make(map[uint]models.Product, len(f.products))
	for id, p := range f.products {
		products[id] = p
	}
	orders := append([]models.Order(nil), f.orders...)
	items := append([]models.OrderItem(nil), f.items...)

	if err := fn(f); err != nil {
		f.products = products
		f.orders = orders
		f.items = items
		return err
	}
	return nil
}

func (f *fakeStore) CreateOrder(order *models.Order) error {
	f.nextID++
	order.ID = f.nextID
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeStore) CreateOrderItem(item *models.OrderItem) error {
	f.nextID++
	item.ID = f.nextID
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeStore) ProductForUpdate(id uint) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, ErrMissingReference
	}
	return &p, nil
}

func (f *fakeStore) SaveProduct(product *models.Product) error {
	f.products[product.ID] = *product
	return nil
}

func (f *fakeStore) LatestOrderForUser(userID uint) (*models.Order, error) {
	return f.latest, nil
}

type mockSender struct {
	mu       sync.Mutex
	subjects []string
	err      error
}

func (m *mockSender) Send(subject, body, from string, to []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.subjects = append(m.subjects, subject)
	return nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func usePolicy(t *testing.T, p settings.StockPolicy) {
	t.Helper()
	t.Setenv("STOCK_POLICY", string(p))
	require.NoError(t, settings.Reload())
}

func validForm() BuyerForm {
	return BuyerForm{
		FullName: "Maria Santos",
		Email:    "maria@example.com",
		Address:  "Rua das Flores 12",
		City:     "Porto",
	}
}

func cartWith(t *testing.T, store *fakeStore, lines ...struct {
	id  uint
	qty int
}) *cart.Cart {
	t.Helper()
	c := cart.New()
	for _, l := range lines {
		p, ok := store.products[l.id]
		require.True(t, ok)
		c.Add(p, nil, l.qty)
	}
	return c
}

func TestPlaceRejectsEmptyCartWithoutSideEffects(t *testing.T) {
	usePolicy(t, settings.StockPolicyRejectOrder)
	store := newFakeStore()
	svc := NewService(store, &mockSender{})

	_, err := svc.Place(cart.New(), validForm(), nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.items)
}

func TestPlaceCreatesOrderItemsAndClearsCart(t *testing.T) {
	usePolicy(t, settings.StockPolicyRejectOrder)
	store := newFakeStore(
		models.Product{ID: 1, Name: "Sálvia Branca", Price: price("10.00"), Stock: 10},
		models.Product{ID: 2, Name: "Pêndulo de Quartzo", Price: price("25.00"), Stock: 5},
	)
	svc := NewService(store, &mockSender{})

	c := cart.New()
	c.Add(store.products[1], nil, 2)
	c.Add(store.products[2], nil, 1)

	result, err := svc.Place(c, validForm(), nil)
	require.NoError(t, err)

	require.Len(t, store.orders, 1)
	assert.True(t, result.Order.TotalPrice.Equal(price("45.00")),
		"got %s", result.Order.TotalPrice)
	require.Len(t, store.items, 2)
	assert.True(t, store.items[0].Price.Equal(price("10.00")))
	assert.Equal(t, 2, store.items[0].Quantity)
	assert.True(t, store.items[1].Price.Equal(price("25.00")))
	assert.Equal(t, 1, store.items[1].Quantity)

	// Stock decremented, cart cleared.
	assert.Equal(t, 8, store.products[1].Stock)
	assert.Equal(t, 4, store.products[2].Stock)
	assert.Equal(t, 0, c.Len())
}

func TestPlaceAttributesOnlyCustomerAccounts(t *testing.T) {
	usePolicy(t, settings.StockPolicyRejectOrder)
	store := newFakeStore(models.Product{ID: 1, Name: "Vela", Price: price("5.00"), Stock: 3})
	svc := NewService(store, &mockSender{})

	customer := &models.User{ID: 9, Role: models.RoleCustomer}
	result, err := svc.Place(cartWith(t, store, line(1, 1)), validForm(), customer)
	require.NoError(t, err)
	require.NotNil(t, result.Order.UserID)
	assert.Equal(t, uint(9), *result.Order.UserID)

	admin := &models.User{ID: 1, Role: models.RoleAdministrator}
	result, err = svc.Place(cartWith(t, store, line(1, 1)), validForm(), admin)
	require.NoError(t, err)
	assert.Nil(t, result.Order.UserID)

	result, err = svc.Place(cartWith(t, store, line(1, 1)), validForm(), nil)
	require.NoError(t, err)
	assert.Nil(t, result.Order.UserID)
}

func TestPlaceRejectOrderPolicyRollsBackOnOversell(t *testing.T) {
	usePolicy(t, settings.StockPolicyRejectOrder)
	store := newFakeStore(models.Product{ID: 1, Name: "Tambor Xamânico", Price: price("80.00"), Stock: 1})
	svc := NewService(store, &mockSender{})

	c := cartWith(t, store, line(1, 2))
	_, err := svc.Place(c, validForm(), nil)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	assert.Empty(t, store.orders)
	assert.Empty(t, store.items)
	assert.Equal(t, 1, store.products[1].Stock)
	// Cart survives a failed checkout.
	assert.Equal(t, 2, c.Len())
}

func TestPlaceRejectLinePolicySkipsOversoldLine(t *testing.T) {
	usePolicy(t, settings.StockPolicyRejectLine)
	store := newFakeStore(
		models.Product{ID: 1, Name: "Tambor", Price: price("80.00"), Stock: 1},
		models.Product{ID: 2, Name: "Vela", Price: price("5.00"), Stock: 10},
	)
	svc := NewService(store, &mockSender{})

	result, err := svc.Place(cartWith(t, store, line(1, 2), line(2, 1)), validForm(), nil)
	require.NoError(t, err)

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "1_no_variant", result.Skipped[0].Key)
	assert.Equal(t, ErrInsufficientStock.Error(), result.Skipped[0].Reason)
	require.Len(t, store.items, 1)
	assert.Equal(t, uint(2), store.items[0].ProductID)
	assert.Equal(t, 1, store.products[1].Stock)
}

func TestPlaceIgnorePolicyRecordsItemWithoutDecrement(t *testing.T) {
	usePolicy(t, settings.StockPolicyIgnore)
	store := newFakeStore(models.Product{ID: 1, Name: "Tambor", Price: price("80.00"), Stock: 1})
	svc := NewService(store, &mockSender{})

	result, err := svc.Place(cartWith(t, store, line(1, 2)), validForm(), nil)
	require.NoError(t, err)

	// Legacy behavior: the item exists even though the guard rejected the
	// decrement, and stock is untouched.
	require.Len(t, store.items, 1)
	assert.Equal(t, 2, store.items[0].Quantity)
	assert.Equal(t, 1, store.products[1].Stock)
	assert.Empty(t, result.Skipped)
}

func TestPlaceSkipsLinesWithMissingProducts(t *testing.T) {
	usePolicy(t, settings.StockPolicyRejectOrder)
	store := newFakeStore(models.Product{ID: 2, Name: "Vela", Price: price("5.00"), Stock: 10})
	svc := NewService(store, &mockSender{})

	c := cart.New()
	ghost := models.Product{ID: 1, Name: "Descontinuado", Price: price("9.99")}
	c.Add(ghost, nil, 1)
	c.Add(store.products[2], nil, 2)
	total := c.TotalPrice()

	result, err := svc.Place(c, validForm(), nil)
	require.NoError(t, err)

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "1_no_variant", result.Skipped[0].Key)
	assert.Equal(t, ErrMissingReference.Error(), result.Skipped[0].Reason)
	require.Len(t, store.items, 1)
	// Total stays fixed to the cart total at submission, skipped line included.
	assert.True(t, result.Order.TotalPrice.Equal(total))
}

func TestPlaceSurvivesNotificationFailure(t *testing.T) {
	usePolicy(t, settings.StockPolicyRejectOrder)
	store := newFakeStore(models.Product{ID: 1, Name: "Vela", Price: price("5.00"), Stock: 3})
	sender := &mockSender{err: errors.New("smtp: connection refused")}
	svc := NewService(store, sender)

	result, err := svc.Place(cartWith(t, store, line(1, 1)), validForm(), nil)
	require.NoError(t, err)
	assert.Len(t, store.orders, 1)
	assert.Len(t, store.items, 1)
	assert.NotZero(t, result.Order.ID)
}

func TestPlaceTwiceSecondSubmitSeesEmptyCart(t *testing.T) {
	usePolicy(t, settings.StockPolicyRejectOrder)
	store := newFakeStore(models.Product{ID: 1, Name: "Vela", Price: price("5.00"), Stock: 10})
	svc := NewService(store, &mockSender{})

	c := cartWith(t, store, line(1, 1))
	_, err := svc.Place(c, validForm(), nil)
	require.NoError(t, err)

	_, err = svc.Place(c, validForm(), nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Len(t, store.orders, 1)
}

func TestPrefillReturnsLatestOrderSnapshot(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &mockSender{})

	form, err := svc.Prefill(4)
	require.NoError(t, err)
	assert.Nil(t, form)

	store.latest = &models.Order{
		FullName: "Maria Santos",
		Email:    "maria@example.com",
		Address:  "Rua das Flores 12",
		City:     "Porto",
	}
	form, err = svc.Prefill(4)
	require.NoError(t, err)
	require.NotNil(t, form)
	assert.Equal(t, "Maria Santos", form.FullName)
	assert.Equal(t, "Porto", form.City)
}

func line(id uint, qty int) struct {
	id  uint
	qty int
} {
	return struct {
		id  uint
		qty int
	}{id, qty}
}
