package checkout

import (
	"errors"

	"github.com/jbritogeral-a11y/loja-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the persistence surface checkout needs: order creation plus locked
// product access. InTx runs fn against a transactional view; returning an
// error rolls everything back.
type Store interface {
	InTx(fn func(tx Store) error) error
	CreateOrder(order *models.Order) error
	CreateOrderItem(item *models.OrderItem) error
	// ProductForUpdate loads a product under a row lock held until the
	// surrounding transaction ends. Returns ErrMissingReference when the
	// product is gone.
	ProductForUpdate(id uint) (*models.Product, error)
	SaveProduct(product *models.Product) error
	// LatestOrderForUser returns the user's most recent order, for prefilling
	// the buyer form on repeat checkouts. Returns nil without error when the
	// user has no orders yet.
	LatestOrderForUser(userID uint) (*models.Order, error)
}

type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a GORM connection as the checkout Store.
func NewStore(db *gorm.DB) Store {
	return gormStore{db: db}
}

func (s gormStore) InTx(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(gormStore{db: tx})
	})
}

func (s gormStore) CreateOrder(order *models.Order) error {
	return s.db.Create(order).Error
}

func (s gormStore) CreateOrderItem(item *models.OrderItem) error {
	return s.db.Create(item).Error
}

func (s gormStore) ProductForUpdate(id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMissingReference
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s gormStore) SaveProduct(product *models.Product) error {
	return s.db.Save(product).Error
}

func (s gormStore) LatestOrderForUser(userID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
