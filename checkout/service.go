package checkout

import (
	"errors"
	"fmt"
	"time"

	"github.com/jbritogeral-a11y/loja-api/cart"
	"github.com/jbritogeral-a11y/loja-api/mailer"
	"github.com/jbritogeral-a11y/loja-api/models"
	"github.com/jbritogeral-a11y/loja-api/settings"
)

// BuyerForm is the contact submission validated before anything persists.
type BuyerForm struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Address          string `json:"address" binding:"required"`
	City             string `json:"city" binding:"required"`
	PaymentMethodID  *uint  `json:"payment_method_id"`
	ShippingMethodID *uint  `json:"shipping_method_id"`
}

// SkippedLine reports a cart line that did not become an order item.
type SkippedLine struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// Result is the outcome of a successful checkout.
type Result struct {
	Order   models.Order  `json:"order"`
	Skipped []SkippedLine `json:"skipped,omitempty"`
}

// Service converts a populated cart plus a validated buyer form into a durable
// order with its items, adjusts stock under the configured policy, clears the
// cart and fires best-effort notifications.
type Service struct {
	store  Store
	sender mailer.Sender
}

func NewService(store Store, sender mailer.Sender) *Service {
	return &Service{store: store, sender: sender}
}

// Place runs the checkout. The caller holds the session's checkout lock so a
// double submit sees the cleared cart. buyer may be nil (anonymous checkout);
// administrator-initiated checkouts are never attributed to an account.
func (s *Service) Place(c *cart.Cart, form BuyerForm, buyer *models.User) (*Result, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	// Total is fixed to the cart's total at this instant and never recomputed
	// from the order items, even when lines end up skipped.
	total := c.TotalPrice()
	policy := settings.Get().StockPolicy

	var userID *uint
	if buyer != nil && buyer.Role == models.RoleCustomer {
		userID = &buyer.ID
	}

	result := &Result{}
	err := s.store.InTx(func(tx Store) error {
		order := models.Order{
			UserID:           userID,
			FullName:         form.FullName,
			Email:            form.Email,
			Address:          form.Address,
			City:             form.City,
			Status:           models.OrderStatusPending,
			TotalPrice:       total,
			PaymentMethodID:  form.PaymentMethodID,
			ShippingMethodID: form.ShippingMethodID,
			CreatedAt:        time.Now(),
		}
		if err := tx.CreateOrder(&order); err != nil {
			return err
		}

		for _, line := range items {
			product, err := tx.ProductForUpdate(line.ProductID)
			if errors.Is(err, ErrMissingReference) {
				result.Skipped = append(result.Skipped, SkippedLine{
					Key:    line.Key,
					Reason: ErrMissingReference.Error(),
				})
				continue
			}
			if err != nil {
				return err
			}

			if product.Stock >= line.Quantity {
				product.Stock -= line.Quantity
				if err := tx.SaveProduct(product); err != nil {
					return err
				}
			} else {
				switch policy {
				case settings.StockPolicyRejectOrder:
					return fmt.Errorf("%w for product %q", ErrInsufficientStock, product.Name)
				case settings.StockPolicyRejectLine:
					result.Skipped = append(result.Skipped, SkippedLine{
						Key:    line.Key,
						Reason: ErrInsufficientStock.Error(),
					})
					continue
				case settings.StockPolicyIgnore:
					// Item is recorded below, stock stays put.
				}
			}

			item := models.OrderItem{
				OrderID:     order.ID,
				ProductID:   line.ProductID,
				ProductName: line.Name,
				VariantName: line.VariantName,
				Price:       line.UnitPrice,
				Quantity:    line.Quantity,
			}
			if err := tx.CreateOrderItem(&item); err != nil {
				return err
			}
			order.Items = append(order.Items, item)
		}

		result.Order = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.Clear()
	s.notify(&result.Order)
	return result, nil
}

// Prefill returns the buyer contact snapshot of the user's most recent order,
// or nil when there is none.
func (s *Service) Prefill(userID uint) (*BuyerForm, error) {
	order, err := s.store.LatestOrderForUser(userID)
	if err != nil || order == nil {
		return nil, err
	}
	return &BuyerForm{
		FullName: order.FullName,
		Email:    order.Email,
		Address:  order.Address,
		City:     order.City,
	}, nil
}

// notify fires the confirmation mail to the buyer and a copy to the store
// contact address. Failures never surface or roll anything back.
func (s *Service) notify(order *models.Order) {
	cfg := settings.Get()
	subject := fmt.Sprintf("%s — order #%d confirmed", cfg.StoreName, order.ID)
	body := fmt.Sprintf(
		"Hello %s,\n\nyour order #%d was received. Total: %s.\n\nThank you!",
		order.FullName, order.ID, order.TotalPrice.StringFixed(2),
	)
	mailer.BestEffort(s.sender, subject, body, cfg.FromEmail, []string{order.Email})

	adminSubject := fmt.Sprintf("New order #%d (%s)", order.ID, order.TotalPrice.StringFixed(2))
	mailer.BestEffort(s.sender, adminSubject, body, cfg.FromEmail, []string{cfg.ContactEmail})
}
