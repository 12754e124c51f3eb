package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCanceled  OrderStatus = "canceled"
)

type Order struct {
	ID     uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID *uint `gorm:"index" json:"user_id"` // nullable: anonymous checkout

	// Buyer contact snapshot, immutable after creation.
	FullName string `gorm:"not null" json:"full_name"`
	Email    string `gorm:"not null" json:"email"`
	Address  string `gorm:"not null" json:"address"`
	City     string `gorm:"not null" json:"city"`

	Paid       bool        `gorm:"default:false" json:"paid"`
	Status     OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"total_price"`

	PaymentMethodID  *uint `json:"payment_method_id"`
	ShippingMethodID *uint `json:"shipping_method_id"`

	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint            `gorm:"index" json:"order_id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	VariantName string          `json:"variant_name"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	Quantity    int             `gorm:"default:1" json:"quantity"`
}

// Cost is the line total: snapshotted unit price times quantity.
func (i OrderItem) Cost() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type PaymentMethod struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

type ShippingMethod struct {
	ID       uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string          `gorm:"not null" json:"name"`
	Price    decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	IsActive bool            `gorm:"default:true" json:"is_active"`
}
