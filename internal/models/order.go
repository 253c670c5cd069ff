package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an immutable record of a successful checkout. The status is a
// free-text label written once at placement and never updated afterwards.
type Order struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string          `json:"user_id" gorm:"index;type:varchar(36)"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2)"`
	Status      string          `json:"status" gorm:"type:varchar(100)"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderItem is a single line of an order. Price is the unit price at
// purchase time and must not change if the catalog price later does.
type OrderItem struct {
	ID        uint            `json:"-" gorm:"primaryKey"`
	OrderID   string          `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string          `json:"product_id" gorm:"type:varchar(36)"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`

	// ProductName is filled by the display join against the catalog; it is
	// empty when the product no longer exists.
	ProductName string `json:"product_name" gorm:"->;-:migration"`
}

// Subtotal returns quantity times unit price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
