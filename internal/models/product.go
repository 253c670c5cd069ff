package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the store catalog. The price on the
// product is the current catalog price; orders snapshot it at purchase time.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Image       string          `json:"image,omitempty"`
	CategoryID  *string         `json:"category_id,omitempty" gorm:"type:varchar(36)"`
	Category    *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	gorm.Model                  // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
