package models

// Category is static reference data used to group products.
type Category struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name string `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
}
