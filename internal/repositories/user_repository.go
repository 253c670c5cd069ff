package repositories

import "lunashop/internal/models"

// UserRepository defines the interface for user data access. Users are
// created at registration and never deleted.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
