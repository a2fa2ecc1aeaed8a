package repositories

import (
	"minishop/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// created once and never updated or deleted.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	ListByUser(userID int) ([]models.Order, error)
}
