package repositories

import (
	"sort"
	"sync"
	"time"

	"minishop/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// IDs are assigned sequentially under the lock, so concurrent creates get
// distinct, increasing IDs just like the database-backed implementation.
type MockOrderRepository struct {
	orders map[uint]models.Order
	nextID uint
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[uint]models.Order),
		nextID: 1,
	}
}

// Create adds a new order, assigning the next sequential ID.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++
	if order.Status == "" {
		order.Status = "pending"
	}
	order.CreatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	return &order, nil
}

// ListByUser returns all orders for a user, most recent first.
func (r *MockOrderRepository) ListByUser(userID int) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			orderList = append(orderList, order)
		}
	}
	sort.Slice(orderList, func(i, j int) bool {
		if orderList[i].CreatedAt.Equal(orderList[j].CreatedAt) {
			return orderList[i].ID > orderList[j].ID
		}
		return orderList[i].CreatedAt.After(orderList[j].CreatedAt)
	})
	return orderList, nil
}
