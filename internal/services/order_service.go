package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"minishop/internal/models"
	"minishop/internal/repositories"

	"github.com/google/uuid"
)

// UserVerifier checks that a user exists in the user directory.
type UserVerifier interface {
	VerifyUser(ctx context.Context, userID int) error
}

// EventPublisher publishes order events to the message broker.
type EventPublisher interface {
	Publish(body []byte) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	verifier  UserVerifier
	publisher EventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil, in
// which case order events are not published.
func NewOrderService(orderRepo repositories.OrderRepository, verifier UserVerifier, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		verifier:  verifier,
		publisher: publisher,
	}
}

// CreateOrder verifies the referenced user exists, computes the total, and
// persists the order. The existence check is a synchronous remote call made
// before any write; a failed create therefore leaves no partial record.
// There is no transaction spanning the check and the insert, so a user
// deleted in between can still end up with an order. That window is a known
// gap, inherited from the check-then-write contract.
func (s *OrderService) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	if err := s.verifier.VerifyUser(ctx, req.UserID); err != nil {
		log.Printf("User verification failed for user %d: %v", req.UserID, err)
		return nil, models.ErrInvalidUser
	}

	order := &models.Order{
		UserID:      req.UserID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Price:       req.Price,
		TotalPrice:  float64(req.Quantity) * req.Price,
		Status:      "pending",
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishOrderCreated(order)

	return order, nil
}

// publishOrderCreated emits an order.created event. Failures are logged and
// swallowed: the order is already persisted and event delivery is best
// effort.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.publisher == nil {
		return
	}

	event := map[string]interface{}{
		"event_id":    uuid.New().String(),
		"event_type":  "order.created",
		"order_id":    order.ID,
		"user_id":     order.UserID,
		"status":      order.Status,
		"total_price": order.TotalPrice,
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event: %v", err)
		return
	}
	if err := s.publisher.Publish(body); err != nil {
		log.Printf("Warning: failed to publish order created event for order %d: %v", order.ID, err)
		return
	}
	log.Printf("Published order created event for order %d", order.ID)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// ListOrdersByUser retrieves all orders for a user, most recent first. No
// existence check is performed: reads never depend on the user directory.
func (s *OrderService) ListOrdersByUser(userID int) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}
