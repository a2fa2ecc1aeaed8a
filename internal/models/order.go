package models

import "time"

// Order represents a customer order. IDs are assigned by the store on
// creation and are strictly increasing; TotalPrice is computed once at
// creation time and never recomputed.
type Order struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      int       `json:"user_id" gorm:"not null"`
	ProductName string    `json:"product_name" gorm:"not null"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	Price       float64   `json:"price" gorm:"not null"`
	TotalPrice  float64   `json:"total_price" gorm:"not null"`
	Status      string    `json:"status" gorm:"default:pending"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateOrderRequest is the request body for order creation.
type CreateOrderRequest struct {
	UserID      int     `json:"user_id" validate:"required"`
	ProductName string  `json:"product_name" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}
