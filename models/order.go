package models

import "time"

// OrderStatus represents all possible states of a menu-item order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderCancelled OrderStatus = "cancelled"
	OrderCompleted OrderStatus = "completed"
)

type Order struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	UserID       uint        `json:"user_id" gorm:"not null;index"`
	RestaurantID uint        `json:"restaurant_id" gorm:"not null;index"`
	Restaurant   *Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	BookingID    *uint       `json:"booking_id,omitempty"`
	Items        []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount  float64     `json:"total_amount"`
	Status       OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	OrderDate    time.Time   `json:"order_date"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	OrderID    uint    `json:"order_id" gorm:"not null;index"`
	MenuItemID uint    `json:"menu_item_id" gorm:"not null"`
	Quantity   int     `json:"quantity" gorm:"not null"`
	Price      float64 `json:"price" gorm:"not null"` // snapshot price at time of order
}
