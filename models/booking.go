package models

import "time"

// BookingStatus represents all possible states of a table reservation
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type Booking struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	UserID          uint          `json:"user_id" gorm:"not null;index"`
	RestaurantID    uint          `json:"restaurant_id" gorm:"not null;index"`
	Restaurant      *Restaurant   `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	BookingDate     time.Time     `json:"booking_date" gorm:"not null"`
	NumberOfGuests  int           `json:"number_of_guests" gorm:"not null"`
	SpecialRequests string        `json:"special_requests"`
	Status          BookingStatus `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
