package models

import "time"

// TimeRange is one day's opening window ("11:00" – "23:00").
type TimeRange struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// OpeningHours maps a lowercase weekday name to its opening window.
type OpeningHours map[string]TimeRange

type Restaurant struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	Name         string       `json:"name" gorm:"not null"`
	Description  string       `json:"description"`
	Address      string       `json:"address"`
	Phone        string       `json:"phone"`
	Email        string       `json:"email"`
	Cuisine      []string     `json:"cuisine" gorm:"serializer:json"`
	OpeningHours OpeningHours `json:"opening_hours" gorm:"serializer:json"`
	TotalTables  int          `json:"total_tables"`
	MenuItems    []MenuItem   `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type MenuItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Price        float64   `json:"price" gorm:"not null"`
	IsAvailable  bool      `json:"is_available" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
