package models

import "time"

type Review struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	User         *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Rating       int       `json:"rating" gorm:"not null"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}
