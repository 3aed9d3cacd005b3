package models

import "github.com/vedant1418/the-arabian/src/types"

type User struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	Name         string `json:"name,omitempty"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	Phone        string `gorm:"uniqueIndex" json:"phone,omitempty"`
	PasswordHash string `json:"-"`
	Staff        bool   `json:"staff,omitempty"`

	Bookings []Booking  `gorm:"foreignKey:user_id" json:"bookings,omitempty"`
	Wishlist []Wishlist `gorm:"foreignKey:user_id" json:"wishlist,omitempty"`

	types.Timestamps
}
