package models

import "github.com/vedant1418/the-arabian/src/types"

type Wishlist struct {
	ID       uint `gorm:"primarykey" json:"id"`
	UserID   uint `gorm:"uniqueIndex:idx_wishlist_user_resort" json:"user_id"`
	ResortID uint `gorm:"uniqueIndex:idx_wishlist_user_resort" json:"resort_id"`

	Resort *Resort `gorm:"foreignKey:resort_id" json:"resort,omitempty"`

	types.Timestamps
}
