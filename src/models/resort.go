package models

import "github.com/vedant1418/the-arabian/src/types"

type Resort struct {
	ID            uint     `gorm:"primarykey" json:"id"`
	Name          string   `json:"name"`
	Slug          string   `gorm:"uniqueIndex" json:"slug,omitempty"`
	Location      string   `gorm:"index" json:"location"`
	Description   string   `json:"description,omitempty"`
	Amenities     string   `json:"amenities,omitempty"`
	Highlights    string   `json:"highlights,omitempty"`
	CheckInTime   string   `gorm:"default:12:00 PM" json:"check_in_time,omitempty"`
	CheckOutTime  string   `gorm:"default:10:00 AM" json:"check_out_time,omitempty"`
	PricePerGuest float64  `json:"price_per_guest"`
	Address       string   `json:"address,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Image         string   `json:"image,omitempty"`

	Bookings []Booking `gorm:"foreignKey:resort_id" json:"bookings,omitempty"`

	types.Timestamps
}
