package models

import "github.com/vedant1418/the-arabian/src/types"

type Guest struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	BookingID uint   `json:"booking_id"`
	FullName  string `json:"full_name"`
	Age       uint   `json:"age"`

	types.Timestamps
}
