package models

import (
	"time"

	"github.com/vedant1418/the-arabian/src/types"
)

type Payment struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	BookingID     uint    `gorm:"uniqueIndex" json:"booking_id"`
	PaymentID     string  `json:"payment_id"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	AmountPaid    float64 `json:"amount_paid"`

	// Refunded is a one-way flag; RefundAmount never exceeds AmountPaid.
	Refunded     bool       `json:"refunded"`
	RefundAmount *float64   `json:"refund_amount,omitempty"`
	RefundDate   *time.Time `json:"refund_date,omitempty"`
	PaymentTime  time.Time  `gorm:"autoCreateTime" json:"payment_time"`

	Booking *Booking `gorm:"foreignKey:booking_id" json:"booking,omitempty"`

	types.Timestamps
}
