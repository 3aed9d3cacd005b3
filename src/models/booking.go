package models

import (
	"time"

	"github.com/vedant1418/the-arabian/src/types"
)

type Booking struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     *uint     `json:"user_id,omitempty"`
	ResortID   uint      `json:"resort_id"`
	GuestName  string    `json:"guest_name"`
	GuestEmail string    `gorm:"index" json:"guest_email"`
	GuestPhone string    `json:"guest_phone"`
	CheckIn    time.Time `gorm:"type:date" json:"check_in"`
	CheckOut   time.Time `gorm:"type:date" json:"check_out"`
	Guests     uint      `json:"guests"`

	TotalPrice    float64 `json:"total_price"`
	AdvancePaid   float64 `json:"advance_paid"`
	PendingAmount float64 `json:"pending_amount"`

	BookingStatus  string  `gorm:"default:Pending" json:"booking_status"`
	PaymentStatus  string  `gorm:"default:Pending" json:"payment_status"`
	PaymentOrderID *string `json:"payment_order_id,omitempty"`

	QRCode          string `json:"qr_code,omitempty"`
	CheckinVerified bool   `json:"checkin_verified"`

	// Storage-level backstop for the duplicate-submission window.
	DedupeKey *string `gorm:"uniqueIndex" json:"-"`

	Resort    *Resort  `gorm:"foreignKey:resort_id" json:"resort,omitempty"`
	User      *User    `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Payment   *Payment `gorm:"foreignKey:booking_id" json:"payment,omitempty"`
	GuestList []Guest  `gorm:"foreignKey:booking_id" json:"guest_list,omitempty"`

	types.Timestamps
}
