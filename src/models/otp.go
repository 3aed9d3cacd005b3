package models

import "github.com/vedant1418/the-arabian/src/types"

// PasswordResetOTP rows are superseded by newer ones; lookups always take the
// most recent unused code inside the validity window.
type PasswordResetOTP struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	UserID uint   `gorm:"index" json:"user_id"`
	OTP    string `json:"-"`
	IsUsed bool   `gorm:"default:false" json:"is_used"`

	User *User `gorm:"foreignKey:user_id" json:"user,omitempty"`

	types.Timestamps
}
