package types

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

const (
	BOOKING_PENDING  = "Pending"
	BOOKING_PAID     = "Paid"
	BOOKING_CANCELED = "Cancelled"

	PAYMENT_PENDING  = "Pending"
	PAYMENT_PAID     = "Paid"
	PAYMENT_REFUNDED = "Refunded"
)

// ErrorKind classifies failures in the booking/payment flow so handlers can
// map them to a response instead of collapsing everything into one status.
type ErrorKind int

const (
	ErrKindValidation ErrorKind = iota + 1
	ErrKindNotFound
	ErrKindGateway
	ErrKindPersistence
)

type FlowError struct {
	Kind ErrorKind
	Err  error
}

func (e *FlowError) Error() string {
	return e.Err.Error()
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

func NewValidationError(format string, args ...any) *FlowError {
	return &FlowError{Kind: ErrKindValidation, Err: fmt.Errorf(format, args...)}
}

func NewNotFoundError(format string, args ...any) *FlowError {
	return &FlowError{Kind: ErrKindNotFound, Err: fmt.Errorf(format, args...)}
}

func NewGatewayError(err error) *FlowError {
	return &FlowError{Kind: ErrKindGateway, Err: fmt.Errorf("payment gateway: %w", err)}
}

func NewPersistenceError(err error) *FlowError {
	return &FlowError{Kind: ErrKindPersistence, Err: err}
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type ResortURIParams struct {
	ResortID uint `uri:"resortId" binding:"required"`
}

type ResortQueryFilters struct {
	Location string `form:"location"`
	Search   string `form:"search"`
}

// BookResortRequestBody is the authenticated booking form. The guest email
// always comes from the logged-in account.
type BookResortRequestBody struct {
	GuestName  string `json:"guest_name" binding:"required"`
	GuestPhone string `json:"guest_phone" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required,staydate"`
	CheckOut   string `json:"check_out" binding:"required,staydate,gtdate=CheckIn"`
	Guests     uint   `json:"guests" binding:"required,min=1"`
}

// CreateBookingRequestBody is the public JSON variant with full contact info.
type CreateBookingRequestBody struct {
	ResortID   uint   `json:"resort_id" binding:"required"`
	GuestName  string `json:"guest_name" binding:"required"`
	GuestEmail string `json:"guest_email" binding:"required,email"`
	GuestPhone string `json:"phone" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required,staydate"`
	CheckOut   string `json:"check_out" binding:"required,staydate,gtdate=CheckIn"`
	Guests     uint   `json:"guests" binding:"required,min=1"`
}

type ConfirmPaymentRequestBody struct {
	BookingID     uint   `json:"booking_id" binding:"required"`
	PaymentID     string `json:"payment_id" binding:"required"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

type RegisterUserRequestBody struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type PasswordResetRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

type PasswordResetVerifyBody struct {
	ResetToken string `json:"reset_token" binding:"required"`
	OTP        string `json:"otp" binding:"required,len=6"`
}

type PasswordResetCompleteBody struct {
	ResetToken      string `json:"reset_token" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// ResetFlowState is the server-side state for the three-step password reset,
// stored in redis under reset:{token} with a short TTL.
type ResetFlowState struct {
	UserID      uint `json:"user_id"`
	OTPVerified bool `json:"otp_verified"`
}

// ReceiptData carries the booking fields the PDF renderer needs, so lib does
// not depend on models.
type ReceiptData struct {
	BookingID     uint
	GuestName     string
	GuestEmail    string
	GuestPhone    string
	ResortName    string
	CheckIn       string
	CheckOut      string
	Guests        uint
	AdvancePaid   float64
	PendingAmount float64
	QRFile        string
}
