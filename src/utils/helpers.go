package utils

import (
	"context"
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math"
	"math/big"
	"os"
	"path"
	"strconv"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gosimple/slug"
	"github.com/vedant1418/the-arabian/src/config"
	"github.com/vedant1418/the-arabian/src/db"
	"github.com/vedant1418/the-arabian/src/lib"
	awslib "github.com/vedant1418/the-arabian/src/lib/aws"
	"github.com/vedant1418/the-arabian/src/models"
	"github.com/vedant1418/the-arabian/src/types"
	"github.com/yeqown/go-qrcode"
	"gorm.io/gorm"
)

// Nights floors a stay to one billable night, matching the pricing rule
// total = price_per_guest * guests * max(nights, 1).
func Nights(checkIn, checkOut time.Time) int {
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		return 1
	}
	return nights
}

func TotalPrice(pricePerGuest float64, guests uint, nights int) float64 {
	return pricePerGuest * float64(guests) * float64(nights)
}

func AdvanceAmount(guests uint) float64 {
	return config.ADVANCE_PER_GUEST * float64(guests)
}

// MinorUnits converts a currency amount to the smallest unit the gateway
// expects (paise for INR).
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

const passwordSpecials = "@$!%*?&"

func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("Password must be at least 8 characters.")
	}
	var upper, lower, digit, special bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsLower(c):
			lower = true
		case unicode.IsDigit(c):
			digit = true
		}
		for _, s := range passwordSpecials {
			if c == s {
				special = true
			}
		}
	}
	if !upper {
		return errors.New("At least one uppercase letter required.")
	}
	if !lower {
		return errors.New("At least one lowercase letter required.")
	}
	if !digit {
		return errors.New("Password must contain a number.")
	}
	if !special {
		return errors.New("Password must contain a special character.")
	}
	return nil
}

func GenerateJWT(email string, id uint, staff bool) (string, error) {
	now := time.Now()
	claims := types.Claims{
		Email: email,
		Staff: staff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(id)),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// BookingDedupeKey buckets a submission tuple into the duplicate window so a
// unique index can reject concurrent duplicates.
func BookingDedupeKey(userId, resortId uint, checkIn, checkOut time.Time, at time.Time) string {
	bucket := at.Unix() / config.DUPLICATE_BOOKING_WINDOW_SECONDS
	raw := fmt.Sprintf("%d|%d|%s|%s|%d",
		userId,
		resortId,
		checkIn.Format(config.DATE_PARSE_FORMAT),
		checkOut.Format(config.DATE_PARSE_FORMAT),
		bucket,
	)
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func tempDir() string {
	if dir := os.Getenv("TEMP_DIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}

// CheckinURL is the payload encoded in the booking QR; visiting it flips the
// one-way verified flag.
func CheckinURL(bookingId uint) string {
	baseURL := os.Getenv("BASE_URL")
	return fmt.Sprintf("%s/api/v1/bookings/%d/checkin", baseURL, bookingId)
}

// EnsureCheckinQRFile writes the booking QR to a stable temp path, creating
// it when missing, and returns the local file path. Receipts embed this file.
func EnsureCheckinQRFile(bookingId uint) (string, error) {
	filePath := path.Join(tempDir(), fmt.Sprintf("qr_%d.jpeg", bookingId))
	if _, err := os.Stat(filePath); err == nil {
		return filePath, nil
	}
	qrc, err := qrcode.New(CheckinURL(bookingId))
	if err != nil {
		return "", err
	}
	if err := qrc.Save(filePath); err != nil {
		log.Printf("Could not save qrcode to file [%s]: %s\n", filePath, err.Error())
		return "", err
	}
	return filePath, nil
}

// GenerateCheckinQR renders the QR image and publishes it: S3 presigned URL
// in deployed environments, local file path otherwise.
func GenerateCheckinQR(bookingId uint) (string, error) {
	filePath, err := EnsureCheckinQRFile(bookingId)
	if err != nil {
		return "", err
	}
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" || appEnv == "local" {
		return filePath, nil
	}
	objectKey := fmt.Sprintf("%s-qr-%d.jpeg", slug.Make("booking"), bookingId)
	url, err := awslib.S3UploadAsset(objectKey, filePath, "image/jpeg")
	if err != nil {
		log.Printf("Error uploading asset to S3 bucket: %s\n", err.Error())
		return "", err
	}
	if rd := lib.GetRedisClient(); rd != nil {
		rd.SetEx(context.Background(), objectKey, *url, 2*time.Hour)
	}
	return *url, nil
}

var errDedupeRace = errors.New("duplicate booking submission")

type BookingInput struct {
	UserID     *uint
	Resort     *models.Resort
	GuestName  string
	GuestEmail string
	GuestPhone string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     uint
}

// CreateResortBooking runs the booking engine: dedupe window, pricing, row
// creation, QR generation and payment-order opening for the advance. The
// reused flag reports when an identical recent submission was returned
// instead of a new row.
func CreateResortBooking(in *BookingInput) (*models.Booking, bool, error) {
	if !in.CheckOut.After(in.CheckIn) {
		return nil, false, types.NewValidationError("check-out must be after check-in")
	}
	nights := Nights(in.CheckIn, in.CheckOut)
	total := TotalPrice(in.Resort.PricePerGuest, in.Guests, nights)
	var advance float64
	if in.UserID != nil {
		advance = AdvanceAmount(in.Guests)
	}
	pending := total - advance

	conn := db.GetDb()
	var booking models.Booking
	reused := false
	err := conn.Transaction(func(tx *gorm.DB) error {
		if in.UserID != nil {
			var last models.Booking
			err := tx.
				Model(&models.Booking{}).
				Where(&models.Booking{
					UserID:   in.UserID,
					ResortID: in.Resort.ID,
					CheckIn:  in.CheckIn,
					CheckOut: in.CheckOut,
				}).
				Order("id DESC").
				First(&last).
				Error
			if err == nil && time.Since(last.CreatedAt) < config.DUPLICATE_BOOKING_WINDOW_SECONDS*time.Second {
				booking = last
				reused = true
				return nil
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		booking = models.Booking{
			UserID:        in.UserID,
			ResortID:      in.Resort.ID,
			GuestName:     in.GuestName,
			GuestEmail:    in.GuestEmail,
			GuestPhone:    in.GuestPhone,
			CheckIn:       in.CheckIn,
			CheckOut:      in.CheckOut,
			Guests:        in.Guests,
			TotalPrice:    total,
			AdvancePaid:   advance,
			PendingAmount: pending,
			BookingStatus: types.BOOKING_PENDING,
			PaymentStatus: types.PAYMENT_PENDING,
		}
		if in.UserID != nil {
			key := BookingDedupeKey(*in.UserID, in.Resort.ID, in.CheckIn, in.CheckOut, time.Now())
			booking.DedupeKey = &key
		}
		if err := tx.Create(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) && booking.DedupeKey != nil {
				return errDedupeRace
			}
			return types.NewPersistenceError(err)
		}
		return nil
	})
	if errors.Is(err, errDedupeRace) {
		// Lost the race inside the window: the unique violation aborted the
		// transaction, so hand back the winner from a fresh query.
		if ferr := conn.
			Where("dedupe_key = ?", *booking.DedupeKey).
			First(&booking).
			Error; ferr != nil {
			return nil, false, types.NewPersistenceError(ferr)
		}
		return &booking, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	if reused {
		return &booking, true, nil
	}

	qrUrl, err := GenerateCheckinQR(booking.ID)
	if err != nil {
		log.Printf("Error generating QR for Booking [%d]: %s\n", booking.ID, err.Error())
	} else if err := conn.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: booking.ID}).
		Update("qr_code", qrUrl).
		Error; err != nil {
		log.Printf("Error storing QR for Booking [%d]: %s\n", booking.ID, err.Error())
	} else {
		booking.QRCode = qrUrl
	}

	if advance > 0 {
		orderId, err := lib.CreatePaymentOrder(MinorUnits(advance), config.CURRENCY, true)
		if err != nil {
			return nil, false, types.NewGatewayError(err)
		}
		if err := conn.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: booking.ID}).
			Update("payment_order_id", orderId).
			Error; err != nil {
			return nil, false, types.NewPersistenceError(err)
		}
		booking.PaymentOrderID = &orderId
	}
	return &booking, false, nil
}

// ReceiptDataFor flattens a booking (with Resort preloaded) for the PDF
// renderer, materializing the QR image locally first.
func ReceiptDataFor(booking *models.Booking) *types.ReceiptData {
	qrFile, err := EnsureCheckinQRFile(booking.ID)
	if err != nil {
		log.Printf("Could not materialize QR for Booking [%d]: %s\n", booking.ID, err.Error())
		qrFile = ""
	}
	resortName := ""
	if booking.Resort != nil {
		resortName = booking.Resort.Name
	}
	return &types.ReceiptData{
		BookingID:     booking.ID,
		GuestName:     booking.GuestName,
		GuestEmail:    booking.GuestEmail,
		GuestPhone:    booking.GuestPhone,
		ResortName:    resortName,
		CheckIn:       booking.CheckIn.Format(config.DATE_PARSE_FORMAT),
		CheckOut:      booking.CheckOut.Format(config.DATE_PARSE_FORMAT),
		Guests:        booking.Guests,
		AdvancePaid:   booking.AdvancePaid,
		PendingAmount: booking.PendingAmount,
		QRFile:        qrFile,
	}
}
