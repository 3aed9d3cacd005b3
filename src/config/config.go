package config

import (
	"fmt"
	"os"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const DATE_PARSE_FORMAT = "2006-01-02"

const (
	// Advance collected per guest at booking time; the remainder is due at check-in.
	ADVANCE_PER_GUEST float64 = 50

	CURRENCY = "inr"

	// Identical (user, resort, check_in, check_out) submissions inside this
	// window reuse the existing booking instead of creating a new row.
	DUPLICATE_BOOKING_WINDOW_SECONDS = 10

	// Reset OTPs older than this are no longer accepted.
	OTP_TTL_MINUTES = 10
)
