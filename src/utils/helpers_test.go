package utils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v82"
	"github.com/vedant1418/the-arabian/src/db"
	"github.com/vedant1418/the-arabian/src/lib"
	"github.com/vedant1418/the-arabian/src/models"
	"github.com/vedant1418/the-arabian/src/types"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	assert.Nil(t, err)
	return d
}

func TestNights(t *testing.T) {
	assert.Equal(t, 2, Nights(date(t, "2026-09-01"), date(t, "2026-09-03")))
	assert.Equal(t, 1, Nights(date(t, "2026-09-01"), date(t, "2026-09-02")))

	// Same-day stays still bill one night
	assert.Equal(t, 1, Nights(date(t, "2026-09-01"), date(t, "2026-09-01")))
}

func TestTotalPrice(t *testing.T) {
	total := TotalPrice(1000, 2, 2)
	assert.Equal(t, float64(4000), total)

	assert.Equal(t, float64(1500), TotalPrice(500, 3, 1))
}

func TestAdvanceAndPending(t *testing.T) {
	advance := AdvanceAmount(3)
	assert.Equal(t, float64(150), advance)

	total := TotalPrice(1000, 3, 2)
	pending := total - advance
	assert.Equal(t, total, advance+pending)
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(100000), MinorUnits(1000))
	assert.Equal(t, int64(15050), MinorUnits(150.50))
	assert.Equal(t, int64(10), MinorUnits(0.1))
}

func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		password string
		message  string
	}{
		{"Ab1@", "Password must be at least 8 characters."},
		{"abcdefg1@", "At least one uppercase letter required."},
		{"ABCDEFG1@", "At least one lowercase letter required."},
		{"Abcdefgh@", "Password must contain a number."},
		{"Abcdefg1", "Password must contain a special character."},
		{"abcdefgh", "At least one uppercase letter required."},
	}
	for _, c := range cases {
		err := ValidatePasswordStrength(c.password)
		assert.NotNil(t, err)
		assert.Equal(t, c.message, err.Error())
	}

	assert.Nil(t, ValidatePasswordStrength("Abcdefg1@"))
	assert.Nil(t, ValidatePasswordStrength("S3cure&Pass"))
}

func TestGenerateOTP(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}$`)
	for range 20 {
		code, err := GenerateOTP()
		assert.Nil(t, err)
		assert.Regexp(t, pattern, code)

		n, err := strconv.Atoi(code)
		assert.Nil(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestBookingDedupeKey(t *testing.T) {
	checkIn := date(t, "2026-09-01")
	checkOut := date(t, "2026-09-03")
	at := time.Unix(1_700_000_000, 0)

	k1 := BookingDedupeKey(1, 2, checkIn, checkOut, at)
	k2 := BookingDedupeKey(1, 2, checkIn, checkOut, at.Add(5*time.Second))
	assert.Equal(t, k1, k2, "submissions inside the window should collide")

	k3 := BookingDedupeKey(1, 2, checkIn, checkOut, at.Add(20*time.Second))
	assert.NotEqual(t, k1, k3, "submissions in a later window should not collide")

	k4 := BookingDedupeKey(2, 2, checkIn, checkOut, at)
	assert.NotEqual(t, k1, k4)

	k5 := BookingDedupeKey(1, 3, checkIn, checkOut, at)
	assert.NotEqual(t, k1, k5)
}

func newBookingMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	conn, mock, err := sqlmock.New()
	assert.Nil(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		TranslateError: true,
	})
	assert.Nil(t, err)
	db.NewDB(gormDB)
	return mock
}

func bookingInputFor(t *testing.T, userId uint, resort *models.Resort) *BookingInput {
	t.Helper()
	return &BookingInput{
		UserID:     &userId,
		Resort:     resort,
		GuestName:  "Test Guest",
		GuestEmail: "guest@example.com",
		GuestPhone: "9876543210",
		CheckIn:    date(t, "2026-09-01"),
		CheckOut:   date(t, "2026-09-03"),
		Guests:     2,
	}
}

func TestCreateResortBookingReusesRecentSubmission(t *testing.T) {
	mock := newBookingMockDB(t)
	resort := &models.Resort{ID: 2, Name: "Desert Pearl", PricePerGuest: 1000}

	recent := sqlmock.NewRows([]string{"id", "user_id", "resort_id", "total_price", "created_at"}).
		AddRow(42, 1, 2, 4000.0, time.Now())
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).WillReturnRows(recent)
	mock.ExpectCommit()

	booking, reused, err := CreateResortBooking(bookingInputFor(t, 1, resort))
	assert.Nil(t, err)
	assert.True(t, reused)
	assert.Equal(t, uint(42), booking.ID)
	assert.Nil(t, mock.ExpectationsWereMet(), "reuse path must not insert or update")
}

func TestCreateResortBookingNewRowAfterWindow(t *testing.T) {
	tmp := t.TempDir()
	os.Setenv("TEMP_DIR", tmp)
	defer os.Unsetenv("TEMP_DIR")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"pi_test_123","object":"payment_intent"}`)
	}))
	defer srv.Close()
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL: stripe.String(srv.URL),
	})
	lib.NewStripeClient(stripe.NewClient("sk_test_123", stripe.WithBackends(&stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})))

	mock := newBookingMockDB(t)
	resort := &models.Resort{ID: 2, Name: "Desert Pearl", PricePerGuest: 1000}

	stale := sqlmock.NewRows([]string{"id", "created_at"}).
		AddRow(42, time.Now().Add(-time.Minute))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).WillReturnRows(stale)
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(43))
	mock.ExpectCommit()

	// qr_code, then payment_order_id
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booking, reused, err := CreateResortBooking(bookingInputFor(t, 1, resort))
	assert.Nil(t, err)
	assert.False(t, reused)
	assert.Equal(t, uint(43), booking.ID)
	assert.Equal(t, float64(4000), booking.TotalPrice)
	assert.Equal(t, float64(100), booking.AdvancePaid)
	assert.Equal(t, booking.TotalPrice, booking.AdvancePaid+booking.PendingAmount)
	if assert.NotNil(t, booking.PaymentOrderID) {
		assert.Equal(t, "pi_test_123", *booking.PaymentOrderID)
	}
	assert.Nil(t, mock.ExpectationsWereMet(), "unmet sqlmock expectations")
}

func TestCreateResortBookingDuplicateKeyBackstop(t *testing.T) {
	mock := newBookingMockDB(t)
	resort := &models.Resort{ID: 2, Name: "Desert Pearl", PricePerGuest: 1000}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	winner := sqlmock.NewRows([]string{"id", "user_id", "resort_id"}).
		AddRow(42, 1, 2)
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).WillReturnRows(winner)

	booking, reused, err := CreateResortBooking(bookingInputFor(t, 1, resort))
	assert.Nil(t, err)
	assert.True(t, reused)
	assert.Equal(t, uint(42), booking.ID)
	assert.Nil(t, mock.ExpectationsWereMet(), "unmet sqlmock expectations")
}

func TestGenerateJWT(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("guest@example.com", 42, true)
	assert.Nil(t, err)
	assert.NotEmpty(t, token)

	claims := &types.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	assert.Nil(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "guest@example.com", claims.Email)
	assert.True(t, claims.Staff)
	assert.Equal(t, "42", claims.Subject)
}
