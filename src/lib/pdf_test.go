package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vedant1418/the-arabian/src/types"
)

func TestBuildReceiptPDF(t *testing.T) {
	data := &types.ReceiptData{
		BookingID:     7,
		GuestName:     "Test Guest",
		GuestEmail:    "guest@example.com",
		GuestPhone:    "9876543210",
		ResortName:    "Desert Pearl",
		CheckIn:       "2026-09-01",
		CheckOut:      "2026-09-03",
		Guests:        2,
		AdvancePaid:   100,
		PendingAmount: 3900,
	}
	out, err := BuildReceiptPDF(data)
	assert.Nil(t, err)
	assert.Greater(t, len(out), 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestBuildReceiptPDFMissingQRFile(t *testing.T) {
	data := &types.ReceiptData{
		BookingID: 8,
		GuestName: "Test Guest",
		QRFile:    "/nonexistent/qr_8.jpeg",
	}
	out, err := BuildReceiptPDF(data)
	assert.Nil(t, err)
	assert.Greater(t, len(out), 0)
}
