package lib

import (
	"bytes"
	"fmt"
	"os"
	"path"

	"github.com/go-pdf/fpdf"
	"github.com/vedant1418/the-arabian/src/types"
)

// BuildReceiptPDF draws the booking receipt: header, guest info, stay
// details, payment summary and the check-in QR on the right.
func BuildReceiptPDF(data *types.ReceiptData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	y := 20.0

	logoPath := path.Join("static", "images", "logo.png")
	if _, err := os.Stat(logoPath); err == nil {
		pdf.ImageOptions(logoPath, 15, y, 40, 0, false, fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(65, y+10, "The Arabian Resorts")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(65, y+17, "Premium Resort Booking Receipt")

	y += 40
	pdf.Line(15, y, 195, y)
	y += 12

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(15, y, "Booking Receipt")
	y += 10
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Text(15, y, fmt.Sprintf("Booking ID: #%d", data.BookingID))
	y += 12

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(15, y, "Guest Information")
	y += 7
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(15, y, fmt.Sprintf("Name: %s", data.GuestName))
	y += 6
	pdf.Text(15, y, fmt.Sprintf("Email: %s", data.GuestEmail))
	y += 6
	pdf.Text(15, y, fmt.Sprintf("Phone: %s", data.GuestPhone))
	y += 12

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(15, y, "Stay Details")
	y += 7
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(15, y, fmt.Sprintf("Resort: %s", data.ResortName))
	y += 6
	pdf.Text(15, y, fmt.Sprintf("Check-in: %s", data.CheckIn))
	y += 6
	pdf.Text(15, y, fmt.Sprintf("Check-out: %s", data.CheckOut))
	y += 6
	pdf.Text(15, y, fmt.Sprintf("Guests: %d", data.Guests))
	y += 12

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(15, y, "Payment Summary")
	y += 7
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(15, y, fmt.Sprintf("Advance Paid: INR %.2f", data.AdvancePaid))
	y += 6
	pdf.Text(15, y, fmt.Sprintf("Pending at Check-in: INR %.2f", data.PendingAmount))

	if data.QRFile != "" {
		if _, err := os.Stat(data.QRFile); err == nil {
			pdf.ImageOptions(data.QRFile, 145, y-20, 45, 45, false, fpdf.ImageOptions{ImageType: "JPG", ReadDpi: true}, 0, "")
		}
	}
	y += 55

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(15, y, "Thank you for choosing The Arabian Resorts!")
	y += 6
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(15, y, "This receipt serves as proof of advance booking payment.")
	y += 5
	pdf.Text(15, y, "Show the QR code at the resort for smooth check-in.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
