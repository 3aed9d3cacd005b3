package mailer

import (
	"fmt"
	"log"
	"os"

	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/vedant1418/the-arabian/src/lib"
	awslib "github.com/vedant1418/the-arabian/src/lib/aws"
)

func deliver(input *lib.SendMailInput) error {
	if os.Getenv("SMTP_HOST") != "" {
		return lib.SendMail(input)
	}
	// SES fallback is plain text only; receipts ride SMTP.
	if len(input.Attachments) > 0 {
		log.Printf("SES fallback cannot carry %d attachment(s) for %q; sending body only\n", len(input.Attachments), input.Subject)
	}
	return awslib.SESSendMessage(
		&input.From,
		&sestypes.Destination{ToAddresses: input.To},
		&sestypes.Message{
			Subject: &sestypes.Content{Data: &input.Subject},
			Body:    &sestypes.Body{Text: &sestypes.Content{Data: &input.Body}},
		},
	)
}

func sender() string {
	return os.Getenv("EMAIL_FROM")
}

func SendReceiptEmail(to string, bookingId uint, receipt []byte) error {
	input := &lib.SendMailInput{
		From:     sender(),
		FromName: "The Arabian Resorts",
		To:       []string{to},
		Subject:  "Your Receipt",
		Body:     "Attached is your receipt.",
		Attachments: []lib.MailAttachment{
			{
				Name:        fmt.Sprintf("Receipt_%d.pdf", bookingId),
				ContentType: "application/pdf",
				Data:        receipt,
			},
		},
	}
	return deliver(input)
}

func SendOTPEmail(to string, code string) error {
	input := &lib.SendMailInput{
		From:     sender(),
		FromName: "The Arabian Resorts",
		To:       []string{to},
		Subject:  "Your Password Reset OTP - The Arabian",
		Body:     fmt.Sprintf("Your OTP for password reset is: %s", code),
	}
	return deliver(input)
}

func SendRefundEmail(to string, amount float64) error {
	input := &lib.SendMailInput{
		From:     sender(),
		FromName: "The Arabian Resorts",
		To:       []string{to},
		Subject:  "Refund Processed",
		Body:     fmt.Sprintf("Your refund of INR %.2f is processed.", amount),
	}
	return deliver(input)
}
