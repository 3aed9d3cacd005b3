package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vedant1418/the-arabian/src/db"
	"github.com/vedant1418/the-arabian/src/lib"
	"github.com/vedant1418/the-arabian/src/lib/mailer"
	"github.com/vedant1418/the-arabian/src/models"
	"github.com/vedant1418/the-arabian/src/types"
	"github.com/vedant1418/the-arabian/src/utils"
	"gorm.io/gorm"
)

func flowErrorStatus(err error) int {
	var fe *types.FlowError
	if errors.As(err, &fe) {
		switch fe.Kind {
		case types.ErrKindValidation:
			return http.StatusBadRequest
		case types.ErrKindNotFound:
			return http.StatusNotFound
		case types.ErrKindGateway:
			return http.StatusBadGateway
		case types.ErrKindPersistence:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

// confirmPayment records the gateway confirmation: Payment row, booking
// flipped to Paid. The receipt email happens after commit.
func confirmPayment(body *types.ConfirmPaymentRequestBody) (*models.Booking, error) {
	conn := db.GetDb()
	var booking models.Booking
	err := conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: body.BookingID}).
			Preload("Resort").
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFoundError("booking %d does not exist", body.BookingID)
			}
			return types.NewPersistenceError(err)
		}
		amount := booking.AdvancePaid
		if amount == 0 {
			amount = booking.TotalPrice
		}
		method := body.PaymentMethod
		if method == "" {
			method = "Online"
		}
		payment := models.Payment{
			BookingID:     booking.ID,
			PaymentID:     body.PaymentID,
			PaymentMethod: method,
			AmountPaid:    amount,
		}
		if err := tx.Create(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return types.NewValidationError("payment already recorded for booking %d", booking.ID)
			}
			return types.NewPersistenceError(err)
		}
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: booking.ID}).
			Updates(map[string]any{
				"payment_status": types.PAYMENT_PAID,
				"booking_status": types.BOOKING_PAID,
			}).Error; err != nil {
			return types.NewPersistenceError(err)
		}
		booking.PaymentStatus = types.PAYMENT_PAID
		booking.BookingStatus = types.BOOKING_PAID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func paymentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/payments/confirm", func(ctx *gin.Context) {
			var body types.ConfirmPaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := confirmPayment(&body)
			if err != nil {
				log.Printf("Could not confirm payment for Booking [%d]: %s\n", body.BookingID, err.Error())
				ctx.JSON(flowErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			if receipt, err := lib.BuildReceiptPDF(utils.ReceiptDataFor(booking)); err != nil {
				log.Printf("Error rendering receipt for Booking [%d]: %s\n", booking.ID, err.Error())
			} else if err := mailer.SendReceiptEmail(booking.GuestEmail, booking.ID, receipt); err != nil {
				log.Printf("Error sending receipt for Booking [%d]: %s\n", booking.ID, err.Error())
			}
			ctx.JSON(http.StatusOK, gin.H{"status": "Payment confirmed", "booking_id": booking.ID})
		})
	return g
}

// refundHandlers processes full refunds of the collected amount. The flow is
// idempotent: a second request reports a no-op instead of refunding twice.
func refundHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings/:id/refund", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			email := ctx.GetString("email")
			conn := db.GetDb()

			var booking models.Booking
			if err := conn.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: params.ID}).
				First(&booking).
				Error; err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			if booking.GuestEmail != email {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "This booking does not belong to your account."})
				return
			}

			var payment models.Payment
			alreadyRefunded := false
			err := conn.Transaction(func(tx *gorm.DB) error {
				err := tx.
					Model(&models.Payment{}).
					Where(&models.Payment{BookingID: booking.ID}).
					First(&payment).
					Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Advance-only booking: synthesize the payment row so the
					// refund bookkeeping has something to attach to.
					paymentId := "ADVANCE_ONLY"
					if booking.PaymentOrderID != nil {
						paymentId = *booking.PaymentOrderID
					}
					payment = models.Payment{
						BookingID:     booking.ID,
						PaymentID:     paymentId,
						PaymentMethod: "Online / Partial",
						AmountPaid:    booking.AdvancePaid,
					}
					if err := tx.Create(&payment).Error; err != nil {
						return err
					}
				} else if err != nil {
					return err
				}

				if payment.Refunded {
					alreadyRefunded = true
					return nil
				}

				now := time.Now()
				amount := payment.AmountPaid
				if err := tx.
					Model(&models.Payment{}).
					Where(&models.Payment{ID: payment.ID}).
					Updates(map[string]any{
						"refunded":      true,
						"refund_amount": amount,
						"refund_date":   now,
					}).Error; err != nil {
					return err
				}
				payment.Refunded = true
				payment.RefundAmount = &amount
				payment.RefundDate = &now

				return tx.
					Model(&models.Booking{}).
					Where(&models.Booking{ID: booking.ID}).
					Updates(map[string]any{
						"payment_status": types.PAYMENT_REFUNDED,
						"booking_status": types.BOOKING_CANCELED,
					}).Error
			})
			if err != nil {
				log.Printf("Could not process refund for Booking [%d]: %s\n", booking.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			if alreadyRefunded {
				ctx.JSON(http.StatusOK, gin.H{"status": "already_refunded", "message": "Refund already processed."})
				return
			}

			// Gateway-side reversal is best effort; local bookkeeping stays
			// authoritative for advance-only bookings.
			if booking.PaymentOrderID != nil {
				if _, err := lib.RefundPaymentOrder(*booking.PaymentOrderID); err != nil {
					log.Printf("Gateway refund failed for order [%s]: %s\n", *booking.PaymentOrderID, err.Error())
				}
			}
			if err := mailer.SendRefundEmail(booking.GuestEmail, payment.AmountPaid); err != nil {
				log.Printf("Error sending refund email for Booking [%d]: %s\n", booking.ID, err.Error())
			}

			ctx.JSON(http.StatusOK, gin.H{"status": "refunded", "refund_amount": payment.AmountPaid})
		})
	return g
}
