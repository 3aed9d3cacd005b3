package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vedant1418/the-arabian/src/config"
	"github.com/vedant1418/the-arabian/src/db"
	"github.com/vedant1418/the-arabian/src/lib"
	"github.com/vedant1418/the-arabian/src/models"
	"github.com/vedant1418/the-arabian/src/types"
	"github.com/vedant1418/the-arabian/src/utils"
	"gorm.io/gorm"
)

func findResort(id uint) (*models.Resort, error) {
	conn := db.GetDb()
	var resort models.Resort
	if err := conn.
		Model(&models.Resort{}).
		Where(&models.Resort{ID: id}).
		First(&resort).
		Error; err != nil {
		return nil, err
	}
	return &resort, nil
}

func parseStayDates(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := time.Parse(config.DATE_PARSE_FORMAT, checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	out, err := time.Parse(config.DATE_PARSE_FORMAT, checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return in, out, nil
}

// bookingHandlers covers the authenticated booking flow: create with advance
// payment, history, detail and cancellation.
func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/resorts/:id/bookings", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.BookResortRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			resort, err := findResort(params.ID)
			if err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			checkIn, checkOut, err := parseStayDates(body.CheckIn, body.CheckOut)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			booking, reused, err := utils.CreateResortBooking(&utils.BookingInput{
				UserID:     &userId,
				Resort:     resort,
				GuestName:  body.GuestName,
				GuestEmail: ctx.GetString("email"),
				GuestPhone: body.GuestPhone,
				CheckIn:    checkIn,
				CheckOut:   checkOut,
				Guests:     body.Guests,
			})
			if err != nil {
				log.Printf("Could not create booking: %s\n", err.Error())
				ctx.JSON(flowErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			status := http.StatusCreated
			if reused {
				status = http.StatusOK
			}
			ctx.JSON(status, gin.H{"data": booking, "reused": reused})
		}).
		GET("/bookings", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			conn := db.GetDb()
			var bookings []models.Booking
			if err := conn.
				Model(&models.Booking{}).
				Where("user_id = ?", userId).
				Preload("Resort").
				Order("id DESC").
				Find(&bookings).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			conn := db.GetDb()
			var booking models.Booking
			if err := conn.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: params.ID}).
				Preload("Resort").
				Preload("Payment").
				Preload("GuestList").
				First(&booking).
				Error; err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			if booking.UserID == nil || *booking.UserID != userId {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "This booking does not belong to your account."})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/bookings/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
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
			if booking.UserID == nil || *booking.UserID != userId {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "This booking does not belong to your account."})
				return
			}
			if booking.BookingStatus == types.BOOKING_CANCELED {
				ctx.JSON(http.StatusOK, gin.H{"status": "already_cancelled", "message": "This booking is already cancelled."})
				return
			}
			if booking.PaymentStatus == types.PAYMENT_PAID {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Paid bookings cannot be cancelled directly. Please request a refund."})
				return
			}
			if err := conn.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: booking.ID}).
				Update("booking_status", types.BOOKING_CANCELED).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"status": "cancelled", "message": "Booking cancelled successfully."})
		})
	return g
}

// publicBookingHandlers carries the unauthenticated surface: the JSON booking
// API, QR check-in verification and the receipt download.
func publicBookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			resort, err := findResort(body.ResortID)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("resort %d does not exist", body.ResortID)})
				return
			}
			checkIn, checkOut, err := parseStayDates(body.CheckIn, body.CheckOut)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, _, err := utils.CreateResortBooking(&utils.BookingInput{
				Resort:     resort,
				GuestName:  body.GuestName,
				GuestEmail: body.GuestEmail,
				GuestPhone: body.GuestPhone,
				CheckIn:    checkIn,
				CheckOut:   checkOut,
				Guests:     body.Guests,
			})
			if err != nil {
				log.Printf("Could not create booking: %s\n", err.Error())
				ctx.JSON(flowErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"booking_id": booking.ID, "amount": booking.TotalPrice})
		}).
		GET("/bookings/:id/checkin", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			conn := db.GetDb()
			var booking models.Booking
			if err := conn.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: params.ID}).
				First(&booking).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if booking.CheckinVerified {
				ctx.JSON(http.StatusOK, gin.H{"status": "already_checked_in", "message": "Already Checked-In"})
				return
			}
			if err := conn.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: booking.ID}).
				Update("checkin_verified", true).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"status": "checked_in", "message": "Check-In Successful"})
		}).
		GET("/bookings/:id/receipt", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			conn := db.GetDb()
			var booking models.Booking
			if err := conn.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: params.ID}).
				Preload("Resort").
				First(&booking).
				Error; err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			receipt, err := lib.BuildReceiptPDF(utils.ReceiptDataFor(&booking))
			if err != nil {
				log.Printf("Error rendering receipt for Booking [%d]: %s\n", booking.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not render receipt"})
				return
			}
			ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=Receipt_%d.pdf", booking.ID))
			ctx.Data(http.StatusOK, "application/pdf", receipt)
		})
	return g
}
