package main

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/vedant1418/the-arabian/src/db"
	awslib "github.com/vedant1418/the-arabian/src/lib/aws"
	"github.com/vedant1418/the-arabian/src/middlewares"
	"github.com/vedant1418/the-arabian/src/models"
	"github.com/vedant1418/the-arabian/src/types"
)

type monthlyAggregate struct {
	Month    time.Time `json:"-"`
	Label    string    `json:"month"`
	Revenue  float64   `json:"revenue"`
	Bookings int64     `json:"bookings"`
}

type resortAggregate struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// dashboardHandlers exposes the operator aggregates. Everything is recomputed
// per request; there is no caching layer in front of it.
func dashboardHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/dashboard", func(ctx *gin.Context) {
			conn := db.GetDb()

			var totalUsers, totalBookings, todayBookings int64
			if err := conn.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if err := conn.Model(&models.Booking{}).Count(&totalBookings).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			var totalRevenue float64
			if err := conn.
				Model(&models.Booking{}).
				Where("payment_status = ?", types.PAYMENT_PAID).
				Select("COALESCE(SUM(total_price), 0)").
				Scan(&totalRevenue).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			now := time.Now()
			midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			if err := conn.
				Model(&models.Booking{}).
				Where("created_at >= ?", midnight).
				Count(&todayBookings).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}

			var monthly []monthlyAggregate
			if err := conn.
				Model(&models.Booking{}).
				Select("date_trunc('month', created_at) AS month, SUM(total_price) AS revenue, COUNT(id) AS bookings").
				Where("payment_status = ?", types.PAYMENT_PAID).
				Group("month").
				Order("month").
				Scan(&monthly).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			for i := range monthly {
				monthly[i].Label = monthly[i].Month.Format("Jan 2006")
			}

			var topResorts []resortAggregate
			if err := conn.
				Model(&models.Booking{}).
				Select("resorts.name AS name, COUNT(bookings.id) AS count").
				Joins("JOIN resorts ON resorts.id = bookings.resort_id").
				Group("resorts.name").
				Order("count DESC").
				Limit(5).
				Scan(&topResorts).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}

			ctx.JSON(http.StatusOK, gin.H{
				"total_users":    totalUsers,
				"total_bookings": totalBookings,
				"total_revenue":  totalRevenue,
				"today_bookings": todayBookings,
				"monthly":        monthly,
				"top_resorts":    topResorts,
			})
		})
	return g
}

// galleryUploadHandlers is staff-only but lives on the regular API surface,
// next to the public gallery listing.
func galleryUploadHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/gallery", middlewares.StaffOnly, func(ctx *gin.Context) {
			title := ctx.PostForm("title")
			file, err := ctx.FormFile("image")
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
				return
			}
			url, err := storeGalleryImage(ctx, file)
			if err != nil {
				log.Printf("Error storing gallery image: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not store image"})
				return
			}
			conn := db.GetDb()
			image := models.GalleryImage{Title: title, Image: url}
			if err := conn.Create(&image).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": image})
		})
	return g
}

func storeGalleryImage(ctx *gin.Context, file *multipart.FileHeader) (string, error) {
	tempdir := os.Getenv("TEMP_DIR")
	if tempdir == "" {
		tempdir = os.TempDir()
	}
	ext := path.Ext(file.Filename)
	name := fmt.Sprintf("gallery-%s-%s%s", slug.Make(file.Filename), uuid.NewString()[:8], ext)
	filePath := path.Join(tempdir, name)
	if err := ctx.SaveUploadedFile(file, filePath); err != nil {
		return "", err
	}
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" || appEnv == "local" {
		return filePath, nil
	}
	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}
	url, err := awslib.S3UploadAsset(name, filePath, contentType)
	if err != nil {
		return "", err
	}
	return *url, nil
}
