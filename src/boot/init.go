package boot

import (
	"log"
	"time"

	"github.com/vedant1418/the-arabian/src/config"
	"github.com/vedant1418/the-arabian/src/db"
	"github.com/vedant1418/the-arabian/src/lib"
	"github.com/vedant1418/the-arabian/src/models"
	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Resort{},
		&models.Booking{},
		&models.Payment{},
		&models.Guest{},
		&models.Wishlist{},
		&models.PasswordResetOTP{},
		&models.Blog{},
		&models.GalleryImage{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	id, err := lib.CreateCronJob(ExpireStaleOTPs, time.Minute)
	if err != nil {
		log.Printf("Error scheduling OTP sweep: %s\n", err.Error())
		return
	}
	log.Printf("Scheduled OTP sweep job: %s\n", *id)
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
	}
}

// ExpireStaleOTPs marks reset codes past their validity window as used so
// lookups never hand back a stale code.
func ExpireStaleOTPs() {
	db := db.GetDb()
	cutoff := time.Now().Add(-config.OTP_TTL_MINUTES * time.Minute)
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.
			Model(&models.PasswordResetOTP{}).
			Where("is_used = ?", false).
			Where("created_at < ?", cutoff).
			Update("is_used", true).
			Error
	})
	if err != nil {
		log.Printf("Error while expiring stale OTPs: %s\n", err.Error())
	}
}
