package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vedant1418/the-arabian/src/db"
	"github.com/vedant1418/the-arabian/src/models"
	"github.com/vedant1418/the-arabian/src/types"
	"gorm.io/gorm"
)

func wishlistHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/wishlist", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			conn := db.GetDb()
			var items []models.Wishlist
			if err := conn.
				Model(&models.Wishlist{}).
				Where("user_id = ?", userId).
				Preload("Resort").
				Order("created_at DESC").
				Find(&items).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": items, "count": len(items)})
		}).
		POST("/wishlist/:resortId", func(ctx *gin.Context) {
			var params types.ResortURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			conn := db.GetDb()
			var resort models.Resort
			if err := conn.First(&resort, params.ResortID).Error; err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			entry := models.Wishlist{UserID: userId, ResortID: resort.ID}
			if err := conn.
				Where(&models.Wishlist{UserID: userId, ResortID: resort.ID}).
				FirstOrCreate(&entry).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"status": "added", "message": "Added to wishlist!"})
		}).
		DELETE("/wishlist/:resortId", func(ctx *gin.Context) {
			var params types.ResortURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			conn := db.GetDb()
			if err := conn.
				Where("user_id = ? AND resort_id = ?", userId, params.ResortID).
				Delete(&models.Wishlist{}).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"status": "removed", "message": "Removed from wishlist!"})
		}).
		PUT("/wishlist/:resortId/toggle", func(ctx *gin.Context) {
			var params types.ResortURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			conn := db.GetDb()
			var resort models.Resort
			if err := conn.First(&resort, params.ResortID).Error; err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}

			inWishlist := false
			message := ""
			err := conn.Transaction(func(tx *gorm.DB) error {
				var existing models.Wishlist
				err := tx.
					Where(&models.Wishlist{UserID: userId, ResortID: resort.ID}).
					First(&existing).
					Error
				if err == nil {
					message = "Removed from wishlist"
					return tx.Delete(&existing).Error
				}
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				inWishlist = true
				message = "Added to wishlist!"
				return tx.Create(&models.Wishlist{UserID: userId, ResortID: resort.ID}).Error
			})
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}

			var count int64
			if err := conn.
				Model(&models.Wishlist{}).
				Where("user_id = ?", userId).
				Count(&count).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"in_wishlist": inWishlist,
				"message":     message,
				"count":       count,
			})
		})
	return g
}
