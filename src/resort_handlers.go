package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vedant1418/the-arabian/src/db"
	"github.com/vedant1418/the-arabian/src/models"
	"github.com/vedant1418/the-arabian/src/types"
	"gorm.io/gorm"
)

func resortHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/resorts", func(ctx *gin.Context) {
			var filters types.ResortQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			conn := db.GetDb()
			q := conn.Model(&models.Resort{})
			if filters.Location != "" {
				q = q.Where("location ILIKE ?", "%"+filters.Location+"%")
			}
			if filters.Search != "" {
				q = q.Where("name ILIKE ?", "%"+filters.Search+"%")
			}
			var resorts []models.Resort
			if err := q.Find(&resorts).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var locations []string
			if err := conn.
				Model(&models.Resort{}).
				Distinct().
				Pluck("location", &locations).
				Error; err != nil {
				log.Printf("Error listing locations: %s\n", err.Error())
			}
			ctx.JSON(http.StatusOK, gin.H{"data": resorts, "count": len(resorts), "locations": locations})
		}).
		GET("/resorts/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			conn := db.GetDb()
			var resort models.Resort
			if err := conn.
				Model(&models.Resort{}).
				Where(&models.Resort{ID: params.ID}).
				First(&resort).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": resort})
		})
	return g
}

func contentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/blogs", func(ctx *gin.Context) {
			conn := db.GetDb()
			var blogs []models.Blog
			if err := conn.
				Model(&models.Blog{}).
				Order("created_at DESC").
				Find(&blogs).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": blogs, "count": len(blogs)})
		}).
		GET("/blogs/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			conn := db.GetDb()
			var blog models.Blog
			if err := conn.
				Model(&models.Blog{}).
				Where(&models.Blog{ID: params.ID}).
				First(&blog).
				Error; err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": blog})
		}).
		GET("/gallery", func(ctx *gin.Context) {
			conn := db.GetDb()
			var images []models.GalleryImage
			if err := conn.
				Model(&models.GalleryImage{}).
				Order("created_at DESC").
				Find(&images).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": images, "count": len(images)})
		})
	return g
}
