package models

import "github.com/vedant1418/the-arabian/src/types"

type GalleryImage struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`

	types.Timestamps
}
