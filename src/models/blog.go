package models

import "github.com/vedant1418/the-arabian/src/types"

type Blog struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt,omitempty"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`

	types.Timestamps
}
