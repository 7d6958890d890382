package models

import (
	"time"
)

type Category struct {
	CategoryId  uint      `gorm:"primaryKey" json:"category_id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	DateCreated time.Time `gorm:"autoCreateTime" json:"date_created"`
}
