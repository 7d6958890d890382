package models

import (
	"time"
)

type Supplier struct {
	SupplierId    uint      `gorm:"primaryKey" json:"supplier_id"`
	Name          string    `gorm:"size:50" json:"name"`
	Address       string    `gorm:"size:150" json:"address"`
	ContactPerson string    `gorm:"size:50" json:"contact_person"`
	ContactNo     string    `gorm:"size:50" json:"contact_no"`
	Status        int       `json:"status"`
	DateCreated   time.Time `gorm:"autoCreateTime" json:"date_created"`
}
