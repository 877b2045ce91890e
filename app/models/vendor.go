package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vendor struct {
	ID           string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID       string    `gorm:"size:36;not null;uniqueIndex" json:"user_id"`
	User         User      `gorm:"foreignKey:UserID" json:"-"`
	BusinessName string    `gorm:"size:200;not null" json:"business_name"`
	Description  string    `gorm:"type:text" json:"description"`
	Phone        string    `gorm:"size:20" json:"phone"`
	Address      string    `gorm:"type:text" json:"address"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (v *Vendor) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return
}
