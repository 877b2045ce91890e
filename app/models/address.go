package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Address struct {
	ID           string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID       string    `gorm:"size:36;not null;index" json:"user_id"`
	User         User      `gorm:"foreignKey:UserID" json:"-"`
	Title        string    `gorm:"size:100" json:"title"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	Company      string    `gorm:"size:200" json:"company"`
	AddressLine1 string    `gorm:"size:255;not null" json:"address_line_1"`
	AddressLine2 string    `gorm:"size:255" json:"address_line_2"`
	City         string    `gorm:"size:100;not null" json:"city"`
	State        string    `gorm:"size:100;not null" json:"state"`
	PostalCode   string    `gorm:"size:20;not null" json:"postal_code"`
	Country      string    `gorm:"size:100;not null" json:"country"`
	Phone        string    `gorm:"size:20" json:"phone"`
	IsDefault    bool      `gorm:"default:false" json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

// BelongsTo reports whether the address is owned by the given identity.
// Anonymous identities never own addresses.
func (a *Address) BelongsTo(id Identity) bool {
	return id.IsUser() && a.UserID == id.UserID
}
