package models

import (
	"time"

	"gorm.io/gorm"
)

// Employee is always owned by exactly one user. Every query against this
// table must go through OwnedBy; ownership is never reassigned.
type Employee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"index;not null" json:"owner_id"`
	FirstName string    `gorm:"size:64;not null" json:"firstName"`
	LastName  string    `gorm:"size:64;not null" json:"lastName"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Position  string    `gorm:"size:128" json:"position"`
	Salary    float64   `gorm:"not null;default:0" json:"salary"`
	HireDate  time.Time `json:"hireDate"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

// OwnedBy restricts a query to records owned by the given user. A lookup
// that misses because the record belongs to someone else is
// indistinguishable from a lookup for an id that does not exist.
func OwnedBy(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", userID)
	}
}
