package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminUser is an administrator account row managed by the super-admin
// tier. Credentials and token issuance are handled by the external auth
// service; this table only tracks identity and active status.
type AdminUser struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UUID      uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	Username  string         `json:"username" gorm:"size:150;not null;uniqueIndex"`
	Email     string         `json:"email" gorm:"size:255;not null"`
	FullName  string         `json:"full_name" gorm:"size:200"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == uuid.Nil {
		a.UUID = uuid.New()
	}
	return nil
}
