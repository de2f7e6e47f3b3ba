package model

import (
	"time"
)

// Note represents the note model stored in the database. TenantID is set at
// creation from the creator's identity and never changes afterwards.
type Note struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Content   string    `json:"content" gorm:"type:text"`
	TenantID  string    `json:"tenant_id" gorm:"type:varchar(100);index;not null"`
	CreatedBy uint      `json:"created_by" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
