package model

import (
	"time"
)

// BaseEntity carries audit timestamps. GORM sets both on create and UpdatedAt on save.
type BaseEntity struct {
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}
