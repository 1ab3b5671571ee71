package model

import (
	"time"

	"github.com/google/uuid"
)

type Item struct {
	Id          uint64    `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Type        string    `gorm:"type:varchar(16);not null;default:note"`
	ParentId    *uint64   `gorm:"index"`
	OwnerId     uuid.UUID `gorm:"type:uuid;not null;index"`
	SortOrder   int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Item) TableName() string {
	return "notes"
}
