package model

import (
	"time"

	"github.com/go-arcade/platform-settings/pkg/id"
	"gorm.io/gorm"
)

// BaseModel uses a uuid primary key, assigned on create when empty.
type BaseModel struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = id.GetUUID()
	}
	return nil
}
