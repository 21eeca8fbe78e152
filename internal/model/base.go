package model

import "time"

// BaseModel 通用时间戳字段（由 GORM 自动维护）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
