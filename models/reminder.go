package models

import (
	"time"
)

// Reminder 提醒事项
// 仅负责存储与查询，定时触达不在本服务职责范围内
type Reminder struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Title       string    `json:"title" gorm:"size:100;not null"`
	Message     string    `json:"message" gorm:"size:255"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	Time        string    `json:"time" gorm:"size:5"` // HH:MM 格式，不做进一步校验
	IsRecurring bool      `json:"is_recurring" gorm:"default:false"`
	IsEnabled   bool      `json:"is_enabled" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName 设置表名
func (Reminder) TableName() string {
	return "reminders"
}
