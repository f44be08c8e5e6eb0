package models

import (
	"time"
)

// Category 消费类别
// 名称不做唯一约束，允许重名（与历史数据行为保持一致）
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"size:50;not null"`
	Color     string    `json:"color" gorm:"size:20;default:#6366F1"` // 颜色代码，如 #EF4444
	Icon      string    `json:"icon" gorm:"size:20;default:💰"`       // 图标（emoji）
	CreatedAt time.Time `json:"created_at"`
}

// TableName 设置表名
func (Category) TableName() string {
	return "categories"
}

// 类别默认值
const (
	DefaultCategoryColor = "#6366F1"
	DefaultCategoryIcon  = "💰"
)

// DefaultCategories 默认消费类别（类别表为空时初始化写入）
func DefaultCategories() []Category {
	return []Category{
		{Name: "Food", Color: "#EF4444", Icon: "🍔"},
		{Name: "Rent", Color: "#8B5CF6", Icon: "🏠"},
		{Name: "Transport", Color: "#3B82F6", Icon: "🚗"},
		{Name: "Shopping", Color: "#EC4899", Icon: "🛍️"},
		{Name: "Bills", Color: "#F59E0B", Icon: "📄"},
		{Name: "Entertainment", Color: "#10B981", Icon: "🎬"},
		{Name: "Salary", Color: "#22C55E", Icon: "💵"},
		{Name: "Investments", Color: "#6366F1", Icon: "📈"},
	}
}
