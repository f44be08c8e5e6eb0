package models

import (
	"time"
)

// 交易类型
const (
	TypeExpense = "expense" // 支出
	TypeIncome  = "income"  // 收入
)

// Transaction 交易记录（支出/收入）
//
// CategoryID 为弱引用：不做外键约束，类别删除后引用照常保留。
// CategoryName 是创建时的类别名称快照，类别改名不会回写历史记录。
type Transaction struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Amount       float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	CategoryID   string    `json:"category_id" gorm:"size:36;index"`
	CategoryName string    `json:"category_name" gorm:"size:50"`
	Type         string    `json:"type" gorm:"size:10;not null;index"` // expense / income
	Date         time.Time `json:"date" gorm:"not null;index"`
	Note         string    `json:"note" gorm:"size:255"`
	IsRecurring  bool      `json:"is_recurring" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}
