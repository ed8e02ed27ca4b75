package domain

import "time"

// TableConfig 后台每个管理员各自保存的表格列布局，(table, user) 唯一。
// 走 ez.Crud 的 owner 约定，所以直接暴露 UserID 字段。
type TableConfig struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	UserID    string     `gorm:"size:36;not null;uniqueIndex:idx_table_owner" json:"userId"`
	Table     string     `gorm:"size:64;not null;uniqueIndex:idx_table_owner" json:"table" binding:"required"`
	Columns   StringList `gorm:"type:json" json:"columns"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (TableConfig) TableName() string { return "admin_table_configs" }
