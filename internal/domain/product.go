package domain

import (
	"context"
	"time"
)

// Product 下架用 active=false，删除是硬删（历史订单存快照，不受影响）
type Product struct {
	ID             string     `gorm:"primaryKey;size:36" json:"id"`
	SKU            string     `gorm:"size:64;not null;uniqueIndex" json:"sku"`
	Name           string     `gorm:"size:191;not null" json:"name"`
	Title          string     `gorm:"size:191" json:"title,omitempty"`
	Option         string     `gorm:"size:191" json:"option,omitempty"`
	Price          int64      `gorm:"not null" json:"price"` // 最小货币单位
	Image          string     `gorm:"size:512" json:"image"`
	Description    string     `gorm:"type:text" json:"description"`
	ShippingFee    int64      `gorm:"not null;default:0" json:"shippingFee"`
	MaxQtyPerUser  int        `gorm:"not null;default:100" json:"maxQtyPerUser"`
	MaxQtyPerOrder int        `gorm:"not null;default:100" json:"maxQtyPerOrder"`
	RankingScore   int        `gorm:"not null;default:0" json:"rankingScore"`
	Tags           StringList `gorm:"type:json" json:"tags"`
	Active         bool       `gorm:"not null;default:true;index" json:"active"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

// ProductUpdate 部分更新，nil 字段不动
type ProductUpdate struct {
	Name           *string     `json:"name"`
	Title          *string     `json:"title"`
	Option         *string     `json:"option"`
	Price          *int64      `json:"price"`
	Image          *string     `json:"image"`
	Description    *string     `json:"description"`
	ShippingFee    *int64      `json:"shippingFee"`
	MaxQtyPerUser  *int        `json:"maxQtyPerUser"`
	MaxQtyPerOrder *int        `json:"maxQtyPerOrder"`
	RankingScore   *int        `json:"rankingScore"`
	Tags           *StringList `json:"tags"`
	Active         *bool       `json:"active"`
}

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindActiveBySKU(ctx context.Context, sku string) (*Product, error)
	ListActive(ctx context.Context) ([]Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	UpdateBySKU(ctx context.Context, sku string, upd ProductUpdate) (*Product, error)
	DeleteBySKU(ctx context.Context, sku string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
