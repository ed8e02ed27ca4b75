package domain

import (
	"context"
	"database/sql/driver"
	"time"
)

const OrderStatusPlaced = "PLACED"

// OrderItem 下单时的冻结快照，不引用在售商品
type OrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Qty       int    `json:"qty"`
}

type OrderItems []OrderItem

func (l OrderItems) Value() (driver.Value, error) { return jsonValue([]OrderItem(l)) }
func (l *OrderItems) Scan(src any) error          { return jsonScan(l, src) }

// Order items/total 建单后不可变，之后只有 status 和物流字段由后台改
type Order struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	OrderNumber     string     `gorm:"size:64;index" json:"orderNumber"`
	UserID          string     `gorm:"size:36;not null;index" json:"userId"`
	Items           OrderItems `gorm:"type:json" json:"items"`
	Total           int64      `gorm:"not null" json:"total"`
	Status          string     `gorm:"size:32;not null;index" json:"status"`
	ShippingAddress JSONMap    `gorm:"type:json" json:"shippingAddress,omitempty"`
	PaymentMethod   string     `gorm:"size:32" json:"paymentMethod,omitempty"`
	TrackingNo      string     `gorm:"size:64" json:"trackingNo,omitempty"`
	TrackingCompany string     `gorm:"size:64" json:"trackingCompany,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (Order) TableName() string { return "orders" }

// OrderStatusUpdate 后台改单，nil 字段不动；status 是自由文本
type OrderStatusUpdate struct {
	Status          *string `json:"status"`
	TrackingNo      *string `json:"trackingNo"`
	TrackingCompany *string `json:"trackingCompany"`
}

type OrderRepository interface {
	// Place 建单并清空该用户的服务端购物车，同一事务
	Place(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	Update(ctx context.Context, id string, upd OrderStatusUpdate) (*Order, error)
}
