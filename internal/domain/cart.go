package domain

import (
	"context"
	"database/sql/driver"
	"errors"
	"time"
)

// ErrVersionConflict 带 version 的覆盖写撞上了更新的版本
var ErrVersionConflict = errors.New("cart version conflict")

// CartItem name/price 是加购时的快照，服务端不回填目录价
type CartItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Qty       int    `json:"qty"`
}

type CartItems []CartItem

func (l CartItems) Value() (driver.Value, error) { return jsonValue([]CartItem(l)) }
func (l *CartItems) Scan(src any) error          { return jsonScan(l, src) }

// Cart 每用户一行，items 整列覆盖写；version 每次写 +1，给乐观并发用
type Cart struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex" json:"userId"`
	Items     CartItems `gorm:"type:json" json:"items"`
	Version   int64     `gorm:"not null;default:0" json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Cart) TableName() string { return "carts" }

// NormalizeItems 去掉 qty < 1 的行；行内容原样保留，不做目录校验
func NormalizeItems(items CartItems) CartItems {
	out := make(CartItems, 0, len(items))
	for _, it := range items {
		if it.Qty >= 1 {
			out = append(out, it)
		}
	}
	return out
}

// MergeItems 把匿名购物车并进服务端购物车：
// 同 productId 数量相加，name/price 以服务端已有行为准（过期的客户端价格
// 不会覆盖存量值）；新商品按匿名车顺序追加。入参不被修改。
func MergeItems(server, anon CartItems) CartItems {
	merged := make(CartItems, 0, len(server)+len(anon))
	index := make(map[string]int, len(server))
	for _, it := range server {
		if at, ok := index[it.ProductID]; ok {
			merged[at] = it // 重复行按最后一条算，正常数据不会出现
			continue
		}
		index[it.ProductID] = len(merged)
		merged = append(merged, it)
	}
	for _, it := range anon {
		qty := it.Qty
		if qty < 1 {
			qty = 1
		}
		if at, ok := index[it.ProductID]; ok {
			merged[at].Qty += qty
			continue
		}
		it.Qty = qty
		index[it.ProductID] = len(merged)
		merged = append(merged, it)
	}
	return merged
}

// AddItem 已有行 +1，否则追加 qty=1 的新行
func AddItem(items CartItems, productID, name string, price int64) CartItems {
	out := append(CartItems(nil), items...)
	for i := range out {
		if out[i].ProductID == productID {
			out[i].Qty++
			return out
		}
	}
	return append(out, CartItem{ProductID: productID, Name: name, Price: price, Qty: 1})
}

// ApplyQuantityDelta 数量落到 0 及以下时整行移除，不会出现负数
func ApplyQuantityDelta(items CartItems, productID string, delta int) CartItems {
	out := make(CartItems, 0, len(items))
	for _, it := range items {
		if it.ProductID == productID {
			it.Qty += delta
			if it.Qty < 1 {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

type CartRepository interface {
	// Get 只读，不存在时返回 nil 而不是建行
	Get(ctx context.Context, userID string) (*Cart, error)
	// Replace 整列覆盖写（懒建行）。expectedVersion 非 nil 且不匹配时
	// 返回 ErrVersionConflict。
	Replace(ctx context.Context, userID string, items CartItems, expectedVersion *int64) (*Cart, error)
	// Merge 服务端一次事务内完成 读-合并-写
	Merge(ctx context.Context, userID string, anon CartItems) (*Cart, error)
}
