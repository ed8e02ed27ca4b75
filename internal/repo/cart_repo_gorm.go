package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-shop-api/internal/domain"
	"go-shop-api/pkg/utils"
)

type CartRepo struct{ db *gorm.DB }

func NewCartRepo(db *gorm.DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	var c domain.Cart
	err := r.db.WithContext(ctx).First(&c, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Replace 整列覆盖写，行不存在就建。expectedVersion 非 nil 时做条件写，
// 不匹配返回 ErrVersionConflict（无行视作 version 0）。
func (r *CartRepo) Replace(ctx context.Context, userID string, items domain.CartItems, expectedVersion *int64) (*domain.Cart, error) {
	items = domain.NormalizeItems(items)
	var out *domain.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := lockCart(tx, userID)
		if err != nil {
			return err
		}
		if expectedVersion != nil {
			have := int64(0)
			if cur != nil {
				have = cur.Version
			}
			if have != *expectedVersion {
				return domain.ErrVersionConflict
			}
		}
		out, err = writeCart(tx, cur, userID, items)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Merge 行锁内完成 读-合并-写，匿名项丢给服务端后客户端即可清本地车
func (r *CartRepo) Merge(ctx context.Context, userID string, anon domain.CartItems) (*domain.Cart, error) {
	var out *domain.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := lockCart(tx, userID)
		if err != nil {
			return err
		}
		var server domain.CartItems
		if cur != nil {
			server = cur.Items
		}
		merged := domain.MergeItems(server, domain.NormalizeItems(anon))
		out, err = writeCart(tx, cur, userID, merged)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func lockCart(tx *gorm.DB, userID string) (*domain.Cart, error) {
	var c domain.Cart
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func writeCart(tx *gorm.DB, cur *domain.Cart, userID string, items domain.CartItems) (*domain.Cart, error) {
	if cur == nil {
		c := &domain.Cart{
			ID:      utils.NewID(),
			UserID:  userID,
			Items:   items,
			Version: 1,
		}
		if err := tx.Create(c).Error; err != nil {
			return nil, err
		}
		return c, nil
	}
	cur.Items = items
	cur.Version++
	if err := tx.Save(cur).Error; err != nil {
		return nil, err
	}
	return cur, nil
}
