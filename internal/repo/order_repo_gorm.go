package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-shop-api/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

// Place 建单并清空该用户的服务端购物车，一个事务。
// 购物车行保留（version 继续涨），只清 items。
func (r *OrderRepo) Place(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Cart{}).
			Where("user_id = ?", o.UserID).
			Updates(map[string]any{
				"items":   domain.CartItems{},
				"version": gorm.Expr("version + 1"),
			}).Error
	})
}

func (r *OrderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	var os []domain.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&os).Error
	return os, err
}

func (r *OrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	var os []domain.Order
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&os).Error
	return os, err
}

// Update 只放行 status 和物流字段，items/total 不可变
func (r *OrderRepo) Update(ctx context.Context, id string, upd domain.OrderStatusUpdate) (*domain.Order, error) {
	set := map[string]any{}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.TrackingNo != nil {
		set["tracking_no"] = *upd.TrackingNo
	}
	if upd.TrackingCompany != nil {
		set["tracking_company"] = *upd.TrackingCompany
	}
	if len(set) > 0 {
		res := r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Updates(set)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, nil
		}
	}
	return r.FindByID(ctx, id)
}
