package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-shop-api/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepo) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return r.findOne(ctx, "sku = ?", sku)
}

func (r *ProductRepo) FindActiveBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return r.findOne(ctx, "sku = ? AND active = ?", sku, true)
}

func (r *ProductRepo) findOne(ctx context.Context, cond string, args ...any) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, append([]any{cond}, args...)...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	var ps []domain.Product
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at DESC").
		Find(&ps).Error
	return ps, err
}

func (r *ProductRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	var ps []domain.Product
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ps).Error
	return ps, err
}

func (r *ProductRepo) UpdateBySKU(ctx context.Context, sku string, upd domain.ProductUpdate) (*domain.Product, error) {
	set := map[string]any{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Option != nil {
		set["option"] = *upd.Option
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.ShippingFee != nil {
		set["shipping_fee"] = *upd.ShippingFee
	}
	if upd.MaxQtyPerUser != nil {
		set["max_qty_per_user"] = *upd.MaxQtyPerUser
	}
	if upd.MaxQtyPerOrder != nil {
		set["max_qty_per_order"] = *upd.MaxQtyPerOrder
	}
	if upd.RankingScore != nil {
		set["ranking_score"] = *upd.RankingScore
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}
	if upd.Active != nil {
		set["active"] = *upd.Active
	}

	if len(set) > 0 {
		res := r.db.WithContext(ctx).Model(&domain.Product{}).Where("sku = ?", sku).Updates(set)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, nil
		}
	}
	return r.FindBySKU(ctx, sku)
}

func (r *ProductRepo) DeleteBySKU(ctx context.Context, sku string) (bool, error) {
	res := r.db.WithContext(ctx).Where("sku = ?", sku).Delete(&domain.Product{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&n).Error
	return n, err
}
