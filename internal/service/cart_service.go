package service

import (
	"context"

	"go-shop-api/internal/domain"
)

type CartService struct {
	carts domain.CartRepository
}

func NewCartService(carts domain.CartRepository) *CartService {
	return &CartService{carts: carts}
}

// Get 只读；没有行时返回空车（version 0），不落库
func (s *CartService) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &domain.Cart{UserID: userID, Items: domain.CartItems{}}, nil
	}
	if c.Items == nil {
		c.Items = domain.CartItems{}
	}
	return c, nil
}

// Replace 盲覆盖：不校验 productId、不按目录重算价格，内容由调用方负责。
// version 传了就做条件写，不传保持原始的 last-write-wins。
func (s *CartService) Replace(ctx context.Context, userID string, items domain.CartItems, version *int64) (*domain.Cart, error) {
	return s.carts.Replace(ctx, userID, items, version)
}

// Merge 登录后客户端把匿名车一次性交给服务端合并；返回 2xx 后客户端
// 才清本地，半套状态的窗口不存在了。空输入原样返回当前车。
func (s *CartService) Merge(ctx context.Context, userID string, anon domain.CartItems) (*domain.Cart, error) {
	if len(domain.NormalizeItems(anon)) == 0 {
		return s.Get(ctx, userID)
	}
	return s.carts.Merge(ctx, userID, anon)
}
