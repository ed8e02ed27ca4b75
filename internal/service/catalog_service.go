package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-shop-api/internal/core/cache"
	"go-shop-api/internal/domain"
	"go-shop-api/pkg/utils"
)

const (
	catalogListKey   = "catalog:list"
	catalogSKUPrefix = "catalog:sku:"
	catalogTTL       = 5 * time.Minute
)

// ProductCard 商品列表的对外投影，id 对外就是 sku
type ProductCard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

type ProductDetail struct {
	ProductCard
	ShippingFee   int64 `json:"shippingFee"`
	MaxQtyPerUser int   `json:"maxQtyPerUser"`
}

type CatalogService struct {
	products domain.ProductRepository
	cache    *cache.Cache // 可为 nil（未配 redis）
	log      *zap.Logger
}

func NewCatalogService(products domain.ProductRepository, c *cache.Cache, log *zap.Logger) *CatalogService {
	return &CatalogService{products: products, cache: c, log: log}
}

func card(p domain.Product) ProductCard {
	return ProductCard{ID: p.SKU, Name: p.Name, Price: p.Price, Image: p.Image, Description: p.Description}
}

func (s *CatalogService) PublicList(ctx context.Context) ([]ProductCard, error) {
	load := func(ctx context.Context) (*[]ProductCard, error) {
		ps, err := s.products.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]ProductCard, 0, len(ps))
		for _, p := range ps {
			out = append(out, card(p))
		}
		return &out, nil
	}
	if s.cache == nil {
		out, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return *out, nil
	}
	out, err := cache.GetOrLoadJSON(s.cache, ctx, catalogListKey, catalogTTL, load)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return []ProductCard{}, nil
	}
	return *out, nil
}

func (s *CatalogService) PublicDetail(ctx context.Context, sku string) (*ProductDetail, error) {
	load := func(ctx context.Context) (*ProductDetail, error) {
		p, err := s.products.FindActiveBySKU(ctx, sku)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, ErrNotFound
		}
		return &ProductDetail{
			ProductCard:   card(*p),
			ShippingFee:   p.ShippingFee,
			MaxQtyPerUser: p.MaxQtyPerUser,
		}, nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, catalogSKUPrefix+sku, catalogTTL, load)
}

// ---------- 后台 ----------

func (s *CatalogService) AdminList(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListAll(ctx)
}

func (s *CatalogService) AdminGet(ctx context.Context, sku string) (*domain.Product, error) {
	p, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

type ProductCreate struct {
	SKU           string            `json:"sku"`
	Name          string            `json:"name"`
	Title         string            `json:"title"`
	Option        string            `json:"option"`
	Price         *int64            `json:"price"`
	Image         string            `json:"image"`
	Description   string            `json:"description"`
	ShippingFee   int64             `json:"shippingFee"`
	MaxQtyPerUser int               `json:"maxQtyPerUser"`
	Tags          domain.StringList `json:"tags"`
	Active        *bool             `json:"active"`
}

func (s *CatalogService) AdminCreate(ctx context.Context, in ProductCreate) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" || in.Price == nil {
		return nil, Invalid("name and price required")
	}
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		sku = fmt.Sprintf("sku-%d", time.Now().UnixMilli())
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	maxPerUser := in.MaxQtyPerUser
	if maxPerUser <= 0 {
		maxPerUser = 100
	}
	p := &domain.Product{
		ID:             utils.NewID(),
		SKU:            sku,
		Name:           in.Name,
		Title:          in.Title,
		Option:         in.Option,
		Price:          *in.Price,
		Image:          in.Image,
		Description:    in.Description,
		ShippingFee:    in.ShippingFee,
		MaxQtyPerUser:  maxPerUser,
		MaxQtyPerOrder: maxPerUser,
		Tags:           in.Tags,
		Active:         active,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, sku)
	return p, nil
}

func (s *CatalogService) AdminUpdate(ctx context.Context, sku string, upd domain.ProductUpdate) (*domain.Product, error) {
	p, err := s.products.UpdateBySKU(ctx, sku, upd)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	s.invalidate(ctx, sku)
	return p, nil
}

func (s *CatalogService) AdminDelete(ctx context.Context, sku string) error {
	ok, err := s.products.DeleteBySKU(ctx, sku)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	s.invalidate(ctx, sku)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, sku string) {
	if s.cache == nil {
		return
	}
	s.cache.Del(ctx, catalogListKey, catalogSKUPrefix+sku)
}
