package bootstrap

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-shop-api/internal/core/config"
	"go-shop-api/internal/domain"
	"go-shop-api/pkg/utils"
)

// Seed 启动期种子数据，失败只记日志不拦启动
func Seed(ctx context.Context, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	if cfg.Seed.AdminUsername != "" && cfg.Seed.AdminPassword != "" {
		if err := SeedAdmin(ctx, db, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword, log); err != nil {
			log.Warn("seed admin failed", zap.Error(err))
		}
	}
	if cfg.Seed.DemoProducts {
		if _, err := SeedDemoProducts(ctx, db, log); err != nil {
			log.Warn("seed products failed", zap.Error(err))
		}
	}
}

// SeedAdmin 管理员账号已存在就跳过
func SeedAdmin(ctx context.Context, db *gorm.DB, username, password string, log *zap.Logger) error {
	var n int64
	if err := db.WithContext(ctx).Model(&domain.User{}).
		Where("username = ?", username).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Provider:     domain.ProviderLocal,
		ProviderID:   username,
		Username:     &username,
		Name:         "Administrator",
		PasswordHash: utils.HashPassword(password),
		IsAdmin:      true,
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return err
	}
	log.Info("seeded admin user", zap.String("username", username))
	return nil
}

// SeedDemoProducts 目录非空时什么都不做，返回新建条数
func SeedDemoProducts(ctx context.Context, db *gorm.DB, log *zap.Logger) (int, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&domain.Product{}).Count(&n).Error; err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	type demo struct {
		sku, name, desc string
		price           int64
		tags            domain.StringList
	}
	demos := []demo{
		{"sku-cleanser", "Gentle Foam Cleanser", "Amino-acid foaming cleanser for daily use", 15900, domain.StringList{"cleanser", "daily"}},
		{"sku-toner", "Hydrating Toner", "Alcohol-free toner with hyaluronic acid", 13900, domain.StringList{"toner"}},
		{"sku-serum", "Vitamin C Serum", "10% vitamin C brightening serum", 32900, domain.StringList{"serum", "brightening"}},
		{"sku-moisturizer", "Ceramide Moisturizer", "Barrier-repair cream for dry skin", 24900, domain.StringList{"moisturizer"}},
		{"sku-sunscreen", "Daily Sunscreen SPF50", "Lightweight broad-spectrum SPF50+", 21900, domain.StringList{"sunscreen", "daily"}},
		{"sku-lipstick", "Velvet Matte Lipstick", "Long-wear matte lipstick, shade 02", 17900, domain.StringList{"makeup"}},
	}

	created := 0
	for _, it := range demos {
		p := &domain.Product{
			ID:             utils.NewID(),
			SKU:            it.sku,
			Name:           it.name,
			Price:          it.price,
			Description:    it.desc,
			ShippingFee:    500,
			MaxQtyPerUser:  5,
			MaxQtyPerOrder: 5,
			Tags:           it.tags,
			Active:         true,
		}
		if err := db.WithContext(ctx).Create(p).Error; err != nil {
			return created, err
		}
		created++
	}
	log.Info("seeded demo products", zap.Int("count", created))
	return created, nil
}
