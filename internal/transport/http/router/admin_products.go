package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-shop-api/internal/bootstrap"
	"go-shop-api/internal/domain"
	"go-shop-api/internal/service"
	"go-shop-api/internal/transport/http/ez"
)

func mountAdminProducts(admin *gin.RouterGroup, d Deps) {
	e := ez.New(admin)

	e.GET("/products", func(c *gin.Context) (any, error) {
		list, err := d.Catalog.AdminList(c)
		if err != nil {
			return nil, actionErr(err)
		}
		return list, nil
	})

	e.GET("/products/:sku", func(c *gin.Context) (any, error) {
		p, err := d.Catalog.AdminGet(c, c.Param("sku"))
		if err != nil {
			return nil, actionErr(err)
		}
		return p, nil
	})

	ez.POST(e, "/products", func(c *gin.Context, in service.ProductCreate) (any, error) {
		p, err := d.Catalog.AdminCreate(c, in)
		if err != nil {
			return nil, actionErr(err)
		}
		return p, nil
	})

	ez.RegisterAction[domain.ProductUpdate, *domain.Product](e, d.DB, ez.Action[domain.ProductUpdate, *domain.Product]{
		Method: "PUT",
		Path:   "/products/:sku",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *domain.ProductUpdate) (*domain.Product, error) {
			p, err := d.Catalog.AdminUpdate(c, c.Param("sku"), *in)
			if err != nil {
				return nil, actionErr(err)
			}
			return p, nil
		},
	})

	ez.RegisterAction[struct{}, gin.H](e, d.DB, ez.Action[struct{}, gin.H]{
		Method: "DELETE",
		Path:   "/products/:sku",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (gin.H, error) {
			sku := c.Param("sku")
			if err := d.Catalog.AdminDelete(c, sku); err != nil {
				return nil, actionErr(err)
			}
			return gin.H{"sku": sku}, nil
		},
	})

	// 空目录一键补演示数据，已有商品时不动
	ez.RegisterAction[struct{}, gin.H](e, d.DB, ez.Action[struct{}, gin.H]{
		Method: "POST",
		Path:   "/products/seed",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			n, err := bootstrap.SeedDemoProducts(c, tx, d.Log)
			if err != nil {
				return nil, err
			}
			return gin.H{"created": n}, nil
		},
	})
}
