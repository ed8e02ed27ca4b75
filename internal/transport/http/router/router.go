package router

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-shop-api/internal/core/auth"
	"go-shop-api/internal/core/config"
	"go-shop-api/internal/core/oauth"
	"go-shop-api/internal/domain"
	"go-shop-api/internal/service"
	"go-shop-api/internal/transport/http/ez"
)

// Deps 两个引擎共用的装配件
type Deps struct {
	Log   *zap.Logger
	DB    *gorm.DB
	Cfg   *config.Config
	JWTer *auth.JWTer

	Auth    *service.AuthService
	Catalog *service.CatalogService
	Cart    *service.CartService
	Orders  *service.OrderService
	Tickets *service.TicketService
	Users   domain.UserRepository

	// 按 provider 名挂好的第三方登录，没配凭据的不出现在 map 里
	Providers map[string]*oauth.Provider
}

// actionErr 业务错误到响应码的统一映射
func actionErr(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return ez.NotFound(err.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		return ez.Conflict(err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return ez.Unauthorized(err.Error())
	case errors.Is(err, domain.ErrVersionConflict):
		return ez.Conflict(err.Error())
	}
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return ez.BadRequest(ve.Msg)
	}
	return err
}
