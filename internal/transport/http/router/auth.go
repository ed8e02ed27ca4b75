package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-shop-api/internal/core/oauth"
	"go-shop-api/internal/transport/http/ez"
	mdw "go-shop-api/internal/transport/http/middleware"
	"go-shop-api/pkg/utils"
)

const stateCookie = "oauth_state"

func mountAuth(api, authed *gin.RouterGroup, d Deps) {
	pub := ez.New(api)

	type registerIn struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Email    string `json:"email"    binding:"omitempty,email"`
		Name     string `json:"name"     binding:"omitempty,max=64"`
	}
	ez.POST(pub, "/auth/register", func(c *gin.Context, in registerIn) (any, error) {
		tok, err := d.Auth.Register(c, in.Username, in.Password, in.Email, in.Name)
		if err != nil {
			return nil, actionErr(err)
		}
		return gin.H{"token": tok}, nil
	})

	type loginIn struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	ez.POST(pub, "/auth/login", func(c *gin.Context, in loginIn) (any, error) {
		tok, err := d.Auth.Login(c, in.Username, in.Password)
		if err != nil {
			return nil, actionErr(err)
		}
		return gin.H{"token": tok}, nil
	})

	// 每个配了凭据的 provider 单独挂 /auth/<name> 与回调
	for name, p := range d.Providers {
		mountOAuthProvider(api, d, name, p)
	}

	au := ez.New(authed)
	au.GET("/me", func(c *gin.Context) (any, error) {
		u, err := d.Auth.Me(c, c.GetString(mdw.KeyUserID))
		if err != nil {
			return nil, actionErr(err)
		}
		return gin.H{
			"id":        u.ID,
			"email":     u.Email,
			"name":      u.Name,
			"provider":  u.Provider,
			"username":  u.Username,
			"isAdmin":   u.IsAdmin,
			"createdAt": u.CreatedAt,
		}, nil
	})
}

func mountOAuthProvider(api *gin.RouterGroup, d Deps, name string, p *oauth.Provider) {
	failURL := d.Cfg.App.ClientOrigin + "/auth/callback?error=" + name + "_failed"

	api.GET("/auth/"+name, func(c *gin.Context) {
		state := utils.NewID()
		c.SetCookie(stateCookie, state, 600, "/", "", false, true)
		c.Redirect(http.StatusFound, p.AuthCodeURL(state))
	})

	api.GET("/auth/"+name+"/callback", func(c *gin.Context) {
		state, _ := c.Cookie(stateCookie)
		if state == "" || c.Query("state") != state || c.Query("code") == "" {
			c.Redirect(http.StatusFound, failURL)
			return
		}
		tok, err := p.Exchange(c, c.Query("code"))
		if err != nil {
			d.Log.Warn("oauth exchange failed", zap.String("provider", name), zap.Error(err))
			c.Redirect(http.StatusFound, failURL)
			return
		}
		profile, err := p.FetchProfile(c, tok)
		if err != nil {
			d.Log.Warn("oauth userinfo failed", zap.String("provider", name), zap.Error(err))
			c.Redirect(http.StatusFound, failURL)
			return
		}
		jwt, err := d.Auth.OAuthLogin(c, name, profile)
		if err != nil {
			d.Log.Error("oauth login failed", zap.String("provider", name), zap.Error(err))
			c.Redirect(http.StatusFound, failURL)
			return
		}
		c.Redirect(http.StatusFound, d.Cfg.App.ClientOrigin+"/auth/callback?token="+jwt)
	})
}
