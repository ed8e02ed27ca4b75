package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}
type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name         string
	Env          string
	BaseURL      string // 本服务对外地址，OAuth 回调注册用
	ClientOrigin string // 前端地址，OAuth 回跳 + CORS 用
	HTTP         HTTP
	Admin        AdminHTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type AMQP struct {
	URL      string
	Exchange string
}

type Uploads struct {
	Dir       string
	MaxSizeMB int
}

// OAuthProvider 凭据为空的 provider 不挂载对应路由
type OAuthProvider struct {
	ClientID     string `mapstructure:"clientId"`
	ClientSecret string `mapstructure:"clientSecret"`
}

type OAuth struct {
	Google   OAuthProvider
	Facebook OAuthProvider
	Line     OAuthProvider
}

type Seed struct {
	AdminUsername string
	AdminPassword string
	DemoProducts  bool
}

type Config struct {
	App     App
	Log     Log
	JWT     JWT
	DB      DB
	Redis   Redis `mapstructure:"redis"`
	AMQP    AMQP
	Uploads Uploads
	OAuth   OAuth
	Seed    Seed
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.baseURL", "http://localhost:4000")
	v.SetDefault("app.clientOrigin", "http://localhost:3000")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 4000)
	v.SetDefault("app.http.readTimeoutSec", 5)
	v.SetDefault("app.http.writeTimeoutSec", 10)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.admin.host", "0.0.0.0")
	v.SetDefault("app.admin.port", 4100)
	v.SetDefault("log.level", "info")
	v.SetDefault("jwt.issuer", "go-shop-api")
	v.SetDefault("jwt.accessTokenTTLMin", 7*24*60)
	v.SetDefault("db.maxOpenConns", 50)
	v.SetDefault("db.maxIdleConns", 10)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("amqp.exchange", "orders_exchange")
	v.SetDefault("uploads.dir", "./uploads")
	v.SetDefault("uploads.maxSizeMB", 16)
	v.SetDefault("seed.adminUsername", "admin")
}
