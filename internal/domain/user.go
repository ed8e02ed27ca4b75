package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	ProviderLocal    = "local"
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
	ProviderLine     = "line"
)

// User 身份 = (provider, providerId)，本地注册时 providerId 就是用户名
type User struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	Provider     string         `gorm:"size:16;not null;uniqueIndex:idx_provider_identity" json:"provider"`
	ProviderID   string         `gorm:"size:191;not null;uniqueIndex:idx_provider_identity" json:"-"`
	Email        string         `gorm:"size:191;index" json:"email"`
	Name         string         `gorm:"size:64" json:"name"`
	Username     *string        `gorm:"size:64;uniqueIndex" json:"username,omitempty"`
	PasswordHash string         `gorm:"size:191" json:"-"`
	IsAdmin      bool           `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

type UserListFilter struct {
	Offset      int
	Limit       int
	Query       string // email/name/username 模糊搜
	WithDeleted bool
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByProvider(ctx context.Context, provider, providerID string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, u *User) error
	List(ctx context.Context, f UserListFilter) ([]User, int64, error)
	SoftDelete(ctx context.Context, id string) error
}
