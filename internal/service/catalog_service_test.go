package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-shop-api/internal/domain"
)

func int64p(v int64) *int64 { return &v }
func boolp(v bool) *bool    { return &v }

func newCatalog() (*CatalogService, *fakeProductRepo) {
	repo := &fakeProductRepo{}
	return NewCatalogService(repo, nil, zap.NewNop()), repo
}

func TestAdminCreate_Defaults(t *testing.T) {
	s, _ := newCatalog()
	ctx := context.Background()

	p, err := s.AdminCreate(ctx, ProductCreate{Name: "Serum", Price: int64p(32900)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.SKU, "sku-"))
	assert.True(t, p.Active)
	assert.Equal(t, 100, p.MaxQtyPerUser)
	assert.Equal(t, 100, p.MaxQtyPerOrder)
}

func TestAdminCreate_Validation(t *testing.T) {
	s, _ := newCatalog()
	ctx := context.Background()
	var ve *ValidationError

	_, err := s.AdminCreate(ctx, ProductCreate{Price: int64p(100)})
	assert.ErrorAs(t, err, &ve)
	_, err = s.AdminCreate(ctx, ProductCreate{Name: "x"})
	assert.ErrorAs(t, err, &ve)
}

func TestPublicList_OnlyActive(t *testing.T) {
	s, _ := newCatalog()
	ctx := context.Background()

	_, err := s.AdminCreate(ctx, ProductCreate{SKU: "sku-a", Name: "A", Price: int64p(100)})
	require.NoError(t, err)
	_, err = s.AdminCreate(ctx, ProductCreate{SKU: "sku-b", Name: "B", Price: int64p(200), Active: boolp(false)})
	require.NoError(t, err)

	list, err := s.PublicList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	// 对外 id 就是 sku
	assert.Equal(t, "sku-a", list[0].ID)
}

func TestPublicDetail(t *testing.T) {
	s, _ := newCatalog()
	ctx := context.Background()

	_, err := s.AdminCreate(ctx, ProductCreate{
		SKU: "sku-a", Name: "A", Price: int64p(100),
		ShippingFee: 500, MaxQtyPerUser: 5,
	})
	require.NoError(t, err)

	d, err := s.PublicDetail(ctx, "sku-a")
	require.NoError(t, err)
	assert.Equal(t, "sku-a", d.ID)
	assert.EqualValues(t, 500, d.ShippingFee)
	assert.Equal(t, 5, d.MaxQtyPerUser)

	_, err = s.PublicDetail(ctx, "sku-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPublicDetail_InactiveHidden(t *testing.T) {
	s, _ := newCatalog()
	ctx := context.Background()

	_, err := s.AdminCreate(ctx, ProductCreate{SKU: "sku-a", Name: "A", Price: int64p(100), Active: boolp(false)})
	require.NoError(t, err)

	_, err = s.PublicDetail(ctx, "sku-a")
	assert.ErrorIs(t, err, ErrNotFound)

	// 后台照样看得到
	p, err := s.AdminGet(ctx, "sku-a")
	require.NoError(t, err)
	assert.False(t, p.Active)
}

func TestAdminUpdateAndDelete(t *testing.T) {
	s, _ := newCatalog()
	ctx := context.Background()

	_, err := s.AdminCreate(ctx, ProductCreate{SKU: "sku-a", Name: "A", Price: int64p(100)})
	require.NoError(t, err)

	p, err := s.AdminUpdate(ctx, "sku-a", domain.ProductUpdate{Price: int64p(150)})
	require.NoError(t, err)
	assert.EqualValues(t, 150, p.Price)

	_, err = s.AdminUpdate(ctx, "sku-missing", domain.ProductUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.AdminDelete(ctx, "sku-a"))
	assert.ErrorIs(t, s.AdminDelete(ctx, "sku-a"), ErrNotFound)
}
