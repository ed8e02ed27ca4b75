package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-shop-api/internal/domain"
)

func TestCartGet_EmptyCart(t *testing.T) {
	s := NewCartService(newFakeCartRepo())

	c, err := s.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UserID)
	assert.NotNil(t, c.Items)
	assert.Empty(t, c.Items)
	assert.EqualValues(t, 0, c.Version)
}

func TestCartReplace_LastWriteWins(t *testing.T) {
	s := NewCartService(newFakeCartRepo())
	ctx := context.Background()

	c, err := s.Replace(ctx, "u1", domain.CartItems{{ProductID: "p1", Qty: 2}}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, c.Version)

	// 不带 version 直接覆盖
	c, err = s.Replace(ctx, "u1", domain.CartItems{{ProductID: "p2", Qty: 1}}, nil)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "p2", c.Items[0].ProductID)
	assert.EqualValues(t, 2, c.Version)
}

func TestCartReplace_VersionConflict(t *testing.T) {
	s := NewCartService(newFakeCartRepo())
	ctx := context.Background()

	c, err := s.Replace(ctx, "u1", domain.CartItems{{ProductID: "p1", Qty: 1}}, nil)
	require.NoError(t, err)

	stale := c.Version - 1
	_, err = s.Replace(ctx, "u1", domain.CartItems{{ProductID: "p2", Qty: 1}}, &stale)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)

	// 匹配的 version 可以写
	cur := c.Version
	c2, err := s.Replace(ctx, "u1", domain.CartItems{{ProductID: "p2", Qty: 1}}, &cur)
	require.NoError(t, err)
	assert.EqualValues(t, cur+1, c2.Version)
}

func TestCartMerge(t *testing.T) {
	s := NewCartService(newFakeCartRepo())
	ctx := context.Background()

	_, err := s.Replace(ctx, "u1", domain.CartItems{
		{ProductID: "p1", Name: "Serum", Price: 32900, Qty: 1},
	}, nil)
	require.NoError(t, err)

	c, err := s.Merge(ctx, "u1", domain.CartItems{
		{ProductID: "p1", Name: "stale", Price: 100, Qty: 2},
		{ProductID: "p2", Name: "Toner", Price: 13900, Qty: 1},
	})
	require.NoError(t, err)
	require.Len(t, c.Items, 2)
	assert.Equal(t, 3, c.Items[0].Qty)
	assert.Equal(t, "Serum", c.Items[0].Name)
	assert.EqualValues(t, 32900, c.Items[0].Price)
	assert.Equal(t, "p2", c.Items[1].ProductID)
}

func TestCartMerge_EmptyInputIsReadOnly(t *testing.T) {
	repo := newFakeCartRepo()
	s := NewCartService(repo)
	ctx := context.Background()

	c, err := s.Merge(ctx, "u1", nil)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.EqualValues(t, 0, c.Version) // 没建行

	_, err = s.Replace(ctx, "u1", domain.CartItems{{ProductID: "p1", Qty: 1}}, nil)
	require.NoError(t, err)

	// 全是无效行也等价空输入
	c, err = s.Merge(ctx, "u1", domain.CartItems{{ProductID: "px", Qty: 0}})
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.EqualValues(t, 1, c.Version) // 没有多写一版
}
