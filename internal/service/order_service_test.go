package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-shop-api/internal/domain"
	"go-shop-api/internal/event"
)

func TestPlaceOrder(t *testing.T) {
	repo := &fakeOrderRepo{}
	pub := &fakePublisher{}
	s := NewOrderService(repo, pub, zap.NewNop())
	ctx := context.Background()

	in := PlaceOrderInput{
		Items: domain.OrderItems{
			{ProductID: "p1", Name: "Serum", Price: 32900, Qty: 2},
		},
		Total:         67300, // 客户端给多少存多少，不重算
		PaymentMethod: "card",
		ShippingAddress: domain.JSONMap{
			"line1": "1 Main St",
			"city":  "Taipei",
		},
	}
	o, err := s.Place(ctx, "u1", in)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPlaced, o.Status)
	assert.EqualValues(t, 67300, o.Total)
	assert.Equal(t, in.Items, o.Items)
	assert.Regexp(t, regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{8}$`), o.OrderNumber)

	// 同事务清车
	assert.Equal(t, []string{"u1"}, repo.clearedFor)

	// 发了 order.created
	require.Len(t, pub.events, 1)
	assert.Equal(t, event.OrderCreated, pub.events[0].key)
	assert.Equal(t, o.ID, pub.events[0].ev.OrderID)
	assert.EqualValues(t, 67300, pub.events[0].ev.Total)
}

func TestPlaceOrder_NilItems(t *testing.T) {
	s := NewOrderService(&fakeOrderRepo{}, nil, zap.NewNop())

	o, err := s.Place(context.Background(), "u1", PlaceOrderInput{Total: 0})
	require.NoError(t, err)
	assert.NotNil(t, o.Items)
	assert.Empty(t, o.Items)
}

func TestPlaceOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	repo := &fakeOrderRepo{}
	pub := &fakePublisher{err: assert.AnError}
	s := NewOrderService(repo, pub, zap.NewNop())

	o, err := s.Place(context.Background(), "u1", PlaceOrderInput{Total: 100})
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Len(t, repo.orders, 1)
}

func TestAdminUpdateOrder(t *testing.T) {
	repo := &fakeOrderRepo{}
	pub := &fakePublisher{}
	s := NewOrderService(repo, pub, zap.NewNop())
	ctx := context.Background()

	o, err := s.Place(ctx, "u1", PlaceOrderInput{Total: 100})
	require.NoError(t, err)
	pub.events = nil

	// 只改物流不发状态事件
	trackingNo := "TW123"
	got, err := s.AdminUpdate(ctx, o.ID, domain.OrderStatusUpdate{TrackingNo: &trackingNo})
	require.NoError(t, err)
	assert.Equal(t, "TW123", got.TrackingNo)
	assert.Empty(t, pub.events)

	// status 是自由文本，改了就发事件
	status := "SHIPPED"
	got, err = s.AdminUpdate(ctx, o.ID, domain.OrderStatusUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "SHIPPED", got.Status)
	require.Len(t, pub.events, 1)
	assert.Equal(t, event.OrderStatusUpdated, pub.events[0].key)
}

func TestAdminUpdateOrder_NotFound(t *testing.T) {
	s := NewOrderService(&fakeOrderRepo{}, nil, zap.NewNop())
	status := "SHIPPED"
	_, err := s.AdminUpdate(context.Background(), "missing", domain.OrderStatusUpdate{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)
}
