package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-shop-api/internal/domain"
	"go-shop-api/internal/event"
	"go-shop-api/pkg/utils"
)

type OrderService struct {
	orders domain.OrderRepository
	pub    event.Publisher
	log    *zap.Logger
}

func NewOrderService(orders domain.OrderRepository, pub event.Publisher, log *zap.Logger) *OrderService {
	if pub == nil {
		pub = event.Nop{}
	}
	return &OrderService{orders: orders, pub: pub, log: log}
}

type PlaceOrderInput struct {
	Items           domain.OrderItems `json:"items"`
	Total           int64             `json:"total"`
	ShippingAddress domain.JSONMap    `json:"shippingAddress"`
	PaymentMethod   string            `json:"paymentMethod"`
}

// Place items/total 原样入库：不重算合计、不对账目录价、不动库存。
// 客户端交多少存多少是既定契约，对账属于后台流程。
func (s *OrderService) Place(ctx context.Context, userID string, in PlaceOrderInput) (*domain.Order, error) {
	items := in.Items
	if items == nil {
		items = domain.OrderItems{}
	}
	o := &domain.Order{
		ID:              utils.NewID(),
		OrderNumber:     newOrderNumber(),
		UserID:          userID,
		Items:           items,
		Total:           in.Total,
		Status:          domain.OrderStatusPlaced,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
	}
	if err := s.orders.Place(ctx, o); err != nil {
		return nil, err
	}
	s.publish(ctx, event.OrderCreated, o)
	return o, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *OrderService) AdminList(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAll(ctx)
}

func (s *OrderService) AdminUpdate(ctx context.Context, id string, upd domain.OrderStatusUpdate) (*domain.Order, error) {
	o, err := s.orders.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNotFound
	}
	if upd.Status != nil {
		s.publish(ctx, event.OrderStatusUpdated, o)
	}
	return o, nil
}

// publish 发事件失败只记 warn，不影响已落库的单
func (s *OrderService) publish(ctx context.Context, key string, o *domain.Order) {
	err := s.pub.Publish(ctx, key, event.OrderEvent{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Status:      o.Status,
		Total:       o.Total,
	})
	if err != nil {
		s.log.Warn("publish order event failed",
			zap.String("key", key), zap.String("order_id", o.ID), zap.Error(err))
	}
}

func newOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%s",
		time.Now().Format("20060102"),
		strings.ToUpper(utils.NewID()[:8]))
}
