package data

import (
	"context"
	stdErrors "errors"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/biz"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
)

// paymentOrderRepo 支付订单仓库实现
type paymentOrderRepo struct {
	data *Data
	log  *log.Helper
}

// NewPaymentOrderRepo 创建支付订单仓库
func NewPaymentOrderRepo(data *Data, logger log.Logger) biz.OrderRepo {
	return &paymentOrderRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// CreateOrder 创建订单
func (r *paymentOrderRepo) CreateOrder(ctx context.Context, order *biz.PaymentOrder) error {
	if err := r.data.DB(ctx).Create(toOrderModel(order)).Error; err != nil {
		r.log.Errorf("Failed to create order %s: %v", order.OrderNo, err)
		return err
	}
	return nil
}

// GetOrder 按订单号获取订单，不存在时返回 nil, nil
func (r *paymentOrderRepo) GetOrder(ctx context.Context, orderNo string) (*biz.PaymentOrder, error) {
	var m model.PaymentOrder
	if err := r.data.DB(ctx).First(&m, "order_no = ?", orderNo).Error; err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Errorf("Failed to get order %s: %v", orderNo, err)
		return nil, err
	}
	return toOrderBiz(&m), nil
}

// GetOrderBySession 按服务商会话ID获取订单，不存在时返回 nil, nil
func (r *paymentOrderRepo) GetOrderBySession(ctx context.Context, sessionID string) (*biz.PaymentOrder, error) {
	var m model.PaymentOrder
	if err := r.data.DB(ctx).First(&m, "provider_session_id = ?", sessionID).Error; err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Errorf("Failed to get order by session %s: %v", sessionID, err)
		return nil, err
	}
	return toOrderBiz(&m), nil
}

// UpdateOrder 更新订单
func (r *paymentOrderRepo) UpdateOrder(ctx context.Context, order *biz.PaymentOrder) error {
	if err := r.data.DB(ctx).Save(toOrderModel(order)).Error; err != nil {
		r.log.Errorf("Failed to update order %s: %v", order.OrderNo, err)
		return err
	}
	return nil
}

func toOrderModel(order *biz.PaymentOrder) *model.PaymentOrder {
	return &model.PaymentOrder{
		OrderNo:            order.OrderNo,
		PlayerID:           order.PlayerID,
		PlanID:             order.PlanID,
		AmountCents:        order.AmountCents,
		Currency:           order.Currency,
		Status:             order.Status,
		ProviderSessionID:  order.ProviderSessionID,
		PaidAt:             order.PaidAt,
		PaidLivesSnapshot:  order.PaidLivesSnapshot,
		PaidMembershipType: order.PaidMembershipType,
		ErrorMessage:       order.ErrorMessage,
		CreatedAt:          order.CreatedAt,
	}
}

func toOrderBiz(m *model.PaymentOrder) *biz.PaymentOrder {
	return &biz.PaymentOrder{
		OrderNo:            m.OrderNo,
		PlayerID:           m.PlayerID,
		PlanID:             m.PlanID,
		AmountCents:        m.AmountCents,
		Currency:           m.Currency,
		Status:             m.Status,
		ProviderSessionID:  m.ProviderSessionID,
		PaidAt:             m.PaidAt,
		PaidLivesSnapshot:  m.PaidLivesSnapshot,
		PaidMembershipType: m.PaidMembershipType,
		ErrorMessage:       m.ErrorMessage,
		CreatedAt:          m.CreatedAt,
	}
}
