package biz

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/conf"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/constants"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/errors"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/metrics"

	pkgErrors "github.com/gaoyong06/go-pkg/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
)

// PaymentOrder 支付订单
// 状态单调推进: pending → paid | failed，终态后不再变更
type PaymentOrder struct {
	OrderNo            string
	PlayerID           string
	PlanID             string
	AmountCents        int64
	Currency           string
	Status             string
	ProviderSessionID  string
	PaidAt             *time.Time
	PaidLivesSnapshot  *int
	PaidMembershipType string
	ErrorMessage       string
	CreatedAt          time.Time
}

// WebhookEvent 回调事件去重记录，主键存在即代表已处理
type WebhookEvent struct {
	EventID    string
	EventType  string
	OrderNo    string
	ReceivedAt time.Time
}

// OrderRepo 订单仓库接口
type OrderRepo interface {
	CreateOrder(ctx context.Context, order *PaymentOrder) error
	// GetOrder 不存在时返回 nil, nil
	GetOrder(ctx context.Context, orderNo string) (*PaymentOrder, error)
	GetOrderBySession(ctx context.Context, sessionID string) (*PaymentOrder, error)
	UpdateOrder(ctx context.Context, order *PaymentOrder) error
}

// WebhookEventRepo 回调事件仓库接口
type WebhookEventRepo interface {
	// RecordEvent 条件插入事件ID，已存在时返回 false (去重)
	RecordEvent(ctx context.Context, ev *WebhookEvent) (bool, error)
}

// Transaction 事务执行接口
type Transaction interface {
	Exec(ctx context.Context, fn func(ctx context.Context) error) error
}

// CheckoutSession 服务商结账会话
type CheckoutSession struct {
	SessionID   string
	CheckoutURL string
	ExpiresAt   time.Time
}

// CheckoutClient 支付服务商客户端接口 (防腐层)
type CheckoutClient interface {
	CreateSession(ctx context.Context, order *PaymentOrder, plan *Plan, successURL string) (*CheckoutSession, error)
}

// ProviderSettings 回调校验与下单参数
type ProviderSettings struct {
	WebhookSecret string
	SuccessURL    string
	Tolerance     time.Duration
}

// NewProviderSettings 从配置构建服务商参数
func NewProviderSettings(c *conf.Bootstrap) ProviderSettings {
	return ProviderSettings{
		WebhookSecret: c.Provider.WebhookSecret,
		SuccessURL:    c.Provider.SuccessURL,
		Tolerance:     constants.WebhookTolerance,
	}
}

// CheckoutResult 下单结果
type CheckoutResult struct {
	OrderNo           string
	ProviderSessionID string
	CheckoutURL       string
	ExpiresAt         time.Time
}

// WebhookResult 回调处理结果
type WebhookResult struct {
	Duplicate bool
}

// errDuplicateEvent 事件ID重复的内部哨兵错误，用于回滚事务并返回 duplicate 响应
var errDuplicateEvent = stdErrors.New("webhook event already recorded")

// webhookEnvelope 服务商回调报文
type webhookEnvelope struct {
	EventID string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object struct {
			ID             string            `json:"id"`
			PaymentStatus  string            `json:"payment_status"`
			FailureMessage string            `json:"failure_message"`
			Metadata       map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// PaymentUsecase 支付与发放业务逻辑
type PaymentUsecase struct {
	catalog      *Catalog
	orderRepo    OrderRepo
	eventRepo    WebhookEventRepo
	lifeRepo     LifeRepo
	memberRepo   MembershipRepo
	tm           Transaction
	checkout     CheckoutClient
	rs           *redsync.Redsync
	lifeSettings LifeSettings
	provider     ProviderSettings
	clock        Clock
	metrics      *metrics.Metrics
	log          *log.Helper
}

// NewPaymentUsecase 创建支付业务逻辑实例
func NewPaymentUsecase(
	catalog *Catalog,
	orderRepo OrderRepo,
	eventRepo WebhookEventRepo,
	lifeRepo LifeRepo,
	memberRepo MembershipRepo,
	tm Transaction,
	checkout CheckoutClient,
	rs *redsync.Redsync,
	lifeSettings LifeSettings,
	provider ProviderSettings,
	clock Clock,
	m *metrics.Metrics,
	logger log.Logger,
) *PaymentUsecase {
	return &PaymentUsecase{
		catalog:      catalog,
		orderRepo:    orderRepo,
		eventRepo:    eventRepo,
		lifeRepo:     lifeRepo,
		memberRepo:   memberRepo,
		tm:           tm,
		checkout:     checkout,
		rs:           rs,
		lifeSettings: lifeSettings,
		provider:     provider,
		clock:        clock,
		metrics:      m,
		log:          log.NewHelper(logger),
	}
}

// CreateCheckout 创建订单并向服务商申请结账会话
func (uc *PaymentUsecase) CreateCheckout(ctx context.Context, playerID, planID string) (*CheckoutResult, error) {
	plan := uc.catalog.Get(planID)
	if plan == nil {
		uc.log.Warnf("Checkout for unknown plan %q by player %s", planID, playerID)
		return nil, pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodePlanNotFound)
	}

	now := uc.clock.Now()
	orderNo := fmt.Sprintf("WG%d%s", now.UnixNano(), strings.ToUpper(uuid.NewString()[:6]))
	order := &PaymentOrder{
		OrderNo:     orderNo,
		PlayerID:    playerID,
		PlanID:      plan.PlanID,
		AmountCents: plan.AmountCents,
		Currency:    plan.Currency,
		Status:      constants.OrderStatusPending,
		CreatedAt:   now,
	}
	if err := uc.orderRepo.CreateOrder(ctx, order); err != nil {
		uc.log.Errorf("Failed to create order %s: %v", orderNo, err)
		return nil, pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodeOrderCreateFailed)
	}
	uc.log.Infof("Created order %s: player=%s, plan=%s, amount=%d %s", orderNo, playerID, plan.PlanID, plan.AmountCents, plan.Currency)

	session, err := uc.checkout.CreateSession(ctx, order, plan, uc.provider.SuccessURL)
	if err != nil {
		uc.log.Errorf("Failed to create checkout session for order %s: %v", orderNo, err)
		return nil, pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodeCheckoutFailed)
	}

	order.ProviderSessionID = session.SessionID
	if err := uc.orderRepo.UpdateOrder(ctx, order); err != nil {
		uc.log.Errorf("Failed to attach session %s to order %s: %v", session.SessionID, orderNo, err)
		return nil, err
	}

	return &CheckoutResult{
		OrderNo:           orderNo,
		ProviderSessionID: session.SessionID,
		CheckoutURL:       session.CheckoutURL,
		ExpiresAt:         session.ExpiresAt,
	}, nil
}

// OrderStatus 查询订单及其套餐，订单不属于该玩家时按不存在处理
func (uc *PaymentUsecase) OrderStatus(ctx context.Context, playerID, orderNo string) (*PaymentOrder, *Plan, error) {
	order, err := uc.orderRepo.GetOrder(ctx, orderNo)
	if err != nil {
		uc.log.Errorf("Failed to get order %s: %v", orderNo, err)
		return nil, nil, err
	}
	if order == nil || order.PlayerID != playerID {
		return nil, nil, pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodeOrderNotFound)
	}
	return order, uc.catalog.Get(order.PlanID), nil
}

// HandleWebhook 处理服务商回调
// 状态机: 验签失败/过期 → rejected; 事件ID已记录 → duplicate; 否则在一个事务内
// 记录事件、推进订单并发放权益——任一步失败整体回滚，服务商重试时重新走完整流程
func (uc *PaymentUsecase) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) (*WebhookResult, error) {
	now := uc.clock.Now()

	if err := VerifyWebhookSignature(payload, sigHeader, uc.provider.WebhookSecret, now, uc.provider.Tolerance); err != nil {
		uc.log.Warnf("Webhook signature rejected: %v", err)
		uc.metrics.IncWebhook(metrics.OutcomeRejected)
		return nil, pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodeWebhookSignature)
	}

	var ev webhookEnvelope
	if err := json.Unmarshal(payload, &ev); err != nil || ev.EventID == "" {
		uc.log.Warnf("Webhook payload rejected: %v", err)
		uc.metrics.IncWebhook(metrics.OutcomeRejected)
		return nil, pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodeWebhookPayload)
	}

	// 同一订单的两条不同事件不会被事件ID去重挡住，用分布式锁串行化发放
	if uc.rs != nil {
		mutex := uc.rs.NewMutex(
			"pay_fulfill:"+uc.lockKey(&ev),
			redsync.WithExpiry(constants.FulfillLockExpiration),
			redsync.WithTries(constants.FulfillLockRetries),
		)
		if err := mutex.LockContext(ctx); err != nil {
			uc.log.Warnf("Webhook %s: fulfillment lock busy: %v", ev.EventID, err)
			return nil, fmt.Errorf("fulfillment in progress for event %s: %w", ev.EventID, err)
		}
		defer func() {
			if _, err := mutex.UnlockContext(ctx); err != nil {
				uc.log.Warnf("Failed to unlock fulfillment for event %s: %v", ev.EventID, err)
			}
		}()
	}

	outcome := metrics.OutcomeApplied
	err := uc.tm.Exec(ctx, func(ctx context.Context) error {
		inserted, err := uc.eventRepo.RecordEvent(ctx, &WebhookEvent{
			EventID:    ev.EventID,
			EventType:  ev.Type,
			OrderNo:    ev.Data.Object.Metadata["order_no"],
			ReceivedAt: now,
		})
		if err != nil {
			return err
		}
		if !inserted {
			return errDuplicateEvent
		}

		switch ev.Type {
		case constants.EventCheckoutCompleted, constants.EventAsyncPaymentSucceeded:
			return uc.fulfill(ctx, &ev, now)
		case constants.EventAsyncPaymentFailed:
			return uc.markFailed(ctx, &ev)
		default:
			// 未知事件类型: 接受并忽略，保持对服务商新事件的前向兼容
			uc.log.Infof("Ignoring webhook event %s of type %s", ev.EventID, ev.Type)
			outcome = metrics.OutcomeIgnored
			return nil
		}
	})
	if stdErrors.Is(err, errDuplicateEvent) {
		uc.log.Infof("Duplicate webhook event %s, skipping", ev.EventID)
		uc.metrics.IncWebhook(metrics.OutcomeDuplicate)
		return &WebhookResult{Duplicate: true}, nil
	}
	if err != nil {
		uc.log.Errorf("Webhook event %s failed: %v", ev.EventID, err)
		uc.metrics.IncWebhook(metrics.OutcomeFailed)
		return nil, err
	}

	uc.metrics.IncWebhook(outcome)
	return &WebhookResult{}, nil
}

func (uc *PaymentUsecase) lockKey(ev *webhookEnvelope) string {
	if orderNo := ev.Data.Object.Metadata["order_no"]; orderNo != "" {
		return orderNo
	}
	if ev.Data.Object.ID != "" {
		return ev.Data.Object.ID
	}
	return ev.EventID
}

// fulfill 支付确认: 定位订单、发放权益并标记已支付
func (uc *PaymentUsecase) fulfill(ctx context.Context, ev *webhookEnvelope, now time.Time) error {
	if ev.Data.Object.PaymentStatus != constants.PaymentStatusPaid {
		// completed 但支付尚未确认 (异步支付进行中)，等待后续事件
		uc.log.Infof("Webhook event %s: payment not confirmed yet (%s)", ev.EventID, ev.Data.Object.PaymentStatus)
		return nil
	}

	order, err := uc.lookupOrder(ctx, ev)
	if err != nil {
		return err
	}
	if order == nil {
		uc.log.Warnf("Webhook event %s: no matching order (session=%s)", ev.EventID, ev.Data.Object.ID)
		return nil
	}
	if order.Status == constants.OrderStatusPaid {
		// 去重记录丢失或人工重放: 已支付订单不重复发放
		uc.log.Infof("Order %s already paid, skipping grant", order.OrderNo)
		return nil
	}

	outcome, err := uc.applyPlan(ctx, order, now)
	if err != nil {
		return err
	}

	order.Status = constants.OrderStatusPaid
	order.PaidAt = &now
	order.PaidLivesSnapshot = outcome.Lives
	order.PaidMembershipType = outcome.MembershipType
	if order.ProviderSessionID == "" {
		order.ProviderSessionID = ev.Data.Object.ID
	}
	if err := uc.orderRepo.UpdateOrder(ctx, order); err != nil {
		return err
	}

	uc.metrics.IncPaymentCompleted()
	uc.log.Infof("Order %s fulfilled: player=%s, plan=%s", order.OrderNo, order.PlayerID, order.PlanID)
	return nil
}

// markFailed 异步支付失败: 仅 pending 订单转为 failed，已支付订单永不降级
func (uc *PaymentUsecase) markFailed(ctx context.Context, ev *webhookEnvelope) error {
	order, err := uc.lookupOrder(ctx, ev)
	if err != nil {
		return err
	}
	if order == nil {
		uc.log.Warnf("Webhook event %s: no matching order for failure", ev.EventID)
		return nil
	}
	if order.Status != constants.OrderStatusPending {
		uc.log.Infof("Order %s is %s, ignoring failure event", order.OrderNo, order.Status)
		return nil
	}

	order.Status = constants.OrderStatusFailed
	order.ErrorMessage = ev.Data.Object.FailureMessage
	if order.ErrorMessage == "" {
		order.ErrorMessage = "async payment failed"
	}
	if err := uc.orderRepo.UpdateOrder(ctx, order); err != nil {
		return err
	}
	uc.log.Infof("Order %s marked failed: %s", order.OrderNo, order.ErrorMessage)
	return nil
}

// lookupOrder 按服务商会话ID定位订单，回退到报文元数据中的订单号
func (uc *PaymentUsecase) lookupOrder(ctx context.Context, ev *webhookEnvelope) (*PaymentOrder, error) {
	if ev.Data.Object.ID != "" {
		order, err := uc.orderRepo.GetOrderBySession(ctx, ev.Data.Object.ID)
		if err != nil {
			return nil, err
		}
		if order != nil {
			return order, nil
		}
	}
	if orderNo := ev.Data.Object.Metadata["order_no"]; orderNo != "" {
		return uc.orderRepo.GetOrder(ctx, orderNo)
	}
	return nil, nil
}

// grantOutcome 发放结果快照，写入订单用于审计
type grantOutcome struct {
	Lives          *int
	MembershipType string
}

// applyPlan 发放套餐权益 (调用方已确认订单未支付)
// 体力套餐: 先重算到当前，加上奖励，再重算一次让队列与新体力对齐；
// 会员套餐: 读改写会员记录
func (uc *PaymentUsecase) applyPlan(ctx context.Context, order *PaymentOrder, now time.Time) (*grantOutcome, error) {
	plan := uc.catalog.Get(order.PlanID)
	if plan == nil {
		return nil, fmt.Errorf("order %s references unknown plan %q", order.OrderNo, order.PlanID)
	}

	switch plan.RewardType {
	case constants.RewardLives:
		life, err := uc.lifeRepo.GetLife(ctx, order.PlayerID)
		if err != nil {
			return nil, err
		}
		if life == nil {
			life = &PlayerLife{PlayerID: order.PlayerID, Lives: uc.lifeSettings.RegenCap}
		}
		cur := RecoverLives(life.Lives, life.RecoveryQueue, now, uc.lifeSettings)
		after := RecoverLives(cur.Lives+plan.LivesGain, cur.Queue, now, uc.lifeSettings)
		life.Lives = after.Lives
		life.RecoveryQueue = after.Queue
		if life.Version == 0 {
			if err := uc.lifeRepo.CreateLife(ctx, life); err != nil {
				return nil, err
			}
		} else {
			ok, err := uc.lifeRepo.UpdateLife(ctx, life)
			if err != nil {
				return nil, err
			}
			if !ok {
				// 与玩家请求并发冲突: 让整个回调失败，服务商重试时重新发放
				return nil, fmt.Errorf("life update conflict for player %s", order.PlayerID)
			}
		}
		lives := after.Lives
		uc.log.Infof("Granted %d lives to player %s (now %d)", plan.LivesGain, order.PlayerID, lives)
		return &grantOutcome{Lives: &lives}, nil

	case constants.RewardMembership:
		rec, err := uc.memberRepo.GetMembership(ctx, order.PlayerID)
		if err != nil {
			return nil, err
		}
		granted := GrantMembership(rec, plan, now)
		granted.PlayerID = order.PlayerID
		if err := uc.memberRepo.SaveMembership(ctx, granted); err != nil {
			return nil, err
		}
		uc.log.Infof("Granted %s membership to player %s", granted.Type, order.PlayerID)
		return &grantOutcome{MembershipType: granted.Type}, nil
	}

	return nil, fmt.Errorf("plan %q has unknown reward type %q", plan.PlanID, plan.RewardType)
}
