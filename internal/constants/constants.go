package constants

import "time"

// 体力恢复相关常量
const (
	// RecoveryInterval 单条体力恢复计时时长
	RecoveryInterval = 30 * time.Minute
	// RegenCapLives 自然恢复上限 (超过该值不再计时恢复)
	RegenCapLives = 5
	// StorageCeilingLives 体力存储上限 (购买的体力包可以超过自然恢复上限)
	StorageCeilingLives = 999
	// LifeUpdateMaxRetries 体力乐观更新最大重试次数
	LifeUpdateMaxRetries = 3
)

// 支付回调相关常量
const (
	// WebhookTolerance 回调签名时间戳容忍窗口 (防重放)
	WebhookTolerance = 300 * time.Second
	// SignatureHeader 支付服务商签名头
	SignatureHeader = "Pay-Signature"
	// FulfillLockExpiration 订单发放锁过期时间
	FulfillLockExpiration = 30 * time.Second
	// FulfillLockRetries 订单发放锁重试次数
	FulfillLockRetries = 1
)

// 请求头
const (
	// PlayerIDHeader 玩家身份头 (客户端登录后随请求携带)
	PlayerIDHeader = "X-Player-ID"
)

// 缓存相关常量
const (
	// DefaultCacheExpiration 默认缓存过期时间
	DefaultCacheExpiration = time.Hour
	// NullCacheExpiration 空值缓存过期时间 (防止缓存穿透)
	NullCacheExpiration = 5 * time.Minute
	// CacheRandomMaxSeconds 缓存随机过期时间最大值(秒) - 防止缓存雪崩
	CacheRandomMaxSeconds = 600 // 10分钟
)

// 词库与历史记录相关常量
const (
	// DefaultWordPageSize 默认单次取词数量
	DefaultWordPageSize = 320
	// MaxWordPageSize 最大单次取词数量
	MaxWordPageSize = 500
	// MaxExcludeWordIDs 单次请求最多排除的词条数量
	MaxExcludeWordIDs = 300
	// ScoreHistoryLimit 历史成绩返回条数
	ScoreHistoryLimit = 10
)

// 账号相关常量
const (
	// MinPasswordLength 密码最小长度
	MinPasswordLength = 6
)

// 订单状态
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
	OrderStatusFailed  = "failed"
)

// 会员类型
const (
	MembershipNone     = "none"
	MembershipMonthly  = "monthly"
	MembershipLifetime = "lifetime"
)

// 套餐奖励类型
const (
	RewardLives      = "lives"
	RewardMembership = "membership"
)

// 支付服务商事件类型(与服务商保持一致)
const (
	// EventCheckoutCompleted 结账会话完成 (payment_status 为 paid 时发放)
	EventCheckoutCompleted = "checkout.session.completed"
	// EventAsyncPaymentSucceeded 异步支付成功
	EventAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
	// EventAsyncPaymentFailed 异步支付失败
	EventAsyncPaymentFailed = "checkout.session.async_payment_failed"
)

// 支付状态(服务商回调中的 payment_status)
const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)
