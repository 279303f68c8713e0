package service

import "time"

// MembershipStateReply 会员状态
type MembershipStateReply struct {
	VipActive      bool       `json:"vip_active"`
	VipType        string     `json:"vip_type"`
	VipExpiresAt   *time.Time `json:"vip_expires_at"`
	UnlimitedLives bool       `json:"unlimited_lives"`
}

// LifeStatusReply 体力状态 (体力字段与会员字段平铺)
type LifeStatusReply struct {
	Lives                int        `json:"lives"`
	MaxLives             int        `json:"max_lives"`
	RecoveryCapLives     int        `json:"recovery_cap_lives"`
	NextRecoverAt        *time.Time `json:"next_recover_at"`
	NextRecoverInSeconds *int64     `json:"next_recover_in_seconds"`
	VipActive            bool       `json:"vip_active"`
	VipType              string     `json:"vip_type"`
	VipExpiresAt         *time.Time `json:"vip_expires_at"`
	UnlimitedLives       bool       `json:"unlimited_lives"`
}

// ConsumeLifeErrorReply 体力不足响应
// 携带完整状态，客户端无需二次请求即可渲染恢复倒计时
type ConsumeLifeErrorReply struct {
	Error string `json:"error"`
	LifeStatusReply
}

// PlanReply 套餐信息
type PlanReply struct {
	PlanID         string `json:"plan_id"`
	Title          string `json:"title"`
	RewardType     string `json:"reward_type"`
	LivesGain      int    `json:"lives_gain,omitempty"`
	MembershipType string `json:"membership_type,omitempty"`
	MembershipDays int    `json:"membership_days,omitempty"`
	AmountCents    int64  `json:"amount_cents"`
	Currency       string `json:"currency"`
}

// ListPlansReply 套餐列表
type ListPlansReply struct {
	Plans []*PlanReply `json:"plans"`
}

// CreateCheckoutRequest 创建结账会话请求
type CreateCheckoutRequest struct {
	PlanID string `json:"plan_id"`
}

// CreateCheckoutReply 创建结账会话结果
type CreateCheckoutReply struct {
	OrderNo           string    `json:"order_no"`
	CheckoutURL       string    `json:"checkout_url"`
	ProviderSessionID string    `json:"provider_session_id"`
	ExpiresAt         time.Time `json:"expires_at"`
}

// OrderStatusReply 订单状态
// 已支付订单附带当前体力/会员状态，客户端轮询到 paid 后可直接刷新界面
type OrderStatusReply struct {
	OrderNo         string                `json:"order_no"`
	Status          string                `json:"status"`
	PlanID          string                `json:"plan_id"`
	PlanTitle       string                `json:"plan_title,omitempty"`
	LivesGain       int                   `json:"lives_gain"`
	AmountCents     int64                 `json:"amount_cents"`
	Currency        string                `json:"currency"`
	PaidAt          *time.Time            `json:"paid_at"`
	ErrorMessage    string                `json:"error_message,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	LivesState      *LifeStatusReply      `json:"lives_state,omitempty"`
	MembershipState *MembershipStateReply `json:"membership_state,omitempty"`
}

// WebhookReply 回调确认
type WebhookReply struct {
	Received  bool `json:"received"`
	Duplicate bool `json:"duplicate,omitempty"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PlayerReply 玩家信息
type PlayerReply struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
}

// WordReply 词条
type WordReply struct {
	WordID   int64  `json:"word_id"`
	Word     string `json:"word"`
	Category string `json:"category,omitempty"`
}

// ListWordsReply 词条列表
type ListWordsReply struct {
	Words []*WordReply `json:"words"`
}

// SubmitScoreRequest 上报成绩请求
type SubmitScoreRequest struct {
	Score     int `json:"score"`
	WordCount int `json:"word_count"`
}

// ScoreReply 成绩记录
type ScoreReply struct {
	ID         int64     `json:"id"`
	PlayerName string    `json:"player_name"`
	Score      int       `json:"score"`
	WordCount  int       `json:"word_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// ScoreHistoryReply 历史成绩
type ScoreHistoryReply struct {
	Scores []*ScoreReply `json:"scores"`
}
