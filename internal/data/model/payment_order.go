package model

import "time"

// PaymentOrder 支付订单模型
type PaymentOrder struct {
	OrderNo            string     `gorm:"primaryKey;column:order_no"`
	PlayerID           string     `gorm:"column:player_id;index"`
	PlanID             string     `gorm:"column:plan_id"`
	AmountCents        int64      `gorm:"column:amount_cents"`
	Currency           string     `gorm:"column:currency"`
	Status             string     `gorm:"column:status"`
	ProviderSessionID  string     `gorm:"column:provider_session_id;index"`
	PaidAt             *time.Time `gorm:"column:paid_at"`
	PaidLivesSnapshot  *int       `gorm:"column:paid_lives_snapshot"`
	PaidMembershipType string     `gorm:"column:paid_membership_type"`
	ErrorMessage       string     `gorm:"column:error_message"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (PaymentOrder) TableName() string { return "payment_order" }
