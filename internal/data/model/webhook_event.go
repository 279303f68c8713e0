package model

import "time"

// WebhookEvent 支付回调事件模型，事件ID主键用于去重
type WebhookEvent struct {
	EventID    string    `gorm:"primaryKey;column:event_id"`
	EventType  string    `gorm:"column:event_type"`
	OrderNo    string    `gorm:"column:order_no"`
	ReceivedAt time.Time `gorm:"column:received_at"`
}

func (WebhookEvent) TableName() string { return "webhook_event" }
