package data

import (
	"context"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/biz"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm/clause"
)

// webhookEventRepo 支付回调事件仓库实现
type webhookEventRepo struct {
	data *Data
	log  *log.Helper
}

// NewWebhookEventRepo 创建支付回调事件仓库
func NewWebhookEventRepo(data *Data, logger log.Logger) biz.WebhookEventRepo {
	return &webhookEventRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// RecordEvent 条件插入事件记录，主键冲突时不报错、返回 false
// 插入和后续发放在同一事务里，发放失败回滚后事件可以被重试
func (r *webhookEventRepo) RecordEvent(ctx context.Context, ev *biz.WebhookEvent) (bool, error) {
	m := &model.WebhookEvent{
		EventID:    ev.EventID,
		EventType:  ev.EventType,
		OrderNo:    ev.OrderNo,
		ReceivedAt: ev.ReceivedAt,
	}
	res := r.data.DB(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if res.Error != nil {
		r.log.Errorf("Failed to record webhook event %s: %v", ev.EventID, res.Error)
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
