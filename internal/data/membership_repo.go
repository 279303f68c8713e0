package data

import (
	"context"
	stdErrors "errors"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/biz"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// membershipRepo 玩家会员仓库实现
type membershipRepo struct {
	data *Data
	log  *log.Helper
}

// NewMembershipRepo 创建玩家会员仓库
func NewMembershipRepo(data *Data, logger log.Logger) biz.MembershipRepo {
	return &membershipRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// GetMembership 获取会员记录，不存在时返回 nil, nil
func (r *membershipRepo) GetMembership(ctx context.Context, playerID string) (*biz.Membership, error) {
	var m model.PlayerMembership
	if err := r.data.DB(ctx).First(&m, "player_id = ?", playerID).Error; err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Errorf("Failed to get membership for player %s: %v", playerID, err)
		return nil, err
	}
	return &biz.Membership{
		PlayerID:  m.PlayerID,
		Type:      m.Type,
		ExpiresAt: m.ExpiresAt,
	}, nil
}

// SaveMembership 写入会员记录 (按玩家ID覆盖)
func (r *membershipRepo) SaveMembership(ctx context.Context, mem *biz.Membership) error {
	m := &model.PlayerMembership{
		PlayerID:  mem.PlayerID,
		Type:      mem.Type,
		ExpiresAt: mem.ExpiresAt,
	}
	err := r.data.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "expires_at", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		r.log.Errorf("Failed to save membership for player %s: %v", mem.PlayerID, err)
		return err
	}
	return nil
}
