package data

import (
	"context"
	"encoding/json"
	stdErrors "errors"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/biz"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
)

// lifeRepo 玩家体力仓库实现
type lifeRepo struct {
	data *Data
	log  *log.Helper
}

// NewLifeRepo 创建玩家体力仓库
func NewLifeRepo(data *Data, logger log.Logger) biz.LifeRepo {
	return &lifeRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// GetLife 获取体力记录，不存在时返回 nil, nil
func (r *lifeRepo) GetLife(ctx context.Context, playerID string) (*biz.PlayerLife, error) {
	var m model.PlayerLife
	if err := r.data.DB(ctx).First(&m, "player_id = ?", playerID).Error; err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Errorf("Failed to get life record for player %s: %v", playerID, err)
		return nil, err
	}

	queue, err := decodeQueue(m.RecoveryQueue)
	if err != nil {
		r.log.Errorf("Corrupt recovery queue for player %s: %v", playerID, err)
		return nil, err
	}
	return &biz.PlayerLife{
		PlayerID:      m.PlayerID,
		Lives:         m.Lives,
		RecoveryQueue: queue,
		Version:       m.Version,
	}, nil
}

// CreateLife 创建体力记录，初始版本为 1
func (r *lifeRepo) CreateLife(ctx context.Context, life *biz.PlayerLife) error {
	queue, err := encodeQueue(life.RecoveryQueue)
	if err != nil {
		return err
	}
	m := &model.PlayerLife{
		PlayerID:      life.PlayerID,
		Lives:         life.Lives,
		RecoveryQueue: queue,
		Version:       1,
	}
	if err := r.data.DB(ctx).Create(m).Error; err != nil {
		r.log.Errorf("Failed to create life record for player %s: %v", life.PlayerID, err)
		return err
	}
	life.Version = 1
	return nil
}

// UpdateLife 按版本条件更新，版本不匹配时返回 false
func (r *lifeRepo) UpdateLife(ctx context.Context, life *biz.PlayerLife) (bool, error) {
	queue, err := encodeQueue(life.RecoveryQueue)
	if err != nil {
		return false, err
	}
	res := r.data.DB(ctx).Model(&model.PlayerLife{}).
		Where("player_id = ? AND version = ?", life.PlayerID, life.Version).
		Updates(map[string]interface{}{
			"lives":          life.Lives,
			"recovery_queue": queue,
			"version":        life.Version + 1,
		})
	if res.Error != nil {
		r.log.Errorf("Failed to update life record for player %s: %v", life.PlayerID, res.Error)
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	life.Version++
	return true, nil
}

func encodeQueue(queue []int64) (string, error) {
	if len(queue) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(queue)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeQueue(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	var queue []int64
	if err := json.Unmarshal([]byte(raw), &queue); err != nil {
		return nil, err
	}
	return queue, nil
}
