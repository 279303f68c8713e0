package data

import (
	"context"
	stdErrors "errors"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/biz"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
)

// playerRepo 玩家仓库实现
type playerRepo struct {
	data *Data
	log  *log.Helper
}

// NewPlayerRepo 创建玩家仓库
func NewPlayerRepo(data *Data, logger log.Logger) biz.PlayerRepo {
	return &playerRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// CreatePlayer 创建玩家
func (r *playerRepo) CreatePlayer(ctx context.Context, p *biz.Player) error {
	m := &model.Player{
		PlayerID:     p.PlayerID,
		Username:     p.Username,
		PasswordHash: p.PasswordHash,
		CreatedAt:    p.CreatedAt,
	}
	if err := r.data.DB(ctx).Create(m).Error; err != nil {
		r.log.Errorf("Failed to create player %s: %v", p.PlayerID, err)
		return err
	}
	return nil
}

// GetPlayer 按ID获取玩家，不存在时返回 nil, nil
func (r *playerRepo) GetPlayer(ctx context.Context, playerID string) (*biz.Player, error) {
	var m model.Player
	if err := r.data.DB(ctx).First(&m, "player_id = ?", playerID).Error; err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Errorf("Failed to get player %s: %v", playerID, err)
		return nil, err
	}
	return toPlayerBiz(&m), nil
}

// GetPlayerByUsername 按用户名获取玩家，不存在时返回 nil, nil
func (r *playerRepo) GetPlayerByUsername(ctx context.Context, username string) (*biz.Player, error) {
	var m model.Player
	if err := r.data.DB(ctx).First(&m, "username = ?", username).Error; err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Errorf("Failed to get player by username %q: %v", username, err)
		return nil, err
	}
	return toPlayerBiz(&m), nil
}

func toPlayerBiz(m *model.Player) *biz.Player {
	return &biz.Player{
		PlayerID:     m.PlayerID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}
