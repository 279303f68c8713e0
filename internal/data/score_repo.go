package data

import (
	"context"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/biz"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
)

// scoreRepo 成绩仓库实现
type scoreRepo struct {
	data *Data
	log  *log.Helper
}

// NewScoreRepo 创建成绩仓库
func NewScoreRepo(data *Data, logger log.Logger) biz.ScoreRepo {
	return &scoreRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// CreateScore 写入一条成绩
func (r *scoreRepo) CreateScore(ctx context.Context, s *biz.Score) error {
	m := &model.Score{
		PlayerID:   s.PlayerID,
		PlayerName: s.PlayerName,
		Score:      s.Score,
		WordCount:  s.WordCount,
		CreatedAt:  s.CreatedAt,
	}
	if err := r.data.DB(ctx).Create(m).Error; err != nil {
		r.log.Errorf("Failed to create score for player %s: %v", s.PlayerID, err)
		return err
	}
	s.ID = m.ID
	return nil
}

// ListScores 按时间倒序返回玩家最近的成绩
func (r *scoreRepo) ListScores(ctx context.Context, playerID string, limit int) ([]*biz.Score, error) {
	var ms []*model.Score
	err := r.data.DB(ctx).
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		r.log.Errorf("Failed to list scores for player %s: %v", playerID, err)
		return nil, err
	}
	scores := make([]*biz.Score, 0, len(ms))
	for _, m := range ms {
		scores = append(scores, &biz.Score{
			ID:         m.ID,
			PlayerID:   m.PlayerID,
			PlayerName: m.PlayerName,
			Score:      m.Score,
			WordCount:  m.WordCount,
			CreatedAt:  m.CreatedAt,
		})
	}
	return scores, nil
}
