package biz

import (
	"context"
	"time"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/constants"

	"github.com/go-kratos/kratos/v2/log"
)

// Score 单局成绩
type Score struct {
	ID         int64
	PlayerID   string
	PlayerName string
	Score      int
	WordCount  int
	CreatedAt  time.Time
}

// ScoreRepo 成绩仓库接口
type ScoreRepo interface {
	CreateScore(ctx context.Context, s *Score) error
	// ListScores 按时间倒序返回玩家最近的成绩
	ListScores(ctx context.Context, playerID string, limit int) ([]*Score, error)
}

// ScoreUsecase 成绩业务逻辑
type ScoreUsecase struct {
	repo       ScoreRepo
	playerRepo PlayerRepo
	clock      Clock
	log        *log.Helper
}

// NewScoreUsecase 创建成绩业务逻辑实例
func NewScoreUsecase(repo ScoreRepo, playerRepo PlayerRepo, clock Clock, logger log.Logger) *ScoreUsecase {
	return &ScoreUsecase{
		repo:       repo,
		playerRepo: playerRepo,
		clock:      clock,
		log:        log.NewHelper(logger),
	}
}

// Submit 上报单局成绩
func (uc *ScoreUsecase) Submit(ctx context.Context, playerID string, score, wordCount int) (*Score, error) {
	name := "Player"
	player, err := uc.playerRepo.GetPlayer(ctx, playerID)
	if err != nil {
		uc.log.Warnf("Failed to resolve player %s for score: %v", playerID, err)
	} else if player != nil {
		name = player.Username
	}

	rec := &Score{
		PlayerID:   playerID,
		PlayerName: name,
		Score:      score,
		WordCount:  wordCount,
		CreatedAt:  uc.clock.Now(),
	}
	if err := uc.repo.CreateScore(ctx, rec); err != nil {
		uc.log.Errorf("Failed to save score for player %s: %v", playerID, err)
		return nil, err
	}
	return rec, nil
}

// History 返回玩家最近的成绩记录
func (uc *ScoreUsecase) History(ctx context.Context, playerID string) ([]*Score, error) {
	scores, err := uc.repo.ListScores(ctx, playerID, constants.ScoreHistoryLimit)
	if err != nil {
		uc.log.Errorf("Failed to list scores for player %s: %v", playerID, err)
		return nil, err
	}
	return scores, nil
}
