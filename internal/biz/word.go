package biz

import (
	"context"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/constants"

	"github.com/go-kratos/kratos/v2/log"
)

// Word 词库词条
type Word struct {
	ID       int64
	Text     string
	Category string
}

// WordRepo 词库仓库接口
type WordRepo interface {
	// RandomWords 随机取一批词条，排除指定ID；category 为空时不限分类
	RandomWords(ctx context.Context, category string, limit int, excludeIDs []int64) ([]*Word, error)
}

// WordUsecase 词库业务逻辑
type WordUsecase struct {
	repo WordRepo
	log  *log.Helper
}

// NewWordUsecase 创建词库业务逻辑实例
func NewWordUsecase(repo WordRepo, logger log.Logger) *WordUsecase {
	return &WordUsecase{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

// FetchWords 随机取一批词条供客户端缓存
func (uc *WordUsecase) FetchWords(ctx context.Context, category string, limit int, excludeIDs []int64) ([]*Word, error) {
	limit, excludeIDs = sanitizeWordQuery(limit, excludeIDs)
	words, err := uc.repo.RandomWords(ctx, category, limit, excludeIDs)
	if err != nil {
		uc.log.Errorf("Failed to fetch words: %v", err)
		return nil, err
	}
	return words, nil
}

// sanitizeWordQuery 收敛取词参数，避免客户端传入离谱的 limit 或超长排除列表
func sanitizeWordQuery(limit int, excludeIDs []int64) (int, []int64) {
	if limit <= 0 {
		limit = constants.DefaultWordPageSize
	}
	if limit > constants.MaxWordPageSize {
		limit = constants.MaxWordPageSize
	}
	if len(excludeIDs) > constants.MaxExcludeWordIDs {
		excludeIDs = excludeIDs[:constants.MaxExcludeWordIDs]
	}
	return limit, excludeIDs
}
