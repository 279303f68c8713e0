package data

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/biz"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/constants"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
)

const wordCountCachePrefix = "word:count:"

// wordRepo 词库仓库实现
type wordRepo struct {
	data *Data
	log  *log.Helper
}

// NewWordRepo 创建词库仓库
func NewWordRepo(data *Data, logger log.Logger) biz.WordRepo {
	return &wordRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// RandomWords 从随机偏移处取一批词条，不足时从头部回绕补齐
// 词条总数走 Redis 缓存，避免每次取词都全表 COUNT
func (r *wordRepo) RandomWords(ctx context.Context, category string, limit int, excludeIDs []int64) ([]*biz.Word, error) {
	count, err := r.wordCount(ctx, category)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return []*biz.Word{}, nil
	}

	offset := 0
	if count > int64(limit) {
		offset = rand.Intn(int(count) - limit + 1)
	}

	words, err := r.queryWords(ctx, category, limit, offset, excludeIDs)
	if err != nil {
		return nil, err
	}

	// 排除列表命中偏移区间时结果会偏少，从头部补一批
	if len(words) < limit && offset > 0 {
		seen := excludeIDs
		for _, w := range words {
			seen = append(seen, w.ID)
		}
		head, err := r.queryWords(ctx, category, limit-len(words), 0, seen)
		if err != nil {
			return nil, err
		}
		words = append(words, head...)
	}
	return words, nil
}

func (r *wordRepo) queryWords(ctx context.Context, category string, limit, offset int, excludeIDs []int64) ([]*biz.Word, error) {
	q := r.withCategory(r.data.DB(ctx).Model(&model.Word{}), category).
		Order("word_id").Offset(offset).Limit(limit)
	if len(excludeIDs) > 0 {
		q = q.Where("word_id NOT IN ?", excludeIDs)
	}
	var ms []*model.Word
	if err := q.Find(&ms).Error; err != nil {
		r.log.Errorf("Failed to query words: %v", err)
		return nil, err
	}
	words := make([]*biz.Word, 0, len(ms))
	for _, m := range ms {
		words = append(words, &biz.Word{ID: m.WordID, Text: m.Word, Category: m.Category})
	}
	return words, nil
}

// wordCount 分类下的词条总数，缓存过期时间加随机抖动防止雪崩
func (r *wordRepo) wordCount(ctx context.Context, category string) (int64, error) {
	key := wordCountCachePrefix + category
	if category == "" {
		key = wordCountCachePrefix + "_all"
	}

	if cached, err := r.data.rdb.Get(ctx, key).Result(); err == nil {
		if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return count, nil
		}
	}

	var count int64
	if err := r.withCategory(r.data.DB(ctx).Model(&model.Word{}), category).Count(&count).Error; err != nil {
		r.log.Errorf("Failed to count words: %v", err)
		return 0, err
	}

	// 空分类也缓存，防止穿透
	expiration := constants.DefaultCacheExpiration + time.Duration(rand.Intn(constants.CacheRandomMaxSeconds))*time.Second
	if count == 0 {
		expiration = constants.NullCacheExpiration
	}
	if err := r.data.rdb.Set(ctx, key, count, expiration).Err(); err != nil {
		r.log.Warnf("Failed to cache word count: %v", err)
	}
	return count, nil
}

func (r *wordRepo) withCategory(q *gorm.DB, category string) *gorm.DB {
	if category != "" {
		return q.Where("category = ?", category)
	}
	return q
}
