package biz

import (
	"context"
	"time"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/constants"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/errors"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/metrics"

	pkgErrors "github.com/gaoyong06/go-pkg/errors"
	"github.com/go-kratos/kratos/v2/log"
)

// LifeRepo 玩家体力仓库接口
type LifeRepo interface {
	// GetLife 不存在时返回 nil, nil
	GetLife(ctx context.Context, playerID string) (*PlayerLife, error)
	CreateLife(ctx context.Context, life *PlayerLife) error
	// UpdateLife 条件更新 (WHERE version 匹配)，版本冲突返回 false
	UpdateLife(ctx context.Context, life *PlayerLife) (bool, error)
}

// LifeStatus 体力即时状态
type LifeStatus struct {
	Lives         int
	MaxLives      int
	RecoveryCap   int
	NextRecoverAt *time.Time
	// NextRecoverInSeconds 距下一条体力恢复的剩余秒数，与 NextRecoverAt 同源
	NextRecoverInSeconds *int64
	Membership           MembershipState
}

// LifeUsecase 体力业务逻辑
type LifeUsecase struct {
	lifeRepo   LifeRepo
	memberRepo MembershipRepo
	settings   LifeSettings
	clock      Clock
	metrics    *metrics.Metrics
	log        *log.Helper
}

// NewLifeUsecase 创建体力业务逻辑实例
func NewLifeUsecase(settings LifeSettings, lifeRepo LifeRepo, memberRepo MembershipRepo, clock Clock, m *metrics.Metrics, logger log.Logger) *LifeUsecase {
	return &LifeUsecase{
		lifeRepo:   lifeRepo,
		memberRepo: memberRepo,
		settings:   settings,
		clock:      clock,
		metrics:    m,
		log:        log.NewHelper(logger),
	}
}

// GetLives 重算并返回玩家当前体力，有变化时回写
func (uc *LifeUsecase) GetLives(ctx context.Context, playerID string) (*LifeStatus, error) {
	now := uc.clock.Now()

	member, err := uc.memberRepo.GetMembership(ctx, playerID)
	if err != nil {
		uc.log.Errorf("Failed to get membership for player %s: %v", playerID, err)
		return nil, err
	}
	state := EffectiveMembership(member, now)
	if state.UnlimitedLives {
		return uc.unlimitedStatus(state), nil
	}

	for attempt := 0; attempt < constants.LifeUpdateMaxRetries; attempt++ {
		life, err := uc.loadLife(ctx, playerID)
		if err != nil {
			return nil, err
		}

		res := RecoverLives(life.Lives, life.RecoveryQueue, now, uc.settings)
		if !res.Changed {
			return uc.buildStatus(res, state, now), nil
		}

		ok, err := uc.persistLife(ctx, life, res)
		if err != nil {
			uc.log.Errorf("Failed to persist life state for player %s: %v", playerID, err)
			return nil, err
		}
		if ok {
			return uc.buildStatus(res, state, now), nil
		}
		// 版本冲突: 并发请求先行回写，重读后重算
		uc.log.Warnf("Life update conflict for player %s, retrying", playerID)
	}

	return nil, pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodeLifeConflict)
}

// ConsumeLife 消耗一条体力
// 体力不足时返回 ErrCodeNoLives，同时返回当前状态供客户端渲染恢复倒计时
func (uc *LifeUsecase) ConsumeLife(ctx context.Context, playerID string) (*LifeStatus, error) {
	now := uc.clock.Now()

	member, err := uc.memberRepo.GetMembership(ctx, playerID)
	if err != nil {
		uc.log.Errorf("Failed to get membership for player %s: %v", playerID, err)
		return nil, err
	}
	state := EffectiveMembership(member, now)
	if state.UnlimitedLives {
		// 会员体力无限, 不扣减也不回写
		return uc.unlimitedStatus(state), nil
	}

	for attempt := 0; attempt < constants.LifeUpdateMaxRetries; attempt++ {
		life, err := uc.loadLife(ctx, playerID)
		if err != nil {
			return nil, err
		}

		cur := RecoverLives(life.Lives, life.RecoveryQueue, now, uc.settings)
		if cur.Lives <= 0 {
			// 体力耗尽: 先把恢复进度落库，再拒绝本次消耗
			if cur.Changed {
				if _, err := uc.persistLife(ctx, life, cur); err != nil {
					uc.log.Warnf("Failed to persist recovery state for player %s: %v", playerID, err)
				}
			}
			return uc.buildStatus(cur, state, now), pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodeNoLives)
		}

		// 扣减后再算一次: 队列校正会为新产生的欠账补上一条以 now 起算的计时
		after := RecoverLives(cur.Lives-1, cur.Queue, now, uc.settings)
		ok, err := uc.persistLife(ctx, life, after)
		if err != nil {
			uc.log.Errorf("Failed to persist life state for player %s: %v", playerID, err)
			return nil, err
		}
		if ok {
			uc.metrics.IncLifeConsumed()
			return uc.buildStatus(after, state, now), nil
		}
		uc.log.Warnf("Life consume conflict for player %s, retrying", playerID)
	}

	return nil, pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodeLifeConflict)
}

// loadLife 读取体力记录，新玩家返回满体力的未持久化记录 (Version=0)
func (uc *LifeUsecase) loadLife(ctx context.Context, playerID string) (*PlayerLife, error) {
	life, err := uc.lifeRepo.GetLife(ctx, playerID)
	if err != nil {
		uc.log.Errorf("Failed to get life record for player %s: %v", playerID, err)
		return nil, err
	}
	if life == nil {
		life = &PlayerLife{PlayerID: playerID, Lives: uc.settings.RegenCap}
	}
	return life, nil
}

// persistLife 把重算结果落库，返回是否写入成功 (false 表示版本冲突)
func (uc *LifeUsecase) persistLife(ctx context.Context, life *PlayerLife, res RecoverResult) (bool, error) {
	life.Lives = res.Lives
	life.RecoveryQueue = res.Queue
	if life.Version == 0 {
		if err := uc.lifeRepo.CreateLife(ctx, life); err != nil {
			return false, err
		}
		return true, nil
	}
	return uc.lifeRepo.UpdateLife(ctx, life)
}

func (uc *LifeUsecase) buildStatus(res RecoverResult, state MembershipState, now time.Time) *LifeStatus {
	status := &LifeStatus{
		Lives:         res.Lives,
		MaxLives:      uc.settings.StorageCeiling,
		RecoveryCap:   uc.settings.RegenCap,
		NextRecoverAt: res.NextRecoverAt,
		Membership:    state,
	}
	if res.NextRecoverAt != nil {
		// 倒计时以业务时钟为基准，向上取整到秒
		secs := int64((res.NextRecoverAt.Sub(now) + time.Second - 1) / time.Second)
		if secs < 0 {
			secs = 0
		}
		status.NextRecoverInSeconds = &secs
	}
	return status
}

func (uc *LifeUsecase) unlimitedStatus(state MembershipState) *LifeStatus {
	return &LifeStatus{
		Lives:       uc.settings.RegenCap,
		MaxLives:    uc.settings.StorageCeiling,
		RecoveryCap: uc.settings.RegenCap,
		Membership:  state,
	}
}
