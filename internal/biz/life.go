package biz

import (
	"sort"
	"time"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/conf"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/constants"
)

// LifeSettings 体力恢复参数
type LifeSettings struct {
	// RegenCap 自然恢复上限
	RegenCap int
	// StorageCeiling 体力存储上限 (体力包可以把体力买到自然上限之上)
	StorageCeiling int
	// RecoveryInterval 单条体力恢复计时时长
	RecoveryInterval time.Duration
}

// NewLifeSettings 从配置构建体力参数，未配置的项使用默认值
func NewLifeSettings(c *conf.Bootstrap) LifeSettings {
	s := LifeSettings{
		RegenCap:         constants.RegenCapLives,
		StorageCeiling:   constants.StorageCeilingLives,
		RecoveryInterval: constants.RecoveryInterval,
	}
	if c.Game == nil {
		return s
	}
	if c.Game.Lives.RegenCap > 0 {
		s.RegenCap = c.Game.Lives.RegenCap
	}
	if c.Game.Lives.StorageCeiling > 0 {
		s.StorageCeiling = c.Game.Lives.StorageCeiling
	}
	if c.Game.Lives.RecoveryInterval != "" {
		if d, err := time.ParseDuration(c.Game.Lives.RecoveryInterval); err == nil && d > 0 {
			s.RecoveryInterval = d
		}
	}
	return s
}

// PlayerLife 玩家体力持久化状态
// RecoveryQueue 中每个毫秒时间戳代表一条"体力欠账"的起算时间，升序排列
type PlayerLife struct {
	PlayerID      string
	Lives         int
	RecoveryQueue []int64
	Version       int64
}

// RecoverResult 体力重算结果
type RecoverResult struct {
	Lives         int
	Queue         []int64
	NextRecoverAt *time.Time
	// Changed 为 false 时调用方可以跳过持久化
	Changed bool
}

// RecoverLives 根据持久化快照和当前时间重算体力
// 纯函数：相同输入返回相同输出，用自身输出在同一时刻再算一次是空操作 (Changed=false)。
// 恢复是补偿式的——长时间未拉取时一次调用可以连续恢复多条，而不依赖任何后台计时器。
func RecoverLives(lives int, queue []int64, now time.Time, s LifeSettings) RecoverResult {
	inLives, inQueue := lives, queue

	if lives < 0 {
		lives = 0
	}
	if lives > s.StorageCeiling {
		lives = s.StorageCeiling
	}

	// 规范化队列: 丢弃非法项并升序排序
	q := make([]int64, 0, len(queue))
	for _, ts := range queue {
		if ts > 0 {
			q = append(q, ts)
		}
	}
	sort.Slice(q, func(i, j int) bool { return q[i] < q[j] })

	// 补偿式恢复: 每条到期的欠账恢复一条体力
	nowMs := now.UnixMilli()
	intervalMs := s.RecoveryInterval.Milliseconds()
	for len(q) > 0 && lives < s.RegenCap && nowMs-q[0] >= intervalMs {
		q = q[1:]
		lives++
	}

	// 队列校正: 队列长度必须等于自然上限之下缺失的体力数
	if lives >= s.RegenCap {
		q = q[:0]
	} else {
		missing := s.RegenCap - lives
		if len(q) > missing {
			q = q[:missing]
		}
		for len(q) < missing {
			q = append(q, nowMs)
		}
		sort.Slice(q, func(i, j int) bool { return q[i] < q[j] })
	}

	res := RecoverResult{Lives: lives, Queue: q}
	if len(q) > 0 && lives < s.RegenCap {
		t := time.UnixMilli(q[0] + intervalMs).UTC()
		res.NextRecoverAt = &t
	}
	res.Changed = lives != inLives || !int64SlicesEqual(q, inQueue)
	return res
}

func int64SlicesEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
