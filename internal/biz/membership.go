package biz

import (
	"context"
	"time"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/constants"
)

// Membership 会员持久化记录
// ExpiresAt 仅对 monthly 有意义；lifetime 永久有效
type Membership struct {
	PlayerID  string
	Type      string // none, monthly, lifetime
	ExpiresAt *time.Time
}

// MembershipState 会员即时状态 (由记录和当前时间推导)
type MembershipState struct {
	Active         bool
	Type           string
	ExpiresAt      *time.Time
	UnlimitedLives bool
}

// MembershipRepo 会员记录仓库接口
type MembershipRepo interface {
	// GetMembership 不存在时返回 nil, nil
	GetMembership(ctx context.Context, playerID string) (*Membership, error)
	SaveMembership(ctx context.Context, m *Membership) error
}

// EffectiveMembership 计算会员即时状态
// 过期的 monthly 记录等同于 none——类型标记本身在过期后不可信
func EffectiveMembership(rec *Membership, now time.Time) MembershipState {
	if rec == nil {
		return MembershipState{Type: constants.MembershipNone}
	}
	switch rec.Type {
	case constants.MembershipLifetime:
		return MembershipState{Active: true, Type: constants.MembershipLifetime, UnlimitedLives: true}
	case constants.MembershipMonthly:
		if rec.ExpiresAt != nil && rec.ExpiresAt.After(now) {
			return MembershipState{Active: true, Type: constants.MembershipMonthly, ExpiresAt: rec.ExpiresAt, UnlimitedLives: true}
		}
	}
	return MembershipState{Type: constants.MembershipNone}
}

// GrantMembership 发放会员套餐，返回新记录
// monthly 在未过期时叠加剩余时长——提前续费不会损失已购买的时间；
// lifetime 无条件覆盖 (重复购买无害)，已是 lifetime 的记录不会被 monthly 降级
func GrantMembership(rec *Membership, plan *Plan, now time.Time) *Membership {
	out := &Membership{Type: constants.MembershipNone}
	if rec != nil {
		out.PlayerID = rec.PlayerID
		out.Type = rec.Type
		out.ExpiresAt = rec.ExpiresAt
	}

	if plan.MembershipType == constants.MembershipLifetime {
		out.Type = constants.MembershipLifetime
		out.ExpiresAt = nil
		return out
	}

	// monthly
	if out.Type == constants.MembershipLifetime {
		return out
	}
	base := now
	if out.Type == constants.MembershipMonthly && out.ExpiresAt != nil && out.ExpiresAt.After(now) {
		base = *out.ExpiresAt
	}
	expires := base.AddDate(0, 0, plan.MembershipDays)
	out.Type = constants.MembershipMonthly
	out.ExpiresAt = &expires
	return out
}
