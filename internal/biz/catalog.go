package biz

import (
	"fmt"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/conf"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/constants"
)

// Plan 付费套餐
type Plan struct {
	PlanID         string
	Title          string
	RewardType     string // lives, membership
	LivesGain      int
	MembershipType string // monthly, lifetime
	MembershipDays int
	AmountCents    int64
	Currency       string
}

// Catalog 套餐目录
// 启动时从配置构建，运行期不可变，所有组件共享同一份
type Catalog struct {
	plans map[string]*Plan
	order []string
}

// NewCatalog 从配置构建套餐目录
func NewCatalog(c *conf.Bootstrap) (*Catalog, error) {
	plans := make([]*Plan, 0, len(c.Game.Plans))
	for _, p := range c.Game.Plans {
		plans = append(plans, &Plan{
			PlanID:         p.PlanID,
			Title:          p.Title,
			RewardType:     p.RewardType,
			LivesGain:      p.LivesGain,
			MembershipType: p.MembershipType,
			MembershipDays: p.MembershipDays,
			AmountCents:    p.AmountCents,
			Currency:       p.Currency,
		})
	}
	return NewCatalogFromPlans(plans)
}

// NewCatalogFromPlans 从套餐列表构建目录并校验
func NewCatalogFromPlans(plans []*Plan) (*Catalog, error) {
	c := &Catalog{plans: make(map[string]*Plan, len(plans))}
	for _, p := range plans {
		if p.PlanID == "" {
			return nil, fmt.Errorf("plan id is required")
		}
		if _, ok := c.plans[p.PlanID]; ok {
			return nil, fmt.Errorf("duplicate plan id %q", p.PlanID)
		}
		if p.AmountCents <= 0 || p.Currency == "" {
			return nil, fmt.Errorf("plan %q: amount_cents and currency are required", p.PlanID)
		}
		switch p.RewardType {
		case constants.RewardLives:
			if p.LivesGain <= 0 {
				return nil, fmt.Errorf("plan %q: lives_gain must be positive", p.PlanID)
			}
		case constants.RewardMembership:
			switch p.MembershipType {
			case constants.MembershipLifetime:
			case constants.MembershipMonthly:
				if p.MembershipDays <= 0 {
					return nil, fmt.Errorf("plan %q: membership_days must be positive", p.PlanID)
				}
			default:
				return nil, fmt.Errorf("plan %q: unknown membership type %q", p.PlanID, p.MembershipType)
			}
		default:
			return nil, fmt.Errorf("plan %q: unknown reward type %q", p.PlanID, p.RewardType)
		}
		c.plans[p.PlanID] = p
		c.order = append(c.order, p.PlanID)
	}
	return c, nil
}

// Get 根据ID获取套餐，不存在返回 nil
func (c *Catalog) Get(planID string) *Plan {
	return c.plans[planID]
}

// List 获取所有套餐 (按配置顺序)
func (c *Catalog) List() []*Plan {
	out := make([]*Plan, len(c.order))
	for i, id := range c.order {
		out[i] = c.plans[id]
	}
	return out
}
