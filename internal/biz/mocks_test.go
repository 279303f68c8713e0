package biz

import (
	"context"
	"errors"
	"time"
)

var errMockStorage = errors.New("mock storage error")

// fixedClock 固定时间源
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time { return c.t }

// memLifeRepo 内存体力仓库，模拟条件更新的版本语义
type memLifeRepo struct {
	records     map[string]*PlayerLife
	failGet     bool
	conflictHit int // 前 N 次 UpdateLife 返回版本冲突
}

func newMemLifeRepo() *memLifeRepo {
	return &memLifeRepo{records: make(map[string]*PlayerLife)}
}

func (r *memLifeRepo) GetLife(ctx context.Context, playerID string) (*PlayerLife, error) {
	if r.failGet {
		return nil, errMockStorage
	}
	rec, ok := r.records[playerID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	cp.RecoveryQueue = append([]int64(nil), rec.RecoveryQueue...)
	return &cp, nil
}

func (r *memLifeRepo) CreateLife(ctx context.Context, life *PlayerLife) error {
	life.Version = 1
	cp := *life
	cp.RecoveryQueue = append([]int64(nil), life.RecoveryQueue...)
	r.records[life.PlayerID] = &cp
	return nil
}

func (r *memLifeRepo) UpdateLife(ctx context.Context, life *PlayerLife) (bool, error) {
	if r.conflictHit > 0 {
		r.conflictHit--
		return false, nil
	}
	cur, ok := r.records[life.PlayerID]
	if !ok || cur.Version != life.Version {
		return false, nil
	}
	life.Version++
	cp := *life
	cp.RecoveryQueue = append([]int64(nil), life.RecoveryQueue...)
	r.records[life.PlayerID] = &cp
	return true, nil
}

// memMembershipRepo 内存会员仓库
type memMembershipRepo struct {
	records map[string]*Membership
}

func newMemMembershipRepo() *memMembershipRepo {
	return &memMembershipRepo{records: make(map[string]*Membership)}
}

func (r *memMembershipRepo) GetMembership(ctx context.Context, playerID string) (*Membership, error) {
	rec, ok := r.records[playerID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *memMembershipRepo) SaveMembership(ctx context.Context, m *Membership) error {
	cp := *m
	r.records[m.PlayerID] = &cp
	return nil
}

// memOrderRepo 内存订单仓库
type memOrderRepo struct {
	records    map[string]*PaymentOrder
	failCreate bool
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{records: make(map[string]*PaymentOrder)}
}

func (r *memOrderRepo) CreateOrder(ctx context.Context, order *PaymentOrder) error {
	if r.failCreate {
		return errMockStorage
	}
	cp := *order
	r.records[order.OrderNo] = &cp
	return nil
}

func (r *memOrderRepo) GetOrder(ctx context.Context, orderNo string) (*PaymentOrder, error) {
	rec, ok := r.records[orderNo]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *memOrderRepo) GetOrderBySession(ctx context.Context, sessionID string) (*PaymentOrder, error) {
	for _, rec := range r.records {
		if rec.ProviderSessionID == sessionID && sessionID != "" {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memOrderRepo) UpdateOrder(ctx context.Context, order *PaymentOrder) error {
	cp := *order
	r.records[order.OrderNo] = &cp
	return nil
}

// memEventRepo 内存回调事件仓库
type memEventRepo struct {
	events map[string]*WebhookEvent
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: make(map[string]*WebhookEvent)}
}

func (r *memEventRepo) RecordEvent(ctx context.Context, ev *WebhookEvent) (bool, error) {
	if _, ok := r.events[ev.EventID]; ok {
		return false, nil
	}
	cp := *ev
	r.events[ev.EventID] = &cp
	return true, nil
}

// memPlayerRepo 内存玩家仓库
type memPlayerRepo struct {
	players map[string]*Player // key: player id
}

func newMemPlayerRepo() *memPlayerRepo {
	return &memPlayerRepo{players: make(map[string]*Player)}
}

func (r *memPlayerRepo) CreatePlayer(ctx context.Context, p *Player) error {
	cp := *p
	r.players[p.PlayerID] = &cp
	return nil
}

func (r *memPlayerRepo) GetPlayer(ctx context.Context, playerID string) (*Player, error) {
	rec, ok := r.players[playerID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *memPlayerRepo) GetPlayerByUsername(ctx context.Context, username string) (*Player, error) {
	for _, rec := range r.players {
		if rec.Username == username {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

// memScoreRepo 内存成绩仓库，按插入顺序保存
type memScoreRepo struct {
	scores     []*Score
	failCreate bool
}

func (r *memScoreRepo) CreateScore(ctx context.Context, s *Score) error {
	if r.failCreate {
		return errMockStorage
	}
	s.ID = int64(len(r.scores) + 1)
	cp := *s
	r.scores = append(r.scores, &cp)
	return nil
}

func (r *memScoreRepo) ListScores(ctx context.Context, playerID string, limit int) ([]*Score, error) {
	out := make([]*Score, 0, limit)
	for i := len(r.scores) - 1; i >= 0 && len(out) < limit; i-- {
		if r.scores[i].PlayerID == playerID {
			cp := *r.scores[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

// passthroughTx 直接执行回调，不提供回滚语义
type passthroughTx struct{}

func (passthroughTx) Exec(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// stubCheckout 返回固定会话的支付客户端
type stubCheckout struct {
	session *CheckoutSession
	err     error
	lastReq *PaymentOrder
}

func (c *stubCheckout) CreateSession(ctx context.Context, order *PaymentOrder, plan *Plan, successURL string) (*CheckoutSession, error) {
	c.lastReq = order
	if c.err != nil {
		return nil, c.err
	}
	return c.session, nil
}
