package biz

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/constants"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/errors"

	"github.com/go-kratos/kratos/v2/log"
)

type lifeFixture struct {
	uc      *LifeUsecase
	clock   *fixedClock
	lives   *memLifeRepo
	members *memMembershipRepo
}

func newLifeFixture(t *testing.T) *lifeFixture {
	t.Helper()
	f := &lifeFixture{
		clock:   &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		lives:   newMemLifeRepo(),
		members: newMemMembershipRepo(),
	}
	f.uc = NewLifeUsecase(testLifeSettings, f.lives, f.members, f.clock, nil, log.NewStdLogger(io.Discard))
	return f
}

func TestLifeUsecase_GetLives(t *testing.T) {
	ctx := context.Background()

	t.Run("new player starts full without persisting", func(t *testing.T) {
		f := newLifeFixture(t)
		status, err := f.uc.GetLives(ctx, "p1")
		if err != nil {
			t.Fatalf("GetLives failed: %v", err)
		}
		if status.Lives != 5 || status.NextRecoverAt != nil {
			t.Errorf("status = %+v, want full with no countdown", status)
		}
		if _, ok := f.lives.records["p1"]; ok {
			t.Error("unchanged state must not be persisted")
		}
	})

	t.Run("due recovery is persisted on read", func(t *testing.T) {
		f := newLifeFixture(t)
		now := f.clock.t
		f.lives.records["p1"] = &PlayerLife{
			PlayerID:      "p1",
			Lives:         2,
			RecoveryQueue: []int64{now.Add(-31 * time.Minute).UnixMilli(), now.Add(-1 * time.Minute).UnixMilli(), now.Add(-1 * time.Minute).UnixMilli()},
			Version:       1,
		}
		status, err := f.uc.GetLives(ctx, "p1")
		if err != nil {
			t.Fatalf("GetLives failed: %v", err)
		}
		if status.Lives != 3 {
			t.Errorf("lives = %d, want 3", status.Lives)
		}
		rec := f.lives.records["p1"]
		if rec.Lives != 3 || rec.Version != 2 {
			t.Errorf("persisted record = %+v, want lives 3 version 2", rec)
		}
	})

	t.Run("countdown derives from the injected clock", func(t *testing.T) {
		f := newLifeFixture(t)
		now := f.clock.t
		f.lives.records["p1"] = &PlayerLife{
			PlayerID:      "p1",
			Lives:         4,
			RecoveryQueue: []int64{now.Add(-10 * time.Minute).UnixMilli()},
			Version:       1,
		}
		status, err := f.uc.GetLives(ctx, "p1")
		if err != nil {
			t.Fatalf("GetLives failed: %v", err)
		}
		want := now.Add(20 * time.Minute)
		if status.NextRecoverAt == nil || !status.NextRecoverAt.Equal(want) {
			t.Fatalf("NextRecoverAt = %v, want %v", status.NextRecoverAt, want)
		}
		if status.NextRecoverInSeconds == nil || *status.NextRecoverInSeconds != 1200 {
			t.Errorf("NextRecoverInSeconds = %v, want 1200", status.NextRecoverInSeconds)
		}
	})

	t.Run("active member skips recovery bookkeeping", func(t *testing.T) {
		f := newLifeFixture(t)
		f.members.records["p1"] = &Membership{PlayerID: "p1", Type: constants.MembershipLifetime}
		status, err := f.uc.GetLives(ctx, "p1")
		if err != nil {
			t.Fatalf("GetLives failed: %v", err)
		}
		if !status.Membership.UnlimitedLives {
			t.Errorf("status = %+v, want unlimited lives", status)
		}
		if _, ok := f.lives.records["p1"]; ok {
			t.Error("member reads must not touch life storage")
		}
	})

	t.Run("conflict retries with fresh state", func(t *testing.T) {
		f := newLifeFixture(t)
		now := f.clock.t
		f.lives.records["p1"] = &PlayerLife{
			PlayerID:      "p1",
			Lives:         2,
			RecoveryQueue: []int64{now.Add(-31 * time.Minute).UnixMilli(), now.UnixMilli(), now.UnixMilli()},
			Version:       1,
		}
		f.lives.conflictHit = 1
		status, err := f.uc.GetLives(ctx, "p1")
		if err != nil {
			t.Fatalf("GetLives failed after retry: %v", err)
		}
		if status.Lives != 3 {
			t.Errorf("lives = %d, want 3", status.Lives)
		}
	})
}

func TestLifeUsecase_ConsumeLife(t *testing.T) {
	ctx := context.Background()

	t.Run("consume from full starts a recovery timer", func(t *testing.T) {
		f := newLifeFixture(t)
		status, err := f.uc.ConsumeLife(ctx, "p1")
		if err != nil {
			t.Fatalf("ConsumeLife failed: %v", err)
		}
		if status.Lives != 4 {
			t.Errorf("lives = %d, want 4", status.Lives)
		}
		want := f.clock.t.Add(30 * time.Minute)
		if status.NextRecoverAt == nil || !status.NextRecoverAt.Equal(want) {
			t.Errorf("NextRecoverAt = %v, want %v", status.NextRecoverAt, want)
		}
		if status.NextRecoverInSeconds == nil || *status.NextRecoverInSeconds != 1800 {
			t.Errorf("NextRecoverInSeconds = %v, want 1800", status.NextRecoverInSeconds)
		}
		rec := f.lives.records["p1"]
		if rec == nil || rec.Lives != 4 || len(rec.RecoveryQueue) != 1 {
			t.Errorf("persisted record = %+v, want 4 lives with one timer", rec)
		}
	})

	t.Run("consume at zero is rejected with current status", func(t *testing.T) {
		f := newLifeFixture(t)
		now := f.clock.t
		queue := make([]int64, 5)
		for i := range queue {
			queue[i] = now.Add(-time.Minute).UnixMilli()
		}
		f.lives.records["p1"] = &PlayerLife{PlayerID: "p1", Lives: 0, RecoveryQueue: queue, Version: 1}

		status, err := f.uc.ConsumeLife(ctx, "p1")
		if bizErrCode(err) != errors.ErrCodeNoLives {
			t.Fatalf("err = %v, want no lives", err)
		}
		if status == nil || status.Lives != 0 {
			t.Fatalf("status = %+v, want zero lives alongside the error", status)
		}
		if status.NextRecoverAt == nil {
			t.Error("NextRecoverAt = nil, want countdown for the client")
		}
	})

	t.Run("due recovery applies before the consume check", func(t *testing.T) {
		f := newLifeFixture(t)
		now := f.clock.t
		queue := make([]int64, 5)
		for i := range queue {
			queue[i] = now.Add(-time.Minute).UnixMilli()
		}
		queue[0] = now.Add(-31 * time.Minute).UnixMilli()
		f.lives.records["p1"] = &PlayerLife{PlayerID: "p1", Lives: 0, RecoveryQueue: queue, Version: 1}

		status, err := f.uc.ConsumeLife(ctx, "p1")
		if err != nil {
			t.Fatalf("ConsumeLife failed: %v", err)
		}
		if status.Lives != 0 {
			t.Errorf("lives = %d, want 0 after recovering one and spending it", status.Lives)
		}
		rec := f.lives.records["p1"]
		if len(rec.RecoveryQueue) != 5 {
			t.Errorf("queue length = %d, want 5", len(rec.RecoveryQueue))
		}
	})

	t.Run("member consumes without deduction", func(t *testing.T) {
		f := newLifeFixture(t)
		expires := f.clock.t.Add(24 * time.Hour)
		f.members.records["p1"] = &Membership{PlayerID: "p1", Type: constants.MembershipMonthly, ExpiresAt: &expires}

		status, err := f.uc.ConsumeLife(ctx, "p1")
		if err != nil {
			t.Fatalf("ConsumeLife failed: %v", err)
		}
		if !status.Membership.UnlimitedLives {
			t.Errorf("status = %+v, want unlimited", status)
		}
		if _, ok := f.lives.records["p1"]; ok {
			t.Error("member consume must not touch life storage")
		}
	})

	t.Run("exhausted retries surface a conflict error", func(t *testing.T) {
		f := newLifeFixture(t)
		f.lives.records["p1"] = &PlayerLife{PlayerID: "p1", Lives: 3, RecoveryQueue: nil, Version: 1}
		f.lives.conflictHit = constants.LifeUpdateMaxRetries

		_, err := f.uc.ConsumeLife(ctx, "p1")
		if bizErrCode(err) != errors.ErrCodeLifeConflict {
			t.Errorf("err = %v, want life conflict", err)
		}
	})
}
