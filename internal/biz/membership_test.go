package biz

import (
	"testing"
	"time"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/constants"
)

func TestEffectiveMembership(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no record means no membership", func(t *testing.T) {
		state := EffectiveMembership(nil, now)
		if state.Active || state.UnlimitedLives || state.Type != constants.MembershipNone {
			t.Errorf("state = %+v, want inactive none", state)
		}
	})

	t.Run("lifetime is always active", func(t *testing.T) {
		state := EffectiveMembership(&Membership{Type: constants.MembershipLifetime}, now)
		if !state.Active || !state.UnlimitedLives {
			t.Errorf("state = %+v, want active with unlimited lives", state)
		}
		if state.ExpiresAt != nil {
			t.Errorf("ExpiresAt = %v, want nil for lifetime", state.ExpiresAt)
		}
	})

	t.Run("monthly active before expiry", func(t *testing.T) {
		expires := now.Add(24 * time.Hour)
		state := EffectiveMembership(&Membership{Type: constants.MembershipMonthly, ExpiresAt: &expires}, now)
		if !state.Active || !state.UnlimitedLives {
			t.Errorf("state = %+v, want active", state)
		}
		if state.ExpiresAt == nil || !state.ExpiresAt.Equal(expires) {
			t.Errorf("ExpiresAt = %v, want %v", state.ExpiresAt, expires)
		}
	})

	t.Run("expired monthly equals none", func(t *testing.T) {
		expires := now.Add(-time.Minute)
		state := EffectiveMembership(&Membership{Type: constants.MembershipMonthly, ExpiresAt: &expires}, now)
		if state.Active || state.UnlimitedLives || state.Type != constants.MembershipNone {
			t.Errorf("state = %+v, want inactive none", state)
		}
	})
}

func TestGrantMembership(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	monthly := &Plan{PlanID: "member_monthly", RewardType: constants.RewardMembership, MembershipType: constants.MembershipMonthly, MembershipDays: 30}
	lifetime := &Plan{PlanID: "member_lifetime", RewardType: constants.RewardMembership, MembershipType: constants.MembershipLifetime}

	t.Run("first monthly starts from now", func(t *testing.T) {
		out := GrantMembership(nil, monthly, now)
		want := now.AddDate(0, 0, 30)
		if out.Type != constants.MembershipMonthly || out.ExpiresAt == nil || !out.ExpiresAt.Equal(want) {
			t.Errorf("got %+v, want monthly until %v", out, want)
		}
	})

	t.Run("early renewal extends from current expiry", func(t *testing.T) {
		expires := now.Add(10 * 24 * time.Hour)
		rec := &Membership{PlayerID: "p1", Type: constants.MembershipMonthly, ExpiresAt: &expires}
		out := GrantMembership(rec, monthly, now)
		want := expires.AddDate(0, 0, 30)
		if out.ExpiresAt == nil || !out.ExpiresAt.Equal(want) {
			t.Errorf("ExpiresAt = %v, want %v", out.ExpiresAt, want)
		}
	})

	t.Run("renewal after expiry starts from now", func(t *testing.T) {
		expires := now.Add(-24 * time.Hour)
		rec := &Membership{Type: constants.MembershipMonthly, ExpiresAt: &expires}
		out := GrantMembership(rec, monthly, now)
		want := now.AddDate(0, 0, 30)
		if out.ExpiresAt == nil || !out.ExpiresAt.Equal(want) {
			t.Errorf("ExpiresAt = %v, want %v", out.ExpiresAt, want)
		}
	})

	t.Run("lifetime overwrites monthly", func(t *testing.T) {
		expires := now.Add(10 * 24 * time.Hour)
		rec := &Membership{Type: constants.MembershipMonthly, ExpiresAt: &expires}
		out := GrantMembership(rec, lifetime, now)
		if out.Type != constants.MembershipLifetime || out.ExpiresAt != nil {
			t.Errorf("got %+v, want lifetime with no expiry", out)
		}
	})

	t.Run("monthly never downgrades lifetime", func(t *testing.T) {
		rec := &Membership{Type: constants.MembershipLifetime}
		out := GrantMembership(rec, monthly, now)
		if out.Type != constants.MembershipLifetime || out.ExpiresAt != nil {
			t.Errorf("got %+v, want lifetime unchanged", out)
		}
	})

	t.Run("repeated lifetime purchase is harmless", func(t *testing.T) {
		rec := &Membership{Type: constants.MembershipLifetime}
		out := GrantMembership(rec, lifetime, now)
		if out.Type != constants.MembershipLifetime {
			t.Errorf("got %+v, want lifetime", out)
		}
	})
}
