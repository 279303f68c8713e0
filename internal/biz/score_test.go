package biz

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/constants"

	"github.com/go-kratos/kratos/v2/log"
)

type scoreFixture struct {
	uc      *ScoreUsecase
	clock   *fixedClock
	scores  *memScoreRepo
	players *memPlayerRepo
}

func newScoreFixture(t *testing.T) *scoreFixture {
	t.Helper()
	f := &scoreFixture{
		clock:   &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		scores:  &memScoreRepo{},
		players: newMemPlayerRepo(),
	}
	f.uc = NewScoreUsecase(f.scores, f.players, f.clock, log.NewStdLogger(io.Discard))
	return f
}

func TestScoreUsecase_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots the player name at submit time", func(t *testing.T) {
		f := newScoreFixture(t)
		f.players.players["p1"] = &Player{PlayerID: "p1", Username: "ada"}

		rec, err := f.uc.Submit(ctx, "p1", 42, 7)
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if rec.PlayerName != "ada" || rec.Score != 42 || rec.WordCount != 7 {
			t.Errorf("record = %+v, want ada/42/7", rec)
		}
		if !rec.CreatedAt.Equal(f.clock.t) {
			t.Errorf("CreatedAt = %v, want clock time %v", rec.CreatedAt, f.clock.t)
		}
	})

	t.Run("unknown player falls back to the default name", func(t *testing.T) {
		f := newScoreFixture(t)
		rec, err := f.uc.Submit(ctx, "ghost", 10, 3)
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if rec.PlayerName != "Player" {
			t.Errorf("PlayerName = %q, want Player", rec.PlayerName)
		}
	})

	t.Run("storage error is surfaced", func(t *testing.T) {
		f := newScoreFixture(t)
		f.scores.failCreate = true
		if _, err := f.uc.Submit(ctx, "p1", 1, 1); err == nil {
			t.Error("Submit succeeded, want storage error")
		}
	})
}

func TestScoreUsecase_History(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the newest ten in descending order", func(t *testing.T) {
		f := newScoreFixture(t)
		for i := 0; i < 12; i++ {
			f.clock.t = f.clock.t.Add(time.Minute)
			if _, err := f.uc.Submit(ctx, "p1", i, i); err != nil {
				t.Fatalf("Submit failed: %v", err)
			}
		}

		scores, err := f.uc.History(ctx, "p1")
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(scores) != constants.ScoreHistoryLimit {
			t.Fatalf("len = %d, want %d", len(scores), constants.ScoreHistoryLimit)
		}
		if scores[0].Score != 11 || scores[len(scores)-1].Score != 2 {
			t.Errorf("window = [%d..%d], want [11..2]", scores[0].Score, scores[len(scores)-1].Score)
		}
		for i := 1; i < len(scores); i++ {
			if scores[i].CreatedAt.After(scores[i-1].CreatedAt) {
				t.Errorf("scores out of descending time order at index %d", i)
			}
		}
	})

	t.Run("other players' scores are excluded", func(t *testing.T) {
		f := newScoreFixture(t)
		if _, err := f.uc.Submit(ctx, "p1", 5, 1); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if _, err := f.uc.Submit(ctx, "p2", 9, 1); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}

		scores, err := f.uc.History(ctx, "p1")
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(scores) != 1 || scores[0].Score != 5 {
			t.Errorf("scores = %+v, want only p1's record", scores)
		}
	})
}
