package integration

import (
	"context"
	"errors"
	"testing"

	"rpsduel/internal/domain"
	"rpsduel/internal/repository"

	"github.com/google/uuid"
)

func TestGameArchive_UpsertAndLookup(t *testing.T) {
	db := connect(t)
	repo := repository.NewGameArchiveRepository(db)
	ctx := context.Background()

	g := &domain.Game{
		ID:            uuid.NewString(),
		Creator:       "it:creator",
		Opponent:      "it:opponent",
		OpponentMove:  domain.MovePaper,
		CreatorWager:  200,
		OpponentWager: 200,
		Deadline:      1700000000,
	}
	if err := repo.Upsert(ctx, g); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Second upsert with a settled payoff must overwrite, not duplicate.
	g.Payoff = domain.PayoffOpponentWins
	if err := repo.Upsert(ctx, g); err != nil {
		t.Fatalf("upsert settled: %v", err)
	}

	got, err := repo.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Payoff != domain.PayoffOpponentWins {
		t.Errorf("payoff = %v, want opponent wins", got.Payoff)
	}
	if got.Creator != g.Creator || got.OpponentWager != 200 {
		t.Errorf("archived game mismatch: %+v", got)
	}

	games, err := repo.ListByAccount(ctx, "it:opponent", 10)
	if err != nil {
		t.Fatalf("list by account: %v", err)
	}
	if len(games) == 0 {
		t.Fatal("expected archived games, got 0")
	}

	if _, err := repo.GetByID(ctx, "missing-"+g.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("missing game err = %v, want ErrNotFound", err)
	}
}
