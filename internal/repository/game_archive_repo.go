package repository

import (
	"context"
	"errors"

	"rpsduel/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

// GameArchiveRepository mirrors engine game records into postgres for
// history queries. The in-memory engine stays authoritative; rows here are
// write-behind copies.
type GameArchiveRepository struct {
	db *pgxpool.Pool
}

func NewGameArchiveRepository(db *pgxpool.Pool) *GameArchiveRepository {
	return &GameArchiveRepository{db: db}
}

func (r *GameArchiveRepository) Upsert(ctx context.Context, g *domain.Game) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO games (id, creator, opponent, opponent_move, payoff, creator_wager, opponent_wager, deadline, cancelled)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
		   opponent = EXCLUDED.opponent,
		   opponent_move = EXCLUDED.opponent_move,
		   payoff = EXCLUDED.payoff,
		   creator_wager = EXCLUDED.creator_wager,
		   opponent_wager = EXCLUDED.opponent_wager,
		   deadline = EXCLUDED.deadline,
		   cancelled = EXCLUDED.cancelled,
		   updated_at = now()`,
		g.ID, g.Creator, g.Opponent, int32(g.OpponentMove), int32(g.Payoff),
		g.CreatorWager, g.OpponentWager, g.Deadline, g.Cancelled,
	)
	return err
}

func (r *GameArchiveRepository) GetByID(ctx context.Context, id string) (*domain.Game, error) {
	var (
		g            domain.Game
		move, payoff int32
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, creator, opponent, opponent_move, payoff, creator_wager, opponent_wager, deadline, cancelled
		 FROM games WHERE id = $1`, id,
	).Scan(&g.ID, &g.Creator, &g.Opponent, &move, &payoff,
		&g.CreatorWager, &g.OpponentWager, &g.Deadline, &g.Cancelled)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	g.OpponentMove = domain.Move(move)
	g.Payoff = domain.Payoff(payoff)
	g.Consumed = true
	return &g, nil
}

// ListByAccount returns games an address created or was challenged in,
// most recent first.
func (r *GameArchiveRepository) ListByAccount(ctx context.Context, account string, limit int) ([]*domain.Game, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, creator, opponent, opponent_move, payoff, creator_wager, opponent_wager, deadline, cancelled
		 FROM games
		 WHERE creator = $1 OR opponent = $1
		 ORDER BY updated_at DESC
		 LIMIT $2`,
		account, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Game
	for rows.Next() {
		var (
			g            domain.Game
			move, payoff int32
		)
		if err := rows.Scan(&g.ID, &g.Creator, &g.Opponent, &move, &payoff,
			&g.CreatorWager, &g.OpponentWager, &g.Deadline, &g.Cancelled); err != nil {
			return nil, err
		}
		g.OpponentMove = domain.Move(move)
		g.Payoff = domain.Payoff(payoff)
		g.Consumed = true
		res = append(res, &g)
	}
	return res, rows.Err()
}
