package events

import (
	"context"
	"time"

	"rpsduel/internal/domain"
	"rpsduel/internal/logger"
	"rpsduel/internal/repository"
)

// Archiver mirrors game state into postgres off the engine's hot path.
// Events are queued and a single worker snapshots the game afterwards; the
// snapshot func must be safe to call outside the emitting operation.
type Archiver struct {
	repo *repository.GameArchiveRepository
	snap func(id string) (domain.Game, bool)
	ch   chan domain.Event
	done chan struct{}
}

func NewArchiver(repo *repository.GameArchiveRepository, snap func(id string) (domain.Game, bool)) *Archiver {
	a := &Archiver{
		repo: repo,
		snap: snap,
		ch:   make(chan domain.Event, 256),
		done: make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Archiver) Emit(e domain.Event) {
	if e.GameID == "" {
		return
	}
	select {
	case a.ch <- e:
	default:
		logger.Warn("archive queue full, dropping event", "game_id", e.GameID, "type", string(e.Type))
	}
}

func (a *Archiver) run() {
	defer close(a.done)
	for e := range a.ch {
		g, ok := a.snap(e.GameID)
		if !ok {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.repo.Upsert(ctx, &g); err != nil {
			logger.Error("archive upsert failed", "game_id", e.GameID, "error", err)
		}
		cancel()
	}
}

// Close drains the queue and stops the worker.
func (a *Archiver) Close() {
	close(a.ch)
	<-a.done
}
