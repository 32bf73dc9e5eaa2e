package engine

import "errors"

// Rejection reasons surfaced to callers. Every operation validates all of
// its preconditions before touching the store or the ledger, so a returned
// error always means no state changed.
var (
	ErrInvalidOpponent          = errors.New("opponent address is missing or is the caller")
	ErrInsufficientBalance      = errors.New("insufficient balance")
	ErrJoinWindowOutOfRange     = errors.New("join window outside allowed bounds")
	ErrDuplicateGame            = errors.New("commitment id already used")
	ErrGameNotFound             = errors.New("game not found")
	ErrNotTheDesignatedOpponent = errors.New("caller is not the designated opponent")
	ErrAlreadyJoined            = errors.New("opponent already joined")
	ErrJoinDeadlineExpired      = errors.New("join deadline has passed")
	ErrJoinDeadlineNotExpired   = errors.New("join deadline has not passed yet")
	ErrOpponentNotJoined        = errors.New("no opponent has joined")
	ErrRevealDeadlineExpired    = errors.New("reveal deadline has passed")
	ErrRevealDeadlineNotExpired = errors.New("reveal deadline has not passed yet")
	ErrNotCreator               = errors.New("caller did not create this game")
	ErrGameFinished             = errors.New("game already finished")
	ErrOutOfRange               = errors.New("value outside allowed bounds")
	ErrEngineHalted             = errors.New("engine is halted")
)
