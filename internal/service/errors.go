package service

import (
	"errors"

	"github.com/Moutabir-omar/MA-Orangegame/internal/game"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrGameCompleted     = errors.New("game is already completed")
	ErrRoundSettling     = errors.New("orders are locked; settling current round")
	ErrPlayerNotInGame   = errors.New("player not in game")
	ErrWrongRound        = errors.New("order is not for the current round")
	ErrOrdersPending     = errors.New("not all orders are in yet")
	ErrUnknownRole       = errors.New("unknown supply chain role")
	ErrRoleTaken         = errors.New("role already taken")
	ErrAlreadyInGame     = errors.New("player already claimed a role in this game")
	ErrRolesUnclaimed    = errors.New("all roles must be claimed or filled with AI")
	ErrGameStarted       = errors.New("game has already started")

	// ErrPersistence wraps storage failures at round-commit time. The
	// in-memory round result is discarded; callers retry AdvanceRound,
	// which reloads and recomputes from the last durable state.
	ErrPersistence = errors.New("persistence failure")

	// Ledger validation errors are re-exported so API code maps one set.
	ErrInvalidOrder   = game.ErrInvalidOrder
	ErrDuplicateOrder = game.ErrDuplicateOrder
)
