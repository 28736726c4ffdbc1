package game

import "errors"

// Ledger sequencing errors. These are surfaced to callers for order
// submission mistakes; a failed ApplyRoundResult inside the engine is a
// programming error and is escalated there.
var (
	ErrInvalidOrder    = errors.New("order value must be a non-negative integer")
	ErrDuplicateOrder  = errors.New("order already placed for this round")
	ErrOutOfOrderRound = errors.New("round result applied out of sequence")
)

// RecordOrder stores the order this player places for the given round.
// The session layer guarantees round equals the game's current round; the
// ledger still refuses duplicates and negative values.
func (p *Player) RecordOrder(round, value int) error {
	if value < 0 {
		return ErrInvalidOrder
	}
	if round != p.CurrentRoundIndex() {
		return ErrOutOfOrderRound
	}
	if p.HasOrdered {
		return ErrDuplicateOrder
	}
	p.HasOrdered = true
	p.PendingOrder = value
	return nil
}

// ApplyRoundResult appends one settled round to the ledger history and
// rolls the running totals forward. Rounds must be applied strictly in
// sequence: no skipping, no replay.
func (p *Player) ApplyRoundResult(round int, row PlayerRound) error {
	if round != p.CurrentRoundIndex() {
		return ErrOutOfOrderRound
	}
	row.Round = round
	row.PlayerID = p.ID
	p.Inventory = row.Inventory
	p.Backlog = row.Backlog
	p.CumulativeCost += row.RoundCost
	row.CumulativeCost = p.CumulativeCost
	p.Rounds = append(p.Rounds, row)
	return nil
}
