package game

import (
	"github.com/luca-patrignani/quantum-poker/domain/deck"
	"github.com/luca-patrignani/quantum-poker/domain/poker"
	"github.com/luca-patrignani/quantum-poker/domain/quantum"
)

// Snapshot is a copy of the public table state after an action.
type Snapshot struct {
	HandID          string
	Round           poker.Round
	Outcome         poker.Outcome
	CurrentPlayer   int
	Players         []poker.Player
	Pot             int
	HighestBet      int
	RaisedThisRound bool
	Revealed        int
	GateHands       []deck.GateHand
	Last            poker.Transition
	Settlement      *poker.Settlement
	// Measurements holds each seat's outcome after a showdown, empty for
	// folded seats.
	Measurements []quantum.Bitstring
}

// Seat returns the snapshot of the player with the given id.
func (s Snapshot) Seat(playerID int) (poker.Player, bool) {
	for _, p := range s.Players {
		if p.Id == playerID {
			return p, true
		}
	}
	return poker.Player{}, false
}

// Basis selects which marginal a view highlights.
type Basis int

const (
	Basis01 Basis = iota
	BasisPM
)

func (b Basis) String() string {
	if b == BasisPM {
		return "+/-"
	}
	return "0/1"
}

// View is what a player may see of their own register: the marginals of the
// revealed qubits and the Bell pairs among them.
type View struct {
	PlayerID  int
	Revealed  int
	Basis     Basis
	One       []float64
	Minus     []float64
	BellPairs []quantum.Pair
}

// Highlighted returns the marginal of the current basis: P(1) or P(-).
func (v View) Highlighted() []float64 {
	if v.Basis == BasisPM {
		return v.Minus
	}
	return v.One
}
