package game

import (
	"fmt"

	"github.com/luca-patrignani/quantum-poker/domain/deck"
	"github.com/luca-patrignani/quantum-poker/domain/poker"
	"github.com/luca-patrignani/quantum-poker/domain/quantum"
)

// Options are the table rules shared by every hand of a match.
type Options struct {
	Qubits         int
	Init           quantum.InitOptions
	Tolerances     quantum.Tolerances
	RevealSchedule []int
	SmallBlind     int
	GatesPerPlayer int
	// DeckKinds are dealt with one copy of each kind per player.
	DeckKinds []quantum.GateKind
	// Seed makes every hand reproducible; 0 draws a fresh seed per hand.
	Seed int64
}

func DefaultOptions() Options {
	return Options{
		Qubits:         quantum.DefaultQubits,
		Init:           quantum.DefaultInitOptions(),
		Tolerances:     quantum.DefaultTolerances(),
		RevealSchedule: append([]int(nil), poker.DefaultRevealSchedule...),
		SmallBlind:     5,
		GatesPerPlayer: 3,
		DeckKinds:      append([]quantum.GateKind(nil), deck.StandardKinds...),
	}
}

func (o Options) Validate() error {
	if o.Qubits < 2 || o.Qubits > quantum.MaxQubits {
		return fmt.Errorf("qubits must be between 2 and %d, got %d", quantum.MaxQubits, o.Qubits)
	}
	if len(o.RevealSchedule) > 3 {
		return fmt.Errorf("reveal schedule has %d entries, at most 3 betting rounds reveal qubits", len(o.RevealSchedule))
	}
	total := 0
	for _, n := range o.RevealSchedule {
		if n < 0 {
			return fmt.Errorf("reveal schedule %v has a negative entry", o.RevealSchedule)
		}
		total += n
	}
	if total != o.Qubits {
		return fmt.Errorf("reveal schedule %v reveals %d qubits, register has %d", o.RevealSchedule, total, o.Qubits)
	}
	if o.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive, got %d", o.SmallBlind)
	}
	if o.GatesPerPlayer < 0 {
		return fmt.Errorf("gates per player must not be negative, got %d", o.GatesPerPlayer)
	}
	if o.GatesPerPlayer > 0 && len(o.DeckKinds) == 0 {
		return fmt.Errorf("an empty deck cannot deal %d gates per player", o.GatesPerPlayer)
	}
	if o.GatesPerPlayer > len(o.DeckKinds) {
		return fmt.Errorf("deck of %d kinds cannot deal %d gates per player", len(o.DeckKinds), o.GatesPerPlayer)
	}
	for _, k := range o.DeckKinds {
		if !k.Valid() {
			return fmt.Errorf("%w: unknown gate kind %d in deck", quantum.ErrInvalidGateTarget, int(k))
		}
		if k.Arity() > o.Qubits {
			return fmt.Errorf("%w: %s needs %d qubits, register has %d", quantum.ErrInvalidGateTarget, k, k.Arity(), o.Qubits)
		}
	}
	if o.Tolerances.Norm <= 0 || o.Tolerances.BellPair <= 0 {
		return fmt.Errorf("tolerances must be positive, got %+v", o.Tolerances)
	}
	return nil
}

func (o Options) deck(players int) deck.Deck {
	return deck.DeckOf(o.DeckKinds, players)
}
