package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/luca-patrignani/quantum-poker/domain/quantum"
)

var ErrGateNotHeld = errors.New("gate not held")

// StandardKinds are the gates dealt to players when no deck is configured.
var StandardKinds = []quantum.GateKind{quantum.Hadamard, quantum.PauliX, quantum.ZThenH, quantum.ControlledX}

// Deck counts the copies of every gate kind still available for dealing.
type Deck struct {
	counts map[quantum.GateKind]int
}

func NewDeck(counts map[quantum.GateKind]int) Deck {
	d := Deck{counts: make(map[quantum.GateKind]int, len(counts))}
	for k, n := range counts {
		if n > 0 {
			d.counts[k] = n
		}
	}
	return d
}

// DeckOf holds copies of every listed kind.
func DeckOf(kinds []quantum.GateKind, copies int) Deck {
	counts := make(map[quantum.GateKind]int, len(kinds))
	for _, k := range kinds {
		counts[k] += copies
	}
	return NewDeck(counts)
}

func (d Deck) Count(k quantum.GateKind) int {
	return d.counts[k]
}

func (d Deck) Size() int {
	total := 0
	for _, n := range d.counts {
		total += n
	}
	return total
}

// Kinds lists the kinds with at least one copy left, in kind order.
func (d Deck) Kinds() []quantum.GateKind {
	kinds := make([]quantum.GateKind, 0, len(d.counts))
	for k, n := range d.counts {
		if n > 0 {
			kinds = append(kinds, k)
		}
	}
	slices.Sort(kinds)
	return kinds
}

// Deal hands out perPlayer gates to each player, one per player per pass. Each
// card is drawn uniformly among the kinds that still have copies. The dealt
// gates are removed from the deck.
func (d *Deck) Deal(players, perPlayer int, rng *rand.Rand) ([]GateHand, error) {
	if players < 1 || perPlayer < 0 {
		return nil, fmt.Errorf("cannot deal %d gates to %d players", perPlayer, players)
	}
	if need := players * perPlayer; need > d.Size() {
		return nil, fmt.Errorf("deck holds %d gates, %d needed", d.Size(), need)
	}
	hands := make([]GateHand, players)
	for i := range hands {
		hands[i] = GateHand{}
	}
	for range perPlayer {
		for p := range hands {
			kinds := d.Kinds()
			k := kinds[rng.IntN(len(kinds))]
			d.counts[k]--
			hands[p][k]++
		}
	}
	return hands, nil
}

// GateHand is the multiset of gates a player may still apply in a hand.
type GateHand map[quantum.GateKind]int

func (h GateHand) Count(k quantum.GateKind) int {
	return h[k]
}

func (h GateHand) Has(k quantum.GateKind) bool {
	return h[k] > 0
}

func (h GateHand) Total() int {
	total := 0
	for _, n := range h {
		total += n
	}
	return total
}

// Use consumes one copy of k.
func (h GateHand) Use(k quantum.GateKind) error {
	if h[k] <= 0 {
		return fmt.Errorf("%w: %s", ErrGateNotHeld, k)
	}
	h[k]--
	if h[k] == 0 {
		delete(h, k)
	}
	return nil
}

func (h GateHand) Kinds() []quantum.GateKind {
	kinds := make([]quantum.GateKind, 0, len(h))
	for k, n := range h {
		if n > 0 {
			kinds = append(kinds, k)
		}
	}
	slices.Sort(kinds)
	return kinds
}

func (h GateHand) Clone() GateHand {
	out := make(GateHand, len(h))
	for k, n := range h {
		out[k] = n
	}
	return out
}

// String renders the hand as "X x1, H x2".
func (h GateHand) String() string {
	parts := []string{}
	for _, k := range h.Kinds() {
		parts = append(parts, fmt.Sprintf("%s x%d", k, h[k]))
	}
	return strings.Join(parts, ", ")
}
