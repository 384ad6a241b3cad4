package deck

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/luca-patrignani/quantum-poker/domain/quantum"
)

func TestDeckOf(t *testing.T) {
	d := DeckOf(StandardKinds, 3)
	if d.Size() != 12 {
		t.Fatalf("expected 12 gates, got %d", d.Size())
	}
	for _, k := range StandardKinds {
		if d.Count(k) != 3 {
			t.Errorf("expected 3 copies of %s, got %d", k, d.Count(k))
		}
	}
	if d.Count(quantum.Toffoli) != 0 {
		t.Errorf("unexpected Toffoli in standard deck")
	}
}

func TestDealConservesGates(t *testing.T) {
	d := DeckOf(StandardKinds, 4)
	hands, err := d.Deal(4, 3, rand.New(NewSeededSource(7)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hands) != 4 {
		t.Fatalf("expected 4 hands, got %d", len(hands))
	}
	dealt := map[quantum.GateKind]int{}
	for i, h := range hands {
		if h.Total() != 3 {
			t.Errorf("hand %d holds %d gates, want 3", i, h.Total())
		}
		for k, n := range h {
			dealt[k] += n
		}
	}
	for _, k := range StandardKinds {
		if dealt[k]+d.Count(k) != 4 {
			t.Errorf("%s: dealt %d + left %d != 4", k, dealt[k], d.Count(k))
		}
	}
	if d.Size() != 4 {
		t.Errorf("expected 4 gates left, got %d", d.Size())
	}
}

func TestDealIsDeterministicForSeed(t *testing.T) {
	a, b := DeckOf(StandardKinds, 5), DeckOf(StandardKinds, 5)
	ha, err := a.Deal(5, 3, rand.New(NewSeededSource(99)))
	if err != nil {
		t.Fatal(err)
	}
	hb, err := b.Deal(5, 3, rand.New(NewSeededSource(99)))
	if err != nil {
		t.Fatal(err)
	}
	for i := range ha {
		if ha[i].String() != hb[i].String() {
			t.Errorf("hand %d differs: %s vs %s", i, ha[i], hb[i])
		}
	}
}

func TestDealRejectsShortDeck(t *testing.T) {
	d := DeckOf([]quantum.GateKind{quantum.Hadamard}, 2)
	if _, err := d.Deal(2, 3, rand.New(NewSeededSource(1))); err == nil {
		t.Fatal("expected error dealing 6 gates from a deck of 2")
	}
	if d.Size() != 2 {
		t.Fatalf("failed deal must not consume gates, %d left", d.Size())
	}
}

func TestDealDrainsSingleKind(t *testing.T) {
	d := NewDeck(map[quantum.GateKind]int{quantum.SqrtX: 4, quantum.Swap: 0})
	hands, err := d.Deal(2, 2, rand.New(NewSeededSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	for _, h := range hands {
		if h.Count(quantum.SqrtX) != 2 {
			t.Errorf("expected two SqrtX, got %s", h)
		}
	}
	if len(d.Kinds()) != 0 {
		t.Errorf("expected an empty deck, got %v", d.Kinds())
	}
}

func TestGateHandUse(t *testing.T) {
	h := GateHand{quantum.Hadamard: 2, quantum.ControlledX: 1}

	tests := []struct {
		kind    quantum.GateKind
		wantErr bool
	}{
		{quantum.Hadamard, false},
		{quantum.ControlledX, false},
		{quantum.ControlledX, true},
		{quantum.PauliX, true},
		{quantum.Hadamard, false},
		{quantum.Hadamard, true},
	}
	for i, tt := range tests {
		err := h.Use(tt.kind)
		if tt.wantErr {
			if !errors.Is(err, ErrGateNotHeld) {
				t.Errorf("step %d: expected ErrGateNotHeld, got %v", i, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("step %d: unexpected error: %v", i, err)
		}
	}
	if h.Total() != 0 {
		t.Fatalf("expected empty hand, got %s", h)
	}
}

func TestGateHandString(t *testing.T) {
	h := GateHand{quantum.ControlledX: 1, quantum.Hadamard: 2, quantum.PauliX: 1}
	if got, want := h.String(), "X x1, H x2, CX x1"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	c := h.Clone()
	_ = c.Use(quantum.PauliX)
	if !h.Has(quantum.PauliX) {
		t.Error("clone shares storage with the original")
	}
}

func TestSeededSource(t *testing.T) {
	a, b := NewSeededSource(42), NewSeededSource(42)
	for i := 0; i < 16; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("draw %d differs for equal seeds", i)
		}
	}
	c, d := NewSeededSource(1), NewSeededSource(2)
	if c.Uint64() == d.Uint64() {
		t.Error("different seeds produced the same first draw")
	}
	if NewRand(42).Uint64() != NewSeededSource(42).Uint64() {
		t.Error("a seeded generator must follow the seeded source")
	}
	if NewRand(0).Uint64() == NewRand(0).Uint64() {
		t.Error("unseeded generators should not repeat")
	}
}
