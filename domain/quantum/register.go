package quantum

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	// DefaultNormTolerance is the allowed drift of the squared norm from 1.
	DefaultNormTolerance = 1e-9
	// DefaultBellPairTolerance is how close to 1 the dominant Bell probability
	// must be for a pair to be reported as a Bell pair.
	DefaultBellPairTolerance = 1e-4
	DefaultQubits            = 5
)

type Tolerances struct {
	Norm     float64
	BellPair float64
}

func DefaultTolerances() Tolerances {
	return Tolerances{Norm: DefaultNormTolerance, BellPair: DefaultBellPairTolerance}
}

// InitOptions drives the random preparation of a fresh register.
type InitOptions struct {
	OneQubitGates int
	TwoQubitGates int
	Entanglement  bool
}

func DefaultInitOptions() InitOptions {
	return InitOptions{OneQubitGates: 5, TwoQubitGates: 5, Entanglement: true}
}

// Probabilities is the per-qubit view of a register.
type Probabilities struct {
	One       []float64 `json:"one"`
	Minus     []float64 `json:"minus"`
	BellPairs []Pair    `json:"bell_pairs"`
}

// Register is a player's qubit register: the state, every gate applied to it
// and the Bell pairs of the current state.
type Register struct {
	state      *StateVector
	circuit    []Gate
	bellPairs  []Pair
	tolerances Tolerances
}

type RegisterOption func(*Register)

func WithTolerances(t Tolerances) RegisterOption {
	return func(r *Register) {
		r.tolerances = t
	}
}

// NewRegister returns a register in |0...0>.
func NewRegister(qubits int, opts ...RegisterOption) (*Register, error) {
	state, err := NewStateVector(qubits)
	if err != nil {
		return nil, err
	}
	r := &Register{state: state, tolerances: DefaultTolerances()}
	for _, opt := range opts {
		opt(r)
	}
	r.bellPairs = FindBellPairs(r.state, r.tolerances.BellPair)
	return r, nil
}

// NewRandomRegister prepares a register by applying a random sequence drawn
// from rng: one of {H, H then Z, X, ID} on qubits 0,1,... in turn, then, with
// entanglement enabled, CX gates on random distinct pairs. Two registers built
// from sources with the same seed are identical.
func NewRandomRegister(qubits int, rng *rand.Rand, prep InitOptions, opts ...RegisterOption) (*Register, error) {
	r, err := NewRegister(qubits, opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < prep.OneQubitGates; i++ {
		q := i % qubits
		var gates []GateKind
		switch rng.IntN(4) {
		case 0:
			gates = []GateKind{Hadamard}
		case 1:
			gates = []GateKind{Hadamard, PauliZ}
		case 2:
			gates = []GateKind{PauliX}
		default:
			gates = []GateKind{Identity}
		}
		for _, k := range gates {
			if err := r.ApplyGate(k, q); err != nil {
				return nil, err
			}
		}
	}
	if prep.Entanglement && qubits > 1 {
		for i := 0; i < prep.TwoQubitGates; i++ {
			c := rng.IntN(qubits)
			t := rng.IntN(qubits - 1)
			if t >= c {
				t++
			}
			if err := r.ApplyGate(ControlledX, c, t); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

func (r *Register) Size() int {
	return r.state.qubits
}

func (r *Register) Tolerances() Tolerances {
	return r.tolerances
}

// ApplyGate applies kind on the given qubits. On error the register is left
// untouched.
func (r *Register) ApplyGate(kind GateKind, qubits ...int) error {
	return r.Apply(NewGate(kind, qubits...))
}

func (r *Register) Apply(g Gate) error {
	next := r.state.Clone()
	if err := next.Apply(g); err != nil {
		return err
	}
	if norm := next.Norm(); !scalar.EqualWithinAbs(norm, 1, r.tolerances.Norm) {
		return fmt.Errorf("%w: norm %.12f after %s", ErrNumericalInstability, norm, g)
	}
	r.state = next
	r.circuit = append(r.circuit, NewGate(g.Kind, g.Targets...))
	r.bellPairs = FindBellPairs(r.state, r.tolerances.BellPair)
	return nil
}

func (r *Register) Probabilities() Probabilities {
	return Probabilities{
		One:       ProbabilitiesOne(r.state),
		Minus:     ProbabilitiesMinus(r.state),
		BellPairs: r.BellPairs(),
	}
}

func (r *Register) BellPairs() []Pair {
	return append([]Pair(nil), r.bellPairs...)
}

func (r *Register) BellStateProbs(a, b int) ([4]float64, error) {
	return BellStateProbs(r.state, a, b)
}

func (r *Register) BellStateProbs3(a, b, c int) ([8]float64, error) {
	return BellStateProbs3(r.state, a, b, c)
}

// Circuit returns a copy of the gate log, initialisation gates included.
func (r *Register) Circuit() []Gate {
	out := make([]Gate, len(r.circuit))
	for i, g := range r.circuit {
		out[i] = NewGate(g.Kind, g.Targets...)
	}
	return out
}

// State returns a copy of the current amplitude vector.
func (r *Register) State() *StateVector {
	return r.state.Clone()
}

// Sample measures the register once through the given sampler.
func (r *Register) Sample(sampler Sampler) (Bitstring, error) {
	shots, err := sampler.Sample(r.Size(), r.Circuit(), 1)
	if err != nil {
		return "", err
	}
	if len(shots) != 1 {
		return "", fmt.Errorf("sampler returned %d shots, want 1", len(shots))
	}
	return shots[0], nil
}
