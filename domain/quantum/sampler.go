package quantum

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// Bitstring is a measurement outcome with qubit 0 as the rightmost character.
type Bitstring string

// Ones counts the qubits measured as 1; this is a player's score.
func (b Bitstring) Ones() int {
	return strings.Count(string(b), "1")
}

// Bit reports the measured value of qubit q.
func (b Bitstring) Bit(q int) bool {
	i := len(b) - 1 - q
	return i >= 0 && i < len(b) && b[i] == '1'
}

// Sampler executes a circuit on a fresh register and returns one outcome per shot.
type Sampler interface {
	Sample(qubits int, circuit []Gate, shots int) ([]Bitstring, error)
}

// StatevectorSampler replays the circuit on a local state vector and draws
// outcomes from the Born-rule distribution.
type StatevectorSampler struct {
	src rand.Source
}

func NewStatevectorSampler(src rand.Source) *StatevectorSampler {
	return &StatevectorSampler{src: src}
}

func (s *StatevectorSampler) Sample(qubits int, circuit []Gate, shots int) ([]Bitstring, error) {
	if shots < 1 {
		return nil, fmt.Errorf("shots must be positive, got %d", shots)
	}
	state, err := NewStateVector(qubits)
	if err != nil {
		return nil, err
	}
	for _, g := range circuit {
		if err := state.Apply(g); err != nil {
			return nil, err
		}
	}
	dist := distuv.NewCategorical(state.Weights(), s.src)
	out := make([]Bitstring, shots)
	for i := range out {
		out[i] = FormatBitstring(int(dist.Rand()), qubits)
	}
	return out, nil
}

// FormatBitstring renders a basis index on the given number of qubits.
func FormatBitstring(index, qubits int) Bitstring {
	return Bitstring(fmt.Sprintf("%0*b", qubits, index))
}
