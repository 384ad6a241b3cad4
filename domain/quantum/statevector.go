package quantum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// MaxQubits bounds the register size; the vector holds 2^n amplitudes.
const MaxQubits = 10

type matrix [2][2]complex128

var (
	invSqrt2 = complex(1/math.Sqrt2, 0)

	matX      = matrix{{0, 1}, {1, 0}}
	matZ      = matrix{{1, 0}, {0, -1}}
	matH      = matrix{{invSqrt2, invSqrt2}, {invSqrt2, -invSqrt2}}
	matZThenH = matrix{{invSqrt2, -invSqrt2}, {invSqrt2, invSqrt2}}
	// u3(pi/2, pi/2, -pi/2)
	matSqrtX = matrix{{invSqrt2, 1i * invSqrt2}, {1i * invSqrt2, invSqrt2}}
	matSqrtZ = matrix{{1, 0}, {0, 1i}}
)

// StateVector is the dense amplitude vector of an n-qubit register. Bit q of
// an index is the value of qubit q.
type StateVector struct {
	amplitudes []complex128
	qubits     int
}

// NewStateVector returns |0...0> on the given number of qubits.
func NewStateVector(qubits int) (*StateVector, error) {
	if qubits < 1 || qubits > MaxQubits {
		return nil, fmt.Errorf("register size %d outside [1,%d]", qubits, MaxQubits)
	}
	amps := make([]complex128, 1<<qubits)
	amps[0] = 1
	return &StateVector{amplitudes: amps, qubits: qubits}, nil
}

func (s *StateVector) Qubits() int {
	return s.qubits
}

func (s *StateVector) Len() int {
	return len(s.amplitudes)
}

func (s *StateVector) Amplitude(i int) complex128 {
	return s.amplitudes[i]
}

// Amplitudes returns a copy of the vector.
func (s *StateVector) Amplitudes() []complex128 {
	return append([]complex128(nil), s.amplitudes...)
}

func (s *StateVector) Clone() *StateVector {
	return &StateVector{amplitudes: s.Amplitudes(), qubits: s.qubits}
}

// Weights returns |a_i|^2 for every basis state.
func (s *StateVector) Weights() []float64 {
	w := make([]float64, len(s.amplitudes))
	for i, a := range s.amplitudes {
		w[i] = sqAbs(a)
	}
	return w
}

// Norm is the sum of squared magnitudes, 1 for a valid state.
func (s *StateVector) Norm() float64 {
	return floats.Sum(s.Weights())
}

// Apply validates the gate and applies it in place.
func (s *StateVector) Apply(g Gate) error {
	if err := g.Validate(s.qubits); err != nil {
		return err
	}
	t := g.Targets
	switch g.Kind {
	case Identity:
	case PauliX:
		s.applyControlled(0, t[0], matX)
	case PauliZ:
		s.applyControlled(0, t[0], matZ)
	case Hadamard:
		s.applyControlled(0, t[0], matH)
	case ZThenH:
		s.applyControlled(0, t[0], matZThenH)
	case SqrtX:
		s.applyControlled(0, t[0], matSqrtX)
	case SqrtZ:
		s.applyControlled(0, t[0], matSqrtZ)
	case ControlledX:
		s.applyControlled(1<<t[0], t[1], matX)
	case ControlledHadamard:
		s.applyControlled(1<<t[0], t[1], matH)
	case Swap:
		s.applySwap(t[0], t[1])
	case Toffoli:
		s.applyControlled(1<<t[0]|1<<t[1], t[2], matX)
	}
	return nil
}

// applyControlled applies m to the target qubit on every index pair whose
// control bits are all set. A zero mask means no controls.
func (s *StateVector) applyControlled(mask int, target int, m matrix) {
	bit := 1 << target
	for i := range s.amplitudes {
		if i&bit != 0 || i&mask != mask {
			continue
		}
		j := i | bit
		a0, a1 := s.amplitudes[i], s.amplitudes[j]
		s.amplitudes[i] = m[0][0]*a0 + m[0][1]*a1
		s.amplitudes[j] = m[1][0]*a0 + m[1][1]*a1
	}
}

func (s *StateVector) applySwap(a, b int) {
	da, db := 1<<a, 1<<b
	for i := range s.amplitudes {
		if i&da != 0 && i&db == 0 {
			j := i ^ da ^ db
			s.amplitudes[i], s.amplitudes[j] = s.amplitudes[j], s.amplitudes[i]
		}
	}
}

func sqAbs(c complex128) float64 {
	return real(c)*real(c) + imag(c)*imag(c)
}
