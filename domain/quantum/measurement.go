package quantum

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat/combin"
)

// Bell basis order used by BellStateProbs.
const (
	PhiPlus = iota
	PhiMinus
	PsiPlus
	PsiMinus
)

// Pair is an unordered pair of qubits, A < B.
type Pair struct {
	A int `json:"a"`
	B int `json:"b"`
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d,%d)", p.A, p.B)
}

// ProbabilitiesOne returns P(qubit q = 1) for every qubit. The sum runs over
// the alternate blocks of size 2^q that start at 2^q.
func ProbabilitiesOne(s *StateVector) []float64 {
	return blockSums(s, 1)
}

// ProbabilitiesZero returns P(qubit q = 0), the complementary blocks.
func ProbabilitiesZero(s *StateVector) []float64 {
	return blockSums(s, 0)
}

func blockSums(s *StateVector, offset int) []float64 {
	w := s.Weights()
	out := make([]float64, s.qubits)
	for q := range out {
		size := 1 << q
		for start := offset * size; start < len(w); start += 2 * size {
			out[q] += floats.Sum(w[start : start+size])
		}
	}
	return out
}

// ProbabilitiesMinus returns P(qubit q = |->) for every qubit.
func ProbabilitiesMinus(s *StateVector) []float64 {
	out := make([]float64, s.qubits)
	for q := range out {
		bit := 1 << q
		for i, a := range s.amplitudes {
			if i&bit == 0 {
				out[q] += sqAbs(a - s.amplitudes[i|bit])
			}
		}
		out[q] /= 2
	}
	return out
}

// BellStateProbs projects qubits a and b onto the Bell basis, summed over the
// remaining qubits. The result is ordered Phi+, Phi-, Psi+, Psi-.
func BellStateProbs(s *StateVector, a, b int) ([4]float64, error) {
	var p [4]float64
	if err := validateTargets(s.qubits, a, b); err != nil {
		return p, err
	}
	da, db := 1<<a, 1<<b
	amps := s.amplitudes
	for base := range amps {
		if base&(da|db) != 0 {
			continue
		}
		p[PhiPlus] += sqAbs(amps[base] + amps[base+da+db])
		p[PhiMinus] += sqAbs(amps[base] - amps[base+da+db])
		p[PsiPlus] += sqAbs(amps[base+da] + amps[base+db])
		p[PsiMinus] += sqAbs(amps[base+da] - amps[base+db])
	}
	for i := range p {
		p[i] /= 2
	}
	return p, nil
}

// BellStateProbs3 projects three qubits onto the GHZ-like basis. Entry 2k is
// the symmetric combination of offsets dist[k] and dist[7-k], entry 2k+1 the
// antisymmetric one. The argument order matters: dist is built as
// [0, c, b, a, b+c, a+c, a+b, a+b+c] in powers of two.
func BellStateProbs3(s *StateVector, a, b, c int) ([8]float64, error) {
	var p [8]float64
	if err := validateTargets(s.qubits, a, b, c); err != nil {
		return p, err
	}
	da, db, dc := 1<<a, 1<<b, 1<<c
	dist := [8]int{0, dc, db, da, db + dc, da + dc, da + db, da + db + dc}
	amps := s.amplitudes
	for base := range amps {
		if base&(da|db|dc) != 0 {
			continue
		}
		for k := 0; k < 4; k++ {
			lo, hi := amps[base+dist[k]], amps[base+dist[7-k]]
			p[2*k] += sqAbs(lo + hi)
			p[2*k+1] += sqAbs(lo - hi)
		}
	}
	for i := range p {
		p[i] /= 2
	}
	return p, nil
}

// FindBellPairs scans every qubit pair in lexicographic order and keeps those
// whose dominant Bell probability is within tolerance of 1.
func FindBellPairs(s *StateVector, tolerance float64) []Pair {
	if s.qubits < 2 {
		return nil
	}
	var pairs []Pair
	for _, c := range combin.Combinations(s.qubits, 2) {
		probs, err := BellStateProbs(s, c[0], c[1])
		if err != nil {
			continue
		}
		if scalar.EqualWithinAbs(floats.Max(probs[:]), 1, tolerance) {
			pairs = append(pairs, Pair{A: c[0], B: c[1]})
		}
	}
	return pairs
}

func validateTargets(qubits int, targets ...int) error {
	for i, q := range targets {
		if q < 0 || q >= qubits {
			return fmt.Errorf("%w: qubit %d out of range [0,%d)", ErrInvalidGateTarget, q, qubits)
		}
		for _, other := range targets[:i] {
			if other == q {
				return fmt.Errorf("%w: qubit %d used twice", ErrInvalidGateTarget, q)
			}
		}
	}
	return nil
}
