// Package quantum simulates the small qubit registers used as cards in
// quantum poker.
//
// # Core Types
//
// StateVector: the dense amplitude vector of an n-qubit register, with qubit q
// mapped to bit q of the basis index.
//
// Gate: a GateKind (a closed set of one, two and three qubit gates) bound to its
// target qubits.
//
// Register: a StateVector plus the log of every gate applied to it and the
// cached list of qubit pairs currently in a Bell state.
//
// Sampler: executes a register's circuit and returns measured bitstrings.
//
// # Measurement
//
// Per-qubit probabilities are available in the computational basis
// (ProbabilitiesOne, ProbabilitiesZero) and in the Hadamard basis
// (ProbabilitiesMinus). BellStateProbs and BellStateProbs3 project two or three
// qubits onto the Bell basis and its three-qubit generalisation. A pair is
// reported as a Bell pair when its dominant Bell probability is within
// Tolerances.BellPair of one.
//
// Every gate is checked against Tolerances.Norm; a state that drifts further
// is rejected with ErrNumericalInstability and the register is not modified.
package quantum
