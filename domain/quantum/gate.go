package quantum

import (
	"fmt"
	"strings"
)

// GateKind identifies one of the gates a register understands.
type GateKind uint8

const (
	Identity GateKind = iota
	PauliX
	PauliZ
	Hadamard
	ZThenH
	SqrtX
	SqrtZ
	ControlledX
	ControlledHadamard
	Swap
	Toffoli
)

var gateNames = [...]string{
	Identity:           "ID",
	PauliX:             "X",
	PauliZ:             "Z",
	Hadamard:           "H",
	ZThenH:             "ZH",
	SqrtX:              "SRX",
	SqrtZ:              "SRZ",
	ControlledX:        "CX",
	ControlledHadamard: "CH",
	Swap:               "SWAP",
	Toffoli:            "CCX",
}

// GateKinds returns every known kind in declaration order.
func GateKinds() []GateKind {
	kinds := make([]GateKind, len(gateNames))
	for i := range gateNames {
		kinds[i] = GateKind(i)
	}
	return kinds
}

func (k GateKind) Valid() bool {
	return int(k) < len(gateNames)
}

func (k GateKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("GateKind(%d)", k)
	}
	return gateNames[k]
}

// Arity is the number of distinct qubits the gate acts on.
func (k GateKind) Arity() int {
	switch k {
	case Identity, PauliX, PauliZ, Hadamard, ZThenH, SqrtX, SqrtZ:
		return 1
	case ControlledX, ControlledHadamard, Swap:
		return 2
	case Toffoli:
		return 3
	default:
		return 0
	}
}

// ParseGateKind maps a short gate name such as "CX" or "h" to its kind.
func ParseGateKind(name string) (GateKind, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range gateNames {
		if n == name {
			return GateKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown gate %q", ErrInvalidGateTarget, name)
}

// Gate is a gate kind bound to its target qubits. For controlled gates the
// controls come first and the target last.
type Gate struct {
	Kind    GateKind `json:"kind"`
	Targets []int    `json:"targets"`
}

func NewGate(kind GateKind, targets ...int) Gate {
	return Gate{Kind: kind, Targets: append([]int(nil), targets...)}
}

// Validate checks arity, range and distinctness of the targets against a
// register of the given size.
func (g Gate) Validate(qubits int) error {
	if !g.Kind.Valid() {
		return fmt.Errorf("%w: unknown gate kind %d", ErrInvalidGateTarget, g.Kind)
	}
	if len(g.Targets) != g.Kind.Arity() {
		return fmt.Errorf("%w: %s takes %d qubits, got %d", ErrInvalidGateTarget, g.Kind, g.Kind.Arity(), len(g.Targets))
	}
	return validateTargets(qubits, g.Targets...)
}

func (g Gate) String() string {
	parts := make([]string, len(g.Targets))
	for i, q := range g.Targets {
		parts[i] = fmt.Sprintf("q[%d]", q)
	}
	return g.Kind.String() + " " + strings.Join(parts, ",")
}
