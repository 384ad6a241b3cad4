package game

import (
	"slices"

	"github.com/luca-patrignani/quantum-poker/domain/quantum"
)

type ToolKind int

const (
	ToolNone ToolKind = iota
	ToolGate
	ToolBell2
	ToolBell3
)

// Tool is what the next qubit clicks feed: a gate from the player's hand or
// one of the Bell probes.
type Tool struct {
	Kind ToolKind
	Gate quantum.GateKind
}

func GateTool(k quantum.GateKind) Tool {
	return Tool{Kind: ToolGate, Gate: k}
}

func Bell2Tool() Tool {
	return Tool{Kind: ToolBell2}
}

func Bell3Tool() Tool {
	return Tool{Kind: ToolBell3}
}

// Arity is the number of qubits the tool needs before it fires.
func (t Tool) Arity() int {
	switch t.Kind {
	case ToolGate:
		return t.Gate.Arity()
	case ToolBell2:
		return 2
	case ToolBell3:
		return 3
	default:
		return 0
	}
}

func (t Tool) String() string {
	switch t.Kind {
	case ToolGate:
		return t.Gate.String()
	case ToolBell2:
		return "Bell"
	case ToolBell3:
		return "Bell3"
	default:
		return "none"
	}
}

// Selection buffers the qubits clicked for the current tool.
type Selection struct {
	tool   Tool
	qubits []int
}

func (s *Selection) Set(t Tool) {
	s.tool = t
	s.qubits = s.qubits[:0]
}

func (s *Selection) Reset() {
	s.Set(Tool{})
}

func (s *Selection) Tool() Tool {
	return s.tool
}

func (s *Selection) Pending() []int {
	return slices.Clone(s.qubits)
}

// Add appends q unless it is already selected. It reports whether q was added
// and whether the tool now has all the qubits it needs.
func (s *Selection) Add(q int) (added, full bool) {
	if s.tool.Kind == ToolNone || slices.Contains(s.qubits, q) {
		return false, false
	}
	s.qubits = append(s.qubits, q)
	return true, len(s.qubits) >= s.tool.Arity()
}
