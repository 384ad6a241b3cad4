package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luca-patrignani/quantum-poker/domain/quantum"
)

func TestDefaultOptionsAreValid(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"too few qubits", func(o *Options) {
			o.Qubits = 1
			o.RevealSchedule = []int{1}
		}},
		{"too many qubits", func(o *Options) {
			o.Qubits = quantum.MaxQubits + 1
			o.RevealSchedule = []int{quantum.MaxQubits + 1}
		}},
		{"schedule does not cover the register", func(o *Options) { o.RevealSchedule = []int{3, 1} }},
		{"negative reveal", func(o *Options) { o.RevealSchedule = []int{6, -1} }},
		{"schedule too long", func(o *Options) { o.RevealSchedule = []int{2, 1, 1, 1} }},
		{"zero small blind", func(o *Options) { o.SmallBlind = 0 }},
		{"negative gates", func(o *Options) { o.GatesPerPlayer = -1 }},
		{"deck too small", func(o *Options) { o.GatesPerPlayer = 5 }},
		{"empty deck", func(o *Options) { o.DeckKinds = nil }},
		{"unknown gate", func(o *Options) { o.DeckKinds = []quantum.GateKind{quantum.GateKind(99), quantum.PauliX, quantum.Hadamard} }},
		{"gate wider than the register", func(o *Options) {
			o.Qubits = 2
			o.RevealSchedule = []int{2}
			o.DeckKinds = append(o.DeckKinds, quantum.Toffoli)
		}},
		{"zero tolerance", func(o *Options) { o.Tolerances.Norm = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			assert.Error(t, opts.Validate())
		})
	}
}
