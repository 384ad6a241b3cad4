package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luca-patrignani/quantum-poker/domain/poker"
	"github.com/luca-patrignani/quantum-poker/domain/quantum"
)

func TestSelectionBuffer(t *testing.T) {
	var s Selection
	added, full := s.Add(0)
	assert.False(t, added, "nothing is buffered without a tool")
	assert.False(t, full)

	s.Set(GateTool(quantum.ControlledX))
	added, full = s.Add(3)
	assert.True(t, added)
	assert.False(t, full)
	added, full = s.Add(3)
	assert.False(t, added, "duplicate qubits are ignored")
	assert.False(t, full)
	added, full = s.Add(1)
	assert.True(t, added)
	assert.True(t, full)
	assert.Equal(t, []int{3, 1}, s.Pending())

	s.Reset()
	assert.Equal(t, ToolNone, s.Tool().Kind)
	assert.Empty(t, s.Pending())
}

func TestToolArity(t *testing.T) {
	assert.Equal(t, 1, GateTool(quantum.Hadamard).Arity())
	assert.Equal(t, 2, GateTool(quantum.ControlledX).Arity())
	assert.Equal(t, 2, Bell2Tool().Arity())
	assert.Equal(t, 3, Bell3Tool().Arity())
	assert.Equal(t, 0, Tool{}.Arity())
}

func TestBellProbeThroughClicks(t *testing.T) {
	h := newHand(t, &fixedSampler{}, 100, 100)

	_, err := h.Click(0)
	assert.ErrorIs(t, err, poker.ErrInvalidAction)
	assert.ErrorIs(t, h.Select(Bell2Tool()), poker.ErrInvalidAction, "no qubit revealed yet")

	checkTo(t, h, poker.Flop)
	require.NoError(t, h.Select(Bell2Tool()))

	res, err := h.Click(4)
	require.NoError(t, err)
	assert.True(t, res.Ignored, "qubit 4 is not revealed")

	res, err = h.Click(0)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, res.Pending)

	res, err = h.Click(0)
	require.NoError(t, err)
	assert.True(t, res.Ignored)

	res, err = h.Click(2)
	require.NoError(t, err)
	require.NotNil(t, res.Bell2)
	assert.InDelta(t, 1, res.Bell2[0]+res.Bell2[1]+res.Bell2[2]+res.Bell2[3], 1e-9)
	want, err := h.BellStateProbs(h.CurrentPlayer(), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, want, *res.Bell2)

	tool, pending := h.Selection()
	assert.Equal(t, ToolNone, tool.Kind)
	assert.Empty(t, pending)

	require.NoError(t, h.Select(Bell3Tool()))
	for _, q := range []int{2, 0} {
		_, err = h.Click(q)
		require.NoError(t, err)
	}
	res, err = h.Click(1)
	require.NoError(t, err)
	require.NotNil(t, res.Bell3)
	sum := 0.0
	for _, p := range res.Bell3 {
		sum += p
	}
	assert.InDelta(t, 1, sum, 1e-9)
}

func TestGateThroughClicks(t *testing.T) {
	h := newHand(t, &fixedSampler{}, 100, 100)
	assert.ErrorIs(t, h.Select(GateTool(quantum.Hadamard)), poker.ErrInvalidAction, "gates wait for the gate phase")

	checkTo(t, h, poker.Gates)
	player := h.CurrentPlayer()
	assert.ErrorIs(t, h.Select(GateTool(quantum.Toffoli)), poker.ErrInvalidAction)

	held := h.GateHand(player)
	kind := held.Kinds()[len(held.Kinds())-1]
	require.NoError(t, h.Select(GateTool(kind)))

	var res ClickResult
	var err error
	for q := 0; q < kind.Arity(); q++ {
		res, err = h.Click(q)
		require.NoError(t, err)
	}
	require.NotNil(t, res.Gate)
	assert.Equal(t, kind, res.Gate.Kind)
	assert.Equal(t, held.Count(kind)-1, h.GateHand(player).Count(kind))

	circuit := h.Circuit(player)
	assert.Equal(t, *res.Gate, circuit[len(circuit)-1])
}

func TestActionClearsSelection(t *testing.T) {
	h := newHand(t, &fixedSampler{}, 100, 100)
	checkTo(t, h, poker.Flop)
	require.NoError(t, h.Select(Bell2Tool()))
	_, err := h.Click(1)
	require.NoError(t, err)

	_, err = h.Check(h.CurrentPlayer())
	require.NoError(t, err)
	tool, pending := h.Selection()
	assert.Equal(t, ToolNone, tool.Kind)
	assert.Empty(t, pending)
}
