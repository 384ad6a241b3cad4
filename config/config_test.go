package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luca-patrignani/quantum-poker/domain/quantum"
)

var keys = []string{
	"QPOKER_PLAYERS", "QPOKER_NAMES", "QPOKER_STARTING_STACK", "QPOKER_SMALL_BLIND",
	"QPOKER_SEED", "QPOKER_ENTANGLEMENT", "QPOKER_QUBITS", "QPOKER_REVEAL",
	"QPOKER_GATES_PER_PLAYER", "QPOKER_DECK", "QPOKER_NORM_TOLERANCE",
	"QPOKER_BELL_TOLERANCE", "LOG_LEVEL",
}

// clearEnv blanks every key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := load(os.Getenv)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Players)
	assert.Empty(t, cfg.Names)
	assert.Equal(t, 100, cfg.StartingStack)
	assert.Equal(t, 5, cfg.SmallBlind)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.True(t, cfg.Entanglement)
	assert.Equal(t, 5, cfg.Qubits)
	assert.Equal(t, []int{3, 1, 1}, cfg.Reveal)
	assert.Equal(t, 3, cfg.GatesPerPlayer)
	assert.Equal(t, []quantum.GateKind{quantum.Hadamard, quantum.PauliX, quantum.ZThenH, quantum.ControlledX}, cfg.Deck)
	assert.Equal(t, quantum.DefaultNormTolerance, cfg.NormTolerance)
	assert.Equal(t, quantum.DefaultBellPairTolerance, cfg.BellTolerance)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("QPOKER_PLAYERS", "3")
	t.Setenv("QPOKER_NAMES", " Alice, Bob ,Carol")
	t.Setenv("QPOKER_SEED", "1234")
	t.Setenv("QPOKER_ENTANGLEMENT", "false")
	t.Setenv("QPOKER_QUBITS", "4")
	t.Setenv("QPOKER_REVEAL", "2,1,1")
	t.Setenv("QPOKER_DECK", "h,cx,swap")
	t.Setenv("QPOKER_GATES_PER_PLAYER", "2")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := load(os.Getenv)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Players)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, cfg.Names)
	assert.Equal(t, []quantum.GateKind{quantum.Hadamard, quantum.ControlledX, quantum.Swap}, cfg.Deck)

	opts := cfg.GameOptions()
	assert.Equal(t, 4, opts.Qubits)
	assert.Equal(t, []int{2, 1, 1}, opts.RevealSchedule)
	assert.False(t, opts.Init.Entanglement)
	assert.Equal(t, int64(1234), opts.Seed)
	assert.Equal(t, 2, opts.GatesPerPlayer)
	assert.NoError(t, opts.Validate())
}

func TestMalformedNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("QPOKER_SMALL_BLIND", "lots")
	t.Setenv("QPOKER_ENTANGLEMENT", "maybe")

	cfg, err := load(os.Getenv)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.SmallBlind)
	assert.True(t, cfg.Entanglement)
}

func TestLoadRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"single player", "QPOKER_PLAYERS", "1"},
		{"too many players", "QPOKER_PLAYERS", "6"},
		{"broke players", "QPOKER_STARTING_STACK", "0"},
		{"unknown gate", "QPOKER_DECK", "H,QFT"},
		{"bad reveal", "QPOKER_REVEAL", "3,one,1"},
		{"reveal does not match register", "QPOKER_QUBITS", "6"},
		{"register too large", "QPOKER_QUBITS", "11"},
		{"unknown log level", "LOG_LEVEL", "loud"},
		{"too many names", "QPOKER_NAMES", "A,B,C,D,E,F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := load(os.Getenv)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "table.env")
	content := "QPOKER_PLAYERS=2\nQPOKER_NAMES=Ann,Ben\nQPOKER_SMALL_BLIND=10\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("QPOKER_SMALL_BLIND", "20")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Players)
	assert.Equal(t, []string{"Ann", "Ben"}, cfg.Names)
	assert.Equal(t, 20, cfg.SmallBlind, "the process environment wins over the file")

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
