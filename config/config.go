// Package config loads the table settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/luca-patrignani/quantum-poker/domain/poker"
	"github.com/luca-patrignani/quantum-poker/domain/quantum"
	"github.com/luca-patrignani/quantum-poker/game"
)

// Config holds the settings of a match
type Config struct {
	Players        int // 0 asks at startup
	Names          []string
	StartingStack  int
	SmallBlind     int
	Seed           int64 // 0 draws a fresh seed per hand
	Entanglement   bool
	Qubits         int
	Reveal         []int
	GatesPerPlayer int
	Deck           []quantum.GateKind
	NormTolerance  float64
	BellTolerance  float64
	LogLevel       string
}

// Load reads the configuration from the environment, after loading a .env
// file if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Getenv)
}

// LoadFile reads the configuration from the given env file. Variables set in
// the process environment take precedence over the file.
func LoadFile(path string) (*Config, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return load(func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return values[key]
	})
}

func load(getenv func(string) string) (*Config, error) {
	env := environment(getenv)
	reveal, err := parseInts(env.get("QPOKER_REVEAL", "3,1,1"))
	if err != nil {
		return nil, fmt.Errorf("QPOKER_REVEAL: %w", err)
	}
	deck, err := parseGates(env.get("QPOKER_DECK", "H,X,ZH,CX"))
	if err != nil {
		return nil, fmt.Errorf("QPOKER_DECK: %w", err)
	}

	cfg := &Config{
		Players:        env.getInt("QPOKER_PLAYERS", 0),
		Names:          parseNames(env.get("QPOKER_NAMES", "")),
		StartingStack:  env.getInt("QPOKER_STARTING_STACK", 100),
		SmallBlind:     env.getInt("QPOKER_SMALL_BLIND", 5),
		Seed:           int64(env.getInt("QPOKER_SEED", 0)),
		Entanglement:   env.getBool("QPOKER_ENTANGLEMENT", true),
		Qubits:         env.getInt("QPOKER_QUBITS", quantum.DefaultQubits),
		Reveal:         reveal,
		GatesPerPlayer: env.getInt("QPOKER_GATES_PER_PLAYER", 3),
		Deck:           deck,
		NormTolerance:  env.getFloat("QPOKER_NORM_TOLERANCE", quantum.DefaultNormTolerance),
		BellTolerance:  env.getFloat("QPOKER_BELL_TOLERANCE", quantum.DefaultBellPairTolerance),
		LogLevel:       env.get("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that do not depend on the game rules, then the
// game options themselves.
func (c *Config) Validate() error {
	if c.Players != 0 && (c.Players < poker.MinPlayers || c.Players > poker.MaxPlayers) {
		return fmt.Errorf("QPOKER_PLAYERS must be between %d and %d, got %d", poker.MinPlayers, poker.MaxPlayers, c.Players)
	}
	if c.Players != 0 && len(c.Names) > c.Players {
		return fmt.Errorf("QPOKER_NAMES lists %d names for %d players", len(c.Names), c.Players)
	}
	if len(c.Names) > poker.MaxPlayers {
		return fmt.Errorf("QPOKER_NAMES lists %d names, at most %d players can sit", len(c.Names), poker.MaxPlayers)
	}
	if c.StartingStack <= 0 {
		return fmt.Errorf("QPOKER_STARTING_STACK must be positive, got %d", c.StartingStack)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown LOG_LEVEL %q", c.LogLevel)
	}
	if err := c.GameOptions().Validate(); err != nil {
		return fmt.Errorf("invalid game options: %w", err)
	}
	return nil
}

// GameOptions converts the settings into the rules of every hand.
func (c *Config) GameOptions() game.Options {
	opts := game.DefaultOptions()
	opts.Qubits = c.Qubits
	opts.Init.Entanglement = c.Entanglement
	opts.Tolerances = quantum.Tolerances{Norm: c.NormTolerance, BellPair: c.BellTolerance}
	opts.RevealSchedule = append([]int(nil), c.Reveal...)
	opts.SmallBlind = c.SmallBlind
	opts.GatesPerPlayer = c.GatesPerPlayer
	opts.DeckKinds = append([]quantum.GateKind(nil), c.Deck...)
	opts.Seed = c.Seed
	return opts
}

// Helper functions
type environment func(string) string

func (e environment) get(key, defaultValue string) string {
	if value := strings.TrimSpace(e(key)); value != "" {
		return value
	}
	return defaultValue
}

func (e environment) getInt(key string, defaultValue int) int {
	if value := e.get(key, ""); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func (e environment) getBool(key string, defaultValue bool) bool {
	if value := e.get(key, ""); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func (e environment) getFloat(key string, defaultValue float64) float64 {
	if value := e.get(key, ""); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func split(list string) []string {
	var out []string
	for _, field := range strings.Split(list, ",") {
		if field = strings.TrimSpace(field); field != "" {
			out = append(out, field)
		}
	}
	return out
}

func parseNames(list string) []string {
	return split(list)
}

func parseInts(list string) ([]int, error) {
	var out []int
	for _, field := range split(list) {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid count %q: %w", field, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseGates(list string) ([]quantum.GateKind, error) {
	var out []quantum.GateKind
	for _, field := range split(list) {
		k, err := quantum.ParseGateKind(field)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}
