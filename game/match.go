package game

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/luca-patrignani/quantum-poker/domain/poker"
	"github.com/luca-patrignani/quantum-poker/domain/quantum"
)

// Match plays hands until a single player holds every chip.
type Match struct {
	opts    Options
	players []poker.Player
	dealer  int
	hands   int
	sampler quantum.Sampler
	logger  *slog.Logger
	current *Hand
}

// NewMatch seats the named players with the given starting stack. Player ids
// are the seat indices of the first hand and stay fixed as players bust out.
func NewMatch(names []string, stack int, opts Options, sampler quantum.Sampler, logger *slog.Logger) (*Match, error) {
	if len(names) < poker.MinPlayers || len(names) > poker.MaxPlayers {
		return nil, fmt.Errorf("a match needs %d to %d players, got %d", poker.MinPlayers, poker.MaxPlayers, len(names))
	}
	if stack <= 0 {
		return nil, fmt.Errorf("starting stack must be positive, got %d", stack)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if sampler == nil {
		return nil, errors.New("nil sampler")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	players := make([]poker.Player, len(names))
	for i, name := range names {
		players[i] = poker.Player{Name: name, Id: i, Stack: stack}
	}
	return &Match{opts: opts, players: players, sampler: sampler, logger: logger}, nil
}

// NewHand deals the next hand with the small blind on the dealer seat.
func (m *Match) NewHand() (*Hand, error) {
	if m.Over() {
		return nil, errors.New("match is over")
	}
	if m.current != nil && !m.current.Done() {
		return nil, fmt.Errorf("hand %s is still in progress", m.current.ID)
	}
	opts := m.opts
	if opts.Seed != 0 {
		opts.Seed += int64(m.hands)
	}
	h, err := NewHand(m.players, m.dealer, opts, m.sampler, m.logger)
	if err != nil {
		return nil, err
	}
	m.hands++
	m.current = h
	return h, nil
}

// FinishHand pays the settlement of a finished hand, removes the players left
// without chips and moves the small blind to the next seat.
func (m *Match) FinishHand(h *Hand) error {
	if h == nil || h != m.current {
		return errors.New("hand does not belong to this match")
	}
	s, ok := h.Settlement()
	if !ok {
		return fmt.Errorf("hand %s is not settled", h.ID)
	}
	seated := h.manager.Betting.Players
	for i, p := range seated {
		idx := slices.IndexFunc(m.players, func(q poker.Player) bool { return q.Id == p.Id })
		if idx == -1 {
			return fmt.Errorf("player %d is not seated in this match", p.Id)
		}
		m.players[idx].Stack = p.Stack + s.Winnings[i]
	}

	m.dealer = (m.dealer + 1) % len(m.players)
	kept := m.players[:0]
	for i, p := range m.players {
		if p.Stack > 0 {
			kept = append(kept, p)
			continue
		}
		if i < m.dealer {
			m.dealer--
		}
		m.logger.Info("player busted", "player", p.Id, "name", p.Name)
	}
	m.players = kept
	if len(m.players) > 0 {
		m.dealer %= len(m.players)
	}
	m.current = nil

	if w, ok := m.Winner(); ok {
		m.logger.Info("match over", "winner", w.Name, "stack", w.Stack, "hands", m.hands)
	}
	return nil
}

// Over reports whether fewer than two players still have chips.
func (m *Match) Over() bool {
	return len(m.players) < poker.MinPlayers
}

// Winner returns the last player holding chips once the match is over.
func (m *Match) Winner() (poker.Player, bool) {
	if len(m.players) != 1 {
		return poker.Player{}, false
	}
	return m.players[0], true
}

func (m *Match) Players() []poker.Player {
	return slices.Clone(m.players)
}

// Dealer is the seat posting the small blind in the next hand.
func (m *Match) Dealer() int {
	return m.dealer
}

func (m *Match) Hands() int {
	return m.hands
}

func (m *Match) Options() Options {
	return m.opts
}
