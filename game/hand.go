package game

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
	"github.com/luca-patrignani/quantum-poker/domain/deck"
	"github.com/luca-patrignani/quantum-poker/domain/poker"
	"github.com/luca-patrignani/quantum-poker/domain/quantum"
	"github.com/luca-patrignani/quantum-poker/ledger"
)

// Hand runs a single hand: the betting of the poker package on top of one
// qubit register and one gate hand per seat.
type Hand struct {
	ID   string
	Seed int64

	manager      *poker.PokerManager
	registers    []*quantum.Register
	gates        []deck.GateHand
	selection    Selection
	basis        Basis
	sampler      quantum.Sampler
	logger       *slog.Logger
	last         poker.Transition
	settlement   *poker.Settlement
	measurements []quantum.Bitstring
	history      *ledger.Blockchain
}

// NewHand seats the players, posts the blinds, prepares identical registers
// for every seat and deals the gate hands. A nil logger discards the logs.
func NewHand(players []poker.Player, smallBlindPlayer int, opts Options, sampler quantum.Sampler, logger *slog.Logger) (*Hand, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if sampler == nil {
		return nil, errors.New("nil sampler")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	seed := opts.Seed
	for seed == 0 {
		seed = int64(deck.NewSource().Uint64())
	}
	h := &Hand{ID: uuid.NewString(), Seed: seed, sampler: sampler}
	h.logger = logger.With("hand", h.ID)

	manager, err := poker.NewPokerManager(h.ID, slices.Clone(players), opts.SmallBlind, smallBlindPlayer, opts.RevealSchedule)
	if err != nil {
		return nil, err
	}
	h.manager = manager
	h.last = manager.Start
	h.history = ledger.NewBlockchain(h.ID, h.state())

	// the register seed and the deal seed are split off the hand seed so
	// that dealing does not depend on how many gates initialisation drew
	master := deck.NewRand(seed)
	registerSeed, dealSeed := int64(master.Uint64()), int64(master.Uint64())

	h.registers = make([]*quantum.Register, len(players))
	for i := range players {
		rng := rand.New(deck.NewSeededSource(registerSeed))
		r, err := quantum.NewRandomRegister(opts.Qubits, rng, opts.Init, quantum.WithTolerances(opts.Tolerances))
		if err != nil {
			return nil, fmt.Errorf("preparing register of seat %d: %w", i, err)
		}
		h.registers[i] = r
	}

	d := opts.deck(len(players))
	h.gates, err = d.Deal(len(players), opts.GatesPerPlayer, rand.New(deck.NewSeededSource(dealSeed)))
	if err != nil {
		return nil, err
	}

	h.logger.Info("hand started",
		"players", len(players),
		"small_blind_seat", smallBlindPlayer,
		"seed", seed,
		"pot", manager.Betting.Pot())
	h.logTransition(h.last)
	return h, nil
}

func (h *Hand) Fold(playerID int) (Snapshot, error) {
	return h.act(h.manager.ActionFold(playerID))
}

// Check checks when nothing is owed and calls otherwise.
func (h *Hand) Check(playerID int) (Snapshot, error) {
	return h.act(h.manager.ActionCheck(playerID))
}

// Raise commits amount more chips; the player's bet must reach the table bet
// unless amount is the whole stack.
func (h *Hand) Raise(playerID, amount int) (Snapshot, error) {
	return h.act(h.manager.ActionRaise(playerID, amount))
}

func (h *Hand) AllIn(playerID int) (Snapshot, error) {
	return h.act(h.manager.ActionAllIn(playerID))
}

// EndGateTurn passes the gate phase turn, whether or not gates were applied.
func (h *Hand) EndGateTurn(playerID int) (Snapshot, error) {
	return h.act(h.manager.ActionEndTurn(playerID))
}

// Apply validates and applies any poker action addressed to this hand.
func (h *Hand) Apply(pa poker.PokerAction) (Snapshot, error) {
	return h.act(pa)
}

func (h *Hand) act(pa poker.PokerAction) (Snapshot, error) {
	tr, err := h.manager.Apply(pa)
	if err != nil {
		h.logger.Debug("action rejected", "player", pa.PlayerID, "action", pa.Type, "error", err)
		return h.Snapshot(), err
	}
	h.logger.Info("action",
		"player", pa.PlayerID,
		"action", pa.Type,
		"amount", pa.Amount,
		"pot", h.manager.Betting.Pot())
	h.last = tr
	h.selection.Reset()
	h.logTransition(tr)
	if err := h.history.AppendAction(pa, h.state()); err != nil {
		h.logger.Error("failed to record action", "error", err)
	}
	if tr.Outcome.Done() {
		if err := h.finish(); err != nil {
			return h.Snapshot(), err
		}
	}
	return h.Snapshot(), nil
}

func (h *Hand) state() ledger.State {
	return ledger.State{
		Round:    h.manager.Turns.Round,
		Outcome:  h.manager.Turns.Outcome,
		Pot:      h.manager.Betting.Pot(),
		Revealed: h.manager.Turns.Revealed,
	}
}

// History returns every accepted move of the hand, starting with the blinds.
func (h *Hand) History() []ledger.Block {
	return h.history.Blocks()
}

// VerifyHistory checks the hash chain of the hand history.
func (h *Hand) VerifyHistory() error {
	return h.history.Verify()
}

func (h *Hand) logTransition(tr poker.Transition) {
	if tr.RoundAdvanced {
		h.logger.Info("round advanced",
			"round", tr.Round,
			"revealed", tr.Revealed,
			"fast_forward", tr.FastForwarded)
	}
}

// finish measures the surviving registers on a showdown and pays the pot.
func (h *Hand) finish() error {
	var scores []poker.Score
	if h.manager.Turns.Outcome == poker.CompleteByShowdown {
		h.measurements = make([]quantum.Bitstring, len(h.registers))
		scores = make([]poker.Score, len(h.registers))
		for i, p := range h.manager.Betting.Players {
			if p.HasFolded {
				scores[i] = poker.ScoreFolded
				continue
			}
			bits, err := h.registers[i].Sample(h.sampler)
			if err != nil {
				h.logger.Error("measurement failed", "player", p.Id, "error", err)
				h.abort()
				return fmt.Errorf("measuring register of player %d: %w", p.Id, err)
			}
			h.measurements[i] = bits
			scores[i] = poker.Score(bits.Ones())
			h.logger.Info("measured", "player", p.Id, "outcome", string(bits), "score", scores[i])
		}
	}
	s, err := h.manager.Settle(scores)
	if err != nil {
		return err
	}
	h.settlement = &s
	h.logger.Info("hand settled",
		"outcome", s.Outcome,
		"winners", h.winnerIDs(s),
		"winnings", s.Winnings,
		"forfeited", s.Forfeited)
	return nil
}

func (h *Hand) abort() {
	s := h.manager.Abort()
	h.settlement = &s
	h.last = poker.Transition{Next: -1, Round: h.manager.Turns.Round, Outcome: poker.Aborted}
	h.selection.Reset()
	h.logger.Warn("hand aborted, bets refunded", "refunds", s.Winnings)
}

func (h *Hand) winnerIDs(s poker.Settlement) []int {
	var ids []int
	for _, seat := range s.Winners() {
		ids = append(ids, h.manager.Betting.Players[seat].Id)
	}
	return ids
}

// ApplyGate applies a gate from the player's gate hand to their own register.
// Only the player on turn may apply gates, only during the gate phase and only
// on revealed qubits. A numerical failure aborts the hand.
func (h *Hand) ApplyGate(playerID int, kind quantum.GateKind, qubits ...int) (Snapshot, error) {
	seat, err := h.gateSeat(playerID)
	if err != nil {
		return h.Snapshot(), err
	}
	if !h.gates[seat].Has(kind) {
		return h.Snapshot(), fmt.Errorf("%w: %w: %s", poker.ErrInvalidAction, deck.ErrGateNotHeld, kind)
	}
	g := quantum.NewGate(kind, qubits...)
	if err := g.Validate(h.registers[seat].Size()); err != nil {
		return h.Snapshot(), err
	}
	if err := h.checkRevealed(qubits...); err != nil {
		return h.Snapshot(), err
	}
	if err := h.registers[seat].Apply(g); err != nil {
		if errors.Is(err, quantum.ErrNumericalInstability) {
			h.logger.Error("gate broke the register", "player", playerID, "gate", g.String(), "error", err)
			h.abort()
		}
		return h.Snapshot(), err
	}
	if err := h.gates[seat].Use(kind); err != nil {
		return h.Snapshot(), fmt.Errorf("%w: %w", poker.ErrInvalidAction, err)
	}
	if err := h.history.AppendGate(playerID, g, h.state()); err != nil {
		h.logger.Error("failed to record gate", "error", err)
	}
	h.logger.Info("gate applied",
		"player", playerID,
		"gate", g.String(),
		"bell_pairs", len(h.registers[seat].BellPairs()))
	return h.Snapshot(), nil
}

func (h *Hand) gateSeat(playerID int) (int, error) {
	if h.manager.Turns.Outcome.Done() {
		return -1, fmt.Errorf("%w: hand is %s", poker.ErrInvalidAction, h.manager.Turns.Outcome)
	}
	if h.manager.Turns.Round != poker.Gates {
		return -1, fmt.Errorf("%w: gates can only be applied in the %s round, now %s", poker.ErrInvalidAction, poker.Gates, h.manager.Turns.Round)
	}
	seat := h.manager.FindPlayerIndex(playerID)
	if seat == -1 {
		return -1, fmt.Errorf("%w: player %d not in hand", poker.ErrInvalidAction, playerID)
	}
	if seat != h.manager.Turns.CurrentTurn {
		return -1, fmt.Errorf("%w: not player's turn: current turn %d, player index %d", poker.ErrInvalidAction, h.manager.Turns.CurrentTurn, seat)
	}
	return seat, nil
}

func (h *Hand) checkRevealed(qubits ...int) error {
	for _, q := range qubits {
		if q < 0 || q >= h.Revealed() {
			return fmt.Errorf("%w: qubit %d is not revealed (%d revealed)", quantum.ErrInvalidGateTarget, q, h.Revealed())
		}
	}
	return nil
}

func (h *Hand) seat(playerID int) (int, error) {
	seat := h.manager.FindPlayerIndex(playerID)
	if seat == -1 {
		return -1, fmt.Errorf("%w: player %d not in hand", poker.ErrInvalidAction, playerID)
	}
	return seat, nil
}

// Probabilities returns the player's view of their register, restricted to
// the revealed qubits.
func (h *Hand) Probabilities(playerID int) (View, error) {
	seat, err := h.seat(playerID)
	if err != nil {
		return View{}, err
	}
	n := h.Revealed()
	probs := h.registers[seat].Probabilities()
	v := View{
		PlayerID: playerID,
		Revealed: n,
		Basis:    h.basis,
		One:      probs.One[:n],
		Minus:    probs.Minus[:n],
	}
	for _, p := range probs.BellPairs {
		if p.B < n {
			v.BellPairs = append(v.BellPairs, p)
		}
	}
	return v, nil
}

// BellStateProbs returns the Bell basis distribution of two revealed qubits
// of the player's register.
func (h *Hand) BellStateProbs(playerID, a, b int) ([4]float64, error) {
	seat, err := h.seat(playerID)
	if err != nil {
		return [4]float64{}, err
	}
	if err := h.checkRevealed(a, b); err != nil {
		return [4]float64{}, err
	}
	return h.registers[seat].BellStateProbs(a, b)
}

// BellStateProbs3 is BellStateProbs over three revealed qubits.
func (h *Hand) BellStateProbs3(playerID, a, b, c int) ([8]float64, error) {
	seat, err := h.seat(playerID)
	if err != nil {
		return [8]float64{}, err
	}
	if err := h.checkRevealed(a, b, c); err != nil {
		return [8]float64{}, err
	}
	return h.registers[seat].BellStateProbs3(a, b, c)
}

// ToggleBasis switches the highlighted marginal of the views.
func (h *Hand) ToggleBasis() Basis {
	h.basis = 1 - h.basis
	return h.basis
}

// ClickResult is what a qubit click did.
type ClickResult struct {
	Pending []int
	Ignored bool
	// Qubits are the qubits the tool fired on.
	Qubits []int
	Gate   *quantum.Gate
	Bell2  *[4]float64
	Bell3  *[8]float64
}

// Select picks the tool for the player on turn. Gates must be in the player's
// gate hand and can only be picked in the gate phase; Bell probes can be
// picked as soon as enough qubits are revealed.
func (h *Hand) Select(t Tool) error {
	if h.manager.Turns.Outcome.Done() {
		return fmt.Errorf("%w: hand is %s", poker.ErrInvalidAction, h.manager.Turns.Outcome)
	}
	switch t.Kind {
	case ToolGate:
		seat, err := h.gateSeat(h.manager.GetCurrentPlayer())
		if err != nil {
			return err
		}
		if !h.gates[seat].Has(t.Gate) {
			return fmt.Errorf("%w: %w: %s", poker.ErrInvalidAction, deck.ErrGateNotHeld, t.Gate)
		}
	case ToolBell2, ToolBell3:
		if h.Revealed() < t.Arity() {
			return fmt.Errorf("%w: %s needs %d revealed qubits, %d revealed", poker.ErrInvalidAction, t, t.Arity(), h.Revealed())
		}
	default:
		return fmt.Errorf("%w: no tool selected", poker.ErrInvalidAction)
	}
	h.selection.Set(t)
	return nil
}

// Selection returns the current tool and the qubits clicked so far.
func (h *Hand) Selection() (Tool, []int) {
	return h.selection.Tool(), h.selection.Pending()
}

// Click adds a qubit to the selection of the player on turn. Duplicate and
// unrevealed qubits are ignored. Once the tool has all its qubits the gate is
// applied or the probe evaluated, and the selection is cleared either way.
func (h *Hand) Click(q int) (ClickResult, error) {
	t := h.selection.Tool()
	if t.Kind == ToolNone {
		return ClickResult{}, fmt.Errorf("%w: no tool selected", poker.ErrInvalidAction)
	}
	if q < 0 || q >= h.Revealed() {
		return ClickResult{Pending: h.selection.Pending(), Ignored: true}, nil
	}
	added, full := h.selection.Add(q)
	res := ClickResult{Pending: h.selection.Pending(), Ignored: !added}
	if !full {
		return res, nil
	}
	qubits := h.selection.Pending()
	h.selection.Reset()
	res.Pending, res.Qubits = nil, qubits

	player := h.manager.GetCurrentPlayer()
	switch t.Kind {
	case ToolGate:
		if _, err := h.ApplyGate(player, t.Gate, qubits...); err != nil {
			return res, err
		}
		g := quantum.NewGate(t.Gate, qubits...)
		res.Gate = &g
	case ToolBell2:
		p, err := h.BellStateProbs(player, qubits[0], qubits[1])
		if err != nil {
			return res, err
		}
		res.Bell2 = &p
	case ToolBell3:
		p, err := h.BellStateProbs3(player, qubits[0], qubits[1], qubits[2])
		if err != nil {
			return res, err
		}
		res.Bell3 = &p
	}
	return res, nil
}

func (h *Hand) Revealed() int {
	return h.manager.Turns.Revealed
}

func (h *Hand) Round() poker.Round {
	return h.manager.Turns.Round
}

func (h *Hand) Outcome() poker.Outcome {
	return h.manager.Turns.Outcome
}

func (h *Hand) Done() bool {
	return h.manager.Turns.Outcome.Done()
}

// CurrentPlayer returns the id of the player on turn, or -1 once the hand is over.
func (h *Hand) CurrentPlayer() int {
	return h.manager.GetCurrentPlayer()
}

// CallAmount is what the player still owes to match the table bet.
func (h *Hand) CallAmount(playerID int) int {
	seat := h.manager.FindPlayerIndex(playerID)
	if seat == -1 {
		return 0
	}
	return h.manager.Betting.CallAmount(seat)
}

// GateHand returns a copy of the gates the player may still apply.
func (h *Hand) GateHand(playerID int) deck.GateHand {
	seat := h.manager.FindPlayerIndex(playerID)
	if seat == -1 {
		return deck.GateHand{}
	}
	return h.gates[seat].Clone()
}

// Circuit returns every gate applied to the player's register.
func (h *Hand) Circuit(playerID int) []quantum.Gate {
	seat := h.manager.FindPlayerIndex(playerID)
	if seat == -1 {
		return nil
	}
	return h.registers[seat].Circuit()
}

// Settlement returns the payout once the hand is over.
func (h *Hand) Settlement() (poker.Settlement, bool) {
	if h.settlement == nil {
		return poker.Settlement{}, false
	}
	return *h.settlement, true
}

func (h *Hand) Snapshot() Snapshot {
	b := h.manager.Betting
	s := Snapshot{
		HandID:          h.ID,
		Round:           h.manager.Turns.Round,
		Outcome:         h.manager.Turns.Outcome,
		CurrentPlayer:   h.manager.GetCurrentPlayer(),
		Players:         slices.Clone(b.Players),
		Pot:             b.Pot(),
		HighestBet:      b.HighestBet,
		RaisedThisRound: h.manager.Turns.RaisedThisRound,
		Revealed:        h.Revealed(),
		Last:            h.last,
		Measurements:    slices.Clone(h.measurements),
	}
	s.GateHands = make([]deck.GateHand, len(h.gates))
	for i, g := range h.gates {
		s.GateHands[i] = g.Clone()
	}
	if h.settlement != nil {
		settled := *h.settlement
		s.Settlement = &settled
	}
	return s
}
