package poker

import (
	"fmt"
)

// PokerManager validates and applies the actions of a single hand.
type PokerManager struct {
	HandID  string
	Betting *BettingState
	Turns   *Scheduler
	// Start is the transition produced while seating the players, non-empty
	// when the first seat was already all-in from a blind.
	Start Transition
}

// NewPokerManager seats the players, posts the blinds and hands the turn to
// the first player to act.
func NewPokerManager(handID string, players []Player, smallBlind, smallBlindPlayer int, reveal []int) (*PokerManager, error) {
	betting, err := NewBettingState(players, smallBlind, smallBlindPlayer)
	if err != nil {
		return nil, err
	}
	turns, start, err := NewScheduler(betting, reveal)
	if err != nil {
		return nil, err
	}
	return &PokerManager{HandID: handID, Betting: betting, Turns: turns, Start: start}, nil
}

// Validate checks whether a poker action is valid in the current state by
// verifying the hand id, player existence, turn order and the poker rules.
func (psm *PokerManager) Validate(pa PokerAction) error {
	if pa.HandID != psm.HandID {
		return fmt.Errorf("%w: wrong hand: expected %s, got %s", ErrInvalidAction, psm.HandID, pa.HandID)
	}
	if psm.Turns.Outcome.Done() {
		return fmt.Errorf("%w: hand is %s", ErrInvalidAction, psm.Turns.Outcome)
	}
	index := psm.FindPlayerIndex(pa.PlayerID)
	if index == -1 {
		return fmt.Errorf("%w: player %d not in hand", ErrInvalidAction, pa.PlayerID)
	}
	if index != psm.Turns.CurrentTurn {
		return fmt.Errorf("%w: not player's turn: current turn %d, player index %d", ErrInvalidAction, psm.Turns.CurrentTurn, index)
	}
	return CheckPokerLogic(pa.Type, pa.Amount, psm.Betting, psm.Turns.Round, index)
}

// Apply validates the action, applies it and advances the turn. On error the
// state is unchanged.
func (psm *PokerManager) Apply(pa PokerAction) (Transition, error) {
	if err := psm.Validate(pa); err != nil {
		return Transition{}, err
	}
	idx := psm.FindPlayerIndex(pa.PlayerID)
	if psm.Betting.applyAction(pa.Type, pa.Amount, idx) {
		psm.Turns.LastPlayerInRound = idx
		psm.Turns.RaisedThisRound = true
	}
	return psm.Turns.advance(psm.Betting), nil
}

func (psm *PokerManager) Fold(playerID int) (Transition, error) {
	return psm.Apply(psm.ActionFold(playerID))
}

// Check checks when nothing is owed and calls otherwise.
func (psm *PokerManager) Check(playerID int) (Transition, error) {
	return psm.Apply(psm.ActionCheck(playerID))
}

// Raise commits amount more chips for the player. The resulting bet must reach
// the table bet unless amount is the whole stack.
func (psm *PokerManager) Raise(playerID, amount int) (Transition, error) {
	return psm.Apply(psm.ActionRaise(playerID, amount))
}

func (psm *PokerManager) AllIn(playerID int) (Transition, error) {
	return psm.Apply(psm.ActionAllIn(playerID))
}

func (psm *PokerManager) EndGateTurn(playerID int) (Transition, error) {
	return psm.Apply(psm.ActionEndTurn(playerID))
}

// GetCurrentPlayer returns the id of the player whose turn it is, or -1 once
// the hand is over.
func (psm *PokerManager) GetCurrentPlayer() int {
	turn := psm.Turns.CurrentTurn
	if turn < 0 || turn >= len(psm.Betting.Players) {
		return -1
	}
	return psm.Betting.Players[turn].Id
}

// FindPlayerIndex returns the seat of the player with the given id, or -1 if not found.
func (psm *PokerManager) FindPlayerIndex(playerID int) int {
	return psm.Betting.FindPlayerIndex(playerID)
}

// Settle distributes the pot once the hand is complete. scores is indexed by
// seat; folded seats are scored ScoreFolded whatever is passed.
func (psm *PokerManager) Settle(scores []Score) (Settlement, error) {
	b := psm.Betting
	switch psm.Turns.Outcome {
	case CompleteByFold:
		return SettleByFold(b.Bets(), b.Folded()), nil
	case CompleteByShowdown:
		if len(scores) != len(b.Players) {
			return Settlement{}, fmt.Errorf("expected %d scores, got %d", len(b.Players), len(scores))
		}
		s := make([]Score, len(scores))
		for i, p := range b.Players {
			s[i] = scores[i]
			if p.HasFolded {
				s[i] = ScoreFolded
			}
		}
		return Settle(b.Bets(), b.AllIn, s), nil
	case Aborted:
		return Refund(b.Bets()), nil
	default:
		return Settlement{}, fmt.Errorf("%w: hand is still in progress", ErrInvalidAction)
	}
}

// Abort stops the hand; settling it refunds every bet.
func (psm *PokerManager) Abort() Settlement {
	psm.Turns.complete(Aborted)
	return Refund(psm.Betting.Bets())
}

func (psm *PokerManager) ActionFold(playerID int) PokerAction {
	return PokerAction{HandID: psm.HandID, PlayerID: playerID, Type: ActionFold}
}

func (psm *PokerManager) ActionCheck(playerID int) PokerAction {
	return PokerAction{HandID: psm.HandID, PlayerID: playerID, Type: ActionCheck}
}

func (psm *PokerManager) ActionRaise(playerID, amount int) PokerAction {
	return PokerAction{HandID: psm.HandID, PlayerID: playerID, Type: ActionRaise, Amount: amount}
}

func (psm *PokerManager) ActionAllIn(playerID int) PokerAction {
	return PokerAction{HandID: psm.HandID, PlayerID: playerID, Type: ActionAllIn}
}

func (psm *PokerManager) ActionEndTurn(playerID int) PokerAction {
	return PokerAction{HandID: psm.HandID, PlayerID: playerID, Type: ActionEndTurn}
}
