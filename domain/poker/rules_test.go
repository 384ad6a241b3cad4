package poker

import (
	"errors"
	"testing"
)

func TestCheckPokerLogic(t *testing.T) {
	tests := []struct {
		name    string
		player  Player
		highest int
		round   Round
		action  ActionType
		amount  int
		wantErr error
	}{
		{"fold", Player{Stack: 100}, 10, PreFlop, ActionFold, 0, nil},
		{"call", Player{Stack: 100, Bet: 5}, 10, PreFlop, ActionCheck, 0, nil},
		{"short call goes all-in", Player{Stack: 3, Bet: 5}, 10, Flop, ActionCheck, 0, nil},
		{"raise", Player{Stack: 100}, 10, Turn, ActionRaise, 20, nil},
		{"raise to exactly the stack", Player{Stack: 30}, 10, River, ActionRaise, 30, nil},
		{"short stack may go all-in below the call", Player{Stack: 6}, 10, Turn, ActionRaise, 6, nil},
		{"bet below the call", Player{Stack: 100, Bet: 5}, 20, Flop, ActionRaise, 10, ErrInvalidBet},
		{"negative raise", Player{Stack: 100}, 10, PreFlop, ActionRaise, -5, ErrInvalidBet},
		{"raise exceeds stack", Player{Stack: 25}, 10, PreFlop, ActionRaise, 30, ErrInvalidBet},
		{"raise amount above stack", Player{Stack: 25}, 0, PreFlop, ActionRaise, 26, ErrInvalidBet},
		{"all-in", Player{Stack: 7}, 10, Flop, ActionAllIn, 0, nil},
		{"folded player", Player{Stack: 100, HasFolded: true}, 10, Flop, ActionCheck, 0, ErrInvalidAction},
		{"all-in player", Player{IsAllIn: true}, 10, Flop, ActionCheck, 0, ErrInvalidAction},
		{"betting in gate phase", Player{Stack: 100}, 10, Gates, ActionRaise, 5, ErrInvalidAction},
		{"end turn while betting", Player{Stack: 100}, 10, River, ActionEndTurn, 0, ErrInvalidAction},
		{"end turn in gate phase", Player{IsAllIn: true}, 10, Gates, ActionEndTurn, 0, nil},
		{"unknown action", Player{Stack: 100}, 10, Flop, ActionType("ban"), 0, ErrInvalidAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &BettingState{Players: []Player{tt.player}, HighestBet: tt.highest}
			err := CheckPokerLogic(tt.action, tt.amount, b, tt.round, 0)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCheckBetOrdering(t *testing.T) {
	p := Player{Stack: 100, Bet: 0}
	if err := checkBet(p, 50, 20); !errors.Is(err, ErrInvalidBet) || err.Error() != "invalid bet: must call or raise" {
		t.Errorf("expected must call or raise, got %v", err)
	}
	if err := checkBet(p, 50, 100); err != nil {
		t.Errorf("whole stack must always be accepted, got %v", err)
	}
	if err := checkBet(p, 50, 120); err == nil || err.Error() != "invalid bet: raise exceeds stack" {
		t.Errorf("expected raise exceeds stack, got %v", err)
	}
	short := Player{Stack: 20, Bet: 0}
	if err := checkBet(short, 50, 20); err != nil {
		t.Errorf("short all-in below the call must be accepted, got %v", err)
	}
}
