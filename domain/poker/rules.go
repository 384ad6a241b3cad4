package poker

import "fmt"

// CheckPokerLogic reports whether the player at idx may perform the action in
// the given round. It does not check whose turn it is.
func CheckPokerLogic(a ActionType, amount int, b *BettingState, round Round, idx int) error {
	switch a {
	case ActionEndTurn:
		if round != Gates {
			return fmt.Errorf("%w: cannot end the gate turn during %s", ErrInvalidAction, round)
		}
		return nil
	case ActionFold, ActionCheck, ActionRaise, ActionAllIn:
		if !round.IsBetting() {
			return fmt.Errorf("%w: %s not allowed during %s", ErrInvalidAction, a, round)
		}
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidAction, a)
	}

	p := b.Players[idx]
	if p.HasFolded || p.IsAllIn {
		return fmt.Errorf("%w: %s cannot act", ErrInvalidAction, p.Name)
	}

	switch a {
	case ActionCheck:
		return checkBet(p, b.HighestBet, b.CallAmount(idx))
	case ActionRaise:
		if amount < 0 {
			return fmt.Errorf("%w: negative amount %d", ErrInvalidBet, amount)
		}
		return checkBet(p, b.HighestBet, amount)
	}
	return nil
}

// checkBet validates a contribution. Putting in the whole stack is always
// allowed; anything else must reach the table bet and fit in the stack.
func checkBet(p Player, highest, contribution int) error {
	if contribution == p.Stack {
		return nil
	}
	if p.Bet+contribution < highest {
		return fmt.Errorf("%w: must call or raise", ErrInvalidBet)
	}
	if contribution > p.Stack {
		return fmt.Errorf("%w: raise exceeds stack", ErrInvalidBet)
	}
	return nil
}
