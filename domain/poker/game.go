package poker

import (
	"fmt"
	"slices"
)

// BettingState holds the chips of a hand in progress. Bets accumulate over
// the whole hand; HighestBet is the amount every active player must match.
type BettingState struct {
	Players          []Player
	AllIn            []int // seats, ascending by committed bet when they went all-in
	HighestBet       int
	LastToRaise      int
	SmallBlind       int
	SmallBlindPlayer int
}

// NewBettingState seats the players, clears their per-hand fields and posts
// the blinds: smallBlind from smallBlindPlayer and twice that from the next
// seat, each capped at the poster's stack.
func NewBettingState(players []Player, smallBlind, smallBlindPlayer int) (*BettingState, error) {
	n := len(players)
	if n < MinPlayers || n > MaxPlayers {
		return nil, fmt.Errorf("a hand needs %d to %d players, got %d", MinPlayers, MaxPlayers, n)
	}
	if smallBlind <= 0 {
		return nil, fmt.Errorf("small blind must be positive, got %d", smallBlind)
	}
	if smallBlindPlayer < 0 || smallBlindPlayer >= n {
		return nil, fmt.Errorf("small blind seat %d out of range", smallBlindPlayer)
	}
	b := &BettingState{
		Players:          make([]Player, n),
		SmallBlind:       smallBlind,
		SmallBlindPlayer: smallBlindPlayer,
	}
	for i, p := range players {
		if p.Stack <= 0 {
			return nil, fmt.Errorf("player %s has no chips", p.Name)
		}
		b.Players[i] = Player{Name: p.Name, Id: p.Id, Stack: p.Stack}
	}
	b.postBlinds()
	return b, nil
}

func (b *BettingState) postBlinds() {
	n := len(b.Players)
	sb, bb := b.SmallBlindPlayer, (b.SmallBlindPlayer+1)%n
	b.commit(sb, min(b.SmallBlind, b.Players[sb].Stack))
	b.commit(bb, min(2*b.SmallBlind, b.Players[bb].Stack))
	b.HighestBet = 2 * b.SmallBlind
	b.LastToRaise = bb
}

// commit moves amount from the player's stack to its bet. Emptying the stack
// puts the player all-in.
func (b *BettingState) commit(idx, amount int) {
	p := &b.Players[idx]
	p.Bet += amount
	p.Stack -= amount
	if p.Stack == 0 && !p.IsAllIn {
		p.IsAllIn = true
		pos := len(b.AllIn)
		for i, seat := range b.AllIn {
			if b.Players[seat].Bet > p.Bet {
				pos = i
				break
			}
		}
		b.AllIn = slices.Insert(b.AllIn, pos, idx)
	}
}

// bet commits amount and reports whether it raised the table bet.
func (b *BettingState) bet(idx, amount int) bool {
	b.commit(idx, amount)
	if b.Players[idx].Bet > b.HighestBet {
		b.HighestBet = b.Players[idx].Bet
		b.LastToRaise = idx
		return true
	}
	return false
}

// applyAction mutates the state for an action already accepted by
// CheckPokerLogic. It reports whether the action raised.
func (b *BettingState) applyAction(a ActionType, amount int, idx int) bool {
	switch a {
	case ActionFold:
		b.Players[idx].HasFolded = true
	case ActionCheck:
		return b.bet(idx, b.CallAmount(idx))
	case ActionRaise:
		return b.bet(idx, amount)
	case ActionAllIn:
		return b.bet(idx, b.Players[idx].Stack)
	}
	return false
}

// CallAmount is what a check or call commits for the player.
func (b *BettingState) CallAmount(idx int) int {
	p := b.Players[idx]
	return min(max(b.HighestBet-p.Bet, 0), p.Stack)
}

func (b *BettingState) Pot() int {
	total := 0
	for _, p := range b.Players {
		total += p.Bet
	}
	return total
}

func (b *BettingState) Bets() []int {
	bets := make([]int, len(b.Players))
	for i, p := range b.Players {
		bets[i] = p.Bet
	}
	return bets
}

func (b *BettingState) Folded() []bool {
	folded := make([]bool, len(b.Players))
	for i, p := range b.Players {
		folded[i] = p.HasFolded
	}
	return folded
}

func (b *BettingState) FoldedCount() int {
	n := 0
	for _, p := range b.Players {
		if p.HasFolded {
			n++
		}
	}
	return n
}

func (b *BettingState) AllInCount() int {
	return len(b.AllIn)
}

// FindPlayerIndex returns the seat of the player with the given id, or -1.
func (b *BettingState) FindPlayerIndex(playerID int) int {
	for i, p := range b.Players {
		if p.Id == playerID {
			return i
		}
	}
	return -1
}
