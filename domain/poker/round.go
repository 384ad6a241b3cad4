package poker

import "fmt"

// DefaultRevealSchedule is how many qubits are revealed when leaving the
// preflop, flop and turn rounds.
var DefaultRevealSchedule = []int{3, 1, 1}

// Scheduler decides who acts next and when rounds advance.
type Scheduler struct {
	Round             Round
	CurrentTurn       int // seat to act, -1 once the hand is over
	LastPlayerInRound int // reaching this seat again ends the round
	RaisedThisRound   bool
	Outcome           Outcome
	RevealSchedule    []int
	Revealed          int
}

// Transition describes what a single action caused.
type Transition struct {
	Next          int // seat to act, -1 when the hand is over
	Round         Round
	RoundAdvanced bool
	FastForwarded bool // remaining reveals skipped straight to the gate phase
	Revealed      int  // qubits revealed by this transition
	Outcome       Outcome
}

// NewScheduler starts a hand two seats after the small blind. If that seat is
// already all-in from posting a blind the turn moves on immediately.
func NewScheduler(b *BettingState, reveal []int) (*Scheduler, Transition, error) {
	for _, r := range reveal {
		if r < 0 {
			return nil, Transition{}, fmt.Errorf("negative reveal count in %v", reveal)
		}
	}
	if len(reveal) > int(River) {
		return nil, Transition{}, fmt.Errorf("reveal schedule %v longer than %d rounds", reveal, River)
	}
	n := len(b.Players)
	start := (b.SmallBlindPlayer + 2) % n
	s := &Scheduler{
		Round:             PreFlop,
		CurrentTurn:       start,
		LastPlayerInRound: start,
		RevealSchedule:    append([]int(nil), reveal...),
	}
	if b.Players[start].IsAllIn {
		return s, s.advance(b), nil
	}
	return s, Transition{Next: start, Round: PreFlop}, nil
}

func (s *Scheduler) reveal(r Round) int {
	if int(r) >= len(s.RevealSchedule) {
		return 0
	}
	s.Revealed += s.RevealSchedule[r]
	return s.RevealSchedule[r]
}

func (s *Scheduler) skip(b *BettingState, seat int) bool {
	p := b.Players[seat]
	return p.HasFolded || (s.Round.IsBetting() && p.IsAllIn)
}

// advance moves the turn on from CurrentTurn after its player acted.
func (s *Scheduler) advance(b *BettingState) Transition {
	n := len(b.Players)
	folded, allIn := b.FoldedCount(), b.AllInCount()
	if folded >= n-1 {
		return s.complete(CompleteByFold)
	}

	betting := s.Round.IsBetting()
	advance := false
	next := s.CurrentTurn
	if betting && folded+allIn == n {
		advance = true
	} else {
		for first := true; first || s.skip(b, next); first = false {
			next = (next + 1) % n
			if next == s.LastPlayerInRound {
				advance = true
			}
		}
	}

	t := Transition{}
	switch {
	case betting && advance && folded+allIn >= n-1:
		t.Revealed = s.forwardToGates()
		next = s.gateStarter(b)
		s.LastPlayerInRound = next
		t.RoundAdvanced, t.FastForwarded = true, true
	case advance:
		switch s.Round {
		case PreFlop, Flop, Turn:
			t.Revealed = s.reveal(s.Round)
			next = s.findRoundStarter(b)
			s.LastPlayerInRound = next
			s.RaisedThisRound = false
		case River:
			next = s.gateStarter(b)
			s.LastPlayerInRound = next
		case Gates:
			return s.complete(CompleteByShowdown)
		}
		s.Round++
		t.RoundAdvanced = true
	}
	s.CurrentTurn = next
	t.Next, t.Round = next, s.Round
	return t
}

// forwardToGates reveals everything left and enters the gate phase.
func (s *Scheduler) forwardToGates() int {
	revealed := 0
	for s.Round < Gates {
		revealed += s.reveal(s.Round)
		s.Round++
	}
	s.RaisedThisRound = false
	return revealed
}

// findRoundStarter is the first seat from the small blind that can still bet.
func (s *Scheduler) findRoundStarter(b *BettingState) int {
	n := len(b.Players)
	seat := b.SmallBlindPlayer
	for i := 0; i < n; i++ {
		p := b.Players[seat]
		if !p.HasFolded && !p.IsAllIn {
			return seat
		}
		seat = (seat + 1) % n
	}
	return b.SmallBlindPlayer
}

// gateStarter is the last raiser, or the next seat still in the hand when the
// raiser has folded since.
func (s *Scheduler) gateStarter(b *BettingState) int {
	n := len(b.Players)
	seat := b.LastToRaise
	for i := 0; i < n; i++ {
		if !b.Players[seat].HasFolded {
			return seat
		}
		seat = (seat + 1) % n
	}
	return b.LastToRaise
}

func (s *Scheduler) complete(o Outcome) Transition {
	s.Outcome = o
	s.CurrentTurn = -1
	return Transition{Next: -1, Round: s.Round, Outcome: o}
}
