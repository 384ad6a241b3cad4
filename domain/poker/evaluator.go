package poker

import "slices"

// Score is the number of qubits a player measured as 1, or a sentinel.
type Score int

const (
	ScoreFolded     Score = -1
	ScoreUnmeasured Score = -2 // the uncontested winner of a fold-out never measures
)

// Pot is one tier of the settlement.
type Pot struct {
	Amount   int
	Cap      int   // cumulative bet level that closes the tier
	Eligible []int // seats still in the hand that paid the whole tier
	Winners  []int
}

// Settlement is the final accounting of a hand. Winnings[i] is what seat i
// receives back; Forfeited is whatever no player could claim.
type Settlement struct {
	Outcome   Outcome
	Pots      []Pot
	Scores    []Score
	Winnings  []int
	Forfeited int
}

func (s Settlement) Total() int {
	total := s.Forfeited
	for _, w := range s.Winnings {
		total += w
	}
	return total
}

// Winners lists every seat that receives chips, in seat order.
func (s Settlement) Winners() []int {
	var out []int
	for i, w := range s.Winnings {
		if w > 0 {
			out = append(out, i)
		}
	}
	return out
}

// Settle splits the committed bets into one tier per all-in level plus a
// final tier for the rest, and awards each tier to the best scores among the
// players who paid it in full. A tier nobody can claim rolls into the next
// one; a leftover after the last tier goes to the last tier's winners.
func Settle(bets []int, allIn []int, scores []Score) Settlement {
	n := len(bets)
	s := Settlement{
		Outcome:  CompleteByShowdown,
		Scores:   slices.Clone(scores),
		Winnings: make([]int, n),
	}
	if n == 0 {
		return s
	}

	levels := make([]int, 0, len(allIn))
	for _, seat := range allIn {
		levels = append(levels, bets[seat])
	}
	slices.Sort(levels)
	levels = append(levels, slices.Max(bets))

	prev, carry := 0, 0
	for t, level := range levels {
		top := t == len(levels)-1
		amount := carry
		for _, b := range bets {
			amount += min(b, level) - min(b, prev)
		}
		if amount == 0 {
			prev = max(prev, level)
			continue
		}
		var eligible []int
		for i, b := range bets {
			if scores[i] < 0 {
				continue
			}
			if (top && b > prev) || (!top && b >= level) {
				eligible = append(eligible, i)
			}
		}
		prev = max(prev, level)
		if len(eligible) == 0 {
			carry = amount
			continue
		}
		carry = 0
		winners := bestScores(eligible, scores)
		splitPot(amount, winners, s.Winnings)
		s.Pots = append(s.Pots, Pot{Amount: amount, Cap: level, Eligible: eligible, Winners: winners})
	}

	if carry > 0 {
		if len(s.Pots) > 0 {
			last := &s.Pots[len(s.Pots)-1]
			splitPot(carry, last.Winners, s.Winnings)
			last.Amount += carry
		} else {
			s.Forfeited = carry
		}
	}
	return s
}

// SettleByFold gives every bet to the only player who did not fold.
func SettleByFold(bets []int, folded []bool) Settlement {
	n := len(bets)
	s := Settlement{
		Outcome:  CompleteByFold,
		Scores:   make([]Score, n),
		Winnings: make([]int, n),
	}
	total, winner := 0, -1
	for i, b := range bets {
		total += b
		if folded[i] {
			s.Scores[i] = ScoreFolded
			continue
		}
		s.Scores[i] = ScoreUnmeasured
		if winner == -1 {
			winner = i
		}
	}
	if winner == -1 {
		s.Forfeited = total
		return s
	}
	s.Winnings[winner] = total
	s.Pots = []Pot{{Amount: total, Cap: bets[winner], Eligible: []int{winner}, Winners: []int{winner}}}
	return s
}

// Refund returns every bet to its owner.
func Refund(bets []int) Settlement {
	s := Settlement{
		Outcome:  Aborted,
		Scores:   make([]Score, len(bets)),
		Winnings: slices.Clone(bets),
	}
	for i := range s.Scores {
		s.Scores[i] = ScoreUnmeasured
	}
	return s
}

func bestScores(seats []int, scores []Score) []int {
	best := ScoreUnmeasured
	for _, i := range seats {
		best = max(best, scores[i])
	}
	var winners []int
	for _, i := range seats {
		if scores[i] == best {
			winners = append(winners, i)
		}
	}
	return winners
}

// splitPot shares amount evenly; the remainder goes to the first winner in
// seat order.
func splitPot(amount int, winners []int, winnings []int) {
	share := amount / len(winners)
	for _, w := range winners {
		winnings[w] += share
	}
	winnings[winners[0]] += amount % len(winners)
}
