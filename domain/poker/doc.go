// Package poker implements the betting side of quantum poker: blinds, player
// actions, turn order, round progression and the final distribution of the pot.
//
// # Core Types
//
// BettingState: stacks, bets committed during the hand, folded and all-in
// players, the table bet and the last raiser.
//
// Scheduler: whose turn it is, when a round ends and how many qubits each
// round reveals.
//
// PokerManager: validates a PokerAction against the turn order and the rules
// and applies it, returning the resulting Transition.
//
// Settlement: the pot tiers, scores and per-seat winnings of a finished hand.
//
// # Game Flow
//
// A hand goes through four betting rounds, PreFlop → Flop → Turn → River,
// followed by the Gates phase in which every player still in the hand applies
// quantum gates to its register and ends its turn. Leaving PreFlop, Flop and
// Turn reveals qubits. When at most one player can still bet the remaining
// rounds are skipped. A hand completes by fold when one player is left, or by
// showdown after the gate phase.
//
// # Settlement
//
// Scores are the number of qubits measured as 1. The pot is split in one tier
// per all-in level plus a final tier, each awarded to the best scores among
// the players who paid it in full. Ties split evenly, the odd chip going to
// the earliest seat.
package poker
