/*
Package game plays quantum poker on top of the domain packages.

A [Hand] owns one qubit register and one gate hand per seat and drives them
with the betting of the poker package: qubits are revealed as the betting
rounds advance, gates are applied during the gate phase and every register
still in the hand is measured at the showdown. A [Match] chains hands,
rotating the small blind and removing busted players.
*/
package game
