package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/quantum-poker/domain/deck"
	"github.com/luca-patrignani/quantum-poker/domain/poker"
	"github.com/luca-patrignani/quantum-poker/domain/quantum"
	"github.com/luca-patrignani/quantum-poker/game"
)

var (
	bellNames = [4]string{"Φ+", "Φ-", "Ψ+", "Ψ-"}
	// qubit values in argument order, symmetric then antisymmetric
	ghzNames = [8]string{"000+111", "000-111", "001+110", "001-110", "010+101", "010-101", "100+011", "100-011"}
)

func getActionPanel(pa poker.PokerAction, snap game.Snapshot) pterm.Panel {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	p, _ := snap.Seat(pa.PlayerID)
	actionString := ""
	switch pa.Type {
	case poker.ActionRaise:
		actionString = pterm.Sprintfln("%s put in %d, betting %d", p.Name, pa.Amount, p.Bet)
	case poker.ActionEndTurn:
		actionString = pterm.Sprintfln("%s ended the gate turn", p.Name)
	default:
		actionString = pterm.Sprintfln("%s performed action: %s", p.Name, pa.Type)
	}
	if snap.Last.RoundAdvanced {
		actionString += pterm.Sprintfln("%s begins, %d more qubits revealed", snap.Round, snap.Last.Revealed)
	}
	return pterm.Panel{Data: pbox.WithTitle(pterm.LightYellow("|LAST ACTION|")).WithTitleTopCenter().Sprint(actionString)}
}

func getWinnerPanel(snap game.Snapshot) pterm.Panel {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	return pterm.Panel{Data: pbox.WithTitle(pterm.LightGreen("|SHOWDOWN|")).WithTitleTopCenter().Sprint(describeSettlement(snap))}
}

// describeSettlement lists what every player measured and won.
func describeSettlement(snap game.Snapshot) string {
	s := snap.Settlement
	if s == nil {
		return "The hand is still running\n"
	}
	infoString := ""
	switch s.Outcome {
	case poker.Aborted:
		infoString += "Hand aborted, every bet is refunded\n"
	case poker.CompleteByFold:
		for _, seat := range s.Winners() {
			infoString += pterm.Sprintfln("%s won %d taking down the pot", pterm.LightCyan(snap.Players[seat].Name), s.Winnings[seat])
		}
		return infoString
	}
	for seat, p := range snap.Players {
		switch {
		case p.HasFolded:
			infoString += pterm.Sprintfln("%s folded", p.Name)
		case seat < len(snap.Measurements) && snap.Measurements[seat] != "":
			infoString += pterm.Sprintfln("%s measured %s (%d ones) and won %d", pterm.LightCyan(p.Name), snap.Measurements[seat], s.Scores[seat], s.Winnings[seat])
		default:
			infoString += pterm.Sprintfln("%s gets back %d", pterm.LightCyan(p.Name), s.Winnings[seat])
		}
	}
	for i, pot := range s.Pots {
		if pot.Amount == 0 {
			continue
		}
		var winners []string
		for _, seat := range pot.Winners {
			winners = append(winners, snap.Players[seat].Name)
		}
		infoString += pterm.Sprintfln("Pot%d: %d to %s", i, pot.Amount, strings.Join(winners, ", "))
	}
	if s.Forfeited > 0 {
		infoString += pterm.Sprintfln("%d chips had nobody left to claim them", s.Forfeited)
	}
	return infoString
}

func getProbePanel(tool game.Tool, res game.ClickResult) pterm.Panel {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	return pterm.Panel{Data: pbox.WithTitle(pterm.LightMagenta(fmt.Sprintf("|%s %v|", tool, res.Qubits))).WithTitleTopCenter().Sprint(describeProbe(res))}
}

// describeProbe renders the Bell basis distribution of a fired probe.
func describeProbe(res game.ClickResult) string {
	out := ""
	switch {
	case res.Bell2 != nil:
		for i, p := range res.Bell2 {
			out += fmt.Sprintf("%s: %.3f\n", bellNames[i], p)
		}
	case res.Bell3 != nil:
		for i, p := range res.Bell3 {
			out += fmt.Sprintf("%s: %.3f\n", ghzNames[i], p)
		}
	}
	return out
}

func printState(h *game.Hand, viewer int, additionalPanel ...pterm.Panel) {
	snap := h.Snapshot()
	var panels []pterm.Panel
	var mainPlayer pterm.Panel
	for seat, p := range snap.Players {
		if p.Id != viewer {
			panels = append(panels, pterm.Panel{Data: printPlayerInfo(p, false, snap.GateHands[seat], snap.CurrentPlayer == p.Id)})
		} else {
			mainPlayer = pterm.Panel{Data: printPlayerInfo(p, true, snap.GateHands[seat], true)}
		}
	}
	board := pterm.Panel{Data: printBoardInfo(snap)}
	dashboard := []pterm.Panel{}
	if mainPlayer.Data != "" {
		dashboard = append(dashboard, mainPlayer)
		if view, err := h.Probabilities(viewer); err == nil {
			dashboard = append(dashboard, pterm.Panel{Data: printRegisterInfo(view)})
		}
	}
	dashboard = append(dashboard, additionalPanel...)

	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		panels,
		{board},
		dashboard,
	}).Render()
}

func printPlayerInfo(p poker.Player, main bool, gates deck.GateHand, onTurn bool) string {
	hpadding := 4
	if main {
		hpadding = 10
	}
	pbox := pterm.DefaultBox.WithHorizontalPadding(hpadding).WithTopPadding(1).WithBottomPadding(1)
	var active string
	switch {
	case p.HasFolded:
		active = pterm.LightRed("Folded")
	case p.IsAllIn:
		active = pterm.LightMagenta("All-in")
	default:
		active = pterm.LightGreen("Active")
	}
	title := p.Name
	if onTurn {
		title = pterm.LightCyan(p.Name)
	}
	hand := "no gates left"
	if gates.Total() > 0 {
		hand = gates.String()
	}
	return pbox.WithTitle(title).WithTitleTopLeft().Sprintf("%s\nCurrent Bet: %d\nBankroll: %d\n%s\n", active, p.Bet, p.Stack, pterm.BgGreen.Sprint(hand))
}

func printBoardInfo(snap game.Snapshot) string {
	board := fmt.Sprintf(" %s | Pot: %d | Table bet: %d | Revealed qubits: %d ", snap.Round, snap.Pot, snap.HighestBet, snap.Revealed)
	return pterm.BgGreen.Sprint("\n" + board + "\n")
}

// printRegisterInfo shows the revealed qubits of the viewer's register.
func printRegisterInfo(v game.View) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(2).WithTopPadding(1).WithBottomPadding(1)
	title := fmt.Sprintf("|REGISTER %s|", v.Basis)
	if v.Revealed == 0 {
		return pbox.WithTitle(title).WithTitleTopCenter().Sprint("No qubit revealed yet")
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(registerTable(v)).Srender()
	if err != nil {
		table = err.Error()
	}
	if len(v.BellPairs) > 0 {
		table += "\nBell pairs: " + formatPairs(v.BellPairs)
	}
	return pbox.WithTitle(title).WithTitleTopCenter().Sprint(table)
}

func registerTable(v game.View) pterm.TableData {
	header := []string{"qubit"}
	one := []string{"P(1)"}
	minus := []string{"P(-)"}
	for q := 0; q < v.Revealed; q++ {
		header = append(header, fmt.Sprintf("q%d", q))
		one = append(one, fmt.Sprintf("%.2f", v.One[q]))
		minus = append(minus, fmt.Sprintf("%.2f", v.Minus[q]))
	}
	if v.Basis == game.BasisPM {
		return pterm.TableData{header, minus, one}
	}
	return pterm.TableData{header, one, minus}
}

func formatPairs(pairs []quantum.Pair) string {
	var out []string
	for _, p := range pairs {
		out = append(out, p.String())
	}
	return strings.Join(out, " ")
}
