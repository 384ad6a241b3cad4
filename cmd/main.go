package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/quantum-poker/config"
	"github.com/luca-patrignani/quantum-poker/domain/deck"
	"github.com/luca-patrignani/quantum-poker/domain/poker"
	"github.com/luca-patrignani/quantum-poker/domain/quantum"
	"github.com/luca-patrignani/quantum-poker/game"
)

const (
	optFold     = "Fold"
	optCheck    = "Check"
	optCall     = "Call"
	optRaise    = "Raise"
	optAllIn    = "AllIn"
	optGate     = "Apply gate"
	optBell     = "Bell probe"
	optBell3    = "Bell3 probe"
	optBasis    = "Toggle basis"
	optEndTurn  = "End turn"
	optNextHand = "Next hand"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		pterm.Error.Printfln("Invalid configuration: %s", err)
		panic(err)
	}

	// Create a new slog handler with the default PTerm logger
	handler := pterm.NewSlogHandler(pterm.DefaultLogger.WithLevel(logLevel(cfg.LogLevel)))

	// Create a new slog logger with the handler
	logger := slog.New(handler)

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Q", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("uantum ", pterm.FgDarkGray.ToStyle()),
		putils.LettersFromStringWithStyle("P", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("oker", pterm.FgDarkGray.ToStyle()),
	).Render()

	players := cfg.Players
	if players == 0 {
		choice, _ := pterm.DefaultInteractiveSelect.WithDefaultText("Number of players").WithOptions([]string{"2", "3", "4", "5"}).Show()
		players, _ = strconv.Atoi(choice)
	}
	names := askNames(players, cfg.Names)
	pterm.Println()

	match, err := game.NewMatch(names, cfg.StartingStack, cfg.GameOptions(), quantum.NewStatevectorSampler(samplerSource(cfg.Seed)), logger)
	if err != nil {
		logger.Error("failed to start the match", "error", err)
		panic(err)
	}
	for _, p := range match.Players() {
		pterm.Info.Printfln("%s sits with %d chips", pterm.LightCyan(p.Name), p.Stack)
	}

	for !match.Over() {
		spinner, _ := pterm.DefaultSpinner.Start("Preparing the registers ...")
		hand, err := match.NewHand()
		if err != nil {
			spinner.Fail()
			logger.Error("failed to deal a hand", "error", err)
			panic(err)
		}
		spinner.Success()

		playHand(hand, logger)

		snap := hand.Snapshot()
		printState(hand, -1, getWinnerPanel(snap))
		if err := match.FinishHand(hand); err != nil {
			logger.Error("failed to close the hand", "error", err)
			panic(err)
		}
		for _, p := range snap.Players {
			if !seated(match, p.Id) {
				pterm.Warning.Printfln("%s is out of chips", pterm.LightCyan(p.Name))
			}
		}
		if !match.Over() {
			pterm.DefaultInteractiveSelect.WithDefaultText("Hand over").WithOptions([]string{optNextHand}).Show()
		}
	}

	winner, _ := match.Winner()
	pterm.Success.Printfln("%s wins the match with %d chips after %d hands", pterm.LightCyan(winner.Name), winner.Stack, match.Hands())
}

// samplerSource seeds the measurement sampler. Hands draw their registers
// from the stream of the configured seed, so the sampler uses its complement.
func samplerSource(seed int64) rand.Source {
	if seed == 0 {
		return deck.NewSource()
	}
	return deck.NewSeededSource(^seed)
}

func askNames(players int, preset []string) []string {
	names := make([]string, players)
	for i := range names {
		def := fmt.Sprintf("Player %d", i+1)
		if i < len(preset) {
			names[i] = preset[i]
			continue
		}
		name, _ := pterm.DefaultInteractiveTextInput.WithDefaultText(fmt.Sprintf("Enter the name of player %d", i+1)).WithDefaultValue(def).Show()
		if name = strings.TrimSpace(name); name == "" {
			name = def
		}
		names[i] = name
	}
	return names
}

func seated(m *game.Match, id int) bool {
	for _, p := range m.Players() {
		if p.Id == id {
			return true
		}
	}
	return false
}

// playHand passes the terminal from player to player until the hand is over.
func playHand(h *game.Hand, logger *slog.Logger) {
	var last pterm.Panel
	for !h.Done() {
		player := h.CurrentPlayer()
		if last.Data != "" {
			printState(h, player, last)
		} else {
			printState(h, player)
		}
		pa, err := inputAction(h, player)
		if err != nil {
			if errors.Is(err, quantum.ErrNumericalInstability) {
				pterm.Error.Printfln("The register became unstable, the hand is aborted and every bet refunded")
				return
			}
			logger.Error(err.Error())
			panic(err)
		}
		last = getActionPanel(pa, h.Snapshot())
	}
}

// inputAction prompts the player on turn until they take an action that ends
// their turn. Gates and probes do not end the turn.
func inputAction(h *game.Hand, player int) (poker.PokerAction, error) {
	for {
		snap := h.Snapshot()
		options := actionOptions(snap, h.CallAmount(player), h.GateHand(player))
		selected, _ := pterm.DefaultInteractiveSelect.WithDefaultText("Select your next action").WithOptions(options).Show()

		var err error
		pa := poker.PokerAction{HandID: snap.HandID, PlayerID: player}
		switch selected {
		case optFold, optAllIn:
			confirm, _ := pterm.DefaultInteractiveConfirm.WithDefaultText(fmt.Sprintf("Confirm to %s?", selected)).WithDefaultValue(true).Show()
			if !confirm {
				pterm.Info.Println("Action cancelled.")
				continue
			}
			pa.Type = poker.ActionFold
			if selected == optAllIn {
				pa.Type = poker.ActionAllIn
			}
		case optCheck, optCall:
			pa.Type = poker.ActionCheck
		case optRaise:
			raiseAmount, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter the amount to raise").Show()
			amount, convErr := strconv.Atoi(strings.TrimSpace(raiseAmount))
			if convErr != nil || amount <= 0 {
				pterm.Error.Printfln("Invalid amount: %s", raiseAmount)
				continue
			}
			pa.Type, pa.Amount = poker.ActionRaise, raiseContribution(h.CallAmount(player), amount)
		case optEndTurn:
			pa.Type = poker.ActionEndTurn
		case optGate:
			err = useGate(h, player)
			if errors.Is(err, quantum.ErrNumericalInstability) {
				return pa, err
			}
			reportError(err)
			continue
		case optBell:
			reportError(probe(h, game.Bell2Tool()))
			continue
		case optBell3:
			reportError(probe(h, game.Bell3Tool()))
			continue
		case optBasis:
			pterm.Info.Printfln("Showing the %s basis", h.ToggleBasis())
			printState(h, player)
			continue
		default:
			return pa, fmt.Errorf("unknown action %q", selected)
		}

		if _, err = h.Apply(pa); err != nil {
			pterm.Error.Printfln("Invalid action: %s", err.Error())
			continue
		}
		return pa, nil
	}
}

// raiseContribution turns a raise over the table bet into the chips the
// player has to put in.
func raiseContribution(toCall, raiseBy int) int {
	return toCall + raiseBy
}

func reportError(err error) {
	if err != nil {
		pterm.Error.Printfln("%s", err.Error())
	}
}

func useGate(h *game.Hand, player int) error {
	gates := h.GateHand(player)
	var options []string
	for _, k := range gates.Kinds() {
		options = append(options, k.String())
	}
	choice, _ := pterm.DefaultInteractiveSelect.WithDefaultText("Select a gate").WithOptions(options).Show()
	kind, err := quantum.ParseGateKind(choice)
	if err != nil {
		return err
	}
	if err := h.Select(game.GateTool(kind)); err != nil {
		return err
	}
	res, err := clickQubits(h)
	if err != nil {
		return err
	}
	pterm.Success.Printfln("Applied %s", res.Gate)
	printState(h, player)
	return nil
}

func probe(h *game.Hand, tool game.Tool) error {
	if err := h.Select(tool); err != nil {
		return err
	}
	res, err := clickQubits(h)
	if err != nil {
		return err
	}
	pterm.Println(getProbePanel(tool, res).Data)
	return nil
}

// clickQubits feeds revealed qubits to the selected tool until it fires.
func clickQubits(h *game.Hand) (game.ClickResult, error) {
	for {
		tool, pending := h.Selection()
		options := qubitOptions(h.Snapshot().Revealed, pending)
		choice, _ := pterm.DefaultInteractiveSelect.
			WithDefaultText(fmt.Sprintf("%s: select qubit %d of %d", tool, len(pending)+1, tool.Arity())).
			WithOptions(options).Show()
		q, err := strconv.Atoi(strings.TrimPrefix(choice, "q"))
		if err != nil {
			return game.ClickResult{}, err
		}
		res, err := h.Click(q)
		if err != nil || res.Gate != nil || res.Bell2 != nil || res.Bell3 != nil {
			return res, err
		}
	}
}

func qubitOptions(revealed int, pending []int) []string {
	var options []string
	for q := 0; q < revealed; q++ {
		if !containsInt(pending, q) {
			options = append(options, fmt.Sprintf("q%d", q))
		}
	}
	return options
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// actionOptions lists the menu for the player on turn.
func actionOptions(snap game.Snapshot, toCall int, gates deck.GateHand) []string {
	var options []string
	if snap.Round == poker.Gates {
		if gates.Total() > 0 {
			options = append(options, optGate)
		}
	} else {
		options = append(options, optFold)
		if toCall == 0 {
			options = append(options, optCheck)
		} else {
			options = append(options, optCall)
		}
		options = append(options, optRaise, optAllIn)
	}
	if snap.Revealed >= 2 {
		options = append(options, optBell)
	}
	if snap.Revealed >= 3 {
		options = append(options, optBell3)
	}
	options = append(options, optBasis)
	if snap.Round == poker.Gates {
		options = append(options, optEndTurn)
	}
	return options
}

func logLevel(level string) pterm.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return pterm.LogLevelDebug
	case "warn":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	default:
		return pterm.LogLevelInfo
	}
}
