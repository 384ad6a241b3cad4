package poker

const (
	MinPlayers = 2
	MaxPlayers = 5
)

type Player struct {
	Name      string
	Id        int
	HasFolded bool
	IsAllIn   bool
	Bet       int // chips committed during the current hand
	Stack     int // chips still behind
}

// PokerAction is a single move of a player in a hand.
type PokerAction struct {
	HandID   string     `json:"hand_id"`
	PlayerID int        `json:"player_id"`
	Type     ActionType `json:"type"`
	Amount   int        `json:"amount"`
}

type ActionType string

const (
	ActionFold    ActionType = "fold"
	ActionCheck   ActionType = "check" // check or call
	ActionRaise   ActionType = "raise"
	ActionAllIn   ActionType = "allin"
	ActionEndTurn ActionType = "endturn"
)

// Round numbers the phases of a hand. Rounds up to River are betting rounds,
// Gates is the phase in which players apply their quantum gates.
type Round int

const (
	PreFlop Round = iota
	Flop
	Turn
	River
	Gates
)

func (r Round) String() string {
	switch r {
	case PreFlop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Gates:
		return "gates"
	default:
		return "unknown"
	}
}

func (r Round) IsBetting() bool {
	return r < Gates
}

type Outcome int

const (
	InProgress Outcome = iota
	CompleteByFold
	CompleteByShowdown
	Aborted
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in progress"
	case CompleteByFold:
		return "complete by fold"
	case CompleteByShowdown:
		return "complete by showdown"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

func (o Outcome) Done() bool {
	return o != InProgress
}
