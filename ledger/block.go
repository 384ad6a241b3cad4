package ledger

import (
	"github.com/luca-patrignani/quantum-poker/domain/poker"
	"github.com/luca-patrignani/quantum-poker/domain/quantum"
)

// Block records one accepted move of a hand
type Block struct {
	Index     int                `json:"index"`
	Timestamp int64              `json:"timestamp"`
	PrevHash  string             `json:"prev_hash"`
	Hash      string             `json:"hash"`
	HandID    string             `json:"hand_id"`
	Action    *poker.PokerAction `json:"action,omitempty"`
	Gate      *GateMove          `json:"gate,omitempty"`
	State     State              `json:"state"`
	Metadata  Metadata           `json:"metadata"`
}

// GateMove is a gate a player applied to their own register.
type GateMove struct {
	PlayerID int          `json:"player_id"`
	Gate     quantum.Gate `json:"gate"`
}

// State is the public table state right after the move.
type State struct {
	Round    poker.Round   `json:"round"`
	Outcome  poker.Outcome `json:"outcome"`
	Pot      int           `json:"pot"`
	Revealed int           `json:"revealed"`
}

type Metadata struct {
	Extra map[string]string `json:"extra,omitempty"`
}
