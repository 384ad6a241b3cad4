package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/luca-patrignani/quantum-poker/domain/poker"
	"github.com/luca-patrignani/quantum-poker/domain/quantum"
)

// Blockchain is the hash-chained history of a single hand.
type Blockchain struct {
	mu     sync.RWMutex
	handID string
	blocks []Block
}

// NewBlockchain creates the history of a hand with its genesis block. The
// genesis block has index 0, previous hash "0" and the state after the blinds.
func NewBlockchain(handID string, start State) *Blockchain {
	bc := &Blockchain{handID: handID}
	genesis := Block{
		Index:     0,
		Timestamp: time.Now().Unix(),
		PrevHash:  "0",
		HandID:    handID,
		State:     start,
	}
	genesis.Hash = bc.calculateHash(genesis)
	bc.blocks = append(bc.blocks, genesis)
	return bc
}

// AppendAction records an accepted poker action.
func (bc *Blockchain) AppendAction(pa poker.PokerAction, state State, extra ...map[string]string) error {
	if pa.HandID != bc.handID {
		return fmt.Errorf("action of hand %s cannot be recorded in hand %s", pa.HandID, bc.handID)
	}
	return bc.append(Block{Action: &pa, State: state}, extra...)
}

// AppendGate records a gate applied by a player.
func (bc *Blockchain) AppendGate(playerID int, g quantum.Gate, state State, extra ...map[string]string) error {
	move := GateMove{PlayerID: playerID, Gate: quantum.NewGate(g.Kind, g.Targets...)}
	return bc.append(Block{Gate: &move, State: state}, extra...)
}

func (bc *Blockchain) append(b Block, extra ...map[string]string) error {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	if len(extra) > 0 {
		b.Metadata.Extra = extra[0]
	}
	latest := bc.blocks[len(bc.blocks)-1]
	b.Index = latest.Index + 1
	b.Timestamp = time.Now().Unix()
	b.PrevHash = latest.Hash
	b.HandID = bc.handID
	b.Hash = bc.calculateHash(b)

	if err := bc.validateBlock(b, latest); err != nil {
		return fmt.Errorf("invalid block: %w", err)
	}
	bc.blocks = append(bc.blocks, b)
	return nil
}

// GetLatest returns the most recently added block.
func (bc *Blockchain) GetLatest() Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.blocks[len(bc.blocks)-1]
}

// GetByIndex retrieves a block by its index in the chain.
func (bc *Blockchain) GetByIndex(index int) (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if index < 0 || index >= len(bc.blocks) {
		return Block{}, fmt.Errorf("index %d out of range [0,%d)", index, len(bc.blocks))
	}
	return bc.blocks[index], nil
}

func (bc *Blockchain) Len() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.blocks)
}

// Blocks returns a copy of the chain, genesis first.
func (bc *Blockchain) Blocks() []Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return append([]Block(nil), bc.blocks...)
}

// Verify checks the genesis block and the linkage and hash of every block.
func (bc *Blockchain) Verify() error {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if len(bc.blocks) == 0 {
		return fmt.Errorf("empty blockchain")
	}
	if bc.blocks[0].PrevHash != "0" || bc.blocks[0].Index != 0 {
		return fmt.Errorf("invalid genesis block")
	}
	if h := bc.calculateHash(bc.blocks[0]); h != bc.blocks[0].Hash {
		return fmt.Errorf("invalid genesis hash: expected %s, got %s", h, bc.blocks[0].Hash)
	}
	for i := 1; i < len(bc.blocks); i++ {
		if err := bc.validateBlock(bc.blocks[i], bc.blocks[i-1]); err != nil {
			return fmt.Errorf("block %d invalid: %w", i, err)
		}
	}
	return nil
}

// validateBlock checks index continuity, previous hash linkage, the hash of
// the block and that it records exactly one move of this hand.
func (bc *Blockchain) validateBlock(current, previous Block) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("invalid index: expected %d, got %d", previous.Index+1, current.Index)
	}
	if current.PrevHash != previous.Hash {
		return fmt.Errorf("invalid prev hash: expected %s, got %s", previous.Hash, current.PrevHash)
	}
	if expectedHash := bc.calculateHash(current); current.Hash != expectedHash {
		return fmt.Errorf("invalid hash: expected %s, got %s", expectedHash, current.Hash)
	}
	if current.HandID != bc.handID {
		return fmt.Errorf("block of hand %s in hand %s", current.HandID, bc.handID)
	}
	if (current.Action == nil) == (current.Gate == nil) {
		return fmt.Errorf("block must record exactly one action or gate")
	}
	return nil
}

// calculateHash computes the SHA256 hash of a block over its index,
// timestamp, previous hash and the JSON of its move and state.
func (bc *Blockchain) calculateHash(block Block) string {
	actionBytes, _ := json.Marshal(block.Action)
	gateBytes, _ := json.Marshal(block.Gate)
	stateBytes, _ := json.Marshal(block.State)
	extraBytes, _ := json.Marshal(block.Metadata.Extra)

	data := fmt.Sprintf("%d%d%s%s%s%s%s%s",
		block.Index,
		block.Timestamp,
		block.PrevHash,
		block.HandID,
		string(actionBytes),
		string(gateBytes),
		string(stateBytes),
		string(extraBytes),
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
