package ledger

import (
	"testing"

	"github.com/luca-patrignani/quantum-poker/domain/poker"
	"github.com/luca-patrignani/quantum-poker/domain/quantum"
)

func newTestChain(t *testing.T) *Blockchain {
	t.Helper()
	bc := NewBlockchain("hand-1", State{Round: poker.PreFlop, Pot: 15})
	if err := bc.AppendAction(poker.PokerAction{HandID: "hand-1", PlayerID: 2, Type: poker.ActionCheck}, State{Round: poker.PreFlop, Pot: 25}); err != nil {
		t.Fatalf("failed to append action: %v", err)
	}
	if err := bc.AppendGate(1, quantum.NewGate(quantum.ControlledX, 0, 1), State{Round: poker.Gates, Pot: 30, Revealed: 5}); err != nil {
		t.Fatalf("failed to append gate: %v", err)
	}
	return bc
}

func TestNewBlockchainGenesis(t *testing.T) {
	bc := NewBlockchain("hand-1", State{Round: poker.PreFlop, Pot: 15})
	if bc.Len() != 1 {
		t.Fatalf("expected 1 block (genesis), got %d", bc.Len())
	}
	genesis := bc.GetLatest()
	if genesis.Index != 0 || genesis.PrevHash != "0" || genesis.Hash == "" {
		t.Fatalf("unexpected genesis block %+v", genesis)
	}
	if genesis.State.Pot != 15 || genesis.HandID != "hand-1" {
		t.Fatalf("genesis should hold the starting state, got %+v", genesis)
	}
	if err := bc.Verify(); err != nil {
		t.Fatalf("fresh chain should verify: %v", err)
	}
}

func TestAppendLinksBlocks(t *testing.T) {
	bc := newTestChain(t)
	if bc.Len() != 3 {
		t.Fatalf("expected 3 blocks, got %d", bc.Len())
	}
	blocks := bc.Blocks()
	for i := 1; i < len(blocks); i++ {
		if blocks[i].PrevHash != blocks[i-1].Hash {
			t.Fatalf("block %d is not linked to block %d", i, i-1)
		}
		if blocks[i].Index != i {
			t.Fatalf("expected index %d, got %d", i, blocks[i].Index)
		}
	}
	if blocks[1].Action == nil || blocks[1].Action.Type != poker.ActionCheck {
		t.Errorf("block 1 should record the check, got %+v", blocks[1])
	}
	if blocks[2].Gate == nil || blocks[2].Gate.Gate.Kind != quantum.ControlledX || blocks[2].Gate.PlayerID != 1 {
		t.Errorf("block 2 should record the gate, got %+v", blocks[2])
	}
	if err := bc.Verify(); err != nil {
		t.Fatalf("chain should verify: %v", err)
	}
}

func TestAppendRejectsForeignAction(t *testing.T) {
	bc := NewBlockchain("hand-1", State{})
	err := bc.AppendAction(poker.PokerAction{HandID: "hand-2", PlayerID: 0, Type: poker.ActionFold}, State{})
	if err == nil {
		t.Fatal("expected error for an action of another hand")
	}
	if bc.Len() != 1 {
		t.Fatalf("rejected action must not be recorded, got %d blocks", bc.Len())
	}
}

func TestAppendWithExtraMetadata(t *testing.T) {
	bc := NewBlockchain("hand-1", State{})
	extra := map[string]string{"note": "bell pair"}
	if err := bc.AppendGate(0, quantum.NewGate(quantum.Hadamard, 0), State{}, extra); err != nil {
		t.Fatal(err)
	}
	if got := bc.GetLatest().Metadata.Extra["note"]; got != "bell pair" {
		t.Fatalf("expected extra metadata, got %q", got)
	}
}

func TestGetByIndex(t *testing.T) {
	bc := newTestChain(t)
	b, err := bc.GetByIndex(1)
	if err != nil || b.Index != 1 {
		t.Fatalf("expected block 1, got %+v %v", b, err)
	}
	if _, err := bc.GetByIndex(3); err == nil {
		t.Error("expected error for index out of range")
	}
	if _, err := bc.GetByIndex(-1); err == nil {
		t.Error("expected error for negative index")
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	tests := []struct {
		name   string
		tamper func(bc *Blockchain)
	}{
		{"altered pot", func(bc *Blockchain) { bc.blocks[1].State.Pot = 1000 }},
		{"altered gate", func(bc *Blockchain) { bc.blocks[2].Gate.Gate.Targets[0] = 4 }},
		{"broken link", func(bc *Blockchain) { bc.blocks[2].PrevHash = "bogus" }},
		{"index gap", func(bc *Blockchain) { bc.blocks[2].Index = 5 }},
		{"invalid genesis", func(bc *Blockchain) { bc.blocks[0].PrevHash = "1" }},
		{"altered genesis", func(bc *Blockchain) { bc.blocks[0].State.Pot = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bc := newTestChain(t)
			tt.tamper(bc)
			if err := bc.Verify(); err == nil {
				t.Fatal("expected tampering to be detected")
			}
		})
	}
}

func TestBlocksReturnsCopy(t *testing.T) {
	bc := newTestChain(t)
	blocks := bc.Blocks()
	blocks[1].Hash = "changed"
	if err := bc.Verify(); err != nil {
		t.Fatalf("modifying the copy must not affect the chain: %v", err)
	}
}
