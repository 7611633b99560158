package engine

import (
	"testing"

	"github.com/dragonrose/dragonrose/internal/board"
)

func TestHashTableStoreProbe(t *testing.T) {
	tt := NewHashTable(1)

	key := uint64(0xDEADBEEFCAFEF00D)
	move := board.NewMove(board.E2, board.E4, board.WhitePawn)

	_, _, _, usable := mustProbe(tt, key, 4, 0, -Infinity, Infinity)
	if usable {
		t.Error("empty table should miss")
	}

	tt.Store(key, move, 123, 4, 0, FlagExact)

	found, gotMove, score, usable := tt.Probe(key, 4, 0, -Infinity, Infinity)
	if !found {
		t.Fatal("expected a found entry")
	}
	if !usable {
		t.Fatal("expected a usable entry")
	}
	if gotMove != move {
		t.Errorf("gotMove = %v, want %v", gotMove, move)
	}
	if score != 123 {
		t.Errorf("score = %d, want 123", score)
	}
}

func mustProbe(tt *HashTable, key uint64, depth, ply, alpha, beta int) (bool, board.Move, int, bool) {
	return tt.Probe(key, depth, ply, alpha, beta)
}

func TestHashTableShallowStoreDoesNotSatisfyDeepProbe(t *testing.T) {
	tt := NewHashTable(1)
	key := uint64(12345)
	move := board.NewMove(board.D2, board.D4, board.WhitePawn)

	tt.Store(key, move, 50, 2, 0, FlagExact)

	_, gotMove, _, usable := tt.Probe(key, 6, 0, -Infinity, Infinity)
	if usable {
		t.Error("a depth-2 entry must not satisfy a depth-6 probe")
	}
	if gotMove != move {
		t.Errorf("the stored move is still useful for ordering: got %v, want %v", gotMove, move)
	}
}

func TestHashTableMateScoreAdjustsWithPly(t *testing.T) {
	tt := NewHashTable(1)
	key := uint64(999)
	move := board.NoMove

	// Store the mate score MateScore-1 as seen from ply 3; the table adds
	// the ply back before storing (MateScore+2), and a probe from ply 5
	// subtracts that ply again, giving MateScore-3.
	tt.Store(key, move, MateScore-1, 4, 3, FlagExact)

	_, _, score, usable := tt.Probe(key, 4, 5, -Infinity, Infinity)
	if !usable {
		t.Fatal("expected a usable entry")
	}
	if score != MateScore-3 {
		t.Errorf("mate score should be rebased to the probing ply: got %d, want %d", score, MateScore-3)
	}
}

func TestHashTableResizeCapacity(t *testing.T) {
	tt := NewHashTable(1)
	if tt.Capacity() == 0 {
		t.Fatal("expected non-zero capacity")
	}

	tt.Resize(2)
	if tt.Capacity() == 0 {
		t.Fatal("expected non-zero capacity after resize")
	}
}

func TestHashTableNewSearchAges(t *testing.T) {
	tt := NewHashTable(1)
	key := uint64(55)
	tt.Store(key, board.NoMove, 10, 2, 0, FlagAlpha)
	tt.NewSearch()
	// A fresh age should still allow the shallower entry to be replaced
	// by a same-key, deeper store without requiring a prior miss.
	tt.Store(key, board.NoMove, 20, 8, 0, FlagExact)

	_, _, score, usable := tt.Probe(key, 8, 0, -Infinity, Infinity)
	if !usable {
		t.Fatal("expected a usable entry")
	}
	if score != 20 {
		t.Errorf("score = %d, want 20", score)
	}
}
