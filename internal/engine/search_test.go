package engine

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/dragonrose/dragonrose/internal/board"
)

func searchDepth(t *testing.T, fen string, depth int) (board.Move, *bytes.Buffer) {
	t.Helper()
	pos := board.NewPosition()
	if fen != "" {
		p, err := board.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN: %v", err)
		}
		pos = p
	}

	eng := NewEngine(8)
	var out bytes.Buffer
	info := NewSearchInfo(&out)
	info.Depth = depth

	move := eng.SearchPosition(pos, info)
	return move, &out
}

func TestSearchFindsMateInOne(t *testing.T) {
	// White to move: the black king on g8 is boxed in by its own pawns,
	// and Ra1-a8 is a back-rank mate.
	move, out := searchDepth(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", 3)
	if move == board.NoMove {
		t.Fatal("expected a move, got NoMove")
	}
	if move.String() != "a1a8" {
		t.Errorf("bestmove = %v, want the mating move a1a8", move)
	}
	if !strings.Contains(out.String(), "bestmove") {
		t.Errorf("output missing bestmove line: %q", out.String())
	}
}

func TestSearchReturnsLegalMoveFromStartingPosition(t *testing.T) {
	move, out := searchDepth(t, "", 4)
	if move == board.NoMove {
		t.Fatal("expected a move, got NoMove")
	}

	pos := board.NewPosition()
	legal := pos.GenerateLegalMoves()
	if !legal.Contains(move) {
		t.Errorf("bestmove %v must be legal in the searched position", move)
	}
	if !strings.Contains(out.String(), "bestmove "+move.String()) {
		t.Errorf("output missing bestmove %v: %q", move, out.String())
	}
}

func TestSearchRespectsNodeLimit(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(8)
	var out bytes.Buffer
	info := NewSearchInfo(&out)
	info.Depth = MaxPly
	info.NodesLimit = 5000
	info.HardStopTime = time.Now().Add(5 * time.Second)

	move := eng.SearchPosition(pos, info)
	if move == board.NoMove {
		t.Fatal("expected a move, got NoMove")
	}
}

func TestSearchStopsAtHardDeadline(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(8)
	var out bytes.Buffer
	info := NewSearchInfo(&out)
	info.Depth = MaxPly
	info.HardStopTime = time.Now().Add(50 * time.Millisecond)

	start := time.Now()
	move := eng.SearchPosition(pos, info)
	elapsed := time.Since(start)

	if move == board.NoMove {
		t.Fatal("expected a move, got NoMove")
	}
	if elapsed >= 2*time.Second {
		t.Errorf("search took too long to stop: %v", elapsed)
	}
}

func TestQuiescenceSettlesCaptureSequence(t *testing.T) {
	tt := NewHashTable(4)
	s := NewSearcher(tt)
	pos, err := board.ParseFEN("4k3/8/8/3r4/8/8/3P4/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	s.pos = pos
	info := NewSearchInfo(nil)
	s.info = info

	score := s.quiescence(-Infinity, Infinity, 0)
	if score == 0 {
		t.Error("expected a non-zero quiescence score")
	}
}
