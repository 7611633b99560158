package board

import (
	"testing"
)

// perft counts leaf nodes at depth by walking legal moves with make/unmake,
// the standard way to cross-check move generation and make/unmake
// correctness against known node counts.
func perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	var ml MoveList
	p.GeneratePseudoLegalMoves(&ml, false)

	var nodes int64
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if !p.MakeMove(m) {
			continue
		}
		nodes += perft(p, depth-1)
		p.TakeMove()
	}
	return nodes
}

func perftCase(t *testing.T, fen string, depth int, want int64) {
	t.Helper()
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	got := perft(pos, depth)
	if got != want {
		t.Errorf("perft(%d) on %q = %d, want %d", depth, fen, got, want)
	}
}

// TestPerftStartingPosition checks the opening position at shallow depths,
// where failures are cheap to localize.
func TestPerftStartingPosition(t *testing.T) {
	tests := []struct {
		depth int
		want  int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, tc := range tests {
		perftCase(t, StartFEN, tc.depth, tc.want)
	}
}

// TestPerftSeedScenarios exercises the six literal seed positions from the
// specification's testable-properties section, each at the depth whose
// node count is given.
func TestPerftSeedScenarios(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		depth int
		want  int64
	}{
		{"startpos", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 4, 197281},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -", 3, 97862},
		{"cpw3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4, 43238},
		{"cpw4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 3, 9467},
		{"cpw5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 3, 62379},
		{"cpw6", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", 3, 89890},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			perftCase(t, tc.fen, tc.depth, tc.want)
		})
	}
}

// TestPerftDeepSeedScenarios reruns the same six positions at the full
// depth the specification names. These are slow (the startpos depth-5
// search alone visits millions of nodes) so they are skipped under -short.
func TestPerftDeepSeedScenarios(t *testing.T) {
	if testing.Short() {
		t.Skip("perft at full seed depth is slow; skipped under -short")
	}

	cases := []struct {
		name  string
		fen   string
		depth int
		want  int64
	}{
		{"startpos", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 5, 4865609},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -", 4, 4085603},
		{"cpw3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 6, 11030083},
		{"cpw4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 5, 15833292},
		{"cpw5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 4, 2103487},
		{"cpw6", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", 4, 3894594},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			perftCase(t, tc.fen, tc.depth, tc.want)
		})
	}
}

// TestPerftEnPassantPin exercises the horizontal-pin edge case: a pawn
// that appears able to capture en passant but would expose its own king
// to a rook on the same rank once the pinned pawn and the captured pawn
// both leave the rank simultaneously.
func TestPerftEnPassantPin(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	var ml MoveList
	pos.GeneratePseudoLegalMoves(&ml, false)
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if !m.IsEnPassant() {
			continue
		}
		if pos.MakeMove(m) {
			t.Errorf("en passant %v should be illegal (horizontal pin)", m)
			pos.TakeMove()
		}
	}

	perftCase(t, "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", 1, 6)
	perftCase(t, "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", 2, 94)
}

// TestMoveListCapacity checks the densely-packed all-queens position the
// spec calls out: 265 legal moves, well within the 280-entry MoveList.
func TestMoveListCapacity(t *testing.T) {
	pos, err := ParseFEN("QQQQQQBk/Q6B/Q6Q/Q6Q/Q6Q/Q6Q/Q6Q/KQQQQQQQ w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	legal := pos.GenerateLegalMoves()
	if legal.Len() != 265 {
		t.Errorf("legal move count = %d, want 265", legal.Len())
	}
}
