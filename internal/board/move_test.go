package board

import "testing"

// roundTripLegalMoves checks, for every legal move at pos, that
// ParseMove(m.String(), pos) reproduces the exact same packed move —
// the §8 "print_move / parse_move round-trip" property.
func roundTripLegalMoves(t *testing.T, pos *Position) {
	t.Helper()
	legal := pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		s := m.String()
		got, err := ParseMove(s, pos)
		if err != nil {
			t.Errorf("ParseMove(%q) failed: %v", s, err)
			continue
		}
		if got != m {
			t.Errorf("ParseMove(%q) = %v, want %v", s, got, m)
		}
	}
}

// TestMoveStringParseMoveRoundTrip walks a handful of positions,
// including ones with legal promotions to every piece type, and checks
// that print_move/parse_move round-trips on every legal move. Queen
// promotions are the highest-priority, most common promotion (§4.4,
// ordering score 5,000,000), so they are exercised explicitly.
func TestMoveStringParseMoveRoundTrip(t *testing.T) {
	cases := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		// White pawns on the seventh rank, free to promote to any piece.
		"4k3/PPPPPPPP/8/8/8/8/8/4K3 w - - 0 1",
		// Black pawns on the second rank, free to promote to any piece.
		"4k3/8/8/8/8/8/pppppppp/4K3 b - - 0 1",
	}
	for _, fen := range cases {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		roundTripLegalMoves(t, pos)
	}
}

// TestMoveStringQueenPromotion pins down the exact UCI string for each
// promotion piece, since a prior off-by-one indexed the wrong table
// entries (Knight rendered as 'b', Bishop as 'r', Rook as 'q', and Queen
// panicked with an index-out-of-range).
func TestMoveStringQueenPromotion(t *testing.T) {
	cases := []struct {
		promoted Piece
		want     string
	}{
		{WhiteKnight, "a7a8n"},
		{WhiteBishop, "a7a8b"},
		{WhiteRook, "a7a8r"},
		{WhiteQueen, "a7a8q"},
	}
	for _, tc := range cases {
		m := NewPromotion(A7, A8, WhitePawn, tc.promoted, Empty)
		if got := m.String(); got != tc.want {
			t.Errorf("String() for promotion to %v = %q, want %q", tc.promoted, got, tc.want)
		}
	}
}
