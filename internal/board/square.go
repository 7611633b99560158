// Package board implements chess position representation using bitboards:
// squares, pieces, moves, attack generation, make/unmake, and FEN parsing.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
//
// Unlike most bitboard engines, squares are numbered with rank 8 / file A
// at index 0 and rank 1 / file H at index 63: sq = (8-rank)*8 + file, where
// rank is the chess rank number (1-8) and file is 0-7 (a-h). PSQT mirroring,
// passed-pawn masks, and promotion-rank tests all depend on this layout.
type Square uint8

// Square constants for all 64 squares, rank 8 first.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	NoSquare Square = 64
)

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Row returns the board row (0-7, where 0 is rank 8 and 7 is rank 1).
// This is the index used by NewSquare and by all geometry tables.
func (sq Square) Row() int {
	return int(sq) >> 3
}

// Rank returns the chess rank number (1-8) of the square.
func (sq Square) Rank() int {
	return 8 - sq.Row()
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '0'+sq.Rank())
}

// NewSquare creates a square from file (0-7) and row (0-7, 0=rank8).
func NewSquare(file, row int) Square {
	return Square(row*8 + file)
}

// NewSquareRank creates a square from file (0-7) and chess rank number (1-8).
func NewSquareRank(file, rank int) Square {
	return NewSquare(file, 8-rank)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0] - 'a')
	rank := int(s[1] - '0')

	if file < 0 || file > 7 || rank < 1 || rank > 8 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquareRank(file, rank), nil
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Mirror returns the square mirrored vertically (rank 8 <-> rank 1).
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// RelativeRow returns the row from a given color's perspective: 0 is the
// color's own back rank, 7 is the farthest rank (the promotion rank).
func (sq Square) RelativeRow(c Color) int {
	if c == White {
		return 7 - sq.Row()
	}
	return sq.Row()
}
