package board

// Color represents the color of a piece, a player, or an occupancy set.
// Both is a pseudo-color used to index the combined occupancy bitboard.
type Color uint8

const (
	White Color = iota
	Black
	Both
	NoColor Color = Both
)

// Other returns the opposite color. Only meaningful for White/Black.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "Both"
	}
}

// PieceType represents the type of a chess piece, independent of color.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := [7]byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}
	if pt > King {
		return ' '
	}
	return chars[pt]
}

// Piece is a tagged 13-variant value: Empty plus six white and six black
// piece types. Two parallel lookup tables give O(1) type/color extraction
// without dynamic dispatch, matching Dragonrose's piece_type[13]/piece_col[13].
type Piece uint8

const (
	Empty Piece = iota
	WhitePawn
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece = Empty
)

// pieceTypeOf maps a Piece to its PieceType in O(1).
var pieceTypeOf = [13]PieceType{
	NoPieceType,
	Pawn, Knight, Bishop, Rook, Queen, King,
	Pawn, Knight, Bishop, Rook, Queen, King,
}

// pieceColorOf maps a Piece to its Color in O(1); Empty maps to Both.
var pieceColorOf = [13]Color{
	Both,
	White, White, White, White, White, White,
	Black, Black, Black, Black, Black, Black,
}

// pieceValueOf gives the material value of each Piece in centipawns.
var pieceValueOf = [13]int{
	0,
	100, 320, 330, 500, 900, 20000,
	100, 320, 330, 500, 900, 20000,
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	return pieceTypeOf[p]
}

// Color returns the Color of the piece (Both for Empty).
func (p Piece) Color() Color {
	return pieceColorOf[p]
}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int {
	return pieceValueOf[p]
}

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt == NoPieceType || c == Both {
		return Empty
	}
	if c == White {
		return Piece(pt)
	}
	return Piece(pt) + 6
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black, space for Empty.
func (p Piece) String() string {
	chars := " PNBRQKpnbrqk"
	return string(chars[p])
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return Empty
	}
}
