package board

import "fmt"

// CastlingRights is a 4-bit mask over {WKCA, WQCA, BKCA, BQCA}.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// castlePermMask[sq] is ANDed into castle_perms whenever a piece moves
// from or to sq, stripping the rights that square's occupant affects.
// Every other square leaves all rights untouched (mask of all 1 bits).
var castlePermMask [64]CastlingRights

func init() {
	for sq := A8; sq <= H1; sq++ {
		castlePermMask[sq] = AllCastling
	}
	castlePermMask[A1] &^= WhiteQueenSideCastle
	castlePermMask[E1] &^= WhiteKingSideCastle | WhiteQueenSideCastle
	castlePermMask[H1] &^= WhiteKingSideCastle
	castlePermMask[A8] &^= BlackQueenSideCastle
	castlePermMask[E8] &^= BlackKingSideCastle | BlackQueenSideCastle
	castlePermMask[H8] &^= BlackKingSideCastle
}

// Position holds a complete chess position as one logical value: the
// per-square piece array and the per-piece bitboards are redundant
// representations that every mutator (setPiece/removePiece/movePiece and
// their callers) keeps synchronized; nothing outside make/unmake/parseFEN
// writes to them directly.
type Position struct {
	PieceAt    [64]Piece
	Bitboards  [13]Bitboard // indexed by Piece; the Empty slot is unused
	Occupied   [3]Bitboard  // [White], [Black], [Both]
	PieceCount [13]int
	KingSquare [2]Square // NoSquare if absent

	Side        Color
	Enpas       Square // NoSquare if none
	CastlePerms CastlingRights
	FiftyMove   int
	Ply         int // search depth from the root, 0 at root
	HisPly      int // half-move counter from game start
	HashKey     uint64

	History [MaxHistory]UndoBox

	Killers      [2][MaxDepth]Move
	HistoryMoves [13][64]int
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// Reset zeroes every field: enpas = NoSquare, side = White.
func (p *Position) Reset() {
	*p = Position{}
	p.Side = White
	p.Enpas = NoSquare
	p.KingSquare[White] = NoSquare
	p.KingSquare[Black] = NoSquare
	for sq := A8; sq <= H1; sq++ {
		p.PieceAt[sq] = Empty
	}
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.PieceAt[sq] == Empty
}

// setPiece places a piece on a square, updating every redundant field.
// Does not touch the hash; callers XOR the corresponding Zobrist key.
func (p *Position) setPiece(piece Piece, sq Square) {
	if piece == Empty {
		return
	}
	bb := SquareBB(sq)
	c := piece.Color()

	p.PieceAt[sq] = piece
	p.Bitboards[piece] |= bb
	p.Occupied[c] |= bb
	p.Occupied[Both] |= bb
	p.PieceCount[piece]++

	if piece.Type() == King {
		p.KingSquare[c] = sq
	}
}

// removePiece clears a square and returns what was there.
func (p *Position) removePiece(sq Square) Piece {
	piece := p.PieceAt[sq]
	if piece == Empty {
		return Empty
	}
	bb := SquareBB(sq)
	c := piece.Color()

	p.PieceAt[sq] = Empty
	p.Bitboards[piece] &^= bb
	p.Occupied[c] &^= bb
	p.Occupied[Both] &^= bb
	p.PieceCount[piece]--

	return piece
}

// movePiece relocates a piece from an (assumed empty) source to an
// (assumed empty) destination square without touching capture bookkeeping.
func (p *Position) movePiece(from, to Square) {
	piece := p.PieceAt[from]
	if piece == Empty {
		return
	}
	c := piece.Color()
	moveBB := SquareBB(from) | SquareBB(to)

	p.PieceAt[from] = Empty
	p.PieceAt[to] = piece
	p.Bitboards[piece] ^= moveBB
	p.Occupied[c] ^= moveBB
	p.Occupied[Both] ^= moveBB

	if piece.Type() == King {
		p.KingSquare[c] = to
	}
}

// String returns a human-readable board diagram plus state fields.
func (p *Position) String() string {
	s := "\n"
	for row := 0; row < 8; row++ {
		s += fmt.Sprintf("%d  ", 8-row)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt[NewSquare(file, row)]
			s += piece.String() + " "
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.Side)
	s += fmt.Sprintf("Castling: %s\n", p.CastlePerms)
	s += fmt.Sprintf("En passant: %s\n", p.Enpas)
	s += fmt.Sprintf("Fifty-move: %d\n", p.FiftyMove)
	s += fmt.Sprintf("His ply: %d\n", p.HisPly)
	s += fmt.Sprintf("Hash: %016x\n", p.HashKey)
	return s
}

// Validate checks a small set of structural invariants, primarily useful
// after hand-built positions or FEN parsing.
func (p *Position) Validate() error {
	if p.PieceCount[WhiteKing] != 1 {
		return fmt.Errorf("white must have exactly one king")
	}
	if p.PieceCount[BlackKing] != 1 {
		return fmt.Errorf("black must have exactly one king")
	}
	if (p.Bitboards[WhitePawn]|p.Bitboards[BlackPawn])&(Rank1|Rank8) != 0 {
		return fmt.Errorf("pawns cannot be on rank 1 or 8")
	}
	return nil
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	us := p.Side
	ksq := p.KingSquare[us]
	if ksq == NoSquare {
		return false
	}
	return p.IsSquareAttacked(ksq, us.Other())
}

// HasNonPawnMaterial returns true if the side to move has non-pawn,
// non-king material — used to guard null-move pruning against zugzwang.
func (p *Position) HasNonPawnMaterial() bool {
	us := p.Side
	return p.Bitboards[NewPiece(Knight, us)]|p.Bitboards[NewPiece(Bishop, us)]|
		p.Bitboards[NewPiece(Rook, us)]|p.Bitboards[NewPiece(Queen, us)] != 0
}

// IsRepetition reports whether the current position has occurred earlier
// in the portion of history since the last irreversible move (a capture
// or pawn move resets the fifty-move counter, which also bounds how far
// back a repetition can reach).
func (p *Position) IsRepetition() bool {
	start := p.HisPly - p.FiftyMove
	if start < 0 {
		start = 0
	}
	for i := start; i < p.HisPly-1; i++ {
		if p.History[i].HashKey == p.HashKey {
			return true
		}
	}
	return false
}

// IsInsufficientMaterial reports true if neither side has enough material
// to force checkmate, restricted to the small set of KN-vs-K-like endings
// the spec requires: bare kings, a single minor piece against a bare king,
// or a single minor piece against a single minor piece (including KN+KN).
func (p *Position) IsInsufficientMaterial() bool {
	if p.Bitboards[WhitePawn]|p.Bitboards[BlackPawn] != 0 ||
		p.Bitboards[WhiteRook]|p.Bitboards[BlackRook] != 0 ||
		p.Bitboards[WhiteQueen]|p.Bitboards[BlackQueen] != 0 {
		return false
	}

	wMinors := p.PieceCount[WhiteKnight] + p.PieceCount[WhiteBishop]
	bMinors := p.PieceCount[BlackKnight] + p.PieceCount[BlackBishop]

	return wMinors <= 1 && bMinors <= 1
}
