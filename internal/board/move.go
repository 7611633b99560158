package board

import "fmt"

// Move is a packed integer encoding a chess move:
//
//	bits 0-5:   source square   (0-63)
//	bits 6-11:  target square   (0-63)
//	bits 12-15: moving piece    (colored Piece, 0-12)
//	bits 16-19: promoted piece  (colored Piece, Empty if none)
//	bits 20-23: captured piece  (colored Piece, Empty if none)
//	bit  24:    double pawn push
//	bit  25:    en passant capture
//	bit  26:    castling
//
// The moving/promoted/captured pieces are stored as full colored Pieces
// (not bare PieceTypes) so make/unmake never needs a PieceAt lookup to
// reverse itself — everything required to undo the move travels with it.
type Move uint32

const (
	moveSourceShift   = 0
	moveTargetShift   = 6
	movePieceShift    = 12
	movePromotedShift = 16
	moveCapturedShift = 20
	moveDoubleBit     = 24
	moveEnPassantBit  = 25
	moveCastlingBit   = 26

	moveSquareMask = 0x3F
	movePieceMask  = 0xF
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

// EncodeMove packs a move from its constituent fields.
func EncodeMove(source, target Square, piece, promoted, captured Piece, doublePush, enPassant, castling bool) Move {
	m := Move(source)<<moveSourceShift |
		Move(target)<<moveTargetShift |
		Move(piece)<<movePieceShift |
		Move(promoted)<<movePromotedShift |
		Move(captured)<<moveCapturedShift
	if doublePush {
		m |= 1 << moveDoubleBit
	}
	if enPassant {
		m |= 1 << moveEnPassantBit
	}
	if castling {
		m |= 1 << moveCastlingBit
	}
	return m
}

// NewMove creates a quiet, non-special move.
func NewMove(source, target Square, piece Piece) Move {
	return EncodeMove(source, target, piece, Empty, Empty, false, false, false)
}

// NewCapture creates a capturing move.
func NewCapture(source, target Square, piece, captured Piece) Move {
	return EncodeMove(source, target, piece, Empty, captured, false, false, false)
}

// NewPromotion creates a (possibly capturing) promotion move.
func NewPromotion(source, target Square, piece, promoted, captured Piece) Move {
	return EncodeMove(source, target, piece, promoted, captured, false, false, false)
}

// NewDoublePush creates a two-square pawn push.
func NewDoublePush(source, target Square, piece Piece) Move {
	return EncodeMove(source, target, piece, Empty, Empty, true, false, false)
}

// NewEnPassant creates an en passant capture. captured is always the
// opposing pawn, encoded for symmetry with ordinary captures.
func NewEnPassant(source, target Square, piece, captured Piece) Move {
	return EncodeMove(source, target, piece, Empty, captured, false, true, false)
}

// NewCastling creates a castling move (king's own movement only; the
// rook's co-movement is derived from source/target at make time).
func NewCastling(source, target Square, piece Piece) Move {
	return EncodeMove(source, target, piece, Empty, Empty, false, false, true)
}

// Source returns the origin square.
func (m Move) Source() Square {
	return Square(m >> moveSourceShift & moveSquareMask)
}

// Target returns the destination square.
func (m Move) Target() Square {
	return Square(m >> moveTargetShift & moveSquareMask)
}

// Piece returns the moving piece.
func (m Move) Piece() Piece {
	return Piece(m >> movePieceShift & movePieceMask)
}

// Promoted returns the promoted-to piece, or Empty if this is not a promotion.
func (m Move) Promoted() Piece {
	return Piece(m >> movePromotedShift & movePieceMask)
}

// Captured returns the captured piece, or Empty if this move is not a capture.
func (m Move) Captured() Piece {
	return Piece(m >> moveCapturedShift & movePieceMask)
}

// IsDoublePush returns true for a two-square pawn push.
func (m Move) IsDoublePush() bool {
	return m&(1<<moveDoubleBit) != 0
}

// IsEnPassant returns true for an en passant capture.
func (m Move) IsEnPassant() bool {
	return m&(1<<moveEnPassantBit) != 0
}

// IsCastling returns true for a castling move.
func (m Move) IsCastling() bool {
	return m&(1<<moveCastlingBit) != 0
}

// IsPromotion returns true if this move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Promoted() != Empty
}

// IsCapture returns true if this move captures a piece, including en passant.
func (m Move) IsCapture() bool {
	return m.Captured() != Empty
}

// IsQuiet returns true if the move is neither a capture nor a promotion.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// IsTactical returns true for captures or promotions — the "noisy" subset
// generated for quiescence search.
func (m Move) IsTactical() bool {
	return m.IsCapture() || m.IsPromotion()
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.Source().String() + m.Target().String()
	if m.IsPromotion() {
		s += string("nbrq"[m.Promoted().Type()-Knight])
	}
	return s
}

// ParseMove parses a UCI move string against pos, filling in the piece,
// capture, and special-move flags by inspecting the current position.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	source, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	target, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	piece := pos.PieceAt[source]
	if piece == Empty {
		return NoMove, fmt.Errorf("no piece at %s", source)
	}
	pt := piece.Type()

	var promoted Piece
	if len(s) == 5 {
		var promoType PieceType
		switch s[4] {
		case 'n':
			promoType = Knight
		case 'b':
			promoType = Bishop
		case 'r':
			promoType = Rook
		case 'q':
			promoType = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		promoted = NewPiece(promoType, pos.Side)
	}

	if pt == Pawn && target == pos.Enpas {
		capturedPawn := NewPiece(Pawn, pos.Side.Other())
		return NewEnPassant(source, target, piece, capturedPawn), nil
	}

	if pt == King && abs(int(target)-int(source)) == 2 {
		return NewCastling(source, target, piece), nil
	}

	captured := pos.PieceAt[target]

	if pt == Pawn && abs(int(target)-int(source)) == 16 {
		return NewDoublePush(source, target, piece), nil
	}

	if promoted != Empty {
		return NewPromotion(source, target, piece, promoted, captured), nil
	}
	if captured != Empty {
		return NewCapture(source, target, piece, captured), nil
	}
	return NewMove(source, target, piece), nil
}

// MaxPseudoMoves bounds MoveList: the documented upper bound across custom
// positions is 265-271 legal moves; 280 leaves headroom.
const MaxPseudoMoves = 280

// scoredMove pairs a packed move with its ordering score.
type scoredMove struct {
	move  Move
	score int32
}

// MoveList is a bounded (Move, score) sequence with inline storage, so
// generation never allocates on the search hot path.
type MoveList struct {
	moves [MaxPseudoMoves]scoredMove
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add appends a move with its ordering score.
func (ml *MoveList) Add(m Move, score int32) {
	ml.moves[ml.count] = scoredMove{move: m, score: score}
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i].move
}

// Score returns the ordering score at index i.
func (ml *MoveList) Score(i int) int32 {
	return ml.moves[i].score
}

// SetScore overwrites the ordering score at index i.
func (ml *MoveList) SetScore(i int, score int32) {
	ml.moves[i].score = score
}

// Swap swaps two entries in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear empties the list without releasing its backing array.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i].move == m {
			return true
		}
	}
	return false
}

// SortMoves performs a stable descending sort by score. Search orders a
// few hundred moves per node at most, so a simple stable insertion sort
// (equal scores keep generation order) outperforms sort.Slice's overhead.
func (ml *MoveList) SortMoves() {
	for i := 1; i < ml.count; i++ {
		cur := ml.moves[i]
		j := i - 1
		for j >= 0 && ml.moves[j].score < cur.score {
			ml.moves[j+1] = ml.moves[j]
			j--
		}
		ml.moves[j+1] = cur
	}
}

// NextBest selects the highest-scoring move from index i onward and swaps
// it into position i, returning it. Used for incremental selection sort
// during the search move loop, where only the first few moves typically
// matter and a full upfront sort is wasted work.
func (ml *MoveList) NextBest(i int) Move {
	best := i
	for j := i + 1; j < ml.count; j++ {
		if ml.moves[j].score > ml.moves[best].score {
			best = j
		}
	}
	ml.Swap(i, best)
	return ml.moves[i].move
}

// UndoBox records everything needed to reverse one make_move or
// make_null_move call: the pre-move scalar state plus the move itself.
// The captured/promoted pieces needed to restore the board travel inside
// the packed Move, so UndoBox itself stays small.
type UndoBox struct {
	Move        Move
	CastlePerms CastlingRights
	Enpas       Square
	FiftyMove   int
	HashKey     uint64
}

// MaxHistory bounds the move_history array; a game plus search recursion
// never approaches this depth in practice.
const MaxHistory = 2048

// MaxDepth bounds killer/PV arrays and the iterative-deepening loop.
const MaxDepth = 128
