package board

// Ordering scores assigned at generation time (§4.4). Search layers a
// second pass on top (hash move, killers, history) in the engine package.
const (
	ScorePromoQueen     int32 = 5_000_000
	ScoreCaptureBase    int32 = 2_000_000
	ScoreCastling       int32 = 750_000
	ScorePromoKnight    int32 = 300_000
	ScorePromoRook      int32 = 200_000
	ScorePromoBishop    int32 = 100_000
	ScoreQuietPawnPush  int32 = 50_000
	ScoreQuiet          int32 = 0
)

// mvvLvaValue ranks piece types for MVV-LVA: victim dominates (multiplied
// up), attacker breaks ties by being cheaper.
var mvvLvaValue = [7]int32{0, 1, 2, 3, 4, 5, 6} // indexed by PieceType

func mvvLvaScore(victim, attacker PieceType) int32 {
	return ScoreCaptureBase + mvvLvaValue[victim]*10 - mvvLvaValue[attacker]
}

func promotionScore(promoted PieceType) int32 {
	switch promoted {
	case Queen:
		return ScorePromoQueen
	case Knight:
		return ScorePromoKnight
	case Rook:
		return ScorePromoRook
	case Bishop:
		return ScorePromoBishop
	default:
		return 0
	}
}

// GeneratePseudoLegalMoves fills ml with every pseudo-legal move, scored
// per §4.4. When noisyOnly is set, quiets and castling are omitted —
// quiescence search's "noisy-only" mode — leaving captures (including en
// passant) and promotions.
func (p *Position) GeneratePseudoLegalMoves(ml *MoveList, noisyOnly bool) {
	us := p.Side
	them := us.Other()
	occupied := p.Occupied[Both]
	enemies := p.Occupied[them]

	p.generatePawnMoves(ml, us, enemies, occupied, noisyOnly)

	p.generatePieceMoves(ml, Knight, us, occupied, noisyOnly)
	p.generatePieceMoves(ml, Bishop, us, occupied, noisyOnly)
	p.generatePieceMoves(ml, Rook, us, occupied, noisyOnly)
	p.generatePieceMoves(ml, Queen, us, occupied, noisyOnly)
	p.generatePieceMoves(ml, King, us, occupied, noisyOnly)

	if !noisyOnly {
		p.generateCastlingMoves(ml, us)
	}
}

func (p *Position) generatePieceMoves(ml *MoveList, pt PieceType, us Color, occupied Bitboard, noisyOnly bool) {
	them := us.Other()
	piece := NewPiece(pt, us)
	pieces := p.Bitboards[piece]

	for pieces != 0 {
		from := pieces.PopLSB()
		attacks := GetPieceAttacks(pt, from, us, occupied) &^ p.Occupied[us]

		captures := attacks & p.Occupied[them]
		for captures != 0 {
			to := captures.PopLSB()
			victim := p.PieceAt[to]
			ml.Add(NewCapture(from, to, piece, victim), mvvLvaScore(victim.Type(), pt))
		}

		if noisyOnly {
			continue
		}

		quiets := attacks &^ p.Occupied[them]
		for quiets != 0 {
			to := quiets.PopLSB()
			ml.Add(NewMove(from, to, piece), ScoreQuiet)
		}
	}
}

func (p *Position) generatePawnMoves(ml *MoveList, us Color, enemies, occupied Bitboard, noisyOnly bool) {
	pawns := p.Bitboards[NewPiece(Pawn, us)]
	piece := NewPiece(Pawn, us)
	empty := ^occupied

	var push1, push2, attackL, attackR Bitboard
	var promotionRank Bitboard
	var pushDir int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promotionRank = Rank8
		pushDir = -8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promotionRank = Rank1
		pushDir = 8
	}

	if !noisyOnly {
		nonPromo := push1 &^ promotionRank
		for nonPromo != 0 {
			to := nonPromo.PopLSB()
			from := Square(int(to) - pushDir)
			ml.Add(NewMove(from, to, piece), ScoreQuietPawnPush)
		}

		for push2 != 0 {
			to := push2.PopLSB()
			from := Square(int(to) - 2*pushDir)
			ml.Add(NewDoublePush(from, to, piece), ScoreQuietPawnPush)
		}
	}

	nonPromoL := attackL &^ promotionRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		from := to.fromDiag(pushDir, +1)
		victim := p.PieceAt[to]
		ml.Add(NewCapture(from, to, piece, victim), mvvLvaScore(victim.Type(), Pawn))
	}

	nonPromoR := attackR &^ promotionRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		from := to.fromDiag(pushDir, -1)
		victim := p.PieceAt[to]
		ml.Add(NewCapture(from, to, piece, victim), mvvLvaScore(victim.Type(), Pawn))
	}

	promoPush := push1 & promotionRank
	for promoPush != 0 {
		to := promoPush.PopLSB()
		from := Square(int(to) - pushDir)
		addPromotions(ml, from, to, us, Empty)
	}

	promoL := attackL & promotionRank
	for promoL != 0 {
		to := promoL.PopLSB()
		from := to.fromDiag(pushDir, +1)
		addPromotions(ml, from, to, us, p.PieceAt[to])
	}

	promoR := attackR & promotionRank
	for promoR != 0 {
		to := promoR.PopLSB()
		from := to.fromDiag(pushDir, -1)
		addPromotions(ml, from, to, us, p.PieceAt[to])
	}

	if p.Enpas != NoSquare {
		epBB := SquareBB(p.Enpas)
		var epAttackers Bitboard
		if us == White {
			epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for epAttackers != 0 {
			from := epAttackers.PopLSB()
			capturedPawn := NewPiece(Pawn, us.Other())
			ml.Add(NewEnPassant(from, p.Enpas, piece, capturedPawn), mvvLvaScore(Pawn, Pawn))
		}
	}
}

// fromDiag recovers a pawn's source square from a diagonal-capture target,
// given the push direction (target - source for a straight push) and the
// file offset of the capture (+1 = captured toward file a side given the
// direction's sign, -1 the other way). Both directions are expressed as
// square-index deltas, so file-wrap is impossible: attackL/attackR were
// already masked against NotFileA/NotFileH when the attack bitboards were
// built.
func (sq Square) fromDiag(pushDir, fileOffset int) Square {
	return Square(int(sq) - pushDir + fileOffset)
}

func addPromotions(ml *MoveList, from, to Square, us Color, captured Piece) {
	for _, pt := range [4]PieceType{Queen, Rook, Bishop, Knight} {
		promoted := NewPiece(pt, us)
		piece := NewPiece(Pawn, us)
		ml.Add(NewPromotion(from, to, piece, promoted, captured), promotionScore(pt))
	}
}

func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()
	occ := p.Occupied[Both]

	if us == White {
		if p.CastlePerms&WhiteKingSideCastle != 0 &&
			occ&(SquareBB(F1)|SquareBB(G1)) == 0 &&
			!p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(F1, them) && !p.IsSquareAttacked(G1, them) {
			ml.Add(NewCastling(E1, G1, WhiteKing), ScoreCastling)
		}
		if p.CastlePerms&WhiteQueenSideCastle != 0 &&
			occ&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 &&
			!p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(D1, them) && !p.IsSquareAttacked(C1, them) {
			ml.Add(NewCastling(E1, C1, WhiteKing), ScoreCastling)
		}
	} else {
		if p.CastlePerms&BlackKingSideCastle != 0 &&
			occ&(SquareBB(F8)|SquareBB(G8)) == 0 &&
			!p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(F8, them) && !p.IsSquareAttacked(G8, them) {
			ml.Add(NewCastling(E8, G8, BlackKing), ScoreCastling)
		}
		if p.CastlePerms&BlackQueenSideCastle != 0 &&
			occ&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 &&
			!p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(D8, them) && !p.IsSquareAttacked(C8, them) {
			ml.Add(NewCastling(E8, C8, BlackKing), ScoreCastling)
		}
	}
}

// MoveExists generates pseudo-legal moves, then attempts make_move on
// each, returning true iff m appears in the list and is legal.
func (p *Position) MoveExists(m Move) bool {
	var ml MoveList
	p.GeneratePseudoLegalMoves(&ml, false)
	for i := 0; i < ml.Len(); i++ {
		if ml.Get(i) != m {
			continue
		}
		if p.MakeMove(m) {
			p.TakeMove()
			return true
		}
		return false
	}
	return false
}

// MakeMove applies m to the position following the fourteen-step
// algorithm in §4.5. Returns false (and restores the position bit for
// bit) if the move leaves the mover's own king in check.
func (p *Position) MakeMove(m Move) bool {
	us := p.Side
	them := us.Other()
	from := m.Source()
	to := m.Target()
	piece := m.Piece()

	// 1. Record pre-move state.
	p.History[p.HisPly] = UndoBox{
		Move:        m,
		CastlePerms: p.CastlePerms,
		Enpas:       p.Enpas,
		FiftyMove:   p.FiftyMove,
		HashKey:     p.HashKey,
	}

	// 2. En passant: remove the captured pawn from target +/- 8.
	if m.IsEnPassant() {
		var capSq Square
		if us == White {
			capSq = to + 8
		} else {
			capSq = to - 8
		}
		captured := p.removePiece(capSq)
		p.HashKey ^= ZobristPiece(captured, capSq)
	}

	// 3. Castling: move the corresponding rook.
	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(to)
		rook := p.PieceAt[rookFrom]
		p.movePiece(rookFrom, rookTo)
		p.HashKey ^= ZobristPiece(rook, rookFrom)
		p.HashKey ^= ZobristPiece(rook, rookTo)
	}

	// 4. XOR out the current enpas (if any) and castling keys.
	if p.Enpas != NoSquare {
		p.HashKey ^= ZobristEnPassant(p.Enpas)
	}
	p.HashKey ^= ZobristCastling(p.CastlePerms)

	// 5. Update castle_perms from the precomputed strip-mask table.
	p.CastlePerms &= castlePermMask[from] & castlePermMask[to]

	// 6. Clear en passant; re-hash castling.
	p.Enpas = NoSquare
	p.HashKey ^= ZobristCastling(p.CastlePerms)

	// 7. Fifty-move bookkeeping and ordinary captures.
	p.FiftyMove++
	if !m.IsEnPassant() {
		if captured := m.Captured(); captured != Empty {
			p.FiftyMove = 0
			removed := p.removePiece(to)
			p.HashKey ^= ZobristPiece(removed, to)
		}
	}

	// 8. Advance ply counters.
	p.Ply++
	p.HisPly++

	// 9. Pawn moves reset the clock; double pushes set a fresh enpas.
	if piece.Type() == Pawn {
		p.FiftyMove = 0
		if m.IsDoublePush() {
			var epSq Square
			if us == White {
				epSq = to + 8
			} else {
				epSq = to - 8
			}
			p.Enpas = epSq
			p.HashKey ^= ZobristEnPassant(epSq)
		}
	}

	// 10. Move the piece itself.
	p.movePiece(from, to)
	p.HashKey ^= ZobristPiece(piece, from)
	p.HashKey ^= ZobristPiece(piece, to)

	// 11. Promotion: replace the pawn on target with the promoted piece.
	if promoted := m.Promoted(); promoted != Empty {
		p.removePiece(to)
		p.setPiece(promoted, to)
		p.HashKey ^= ZobristPiece(piece, to)
		p.HashKey ^= ZobristPiece(promoted, to)
	}

	// 12. King moves already updated KingSquare inside movePiece/setPiece.

	// 13. Flip side.
	p.Side = them
	p.HashKey ^= ZobristSideToMove()

	// 14. Legality check: is the mover's own king now attacked?
	if p.IsSquareAttacked(p.KingSquare[us], them) {
		p.TakeMove()
		return false
	}

	return true
}

// castlingRookSquares returns the rook's source/destination for a
// castling move whose king lands on kingTo.
func castlingRookSquares(kingTo Square) (from, to Square) {
	row := kingTo.Row()
	switch kingTo.File() {
	case 6: // g-file: king-side
		return NewSquare(7, row), NewSquare(5, row)
	default: // c-file: queen-side
		return NewSquare(0, row), NewSquare(3, row)
	}
}

// TakeMove reverses the most recent MakeMove (or MakeNullMove), restoring
// the position bit for bit from the UndoBox at his_ply-1.
func (p *Position) TakeMove() {
	p.HisPly--
	p.Ply--
	undo := p.History[p.HisPly]
	m := undo.Move

	them := p.Side
	us := them.Other()

	p.CastlePerms = undo.CastlePerms
	p.Enpas = undo.Enpas
	p.FiftyMove = undo.FiftyMove
	p.HashKey = undo.HashKey
	p.Side = us

	if m == NoMove {
		return // null move: nothing else moved
	}

	from := m.Source()
	to := m.Target()

	if promoted := m.Promoted(); promoted != Empty {
		p.removePiece(to)
		p.setPiece(m.Piece(), to)
	}

	p.movePiece(to, from)

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(to)
		p.movePiece(rookTo, rookFrom)
	}

	if m.IsEnPassant() {
		var capSq Square
		if us == White {
			capSq = to + 8
		} else {
			capSq = to - 8
		}
		p.setPiece(m.Captured(), capSq)
	} else if captured := m.Captured(); captured != Empty {
		p.setPiece(captured, to)
	}
}

// MakeNullMove passes the turn without moving, for null-move pruning.
// Recorded as an UndoBox with Move = NoMove so TakeMove can reverse it
// through the same history mechanism as an ordinary move.
func (p *Position) MakeNullMove() {
	p.History[p.HisPly] = UndoBox{
		Move:        NoMove,
		CastlePerms: p.CastlePerms,
		Enpas:       p.Enpas,
		FiftyMove:   p.FiftyMove,
		HashKey:     p.HashKey,
	}

	if p.Enpas != NoSquare {
		p.HashKey ^= ZobristEnPassant(p.Enpas)
		p.Enpas = NoSquare
	}

	p.Ply++
	p.HisPly++
	p.Side = p.Side.Other()
	p.HashKey ^= ZobristSideToMove()
}

// TakeNullMove reverses MakeNullMove.
func (p *Position) TakeNullMove() {
	p.TakeMove()
}

// GenerateLegalMoves returns only the moves from pseudo-legal generation
// that survive make/unmake legality filtering.
func (p *Position) GenerateLegalMoves() *MoveList {
	var pseudo MoveList
	p.GeneratePseudoLegalMoves(&pseudo, false)

	result := NewMoveList()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if p.MakeMove(m) {
			p.TakeMove()
			result.Add(m, pseudo.Score(i))
		}
	}
	return result
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	var ml MoveList
	p.GeneratePseudoLegalMoves(&ml, false)
	for i := 0; i < ml.Len(); i++ {
		if p.MakeMove(ml.Get(i)) {
			p.TakeMove()
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}
