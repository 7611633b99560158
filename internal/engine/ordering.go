package engine

import (
	"github.com/dragonrose/dragonrose/internal/board"
)

// Move ordering bonuses for the search's second ordering pass. The first
// pass (MVV-LVA, promotion, castling, quiet-pawn-push scores) is already
// stored as each move's score in the board.MoveList by move generation.
// The hash-move bonus is added on top of that score, so the hash move
// sorts ahead of everything else; a killer's score replaces a quiet
// move's own, which puts killers ahead of the other quiet moves but
// behind captures and queen promotions.
const (
	HashMoveBonus = 10_000_000
	Killer1Bonus  = 950_000
	Killer2Bonus  = 900_000
)

// ScoreMoves applies the second ordering pass to every move in ml: the
// hash move (if present in the list) is boosted above everything else,
// each of the two killer slots at ply overrides a matching quiet move's
// score, and every other quiet move is nudged by its history score.
// Captures and promotions keep the MVV-LVA/promotion score movegen gave
// them, since history is only meaningful for quiet moves.
func ScoreMoves(pos *board.Position, ml *board.MoveList, ply int, ttMove board.Move) {
	killer1 := pos.Killers[0][ply]
	killer2 := pos.Killers[1][ply]

	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)

		if ttMove != board.NoMove && m == ttMove {
			ml.SetScore(i, ml.Score(i)+HashMoveBonus)
			continue
		}

		if !m.IsQuiet() {
			continue
		}

		switch m {
		case killer1:
			ml.SetScore(i, Killer1Bonus)
		case killer2:
			ml.SetScore(i, Killer2Bonus)
		default:
			ml.SetScore(i, ml.Score(i)+int32(pos.HistoryMoves[m.Piece()][m.Target()]))
		}
	}
}

// UpdateKillers records m as the most recent killer at ply, shifting the
// previous first killer down to the second slot. Captures are never
// stored: MVV-LVA already orders them, and a killer slot is only useful
// for quiet moves that have no intrinsic ordering score of their own.
func UpdateKillers(pos *board.Position, m board.Move, ply int) {
	if !m.IsQuiet() || ply >= board.MaxDepth {
		return
	}
	if pos.Killers[0][ply] == m {
		return
	}
	pos.Killers[1][ply] = pos.Killers[0][ply]
	pos.Killers[0][ply] = m
}

// UpdateHistory applies a depth-squared bonus to the quiet move that
// caused a beta cutoff, then halves every history score once any entry
// would overflow a safe working range.
func UpdateHistory(pos *board.Position, m board.Move, depth int) {
	if !m.IsQuiet() {
		return
	}

	bonus := depth * depth
	pos.HistoryMoves[m.Piece()][m.Target()] += bonus

	if pos.HistoryMoves[m.Piece()][m.Target()] > 400_000 {
		for pc := range pos.HistoryMoves {
			for sq := range pos.HistoryMoves[pc] {
				pos.HistoryMoves[pc][sq] /= 2
			}
		}
	}
}

// PenalizeHistory applies a negative bonus to a quiet move that was
// tried and failed to cause a cutoff, so that moves which repeatedly
// fail low sink below ones that have never been tried.
func PenalizeHistory(pos *board.Position, m board.Move, depth int) {
	if !m.IsQuiet() {
		return
	}

	bonus := depth * depth
	pos.HistoryMoves[m.Piece()][m.Target()] -= bonus

	if pos.HistoryMoves[m.Piece()][m.Target()] < -400_000 {
		pos.HistoryMoves[m.Piece()][m.Target()] = -400_000
	}
}

// PickMove finds the highest-scoring move at or after index and swaps it
// into index, so callers can pull moves out one at a time without
// sorting the whole list up front.
func PickMove(ml *board.MoveList, index int) {
	best := index
	for j := index + 1; j < ml.Len(); j++ {
		if ml.Score(j) > ml.Score(best) {
			best = j
		}
	}
	if best != index {
		ml.Swap(index, best)
	}
}

// ClearKillers resets the killer table for a fresh search. It leaves
// history scores alone; Searcher.Reset reseeds them separately.
func ClearKillers(pos *board.Position) {
	for ply := range pos.Killers[0] {
		pos.Killers[0][ply] = board.NoMove
		pos.Killers[1][ply] = board.NoMove
	}
}
