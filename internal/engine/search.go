package engine

import (
	"math"

	"github.com/dragonrose/dragonrose/internal/board"
)

// Search-wide constants. Infinity bounds the root alpha-beta window;
// MateScore is the absolute value returned for "mate in 0" at the
// mating ply, with ply subtracted/added as the mate recedes from the
// root; MaxPly bounds every ply-indexed array (PV, killers, LMR table).
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = board.MaxDepth
)

// PVLine is a principal variation: the first length entries of moves
// are the sequence of moves the search expects both sides to play.
type PVLine struct {
	Length int
	Score  int
	Moves  [MaxPly]board.Move
}

// lmrTable[depth][moveIndex][quiet] is the precomputed late-move
// reduction, in plies, per the spec's two closed-form curves. Noisy
// moves (captures, promotions) reduce less aggressively than quiets.
var lmrTable [MaxPly][64][2]int

func init() {
	for d := 3; d < MaxPly; d++ {
		for m := 4; m < 64; m++ {
			lmrTable[d][m][0] = int(0.25 + math.Log(float64(d))*math.Log(float64(m))/3.25) // noisy
			lmrTable[d][m][1] = int(0.50 + math.Log(float64(d))*math.Log(float64(m))/3.00) // quiet
		}
	}
}

// Searcher runs a single-threaded PVS alpha-beta search against one
// Position and one HashTable. It is re-used across iterative-deepening
// depths within a single search_position call; Reset clears per-search
// state (not the hash table, which persists across searches).
type Searcher struct {
	pos *board.Position
	tt  *HashTable
	info *SearchInfo

	nodes    uint64
	seldepth int

	pv [MaxPly]PVLine
}

// NewSearcher creates a searcher bound to a hash table. The position and
// SearchInfo are set by Engine.SearchPosition for each search.
func NewSearcher(tt *HashTable) *Searcher {
	return &Searcher{tt: tt}
}

// Reset clears killers, seeds history at a small positive baseline, and
// zeroes node/PV state, per §4.8.1 step 1. History is not zeroed to
// exactly zero: a small positive baseline keeps early quiet moves from
// scoring identically to moves that have already failed.
func (s *Searcher) Reset(pos *board.Position) {
	ClearKillers(pos)
	for pc := range pos.HistoryMoves {
		for sq := range pos.HistoryMoves[pc] {
			pos.HistoryMoves[pc][sq] = 1
		}
	}
	s.nodes = 0
	s.seldepth = 0
	for i := range s.pv {
		s.pv[i] = PVLine{}
	}
}

// negamax implements the PVS alpha-beta search described in §4.8.2.
func (s *Searcher) negamax(alpha, beta, depth, ply int, doNull, pvNode bool) int {
	s.pv[ply].Length = 0

	if s.nodes&2047 == 0 {
		s.info.checkUp()
	}
	if s.info.Stopped {
		return 0
	}

	if ply > s.seldepth {
		s.seldepth = ply
	}

	root := ply == 0

	if !root {
		if s.pos.IsRepetition() || s.pos.FiftyMove >= 100 {
			if s.pos.FiftyMove >= 100 && s.pos.InCheck() {
				legal := s.pos.GenerateLegalMoves()
				if legal.Len() == 0 {
					return -MateScore + ply
				}
			}
			return 0
		}
		if ply >= MaxPly {
			return Evaluate(s.pos)
		}
	}

	if depth <= 0 {
		return s.quiescence(alpha, beta, ply)
	}

	inCheck := s.pos.InCheck()
	if inCheck {
		depth++
	}

	var ttMove board.Move
	if found, move, score, usable := s.tt.Probe(s.pos.HashKey, depth, ply, alpha, beta); found {
		ttMove = move
		if usable && !root {
			return score
		}
	}

	if depth >= 8 && pvNode && !inCheck && !root && ttMove == board.NoMove {
		depth--
	}

	staticEval := Evaluate(s.pos)

	if !inCheck && !root && !pvNode {
		if depth <= 4 && staticEval >= beta+80*depth {
			return staticEval
		}

		if doNull && depth >= 3 && s.pos.HasNonPawnMaterial() {
			s.pos.MakeNullMove()
			r := 3 + depth/3
			score := -s.negamax(-beta, -beta+1, depth-1-r, ply+1, false, false)
			s.pos.TakeNullMove()
			if s.info.Stopped {
				return 0
			}
			if score >= beta && score < MateScore-MaxPly {
				return score
			}
		}
	}

	moves := s.pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		if inCheck {
			return -MateScore + ply
		}
		return 0
	}

	ScoreMoves(s.pos, moves, ply, ttMove)

	legal := 0
	bestScore := -Infinity
	bestMove := board.NoMove
	flag := FlagAlpha

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, i)
		move := moves.Get(i)

		isQuiet := move.IsQuiet()
		isKiller := move == s.pos.Killers[0][ply] || move == s.pos.Killers[1][ply]
		inMateRange := alpha > MateScore-MaxPly || alpha < -MateScore+MaxPly

		if !pvNode && !root && !inCheck && isQuiet && !isKiller && !inMateRange {
			if legal >= 4+3*depth*depth {
				continue
			}
		}
		if depth <= 3 && legal >= 4 && isQuiet && staticEval+300*depth <= alpha {
			continue
		}

		if !s.pos.MakeMove(move) {
			continue
		}
		legal++
		s.nodes++

		var score int
		if depth >= 3 && legal >= 4 && !inMateRange {
			r := lmrTable[min(depth, MaxPly-1)][min(legal, 63)][boolToInt(isQuiet)]
			if !pvNode {
				r++
			}
			reduced := depth - 1 - r
			if reduced < 1 {
				reduced = 1
			}
			score = -s.negamax(-alpha-1, -alpha, reduced, ply+1, true, false)
			if score > alpha {
				score = -s.negamax(-alpha-1, -alpha, depth-1, ply+1, true, false)
			}
		} else if !pvNode || legal > 1 {
			score = -s.negamax(-alpha-1, -alpha, depth-1, ply+1, true, false)
		}
		if pvNode && (legal == 1 || (score > alpha && score < beta)) {
			score = -s.negamax(-beta, -alpha, depth-1, ply+1, true, true)
		}

		s.pos.TakeMove()

		if s.info.Stopped {
			return 0
		}

		raisedAlpha := false
		if score > bestScore {
			bestScore = score
			bestMove = move

			if score > alpha {
				alpha = score
				flag = FlagExact
				raisedAlpha = true
				s.pv[ply].Moves[0] = move
				copy(s.pv[ply].Moves[1:], s.pv[ply+1].Moves[:s.pv[ply+1].Length])
				s.pv[ply].Length = s.pv[ply+1].Length + 1
			}
		}

		if score >= beta {
			if isQuiet {
				UpdateKillers(s.pos, move, ply)
				UpdateHistory(s.pos, move, depth)
			}
			s.tt.Store(s.pos.HashKey, bestMove, score, depth, ply, FlagBeta)
			return score
		}

		if isQuiet && !raisedAlpha {
			PenalizeHistory(s.pos, move, depth)
		}
	}

	if legal == 0 {
		if inCheck {
			return -MateScore + ply
		}
		return 0
	}

	s.tt.Store(s.pos.HashKey, bestMove, bestScore, depth, ply, flag)

	return bestScore
}

// quiescence implements §4.8.3: noisy-only search with a stand-pat
// bound and delta pruning, used once the main search reaches depth 0.
func (s *Searcher) quiescence(alpha, beta, ply int) int {
	if s.nodes&2047 == 0 {
		s.info.checkUp()
	}
	if s.info.Stopped {
		return 0
	}
	if ply > s.seldepth {
		s.seldepth = ply
	}

	s.pv[ply].Length = 0

	if ply >= MaxPly {
		return Evaluate(s.pos)
	}

	standPat := Evaluate(s.pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	const queenEgValue = 936
	if standPat+queenEgValue < alpha {
		return alpha
	}

	var ttMove board.Move
	if found, move, score, usable := s.tt.Probe(s.pos.HashKey, 0, ply, alpha, beta); found {
		ttMove = move
		if usable {
			return score
		}
	}

	var moves board.MoveList
	s.pos.GeneratePseudoLegalMoves(&moves, true)
	ScoreMoves(s.pos, &moves, ply, ttMove)

	bestScore := standPat
	bestMove := board.NoMove

	for i := 0; i < moves.Len(); i++ {
		PickMove(&moves, i)
		move := moves.Get(i)

		if !s.pos.MakeMove(move) {
			continue
		}
		s.nodes++

		score := -s.quiescence(-beta, -alpha, ply+1)

		s.pos.TakeMove()

		if s.info.Stopped {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
			if score > alpha {
				alpha = score
				s.pv[ply].Moves[0] = move
				copy(s.pv[ply].Moves[1:], s.pv[ply+1].Moves[:s.pv[ply+1].Length])
				s.pv[ply].Length = s.pv[ply+1].Length + 1
			}
		}

		if score >= beta {
			s.tt.Store(s.pos.HashKey, bestMove, score, 0, ply, FlagBeta)
			return score
		}
	}

	s.tt.Store(s.pos.HashKey, bestMove, bestScore, 0, ply, FlagExact)

	return alpha
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
