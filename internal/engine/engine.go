package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/dragonrose/dragonrose/internal/board"
)

// UciOptions is the configuration surface the core recognizes, per §6.
type UciOptions struct {
	HashSizeMB int // [4, MaxHashMB]
	Threads    int // only 1 is supported; other values are a no-op
}

const MaxHashMB = 262144

// SearchInfo carries one search's time/node budget and the single
// cooperative interruption point the search observes: Stopped. The
// caller may run search_position on its own goroutine and set Stopped
// from another goroutine; no other field is safe to mutate concurrently.
type SearchInfo struct {
	Depth      int // 0 means MaxPly
	NodesLimit uint64

	StartTime    time.Time
	HardStopTime time.Time // zero means no hard deadline
	SoftStopTime time.Time // zero means no soft deadline; iterative deepening stops starting a new depth past this

	Infinite bool
	Stopped  bool

	Out io.Writer // info/bestmove lines are written here; nil discards them

	nodesAtCheck uint64
	searcher     *Searcher
}

// NewSearchInfo returns a SearchInfo ready for a search starting now.
func NewSearchInfo(out io.Writer) *SearchInfo {
	return &SearchInfo{StartTime: time.Now(), Out: out}
}

// checkUp is the cooperative cancellation point. The recursive search
// functions call it at their top once every 2048 nodes, not on every
// call, since wall-clock reads are not free. It sets Stopped once the
// hard deadline or node budget is exceeded.
func (info *SearchInfo) checkUp() {
	if info.Stopped {
		return
	}
	if info.NodesLimit != 0 && info.searcher != nil && info.searcher.nodes >= info.NodesLimit {
		info.Stopped = true
		return
	}
	if !info.Infinite && !info.HardStopTime.IsZero() && time.Now().After(info.HardStopTime) {
		info.Stopped = true
	}
}

// Engine owns one HashTable and runs searches against caller-supplied
// positions. It is single-threaded throughout, per §5: the search
// function neither yields nor spawns.
type Engine struct {
	tt *HashTable
}

// NewEngine allocates an Engine with a hash table sized at ttSizeMB.
func NewEngine(ttSizeMB int) *Engine {
	return &Engine{tt: NewHashTable(ttSizeMB)}
}

// SetHashSize reallocates the hash table, clearing all entries. If
// allocation at mb fails the caller should retry at half the size (the
// OS-allocation-failure policy from §7); this Engine's HashTable is a
// Go slice, so the failure mode is an out-of-memory panic rather than a
// nil return — callers targeting constrained environments should choose
// a conservative hash_size up front.
func (e *Engine) SetHashSize(mb int) {
	if mb < 4 {
		mb = 4
	}
	if mb > MaxHashMB {
		mb = MaxHashMB
	}
	e.tt.Resize(mb)
}

// ClearHashTable zeroes all entries, counters, and age.
func (e *Engine) ClearHashTable() {
	e.tt.Clear()
}

// SearchPosition runs iterative deepening per §4.8.1, writing one info
// line per completed depth and a final bestmove line to info.Out.
func (e *Engine) SearchPosition(pos *board.Position, info *SearchInfo) board.Move {
	out := info.Out
	if out == nil {
		out = io.Discard
	}

	searcher := NewSearcher(e.tt)
	searcher.info = info
	info.searcher = searcher
	info.Stopped = false

	searcher.Reset(pos)
	e.tt.NewSearch()

	maxDepth := info.Depth
	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}

	var bestMove board.Move
	var bestScore int
	completedDepth := 0

	for depth := 1; depth <= maxDepth; depth++ {
		if !info.SoftStopTime.IsZero() && time.Now().After(info.SoftStopTime) && completedDepth > 0 {
			break
		}

		searcher.pos = pos
		searcher.seldepth = 0

		var score int
		if depth <= 3 {
			score = searcher.negamax(-Infinity, Infinity, depth, 0, true, true)
		} else {
			score = aspirationSearch(searcher, bestScore, depth)
		}

		if info.Stopped && depth > 1 {
			break
		}

		completedDepth = depth
		bestScore = score
		if searcher.pv[0].Length > 0 {
			bestMove = searcher.pv[0].Moves[0]
		}

		pv := searcher.pv[0]
		if pv.Length == 0 {
			pv.Moves = [MaxPly]board.Move{}
			extracted := e.tt.ExtractPV(pos, depth)
			pv.Length = len(extracted)
			copy(pv.Moves[:], extracted)
			if pv.Length > 0 {
				bestMove = pv.Moves[0]
			}
		}

		emitInfo(out, depth, searcher.seldepth, score, searcher.nodes, info.StartTime, e.tt.HashFull(), pv)

		if info.Stopped {
			break
		}

		if abs(score) > MateScore-MaxPly {
			mateIn := mateDistance(score)
			if depth > abs(mateIn)+1 {
				break
			}
		}
	}

	fmt.Fprintf(out, "bestmove %s\n", moveString(bestMove))

	return bestMove
}

// aspirationSearch implements the narrowing/widening window search of
// §4.8.1.c, centered on guess (the previous depth's score).
func aspirationSearch(s *Searcher, guess, depth int) int {
	delta := 33
	alpha := guess - delta
	beta := guess + delta
	if depth <= 3 {
		alpha, beta = -Infinity, Infinity
	}

	for {
		score := s.negamax(alpha, beta, depth, 0, true, true)
		if s.info.Stopped {
			return score
		}

		if score <= alpha {
			beta = (alpha + beta) / 2
			alpha -= delta
			if alpha < -Infinity {
				alpha = -Infinity
			}
		} else if score >= beta {
			beta += delta
			if beta > Infinity {
				beta = Infinity
			}
		} else {
			return score
		}

		delta += delta / 2
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// mateDistance returns the number of full moves to mate implied by a
// mate-range score (positive: this side mates; negative: gets mated).
func mateDistance(score int) int {
	if score > 0 {
		return (MateScore - score + 1) / 2
	}
	return -(MateScore + score + 1) / 2
}

// emitInfo writes one "info depth ..." line per §6's output contract.
func emitInfo(out io.Writer, depth, seldepth int, score int, nodes uint64, start time.Time, hashfull int, pv PVLine) {
	elapsed := time.Since(start)
	ms := elapsed.Milliseconds()
	if ms <= 0 {
		ms = 1
	}
	nps := nodes * 1000 / uint64(ms)

	scoreStr := fmt.Sprintf("cp %d", score)
	if abs(score) > MateScore-MaxPly {
		scoreStr = fmt.Sprintf("mate %d", mateDistance(score))
	}

	pvStr := ""
	for i := 0; i < pv.Length; i++ {
		if i > 0 {
			pvStr += " "
		}
		pvStr += moveString(pv.Moves[i])
	}

	fmt.Fprintf(out, "info depth %d seldepth %d score %s nodes %d nps %d hashfull %d time %d pv %s\n",
		depth, seldepth, scoreStr, nodes, nps, hashfull, elapsed.Milliseconds(), pvStr)
}

// moveString renders a move in UCI long algebraic notation. NoMove is
// rendered as "(none)" rather than board.Move's own "0000".
func moveString(m board.Move) string {
	if m == board.NoMove {
		return "(none)"
	}
	return m.String()
}
