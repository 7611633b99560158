package engine

import (
	"unsafe"

	"github.com/dragonrose/dragonrose/internal/board"
)

// HashFlag indicates what kind of bound a HashEntry's score represents.
type HashFlag uint8

const (
	FlagNone HashFlag = iota
	FlagAlpha
	FlagBeta
	FlagExact
)

// HashEntry is a single transposition table slot. The table is a flat,
// single-entry open-address array (not a bucketed/4-way table): the
// canonical replacement policy is "age or depth", which a single slot per
// index implements directly.
type HashEntry struct {
	Key   uint64
	Move  board.Move
	Score int
	Depth int
	Flag  HashFlag
	Age   uint32
}

const hashEntrySize = uint64(unsafe.Sizeof(HashEntry{})) // in-memory size of HashEntry, bytes

// HashTable is the engine's transposition table: a fixed-size entry
// array, a capacity derived from the requested megabyte budget, and a
// monotonic age bumped once per root search to bias replacement toward
// recent work.
type HashTable struct {
	entries  []HashEntry
	capacity uint64
	age      uint32

	hits   uint64
	probes uint64
}

// NewHashTable allocates a table sized from mb megabytes, per §4.7:
// capacity = floor(MB*2^20 / sizeof(HashEntry)) - 2.
func NewHashTable(mb int) *HashTable {
	tt := &HashTable{}
	tt.Resize(mb)
	return tt
}

// Resize reallocates the table for a new megabyte budget, clearing all
// entries. If the OS refuses the allocation, the caller should retry at
// half size down to a 4 MB floor (the UciOptions hash_size minimum).
func (tt *HashTable) Resize(mb int) {
	capacity := uint64(mb)*1024*1024/hashEntrySize - 2
	if capacity < 1 {
		capacity = 1
	}
	tt.entries = make([]HashEntry, capacity)
	tt.capacity = capacity
	tt.age = 0
	tt.hits = 0
	tt.probes = 0
}

func (tt *HashTable) index(key uint64) uint64 {
	return key % tt.capacity
}

// Probe looks up (pos, depth, alpha, beta). It always returns the stored
// move when the key matches, even on a depth miss, so callers can use it
// for move ordering regardless of whether a cutoff was usable. usable is
// true only when depth is sufficient and the bound licenses an immediate
// return of score.
func (tt *HashTable) Probe(key uint64, depth, ply, alpha, beta int) (found bool, move board.Move, score int, usable bool) {
	tt.probes++
	entry := &tt.entries[tt.index(key)]

	if entry.Key != key {
		return false, board.NoMove, 0, false
	}

	tt.hits++
	move = entry.Move

	if entry.Depth < depth {
		return true, move, 0, false
	}

	adjusted := adjustScoreFromTT(entry.Score, ply)

	switch entry.Flag {
	case FlagAlpha:
		if adjusted <= alpha {
			return true, move, alpha, true
		}
	case FlagBeta:
		if adjusted >= beta {
			return true, move, beta, true
		}
	case FlagExact:
		return true, move, adjusted, true
	}

	return true, move, 0, false
}

// Store records a search result at (pos, move, score, flag, depth),
// replacing the existing slot only if it is empty, stale relative to the
// table's age, or no deeper than the incoming entry.
func (tt *HashTable) Store(key uint64, move board.Move, score, depth, ply int, flag HashFlag) {
	entry := &tt.entries[tt.index(key)]

	if entry.Key != 0 && entry.Age == tt.age && entry.Depth > depth {
		return
	}

	entry.Key = key
	entry.Move = move
	entry.Score = adjustScoreToTT(score, ply)
	entry.Depth = depth
	entry.Flag = flag
	entry.Age = tt.age
}

// NewSearch bumps the age counter, biasing replacement toward the
// upcoming root search's own entries.
func (tt *HashTable) NewSearch() {
	tt.age++
}

// Clear zeroes every entry, counter, and the age.
func (tt *HashTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = HashEntry{}
	}
	tt.age = 0
	tt.hits = 0
	tt.probes = 0
}

// HashFull returns the permille of the table used by the current search
// generation, sampled over the first 1000 slots (or fewer if the table
// is smaller).
func (tt *HashTable) HashFull() int {
	sampleSize := 1000
	if uint64(sampleSize) > tt.capacity {
		sampleSize = int(tt.capacity)
	}

	used := 0
	for i := 0; i < sampleSize; i++ {
		if tt.entries[i].Key != 0 && tt.entries[i].Age == tt.age {
			used++
		}
	}
	return (used * 1000) / sampleSize
}

// Capacity returns the number of entries in the table.
func (tt *HashTable) Capacity() uint64 {
	return tt.capacity
}

// adjustScoreFromTT re-adds ply-to-mate distance: mate scores stored in
// the table are absolute (ply-independent), but the search needs a score
// relative to the current node's distance from the root.
func adjustScoreFromTT(score, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// adjustScoreToTT strips ply-to-mate distance before storing, so the
// value survives being read back at a different ply.
func adjustScoreToTT(score, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}

// ExtractPV walks the table from pos by repeatedly probing the hash
// move, making it, and appending, up to maxDepth plies, then unwinds.
// This is a fallback used only when the search itself did not produce a
// PV (e.g. it exited via a root TT cutoff); the primary PV is carried
// inside the search via PVLine propagation.
func (tt *HashTable) ExtractPV(pos *board.Position, maxDepth int) []board.Move {
	var pv []board.Move
	made := 0

	for i := 0; i < maxDepth; i++ {
		_, move, _, _ := tt.Probe(pos.HashKey, 0, 0, 0, 0)
		if move == board.NoMove || !pos.MoveExists(move) {
			break
		}
		if !pos.MakeMove(move) {
			break
		}
		made++
		pv = append(pv, move)
	}

	for i := 0; i < made; i++ {
		pos.TakeMove()
	}

	return pv
}
