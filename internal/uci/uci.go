// Package uci implements a thin Universal Chess Interface adapter over
// the engine package. It owns stdin/stdout framing and time-control
// arithmetic only; every chess decision (search, evaluation, move
// legality) belongs to engine and board.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dragonrose/dragonrose/internal/board"
	"github.com/dragonrose/dragonrose/internal/engine"
)

const engineName = "Dragonrose"
const engineAuthor = "Dragonrose"

// UCI drives the protocol loop against one Engine and one live Position.
type UCI struct {
	engine   *engine.Engine
	position *board.Position

	in  *bufio.Scanner
	out io.Writer

	searching  bool
	searchInfo *engine.SearchInfo
	doneCh     chan struct{}
}

// New creates a UCI handler wired to eng, starting from the initial position.
func New(eng *engine.Engine) *UCI {
	return &UCI{
		engine:   eng,
		position: board.NewPosition(),
		in:       bufio.NewScanner(os.Stdin),
		out:      os.Stdout,
	}
}

// Run reads commands from stdin until "quit" or EOF.
func (u *UCI) Run() {
	u.in.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for u.in.Scan() {
		line := strings.TrimSpace(u.in.Text())
		if line == "" {
			continue
		}
		if u.dispatch(line) {
			return
		}
	}
}

// dispatch handles one line, returning true once the session should end.
func (u *UCI) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "uci":
		u.handleUCI()
	case "isready":
		fmt.Fprintln(u.out, "readyok")
	case "ucinewgame":
		u.handleNewGame()
	case "position":
		u.handlePosition(args)
	case "go":
		u.handleGo(args)
	case "stop":
		u.handleStop()
	case "quit":
		u.handleStop()
		return true
	case "setoption":
		u.handleSetOption(args)
	case "perft":
		u.handlePerft(args)
	case "d":
		fmt.Fprintln(u.out, u.position.String())
	}
	return false
}

// handleUCI responds to "uci" with id/option lines and a final uciok, per §6.
func (u *UCI) handleUCI() {
	fmt.Fprintf(u.out, "id name %s\n", engineName)
	fmt.Fprintf(u.out, "id author %s\n", engineAuthor)
	fmt.Fprintf(u.out, "option name Hash type spin default 64 min 4 max %d\n", engine.MaxHashMB)
	fmt.Fprintln(u.out, "option name Threads type spin default 1 min 1 max 1")
	fmt.Fprintln(u.out, "uciok")
}

func (u *UCI) handleNewGame() {
	u.handleStop()
	u.engine.ClearHashTable()
	u.position = board.NewPosition()
}

// handlePosition parses "position [startpos|fen <fen>] [moves ...]".
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var moveStart int
	switch args[0] {
	case "startpos":
		u.position = board.NewPosition()
		moveStart = 1
	case "fen":
		end := len(args)
		for i := 1; i < len(args); i++ {
			if args[i] == "moves" {
				end = i
				break
			}
		}
		pos, err := board.ParseFEN(strings.Join(args[1:end], " "))
		if err != nil {
			fmt.Fprintf(u.out, "info string invalid fen: %v\n", err)
			return
		}
		u.position = pos
		moveStart = end
	default:
		return
	}

	for i := moveStart; i < len(args); i++ {
		if args[i] == "moves" {
			continue
		}
		move, err := board.ParseMove(args[i], u.position)
		if err != nil {
			fmt.Fprintf(u.out, "info string invalid move %s: %v\n", args[i], err)
			return
		}
		if !u.position.MoveExists(move) || !u.position.MakeMove(move) {
			fmt.Fprintf(u.out, "info string illegal move %s\n", args[i])
			return
		}
	}
}

// goOptions holds the parsed arguments of a "go" command.
type goOptions struct {
	depth     int
	nodes     uint64
	moveTime  time.Duration
	infinite  bool
	wtime     time.Duration
	btime     time.Duration
	winc      time.Duration
	binc      time.Duration
	movesToGo int
}

func parseGoOptions(args []string) goOptions {
	var opts goOptions
	for i := 0; i < len(args); i++ {
		next := func() string {
			if i+1 < len(args) {
				i++
				return args[i]
			}
			return ""
		}
		switch args[i] {
		case "depth":
			opts.depth, _ = strconv.Atoi(next())
		case "nodes":
			n, _ := strconv.ParseUint(next(), 10, 64)
			opts.nodes = n
		case "movetime":
			ms, _ := strconv.Atoi(next())
			opts.moveTime = time.Duration(ms) * time.Millisecond
		case "infinite":
			opts.infinite = true
		case "wtime":
			ms, _ := strconv.Atoi(next())
			opts.wtime = time.Duration(ms) * time.Millisecond
		case "btime":
			ms, _ := strconv.Atoi(next())
			opts.btime = time.Duration(ms) * time.Millisecond
		case "winc":
			ms, _ := strconv.Atoi(next())
			opts.winc = time.Duration(ms) * time.Millisecond
		case "binc":
			ms, _ := strconv.Atoi(next())
			opts.binc = time.Duration(ms) * time.Millisecond
		case "movestogo":
			opts.movesToGo, _ = strconv.Atoi(next())
		}
	}
	return opts
}

// timeForMove allocates a slice of the remaining clock to this move,
// reserving a safety margin so the engine never flags on its own move.
func (u *UCI) timeForMove(opts goOptions) time.Duration {
	var ourTime, ourInc time.Duration
	if u.position.Side == board.White {
		ourTime, ourInc = opts.wtime, opts.winc
	} else {
		ourTime, ourInc = opts.btime, opts.binc
	}
	if ourTime == 0 {
		return 0
	}

	movesToGo := opts.movesToGo
	if movesToGo == 0 {
		nonPawns := u.position.Occupied[board.Both].PopCount()
		switch {
		case nonPawns > 24:
			movesToGo = 40
		case nonPawns > 12:
			movesToGo = 30
		default:
			movesToGo = 20
		}
	}

	budget := ourTime/time.Duration(movesToGo) + ourInc*9/10
	if max := ourTime * 9 / 10; budget > max {
		budget = max
	}
	if budget < 10*time.Millisecond {
		budget = 10 * time.Millisecond
	}
	return budget
}

// handleGo starts a search on a background goroutine per §5: the engine
// loop runs independently of the command loop so "stop" can interrupt it.
func (u *UCI) handleGo(args []string) {
	if u.searching {
		return
	}
	opts := parseGoOptions(args)

	info := engine.NewSearchInfo(u.out)
	info.Depth = opts.depth
	info.NodesLimit = opts.nodes
	info.Infinite = opts.infinite

	moveTime := opts.moveTime
	if moveTime == 0 && !opts.infinite {
		moveTime = u.timeForMove(opts)
	}
	if moveTime > 0 {
		info.HardStopTime = info.StartTime.Add(moveTime)
		info.SoftStopTime = info.StartTime.Add(moveTime * 6 / 10)
	}

	u.searching = true
	u.searchInfo = info
	u.doneCh = make(chan struct{})

	go func() {
		defer close(u.doneCh)
		u.engine.SearchPosition(u.position, info)
		u.searching = false
	}()
}

// handleStop requests cancellation and waits for the running search (if
// any) to finish, so bestmove is always emitted before the next command
// is handled.
func (u *UCI) handleStop() {
	if !u.searching {
		return
	}
	u.searchInfo.Infinite = false
	u.searchInfo.HardStopTime = time.Now()
	<-u.doneCh
}

// handleSetOption processes "setoption name <name> value <value>".
func (u *UCI) handleSetOption(args []string) {
	var name, value string
	var readingValue bool
	for _, a := range args {
		switch a {
		case "name":
			readingValue = false
		case "value":
			readingValue = true
		default:
			if readingValue {
				value = appendToken(value, a)
			} else {
				name = appendToken(name, a)
			}
		}
	}

	switch strings.ToLower(name) {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err == nil {
			u.engine.SetHashSize(mb)
		}
	}
}

func appendToken(s, tok string) string {
	if s == "" {
		return tok
	}
	return s + " " + tok
}

// handlePerft runs a raw move-generation node count, a debugging aid
// separate from the UCI protocol proper.
func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		depth, _ = strconv.Atoi(args[0])
	}

	start := time.Now()
	nodes := perft(u.position, depth)
	elapsed := time.Since(start)

	fmt.Fprintf(u.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(u.out, "Time: %s\n", elapsed)
	if elapsed > 0 {
		fmt.Fprintf(u.out, "NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}

// perft counts leaf nodes at depth by making and unmaking every legal
// move recursively, the standard move-generator correctness check.
func perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}
	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		pos.MakeMove(moves.Get(i))
		nodes += perft(pos, depth-1)
		pos.TakeMove()
	}
	return nodes
}
