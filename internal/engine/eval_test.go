package engine

import (
	"testing"

	"github.com/dragonrose/dragonrose/internal/board"
)

func TestEvaluateStartingPositionIsNearZero(t *testing.T) {
	pos := board.NewPosition()
	score := Evaluate(pos)
	if abs(score) > 40 {
		t.Errorf("symmetric starting position should evaluate near zero, got %d", score)
	}
}

func TestEvaluateIsSideRelative(t *testing.T) {
	pos, err := board.ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	blackToMove := Evaluate(pos)

	flipped, err := board.ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e3 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	whiteToMove := Evaluate(flipped)

	// The placement is identical, so the two scores are negations of each
	// other except for the tempo bonus White gets when it is to move
	// (applied in full here: all sixteen non-pawn pieces are on the board).
	if whiteToMove != -blackToMove+tempoWhiteBonus {
		t.Errorf("Evaluate(white-to-move) = %d, want %d (negation of black-to-move %d plus tempo %d)", whiteToMove, -blackToMove+tempoWhiteBonus, blackToMove, tempoWhiteBonus)
	}
}

func TestEvaluateRewardsExtraMaterial(t *testing.T) {
	base, err := board.ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	withQueen, err := board.ParseFEN("4k3/8/8/8/8/8/3Q4/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	if Evaluate(withQueen) <= Evaluate(base) {
		t.Errorf("extra queen should increase evaluation: got %d, base %d", Evaluate(withQueen), Evaluate(base))
	}
}

func TestEvaluateInsufficientMaterialIsNearDraw(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	score := Evaluate(pos)
	if abs(score) > 5 {
		t.Errorf("bare kings should evaluate near draw, got %d", score)
	}
}

func TestEvaluateAdvancedPassedPawnBeatsOwnPawnOnStartingSquare(t *testing.T) {
	advanced, err := board.ParseFEN("4k3/4P3/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	start, err := board.ParseFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	if Evaluate(advanced) <= Evaluate(start) {
		t.Errorf("advanced passed pawn should score higher: got %d, start %d", Evaluate(advanced), Evaluate(start))
	}
}
