package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a standard six-field FEN string into a fresh Position.
// On a malformed field it returns a nil Position together with the error.
// The full-move number is checked to be an integer but is not stored.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	pos := &Position{}
	pos.Reset()

	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		pos.Side = White
	case "b":
		pos.Side = Black
	default:
		return nil, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant square: %s", parts[3])
		}
		pos.Enpas = sq
	}

	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil {
			return nil, fmt.Errorf("invalid half-move clock: %s", parts[4])
		}
		pos.FiftyMove = hmc
	}

	if len(parts) > 5 {
		if _, err := strconv.Atoi(parts[5]); err != nil {
			return nil, fmt.Errorf("invalid full-move number: %s", parts[5])
		}
	}

	pos.HashKey = generateHashKey(pos)

	return pos, nil
}

func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 8 - i // FEN ranks iterate from rank 8 down to rank 1
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("too many squares in rank %d", rank)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(byte(c))
			if piece == Empty {
				return fmt.Errorf("invalid piece character: %c", c)
			}
			sq := NewSquareRank(file, rank)
			pos.setPiece(piece, sq)
			file++
		}

		if file != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", rank, file)
		}
	}

	return nil
}

func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		pos.CastlePerms = NoCastling
		return nil
	}

	for _, c := range castling {
		switch c {
		case 'K':
			pos.CastlePerms |= WhiteKingSideCastle
		case 'Q':
			pos.CastlePerms |= WhiteQueenSideCastle
		case 'k':
			pos.CastlePerms |= BlackKingSideCastle
		case 'q':
			pos.CastlePerms |= BlackQueenSideCastle
		default:
			return fmt.Errorf("invalid castling character: %c", c)
		}
	}

	return nil
}

// ToFEN returns the FEN representation of the position. The full-move
// field is HisPly/2+1, counted from the position ParseFEN built, so
// parse-then-emit reproduces a canonical FEN only when its full-move
// number is 1; a different full-move number in the parsed FEN is lost.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 8; rank >= 1; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt[NewSquareRank(file, rank)]
			if piece == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 1 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.Side == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.CastlePerms.String())

	sb.WriteByte(' ')
	sb.WriteString(p.Enpas.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FiftyMove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HisPly/2 + 1))

	return sb.String()
}
