package board

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ThenerzZ/chess-engine-go/internal/chess"
	"github.com/ThenerzZ/chess-engine-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// fenPieceChars maps piece types to their FEN letters (always English).
var fenPieceChars = map[chess.Piece]byte{
	chess.Pawn:   'P',
	chess.Knight: 'N',
	chess.Bishop: 'B',
	chess.Rook:   'R',
	chess.Queen:  'Q',
	chess.King:   'K',
}

// pieceFromFENChar converts a FEN character to a piece type.
func pieceFromFENChar(c byte) chess.Piece {
	switch c {
	case 'K', 'k':
		return chess.King
	case 'Q', 'q':
		return chess.Queen
	case 'R', 'r':
		return chess.Rook
	case 'N', 'n':
		return chess.Knight
	case 'B', 'b':
		return chess.Bishop
	case 'P', 'p':
		return chess.Pawn
	default:
		return chess.Empty
	}
}

// colouredPieceToFENChar returns the FEN letter for a coloured piece,
// lowercased for Black.
func colouredPieceToFENChar(colouredPiece chess.Piece) byte {
	c := fenPieceChars[chess.ExtractPiece(colouredPiece)]
	if chess.ExtractColour(colouredPiece) == chess.Black {
		c = byte(unicode.ToLower(rune(c)))
	}
	return c
}

// FromFEN creates a board from a FEN string.
func FromFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, errors.Wrap(errors.ErrInvalidFEN, "empty FEN string")
	}

	b := New()

	if err := b.parsePiecePositions(parts[0]); err != nil {
		return nil, err
	}

	if err := b.parseSideToMove(parts); err != nil {
		return nil, err
	}

	b.parseCastlingRights(parts)
	b.parseEnPassant(parts)
	b.parseClocks(parts)

	return b, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func (b *Board) parsePiecePositions(positions string) error {
	file, rank := 1, 8

	for _, c := range positions {
		switch {
		case c == '/':
			rank--
			file = 1
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			piece := pieceFromFENChar(byte(c))
			if piece == chess.Empty {
				return errors.Wrapf(errors.ErrInvalidFEN, "invalid piece character %q", c)
			}
			pos := chess.Position{File: file, Rank: rank}
			if !pos.Valid() {
				return errors.Wrap(errors.ErrInvalidFEN, "position out of bounds")
			}

			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}

			b.set(pos, chess.MakeColouredPiece(colour, piece))

			if piece == chess.King {
				if colour == chess.White {
					b.wKing = pos
				} else {
					b.bKing = pos
				}
			}
			file++
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func (b *Board) parseSideToMove(parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		b.toMove = chess.White
	case "b":
		b.toMove = chess.Black
	default:
		return errors.Wrapf(errors.ErrInvalidFEN, "invalid side to move %q", parts[1])
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func (b *Board) parseCastlingRights(parts []string) {
	b.wKingside, b.wQueenside = false, false
	b.bKingside, b.bQueenside = false, false

	if len(parts) < 3 || parts[2] == "-" {
		return
	}

	for _, c := range parts[2] {
		switch c {
		case 'K':
			b.wKingside = true
		case 'Q':
			b.wQueenside = true
		case 'k':
			b.bKingside = true
		case 'q':
			b.bQueenside = true
		}
	}
}

// parseEnPassant parses the en passant target square field.
func (b *Board) parseEnPassant(parts []string) {
	b.epValid = false
	if len(parts) < 4 || parts[3] == "-" {
		return
	}
	if pos, err := chess.ParsePosition(parts[3]); err == nil {
		b.epTarget = pos
		b.epValid = true
	}
}

// parseClocks parses the halfmove clock and fullmove number fields.
func (b *Board) parseClocks(parts []string) {
	if len(parts) >= 5 {
		fmt.Sscanf(parts[4], "%d", &b.halfmoveClock)
	}
	if len(parts) >= 6 {
		fmt.Sscanf(parts[5], "%d", &b.moveNumber)
	}
}

// FEN converts the board to a FEN string.
func (b *Board) FEN() string {
	var sb strings.Builder

	b.writePiecePositions(&sb)
	sb.WriteByte(' ')
	if b.toMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	b.writeCastlingRights(&sb)
	sb.WriteByte(' ')
	if b.epValid {
		sb.WriteString(b.epTarget.String())
	} else {
		sb.WriteByte('-')
	}
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", b.halfmoveClock, b.moveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func (b *Board) writePiecePositions(sb *strings.Builder) {
	for rank := 8; rank >= 1; rank-- {
		emptyCount := 0
		for file := 1; file <= 8; file++ {
			piece := b.Get(chess.Position{File: file, Rank: rank})
			if piece == chess.Empty {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(colouredPieceToFENChar(piece))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 1 {
			sb.WriteByte('/')
		}
	}
}

// writeCastlingRights writes the castling availability to the builder.
func (b *Board) writeCastlingRights(sb *strings.Builder) {
	hasCastling := false
	if b.wKingside {
		sb.WriteByte('K')
		hasCastling = true
	}
	if b.wQueenside {
		sb.WriteByte('Q')
		hasCastling = true
	}
	if b.bKingside {
		sb.WriteByte('k')
		hasCastling = true
	}
	if b.bQueenside {
		sb.WriteByte('q')
		hasCastling = true
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}
