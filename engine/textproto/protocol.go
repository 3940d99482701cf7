// Package textproto runs the rule engine in a separate process and talks to it over a
// line protocol on stdin/stdout.
//
// Each request is a single line. A response is one or more lines followed by an empty
// line; it starts with "=" on success and with "?" on failure:
//
//	name                        = flickengine 1
//	new                         = 3
//	reset 3                     =
//	board 3                     = 0 0 1 0 2 ...   (25 cells, row by row)
//	hand 3 1                    = 4
//	apply 3 {"type":"Put",...}  =
//	best 3 2 6                  = {"type":"Flick",...}
//	dispose 3                   =
//	quit                        =
package textproto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"flickboard/engine"
	"flickboard/types"
)

// ProtocolName is the handshake answer of a compatible engine.
const ProtocolName = "flickengine 1"

// formatBoard encodes a board as 25 space separated digits.
func formatBoard(b types.BoardState) string {
	cells := make([]string, len(b))
	for i, p := range b {
		cells[i] = strconv.Itoa(int(p))
	}
	return strings.Join(cells, " ")
}

// parseBoard decodes the output of formatBoard.
func parseBoard(s string) (types.BoardState, error) {
	var b types.BoardState
	fields := strings.Fields(s)
	if len(fields) != types.BoardSize {
		return b, fmt.Errorf("board has %d cells, want %d", len(fields), types.BoardSize)
	}
	for i, f := range fields {
		p, err := parsePiece(f)
		if err != nil {
			return b, fmt.Errorf("cell %d: %w", i, err)
		}
		b[i] = p
	}
	return b, nil
}

func parsePiece(s string) (types.Piece, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > int(types.Player2) {
		return types.Empty, fmt.Errorf("invalid piece %q", s)
	}
	return types.Piece(v), nil
}

func formatAction(a types.Action) (string, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func parseAction(s string) (types.Action, error) {
	var a types.Action
	if err := json.Unmarshal([]byte(s), &a); err != nil {
		return a, fmt.Errorf("invalid action %q: %w", s, err)
	}
	return a, nil
}

// errorMessage and remoteError translate the engine sentinel errors across the wire.
func errorMessage(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", " ")
}

func remoteError(msg string) error {
	switch msg {
	case engine.ErrDisposed.Error():
		return engine.ErrDisposed
	case engine.ErrNoAction.Error():
		return engine.ErrNoAction
	}
	return fmt.Errorf("engine error: %s", msg)
}
