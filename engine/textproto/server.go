package textproto

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"flickboard/engine"
)

// errQuit ends the serve loop after the response has been written.
var errQuit = errors.New("quit")

// Server exposes a Module over the line protocol.
type Server struct {
	mod       engine.Module
	instances map[int]engine.Engine
	nextID    int
}

// NewServer creates a server backed by mod.
func NewServer(mod engine.Module) *Server {
	return &Server{
		mod:       mod,
		instances: make(map[int]engine.Engine),
		nextID:    1,
	}
}

// Serve answers requests read from r until "quit" or end of input. Every instance still
// alive when Serve returns is closed.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	defer s.closeAll()

	scanner := bufio.NewScanner(r)
	out := bufio.NewWriter(w)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		resp, err := s.handle(line)
		if err != nil && !errors.Is(err, errQuit) {
			fmt.Fprintf(out, "? %s\n\n", errorMessage(err))
		} else if resp == "" {
			fmt.Fprint(out, "=\n\n")
		} else {
			fmt.Fprintf(out, "= %s\n\n", resp)
		}
		if ferr := out.Flush(); ferr != nil {
			return ferr
		}
		if errors.Is(err, errQuit) {
			return nil
		}
	}
	return scanner.Err()
}

func (s *Server) closeAll() {
	for id, eng := range s.instances {
		eng.Close()
		delete(s.instances, id)
	}
}

func (s *Server) handle(line string) (string, error) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "name":
		return ProtocolName, nil
	case "quit":
		return "", errQuit
	case "new":
		eng, err := s.mod.New()
		if err != nil {
			return "", err
		}
		id := s.nextID
		s.nextID++
		s.instances[id] = eng
		return strconv.Itoa(id), nil
	}

	if len(args) == 0 {
		return "", fmt.Errorf("%s: missing instance id", cmd)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return "", fmt.Errorf("%s: invalid instance id %q", cmd, args[0])
	}
	eng, ok := s.instances[id]
	if !ok {
		return "", engine.ErrDisposed
	}
	args = args[1:]

	switch cmd {
	case "reset":
		return "", eng.Reset()
	case "board":
		b, err := eng.Board()
		if err != nil {
			return "", err
		}
		return formatBoard(b), nil
	case "hand":
		if len(args) != 1 {
			return "", fmt.Errorf("hand: want 1 argument, got %d", len(args))
		}
		p, err := parsePiece(args[0])
		if err != nil {
			return "", err
		}
		n, err := eng.HandCount(p)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n), nil
	case "apply":
		// The action is JSON and may contain spaces.
		a, err := parseAction(strings.Join(args, " "))
		if err != nil {
			return "", err
		}
		return "", eng.Apply(a)
	case "best":
		if len(args) != 2 {
			return "", fmt.Errorf("best: want 2 arguments, got %d", len(args))
		}
		p, err := parsePiece(args[0])
		if err != nil {
			return "", err
		}
		depth, err := strconv.Atoi(args[1])
		if err != nil {
			return "", fmt.Errorf("best: invalid depth %q", args[1])
		}
		a, err := eng.BestAction(p, depth)
		if err != nil {
			return "", err
		}
		return formatAction(a)
	case "dispose":
		delete(s.instances, id)
		return "", eng.Close()
	}
	return "", fmt.Errorf("unknown command %q", cmd)
}
