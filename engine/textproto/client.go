package textproto

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"flickboard/engine"
	"flickboard/types"
)

// Client implements engine.Module by forwarding every call to an engine process.
type Client struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
	log    zerolog.Logger

	mu     sync.Mutex
	closed bool
}

// NewLoader returns a loader that starts the engine binary at cfg.Path.
func NewLoader(cfg engine.Config, log zerolog.Logger) engine.Loader {
	return engine.LoaderFunc(func(ctx context.Context) (engine.Module, error) {
		return Start(ctx, cfg, log)
	})
}

// Start launches the engine process and performs the handshake.
func Start(ctx context.Context, cfg engine.Config, log zerolog.Logger) (*Client, error) {
	args := append([]string{}, cfg.Args...)
	if cfg.MaxHandSize > 0 {
		args = append(args, "-hand", strconv.Itoa(cfg.MaxHandSize))
	}
	cmd := exec.Command(cfg.Path, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdout pipe: %w", err)
	}

	// Discard stderr to prevent blocking
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start engine: %w", err)
	}

	c := newClient(stdout, stdin, log)
	c.cmd = cmd
	if err := c.handshake(ctx); err != nil {
		c.abort()
		return nil, err
	}
	return c, nil
}

// Dial connects to an engine already reachable over r and w, e.g. pipes to Serve.
func Dial(ctx context.Context, r io.Reader, w io.WriteCloser, log zerolog.Logger) (*Client, error) {
	c := newClient(r, w, log)
	if err := c.handshake(ctx); err != nil {
		c.abort()
		return nil, err
	}
	return c, nil
}

func newClient(r io.Reader, w io.WriteCloser, log zerolog.Logger) *Client {
	return &Client{
		stdin:  w,
		stdout: bufio.NewReader(r),
		log:    log.With().Str("component", "textproto").Logger(),
	}
}

// handshake checks the protocol name; it gives up when ctx ends first.
func (c *Client) handshake(ctx context.Context) error {
	type result struct {
		name string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		name, err := c.call("name")
		done <- result{name, err}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-done:
		if res.err != nil {
			return fmt.Errorf("handshake failed: %w", res.err)
		}
		if res.name != ProtocolName {
			return fmt.Errorf("unsupported engine %q", res.name)
		}
		return nil
	}
}

// call sends a command and returns the response.
func (c *Client) call(cmd string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return "", engine.ErrDisposed
	}
	return c.sendCommand(cmd)
}

// sendCommand must be called with c.mu held.
func (c *Client) sendCommand(cmd string) (string, error) {
	c.log.Debug().Str("cmd", cmd).Msg("send")

	if _, err := fmt.Fprintf(c.stdin, "%s\n", cmd); err != nil {
		return "", fmt.Errorf("failed to send command: %w", err)
	}

	var response strings.Builder
	for {
		line, err := c.stdout.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read response: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")

		// Empty line signals end of response
		if line == "" {
			break
		}
		if response.Len() > 0 {
			response.WriteString("\n")
		}
		response.WriteString(line)
	}

	result := response.String()
	c.log.Debug().Str("cmd", cmd).Str("response", result).Msg("recv")

	if strings.HasPrefix(result, "?") {
		return "", remoteError(strings.TrimSpace(strings.TrimPrefix(result, "?")))
	}
	return strings.TrimSpace(strings.TrimPrefix(result, "=")), nil
}

// New asks the engine process for a fresh instance.
func (c *Client) New() (engine.Engine, error) {
	resp, err := c.call("new")
	if err != nil {
		return nil, err
	}
	id, err := strconv.Atoi(resp)
	if err != nil {
		return nil, fmt.Errorf("invalid instance id %q", resp)
	}
	return &remoteEngine{c: c, id: id}, nil
}

// Close shuts down the engine process.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.sendCommand("quit")
	c.closed = true
	err := c.stdin.Close()
	if c.cmd != nil && c.cmd.Process != nil {
		c.cmd.Wait()
	}
	return err
}

// abort tears the connection down without waiting for an in-flight command.
func (c *Client) abort() {
	c.stdin.Close()
	if c.cmd != nil && c.cmd.Process != nil {
		c.cmd.Process.Kill()
		go c.cmd.Wait()
	}
}

// remoteEngine is one instance living in the engine process.
type remoteEngine struct {
	c  *Client
	id int
}

func (e *remoteEngine) Reset() error {
	_, err := e.c.call(fmt.Sprintf("reset %d", e.id))
	return err
}

func (e *remoteEngine) Board() (types.BoardState, error) {
	resp, err := e.c.call(fmt.Sprintf("board %d", e.id))
	if err != nil {
		return types.BoardState{}, err
	}
	return parseBoard(resp)
}

func (e *remoteEngine) HandCount(p types.Piece) (int, error) {
	resp, err := e.c.call(fmt.Sprintf("hand %d %d", e.id, p))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(resp)
	if err != nil {
		return 0, fmt.Errorf("invalid hand count %q", resp)
	}
	return n, nil
}

func (e *remoteEngine) Apply(a types.Action) error {
	s, err := formatAction(a)
	if err != nil {
		return err
	}
	_, err = e.c.call(fmt.Sprintf("apply %d %s", e.id, s))
	return err
}

func (e *remoteEngine) BestAction(p types.Piece, depth int) (types.Action, error) {
	resp, err := e.c.call(fmt.Sprintf("best %d %d %d", e.id, p, depth))
	if err != nil {
		return types.Action{}, err
	}
	return parseAction(resp)
}

func (e *remoteEngine) Close() error {
	_, err := e.c.call(fmt.Sprintf("dispose %d", e.id))
	return err
}
