// Package gtp provides a GTP (Go Text Protocol) engine implementation.
package gtp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"go.uber.org/zap"

	"igomon/engine"
	"igomon/types"
)

// errGTP marks a '?' failure response from the engine.
var errGTP = errors.New("GTP error")

// Engine implements engine.Engine by driving GnuGo (or any GTP engine)
// over stdin/stdout.
type Engine struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
	log    *zap.SugaredLogger

	pos types.Position

	mu sync.Mutex
}

// Start launches the engine binary in GTP mode and clears a 19x19 board.
func Start(path string, log *zap.SugaredLogger) (*Engine, error) {
	if path == "" {
		path = "gnugo"
	}
	cmd := exec.Command(path, "--mode", "gtp", "--quiet")

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
		return nil, fmt.Errorf("failed to start %s: %w", path, err)
	}

	g := newEngine(stdin, stdout, log)
	g.cmd = cmd
	if err := g.init(); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// Factory returns an engine.Factory that starts a fresh GTP process per replay.
func Factory(path string, log *zap.SugaredLogger) engine.Factory {
	return func() (engine.Engine, error) {
		return Start(path, log)
	}
}

// Attach wraps an already running GTP peer and clears its board.
func Attach(stdin io.WriteCloser, stdout io.Reader, log *zap.SugaredLogger) (*Engine, error) {
	g := newEngine(stdin, stdout, log)
	if err := g.init(); err != nil {
		return nil, err
	}
	return g, nil
}

func newEngine(stdin io.WriteCloser, stdout io.Reader, log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{
		stdin:  stdin,
		stdout: bufio.NewReader(stdout),
		log:    log,
	}
}

func (g *Engine) init() error {
	if _, err := g.sendCommand(fmt.Sprintf("boardsize %d", types.BoardSize)); err != nil {
		return fmt.Errorf("failed to set board size: %w", err)
	}
	if _, err := g.sendCommand("clear_board"); err != nil {
		return fmt.Errorf("failed to clear board: %w", err)
	}
	return nil
}

// sendCommand sends a GTP command and returns the response.
func (g *Engine) sendCommand(cmd string) (string, error) {
	g.log.Debugw("gtp send", "command", cmd)

	if _, err := fmt.Fprintf(g.stdin, "%s\n", cmd); err != nil {
		return "", fmt.Errorf("failed to send command: %w", err)
	}

	var response strings.Builder
	for {
		line, err := g.stdout.ReadString('\n')
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
	g.log.Debugw("gtp recv", "command", cmd, "response", result)

	// Check for error response (starts with '?')
	if strings.HasPrefix(result, "?") {
		return "", fmt.Errorf("%w: %s", errGTP, strings.TrimSpace(strings.TrimPrefix(result, "?")))
	}

	// Success response starts with '='
	return strings.TrimSpace(strings.TrimPrefix(result, "=")), nil
}

// Play sends "play <color> <vertex>" and refreshes the position.
func (g *Engine) Play(x, y int, color types.Color) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	vertex, err := posToGTP(x, y)
	if err != nil {
		return fmt.Errorf("%w: %v", engine.ErrReplayRejected, err)
	}
	c, err := colorToGTP(color)
	if err != nil {
		return fmt.Errorf("%w: %v", engine.ErrReplayRejected, err)
	}

	if _, err := g.sendCommand(fmt.Sprintf("play %s %s", c, vertex)); err != nil {
		if errors.Is(err, errGTP) {
			return fmt.Errorf("%w: %v", engine.ErrReplayRejected, err)
		}
		return err
	}

	// Update captures by refreshing board state from GnuGo
	return g.updateBoard()
}

// Position returns the last board read back from the engine.
func (g *Engine) Position() types.Position {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos
}

// IsValid asks the engine with "is_legal".
func (g *Engine) IsValid(x, y int, color types.Color) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	vertex, err := posToGTP(x, y)
	if err != nil {
		return false
	}
	c, err := colorToGTP(color)
	if err != nil {
		return false
	}
	resp, err := g.sendCommand(fmt.Sprintf("is_legal %s %s", c, vertex))
	if err != nil {
		g.log.Warnw("is_legal failed", "vertex", vertex, "error", err)
		return false
	}
	return resp == "1"
}

// updateBoard rebuilds the position from list_stones. Must hold the lock.
func (g *Engine) updateBoard() error {
	blackStones, err := g.sendCommand("list_stones black")
	if err != nil {
		return fmt.Errorf("failed to list black stones: %w", err)
	}
	whiteStones, err := g.sendCommand("list_stones white")
	if err != nil {
		return fmt.Errorf("failed to list white stones: %w", err)
	}

	var pos types.Position
	for _, vertex := range strings.Fields(blackStones) {
		if x, y, err := gtpToPos(vertex); err == nil && x >= 0 {
			pos = pos.With(x, y, types.Black)
		}
	}
	for _, vertex := range strings.Fields(whiteStones) {
		if x, y, err := gtpToPos(vertex); err == nil && x >= 0 {
			pos = pos.With(x, y, types.White)
		}
	}
	g.pos = pos
	return nil
}

// Close shuts down the GTP subprocess.
func (g *Engine) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stdin != nil {
		g.sendCommand("quit")
		g.stdin.Close()
		g.stdin = nil
	}
	if g.cmd != nil && g.cmd.Process != nil {
		g.cmd.Wait()
	}
}
