// Package ui specifies custom controls for tview to show Go problems and their votes in the terminal.
package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"igomon/config"
	"igomon/coord"
	"igomon/overlay"
	"igomon/problem"
	"igomon/replay"
	"igomon/sgf"
	"igomon/types"
)

// Mode selects what a click on the board does.
type Mode int

const (
	// AnswerMode lets the viewer propose a move for the side to play.
	AnswerMode Mode = iota
	// ResultsMode shows votes; clicking a voted point opens its answers.
	ResultsMode
)

// style slots
const (
	styleBoard = iota
	styleBlack
	styleWhite
	styleBoardAlt
	styleCursorFG
	styleLastPlayed
	styleCursorBG
	styleLine
	styleSelected
	styleProposed
	styleLabel
)

// boardLeft is the column offset of the grid inside the box, after the row numbers.
const boardLeft = 4

type GoBoardUI struct {
	Box       *tview.Box
	hint      *tview.TextView
	cfg       *config.Config
	log       *zap.SugaredLogger
	styles    []tcell.Color
	tiers     map[types.Tier]tcell.Color
	infoPanel *ProblemInfoPanel
	focusMode bool
	selX      int
	selY      int
	originX   int
	originY   int

	mode        Mode
	problem     *problem.Problem
	session     *replay.Session
	votes       types.Votes
	state       overlay.RenderState
	annotations []types.Annotation
	answer      string
	status      string
	now         func() time.Time
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *GoBoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *GoBoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *GoBoardUI) IsFocusMode() bool {
	return g.focusMode
}

func (g *GoBoardUI) SelectedTile() *overlay.Point {
	if g.selX == -1 && g.selY == -1 {
		return nil
	}
	return &overlay.Point{X: g.selX, Y: g.selY}
}

func (g *GoBoardUI) MoveSelection(h, v int) {
	if g.session == nil {
		return
	}
	if g.SelectedTile() == nil {
		if lm := g.session.LastMove(); lm != nil {
			g.selX, g.selY = lm.X, lm.Y
		} else {
			// No previous move made, use board center
			g.selX = types.BoardSize / 2
			g.selY = types.BoardSize / 2
		}
		return
	}
	if !types.OnBoard(g.selX+h, g.selY+v) {
		return
	}
	g.selX += h
	g.selY += v
}

func (g *GoBoardUI) ResetSelection() {
	g.selX = -1
	g.selY = -1
}

func NewGoBoard(c *config.Config, hint *tview.TextView, log *zap.SugaredLogger) *GoBoardUI {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	goBoard := &GoBoardUI{
		Box:  tview.NewBox(),
		hint: hint,
		log:  log,
		selX: -1,
		selY: -1,
		now:  time.Now,
	}
	goBoard.SetConfig(c)
	goBoard.Box.SetDrawFunc(goBoard.draw)
	goBoard.Box.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action != tview.MouseLeftClick {
			return action, event
		}
		mx, my := event.Position()
		bx, by, ok := goBoard.boardPointAt(mx, my)
		if !ok {
			return action, event
		}
		goBoard.selX, goBoard.selY = bx, by
		goBoard.Activate()
		return action, nil
	})
	return goBoard
}

// LoadProblem shows a replayed problem. votes may be nil.
func (g *GoBoardUI) LoadProblem(p *problem.Problem, s *replay.Session, votes types.Votes) {
	g.problem = p
	g.session = s
	g.votes = votes
	g.state = overlay.RenderState{}
	g.answer = ""
	g.status = ""
	g.ResetSelection()
	if g.infoPanel != nil {
		g.infoPanel.SetProblem(p, s, votes)
	}
	g.rebuild()
}

// SetMode switches between answering and browsing results.
func (g *GoBoardUI) SetMode(m Mode) {
	g.mode = m
	g.state = overlay.RenderState{}
	g.status = ""
	if g.infoPanel != nil {
		g.infoPanel.SetAnswerDetail(nil)
	}
	g.rebuild()
}

// ToggleMode flips between answer and results mode and returns the new mode.
func (g *GoBoardUI) ToggleMode() Mode {
	if g.mode == AnswerMode {
		g.SetMode(ResultsMode)
	} else {
		g.SetMode(AnswerMode)
	}
	return g.mode
}

// Mode returns the current mode.
func (g *GoBoardUI) Mode() Mode {
	return g.mode
}

// Answer is the SGF coordinate of the accepted proposal, or "".
func (g *GoBoardUI) Answer() string {
	return g.answer
}

// AnswerRecord describes the accepted answer for saving. It reports false
// when nothing was answered.
func (g *GoBoardUI) AnswerRecord(date string) (sgf.AnswerRecord, bool) {
	if g.answer == "" || g.problem == nil || g.session == nil {
		return sgf.AnswerRecord{}, false
	}
	x, y, err := coord.SGFToEngine(g.answer)
	if err != nil {
		return sgf.AnswerRecord{}, false
	}
	return sgf.AnswerRecord{
		ProblemID:   g.problem.ID,
		Info:        sgf.ParseHeader(g.problem.SGF),
		Description: g.problem.Description,
		Position:    g.session.Position(),
		Answer:      types.Move{Color: g.problem.Turn, X: x, Y: y},
		Date:        date,
	}, true
}

// Annotations returns what the board currently draws.
func (g *GoBoardUI) Annotations() []types.Annotation {
	out := make([]types.Annotation, len(g.annotations))
	copy(out, g.annotations)
	return out
}

// Activate acts on the selected point according to the mode.
func (g *GoBoardUI) Activate() {
	sel := g.SelectedTile()
	if sel == nil || g.session == nil || g.problem == nil {
		return
	}

	switch g.mode {
	case AnswerMode:
		if g.problem.Closed(g.now()) {
			g.status = "answers are closed for this problem"
			break
		}
		code, err := overlay.Propose(g.session, g.problem.Turn, sel.X, sel.Y)
		if err != nil {
			g.status = proposeStatus(err)
			g.log.Debugw("proposal refused", "problem", g.problem.ID, "x", sel.X, "y", sel.Y, "error", err)
			break
		}
		g.answer = code
		g.state = g.state.WithProposed(sel.X, sel.Y)
		display, _ := coord.SGFToDisplay(code)
		g.status = fmt.Sprintf("answer %s", display)
		g.log.Infow("answer proposed", "problem", g.problem.ID, "sgf", code, "display", display)
	case ResultsMode:
		var detail *overlay.AnswerDetail
		g.state, detail = overlay.Select(g.state, g.votes, sel.X, sel.Y)
		if g.infoPanel != nil {
			g.infoPanel.SetAnswerDetail(detail)
		}
		g.status = ""
	}
	g.rebuild()
}

func proposeStatus(err error) string {
	switch {
	case errors.Is(err, overlay.ErrOccupied):
		return "that point is occupied"
	case errors.Is(err, overlay.ErrIllegal):
		return "that move is not legal"
	case errors.Is(err, overlay.ErrOffBoard):
		return "that point is off the board"
	}
	return err.Error()
}

func (g *GoBoardUI) rebuild() {
	if g.session == nil || g.problem == nil {
		g.annotations = nil
		g.refreshHint()
		return
	}
	var votes types.Votes
	if g.mode == ResultsMode {
		votes = g.votes
	}
	g.annotations = overlay.Build(g.state.Input(g.session.Position(), g.session.LastMove(), votes, g.problem.Turn))
	g.refreshHint()
}

// Close releases the replay engine.
func (g *GoBoardUI) Close() {
	if g.session == nil {
		return
	}
	g.session.Close()
	g.session = nil
}

func (g *GoBoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		styleBoard:      tcell.PaletteColor(c.Theme.Colors.BoardColor),
		styleBlack:      tcell.PaletteColor(c.Theme.Colors.BlackColor),
		styleWhite:      tcell.PaletteColor(c.Theme.Colors.WhiteColor),
		styleBoardAlt:   tcell.PaletteColor(c.Theme.Colors.BoardColorAlt),
		styleCursorFG:   tcell.PaletteColor(c.Theme.Colors.CursorColorFG),
		styleLastPlayed: tcell.PaletteColor(c.Theme.Colors.LastPlayedColorBG),
		styleCursorBG:   tcell.PaletteColor(c.Theme.Colors.CursorColorBG),
		styleLine:       tcell.PaletteColor(c.Theme.Colors.LineColor),
		styleSelected:   tcell.PaletteColor(c.Theme.Colors.SelectedColorBG),
		styleProposed:   tcell.PaletteColor(c.Theme.Colors.ProposedColorBG),
		styleLabel:      tcell.PaletteColor(c.Theme.Colors.LabelColorFG),
	}
	g.tiers = map[types.Tier]tcell.Color{
		types.TierLow:  tcell.GetColor(c.Theme.VoteColors.Low),
		types.TierMid:  tcell.GetColor(c.Theme.VoteColors.Mid),
		types.TierHigh: tcell.GetColor(c.Theme.VoteColors.High),
	}
	g.cfg = c
}

func (g *GoBoardUI) refreshHint() {
	if g.hint == nil {
		return
	}
	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}
	if g.problem == nil {
		g.hint.SetText("  no problem loaded")
		return
	}

	stone := "●"
	if g.problem.Turn == types.White {
		stone = "○"
	}

	var statusLine string
	switch g.mode {
	case AnswerMode:
		statusLine = fmt.Sprintf("  %s %s to play", stone, g.problem.Turn)
		if g.answer != "" {
			display, _ := coord.SGFToDisplay(g.answer)
			statusLine += fmt.Sprintf("   answer: %s (%s)", display, g.answer)
		}
	case ResultsMode:
		statusLine = fmt.Sprintf("  results · %d points voted", len(g.votes))
	}
	if g.status != "" {
		statusLine += "   · " + g.status
	}

	controlsLine := "\n  hjkl/↑↓←→ move   ⏎/click select   r results   f focus   q quit"
	g.hint.SetText(statusLine + controlsLine)
}

// cell collects the annotations that land on one intersection.
type cell struct {
	stone    types.Color
	last     bool
	badge    *types.Annotation
	label    int
	selected bool
	proposed types.Color
}

// cellsFromAnnotations projects annotations onto the grid.
func cellsFromAnnotations(annotations []types.Annotation) [types.BoardSize][types.BoardSize]cell {
	var cells [types.BoardSize][types.BoardSize]cell
	for i := range annotations {
		a := annotations[i]
		if !types.OnBoard(a.X, a.Y) {
			continue
		}
		c := &cells[a.Y][a.X]
		switch a.Kind {
		case types.StoneMark:
			c.stone = a.Color
		case types.LastMoveMark:
			c.last = true
		case types.VoteBadge:
			c.badge = &a
		case types.VoteLabelOnStone:
			c.label = a.Count
		case types.ClickSelection:
			c.selected = true
		case types.ProposedMove:
			c.proposed = a.Color
		}
	}
	return cells
}

// boardPointAt maps a screen position to a board intersection.
func (g *GoBoardUI) boardPointAt(sx, sy int) (int, int, bool) {
	dx := sx - g.originX - boardLeft
	if dx < 0 {
		return 0, 0, false
	}
	bx, by := dx/2, sy-g.originY
	if !types.OnBoard(bx, by) {
		return 0, 0, false
	}
	return bx, by, true
}

func (g *GoBoardUI) draw(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
	g.originX, g.originY = x, y
	if g.session == nil {
		return x, y, 1, 1
	}
	theme := g.cfg.Theme
	cells := cellsFromAnnotations(g.annotations)
	size := types.BoardSize

	for boardY := 0; boardY < size; boardY++ {
		for boardX := 0; boardX < size; boardX++ {
			c := cells[boardY][boardX]

			bg := g.styles[styleBoard]
			if (boardX%2+boardY%2) == 1 {
				bg = g.styles[styleBoardAlt]
			}
			if c.stone != types.Empty && theme.DrawStoneBackground {
				bg = g.stoneColor(c.stone)
			}

			var fg tcell.Color
			var drawRune rune
			switch {
			case c.stone != types.Empty:
				fg = g.stoneColor(c.stone)
				drawRune = theme.Symbols.BlackStone
				if c.stone == types.White {
					drawRune = theme.Symbols.WhiteStone
				}
				if theme.DrawStoneBackground {
					fg = g.stoneColor(c.stone.Opposite())
				}
			case theme.UseGridLines:
				fg = g.styles[styleLine]
				drawRune = getGridRune(boardX, boardY, size, size, isHoshiPoint(boardX, boardY, size))
			default:
				fg = g.styles[styleLine]
				drawRune = theme.Symbols.BoardSquare
			}

			if c.last && theme.DrawLastPlayedBackground {
				bg = g.styles[styleLastPlayed]
			}
			if c.selected {
				bg = g.styles[styleSelected]
			}
			if boardX == g.selX && boardY == g.selY && theme.DrawCursorBackground {
				bg = g.styles[styleCursorBG]
			}
			style := tcell.StyleDefault.Background(bg).Foreground(fg)

			switch {
			case c.badge != nil:
				badgeBG := g.tiers[c.badge.Tier]
				if c.selected {
					badgeBG = g.styles[styleSelected]
				}
				drawBadgeCell(screen, tcell.StyleDefault.Background(badgeBG).Foreground(tcell.ColorBlack).Bold(true), c.badge.Count, boardX, boardY, x+boardLeft, y)
			case c.proposed != types.Empty:
				drawStoneCell(screen, tcell.StyleDefault.Background(g.styles[styleProposed]).Foreground(g.stoneColor(c.proposed)), theme.Symbols.Proposed, ' ', boardX, boardY, x+boardLeft, y)
			case c.stone != types.Empty:
				drawStoneCell(screen, style, drawRune, ' ', boardX, boardY, x+boardLeft, y)
				if c.label > 0 {
					screen.SetContent(x+boardLeft+boardX*2+1, y+boardY, labelRune(c.label), nil, style.Foreground(g.styles[styleLabel]).Bold(true))
				}
			case theme.UseGridLines:
				hasStoneRight := boardX < size-1 && cells[boardY][boardX+1].stone != types.Empty
				drawGridCell(screen, style, drawRune, boardX, boardY, x+boardLeft, y, size, hasStoneRight)
			default:
				drawStoneCell(screen, style, drawRune, ' ', boardX, boardY, x+boardLeft, y)
			}
		}
	}
	g.drawCoordinates(screen, x, y)
	return x, y, size*2 + boardLeft, size + 2
}

func (g *GoBoardUI) stoneColor(c types.Color) tcell.Color {
	if c == types.White {
		return g.styles[styleWhite]
	}
	return g.styles[styleBlack]
}

// labelRune fits a vote count into the half cell beside a stone. Counts
// above 9 show as "+"; selecting the point shows the exact count.
func labelRune(n int) rune {
	switch {
	case n <= 0:
		return ' '
	case n < 10:
		return rune('0' + n)
	}
	return '+'
}

// drawStoneCell draws a 2 character cell.
func drawStoneCell(s tcell.Screen, c tcell.Style, r, right rune, x, y, l, t int) {
	s.SetContent(l+x*2, t+y, r, nil, c)
	s.SetContent(l+x*2+1, t+y, right, nil, c)
}

// drawBadgeCell writes a vote count across both characters of a cell.
func drawBadgeCell(s tcell.Screen, c tcell.Style, count, x, y, l, t int) {
	text := fmt.Sprintf("%2d", count)
	if count > 99 {
		text = "9+"
	}
	s.SetContent(l+x*2, t+y, rune(text[0]), nil, c)
	s.SetContent(l+x*2+1, t+y, rune(text[1]), nil, c)
}

// drawGridCell draws a cell using box-drawing characters for grid lines
func drawGridCell(s tcell.Screen, c tcell.Style, r rune, x, y, l, t, boardWidth int, hasStoneRight bool) {
	s.SetContent(l+x*2, t+y, r, nil, c)

	rightConn := '─'
	if x == boardWidth-1 || hasStoneRight {
		rightConn = ' '
	}
	s.SetContent(l+x*2+1, t+y, rightConn, nil, c)
}

// getGridRune returns the appropriate box-drawing character for a grid position
func getGridRune(x, y, width, height int, isHoshi bool) rune {
	if isHoshi {
		return '◦'
	}

	isTop := y == 0
	isBottom := y == height-1
	isLeft := x == 0
	isRight := x == width-1

	switch {
	case isTop && isLeft:
		return '┌'
	case isTop && isRight:
		return '┐'
	case isBottom && isLeft:
		return '└'
	case isBottom && isRight:
		return '┘'
	case isTop:
		return '┬'
	case isBottom:
		return '┴'
	case isLeft:
		return '├'
	case isRight:
		return '┤'
	default:
		return '┼'
	}
}

var hoshiPoints = [][2]int{
	{3, 3}, {3, 9}, {3, 15},
	{9, 3}, {9, 9}, {9, 15},
	{15, 3}, {15, 9}, {15, 15},
}

func isHoshiPoint(x, y, boardSize int) bool {
	if boardSize != types.BoardSize {
		return false
	}
	for _, pos := range hoshiPoints {
		if x == pos[0] && y == pos[1] {
			return true
		}
	}
	return false
}

func (g *GoBoardUI) drawCoordinates(s tcell.Screen, x, y int) {
	size := types.BoardSize

	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(g.styles[styleCursorBG])
	lpHighlight := tcell.StyleDefault.Background(g.styles[styleLastPlayed])
	lastX, lastY := -1, -1
	if lm := g.session.LastMove(); lm != nil {
		lastX, lastY = lm.X, lm.Y
	}

	for ix := 0; ix < size; ix++ {
		_style := style
		if ix == g.selX {
			_style = highlight
		} else if ix == lastX {
			_style = lpHighlight
		}
		letter := rune(coord.Letters[ix])
		if g.cfg.Theme.FullWidthLetters {
			letter = letter - 'A' + 'Ａ'
		}
		s.SetContent(x+boardLeft+(ix*2), y+size+1, letter, nil, _style)
		s.SetContent(x+boardLeft+(ix*2)+1, y+size+1, ' ', nil, _style)
	}

	for iy := 0; iy < size; iy++ {
		// engine row 0 is the top line, rank 19
		row := size - iy - 1
		_style := style
		if row == g.selY {
			_style = highlight
		} else if row == lastY {
			_style = lpHighlight
		}
		rank := iy + 1
		tensRune := ' '
		if rank >= 10 {
			tensRune = rune('0' + rank/10)
		}
		s.SetContent(x+1, y+row, tensRune, nil, _style)
		s.SetContent(x+2, y+row, rune('0'+(rank%10)), nil, _style)
	}
}
