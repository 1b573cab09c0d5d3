package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"igomon/engine"
	"igomon/problem"
	"igomon/replay"
	"igomon/sgf"
	"igomon/types"
)

// browserColors is the list palette.
var browserColors = struct {
	Label    tcell.Color
	Text     tcell.Color
	Selected tcell.Color
}{
	Label:    tcell.PaletteColor(250),
	Text:     tcell.PaletteColor(255),
	Selected: tcell.PaletteColor(109),
}

// ProblemBrowserUI lists the problems in a directory with a preview of each position.
type ProblemBrowserUI struct {
	flex        *tview.Flex
	problemList *tview.List
	preview     *tview.Box
	hint        *tview.TextView
	loader      *problem.Loader
	factory     engine.Factory
	maxMoves    int
	log         *zap.SugaredLogger
	problems    []problem.Summary
	boards      map[int]types.Position // cached replayed positions
	failed      map[int]bool           // previews that could not be built
	selected    int
	onOpen      func(id int)
	onDone      func()
}

// NewProblemBrowser creates the browser screen. maxMoves overrides each
// problem's own move limit when not replay.AllMoves.
func NewProblemBrowser(loader *problem.Loader, factory engine.Factory, maxMoves int, log *zap.SugaredLogger, onOpen func(id int), onDone func()) *ProblemBrowserUI {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	pb := &ProblemBrowserUI{
		loader:   loader,
		factory:  factory,
		maxMoves: maxMoves,
		log:      log,
		onOpen:   onOpen,
		onDone:   onDone,
		boards:   make(map[int]types.Position),
		failed:   make(map[int]bool),
	}

	pb.problemList = tview.NewList()
	pb.problemList.SetBorder(true)
	pb.problemList.SetTitle(" Problems ")
	pb.problemList.ShowSecondaryText(false)
	pb.problemList.SetHighlightFullLine(true)
	pb.problemList.SetMainTextStyle(tcell.StyleDefault.Foreground(browserColors.Label))
	pb.problemList.SetSelectedStyle(tcell.StyleDefault.
		Foreground(browserColors.Text).
		Background(browserColors.Selected))

	pb.preview = tview.NewBox()
	pb.preview.SetBorder(true)
	pb.preview.SetTitle(" Preview ")
	pb.preview.SetDrawFunc(pb.drawPreview)

	pb.hint = tview.NewTextView()
	pb.hint.SetDynamicColors(true)
	pb.hint.SetBorder(false)
	pb.hint.SetText("  [dimgray]⏎[-] open  [dimgray]g[-] reload  [dimgray]q[-] quit")

	pb.problemList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		pb.selected = index
	})
	pb.problemList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index < 0 || index >= len(pb.problems) || pb.onOpen == nil {
			return
		}
		pb.onOpen(pb.problems[index].ID)
	})

	pb.problemList.SetInputCapture(pb.handleInput)

	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(pb.problemList, 42, 0, true).
		AddItem(pb.preview, 0, 1, false)

	pb.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 1, true).
		AddItem(pb.hint, 1, 0, false)

	pb.loadProblems()
	return pb
}

// Flex returns the flex container for this UI.
func (pb *ProblemBrowserUI) Flex() *tview.Flex {
	return pb.flex
}

// Refresh reloads the problem list from disk.
func (pb *ProblemBrowserUI) Refresh() {
	pb.boards = make(map[int]types.Position)
	pb.failed = make(map[int]bool)
	pb.loadProblems()
}

// Problems returns the listed summaries.
func (pb *ProblemBrowserUI) Problems() []problem.Summary {
	return pb.problems
}

func (pb *ProblemBrowserUI) loadProblems() {
	pb.problemList.Clear()
	pb.problems = nil
	pb.selected = 0

	problems, err := pb.loader.List()
	if err != nil {
		pb.log.Warnw("listing problems failed", "dir", pb.loader.Dir, "error", err)
	}
	if len(problems) == 0 {
		pb.problemList.AddItem("[dimgray]No problems found[-]", "", 0, nil)
		return
	}

	pb.problems = problems
	now := time.Now()
	for _, p := range problems {
		state := ""
		if p.Deadline != nil && !now.Before(*p.Deadline) {
			state = " [dimgray](closed)[-]"
		}
		label := fmt.Sprintf("%3d  %s  %s%s", p.ID, colorLetter(p.Turn), truncate(p.Description, 28), state)
		pb.problemList.AddItem(label, "", 0, nil)
	}
}

func (pb *ProblemBrowserUI) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		if pb.onDone != nil {
			pb.onDone()
		}
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			if pb.onDone != nil {
				pb.onDone()
			}
			return nil
		case 'g':
			pb.Refresh()
			return nil
		}
	}
	return event
}

// position replays a problem for the preview. Results and failures are
// cached until Refresh.
func (pb *ProblemBrowserUI) position(id int) (types.Position, bool) {
	if pos, ok := pb.boards[id]; ok {
		return pos, true
	}
	if pb.failed[id] {
		return types.Position{}, false
	}
	p, err := pb.loader.Load(fmt.Sprint(id))
	if err != nil {
		pb.log.Warnw("preview load failed", "problem", id, "error", err)
		pb.failed[id] = true
		return types.Position{}, false
	}
	s, err := replay.Run(pb.factory, sgf.ExtractMoves(p.SGF), replay.Options{
		MaxMoves: MoveLimit(p, pb.maxMoves),
		Setup:    sgf.SetupStones(p.SGF),
		Log:      pb.log,
	})
	if s != nil {
		defer s.Close()
	}
	if err != nil {
		pb.log.Warnw("preview replay failed", "problem", id, "error", err)
		pb.failed[id] = true
		return types.Position{}, false
	}
	pb.boards[id] = s.Position()
	return s.Position(), true
}

// drawPreview renders a mini board and the problem metadata.
func (pb *ProblemBrowserUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if pb.selected < 0 || pb.selected >= len(pb.problems) {
		return x, y, width, height
	}
	summary := pb.problems[pb.selected]

	board, ok := pb.position(summary.ID)
	if !ok {
		return x, y, width, height
	}

	size := types.BoardSize
	startX := x + 2
	startY := y + 1
	if width < size*2+4 || height < size+5 {
		return x, y, width, height
	}

	emptyStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(240))
	blackStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(255)).Bold(true)
	whiteStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(250))

	for by := 0; by < size; by++ {
		for bx := 0; bx < size; bx++ {
			ch := '·'
			style := emptyStyle
			switch board.At(bx, by) {
			case types.Black:
				ch = '●'
				style = blackStyle
			case types.White:
				ch = '○'
				style = whiteStyle
			}
			screen.SetContent(startX+bx*2, startY+by, ch, nil, style)
		}
	}

	infoY := startY + size + 1
	infoStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(250))
	dimStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(245))

	drawText(screen, startX, infoY, fmt.Sprintf("#%d  %s to play", summary.ID, summary.Turn), infoStyle)
	infoY++
	drawText(screen, startX, infoY, truncate(summary.Description, width-4), dimStyle)
	if summary.Deadline != nil {
		infoY++
		deadlineStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(109))
		drawText(screen, startX, infoY, "Deadline: "+summary.Deadline.Format("2006-01-02 15:04"), deadlineStyle)
	}

	return x, y, width, height
}

// MoveLimit picks the replay limit: an explicit override, else the problem's
// own move count, else everything.
func MoveLimit(p *problem.Problem, override int) int {
	if override >= 0 {
		return override
	}
	if p.Moves != nil {
		return *p.Moves
	}
	return replay.AllMoves
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// drawText writes a string to the screen at the given position.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}
