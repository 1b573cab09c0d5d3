package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rivo/tview"

	"igomon/coord"
	"igomon/overlay"
	"igomon/problem"
	"igomon/replay"
	"igomon/types"
)

// maxAnswersShown caps the answer list in the detail section.
const maxAnswersShown = 8

// ProblemInfoPanel displays the problem, replay status and vote details alongside the board.
type ProblemInfoPanel struct {
	box     *tview.TextView
	problem *problem.Problem
	session *replay.Session
	votes   types.Votes
	detail  *overlay.AnswerDetail
	now     func() time.Time
}

// NewProblemInfoPanel creates a new info panel.
func NewProblemInfoPanel() *ProblemInfoPanel {
	panel := &ProblemInfoPanel{
		box: tview.NewTextView(),
		now: time.Now,
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetWordWrap(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *ProblemInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetProblem shows a new problem and clears any answer detail.
func (p *ProblemInfoPanel) SetProblem(pr *problem.Problem, s *replay.Session, votes types.Votes) {
	p.problem = pr
	p.session = s
	p.votes = votes
	p.detail = nil
	p.refresh()
}

// SetAnswerDetail shows the answers for a clicked point, or hides them when d is nil.
func (p *ProblemInfoPanel) SetAnswerDetail(d *overlay.AnswerDetail) {
	p.detail = d
	p.refresh()
}

// Text returns the rendered panel content.
func (p *ProblemInfoPanel) Text() string {
	return p.box.GetText(false)
}

func (p *ProblemInfoPanel) refresh() {
	if p.problem == nil {
		p.box.SetText("")
		return
	}
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[white::b]Problem %d[-:-:-]\n", p.problem.ID))
	b.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	b.WriteString(tview.Escape(p.problem.Description))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("[white]Turn:[-:-:-] %s\n", p.problem.Turn))
	if p.problem.Moves != nil {
		b.WriteString(fmt.Sprintf("[white]Moves:[-:-:-] %d\n", *p.problem.Moves))
	}
	if p.problem.Deadline != nil {
		state := "open"
		if p.problem.Closed(p.now()) {
			state = "closed"
		}
		b.WriteString(fmt.Sprintf("[white]Deadline:[-:-:-] %s (%s)\n", p.problem.Deadline.Format("2006-01-02 15:04"), state))
	}

	if p.session != nil {
		b.WriteString(fmt.Sprintf("[white]Replayed:[-:-:-] %d\n", p.session.Applied()))
		if lm := p.session.LastMove(); lm != nil {
			if v, err := coord.EngineToDisplay(lm.X, lm.Y); err == nil {
				b.WriteString(fmt.Sprintf("[white]Last:[-:-:-] %s %s\n", colorLetter(lm.Color), v))
			}
		}
		if rej := p.session.Rejected(); len(rej) > 0 {
			b.WriteString(fmt.Sprintf("[red]Rejected:[-] %d\n", len(rej)))
		}
	}

	if len(p.votes) > 0 {
		b.WriteString("\n[white::b]Votes[-:-:-]\n")
		b.WriteString("[dimgray]──────────────────────[-:-:-]\n")
		for _, line := range voteLines(p.votes, 5) {
			b.WriteString(line + "\n")
		}
	}

	if d := p.detail; d != nil {
		b.WriteString(fmt.Sprintf("\n[yellow::b]%s[-:-:-] [dimgray](%s)[-]\n", d.Coordinate, d.SGF))
		b.WriteString("[dimgray]──────────────────────[-:-:-]\n")
		b.WriteString(fmt.Sprintf("[white]Votes:[-:-:-] %d\n", d.Entry.Votes))
		for i, a := range d.Entry.Answers {
			if i == maxAnswersShown {
				b.WriteString(fmt.Sprintf("[dimgray]  ··· %d more[-]\n", len(d.Entry.Answers)-i))
				break
			}
			b.WriteString(fmt.Sprintf("[dimgray]%2d.[-] %s\n", i+1, tview.Escape(string(a))))
		}
	}

	p.box.SetText(b.String())
}

// voteLines lists the most voted points, highest first.
func voteLines(votes types.Votes, limit int) []string {
	type ranked struct {
		code  string
		votes int
	}
	var all []ranked
	for code, e := range votes {
		all = append(all, ranked{code, e.Votes})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].votes != all[j].votes {
			return all[i].votes > all[j].votes
		}
		return all[i].code < all[j].code
	})

	var lines []string
	for _, r := range all {
		if len(lines) == limit {
			break
		}
		display, err := coord.SGFToDisplay(r.code)
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-4s %3d", display, r.votes))
	}
	return lines
}

func colorLetter(c types.Color) string {
	if c == types.White {
		return "W"
	}
	return "B"
}

// CreateGameLayout creates the main layout with board and side panel.
func CreateGameLayout(board *GoBoardUI, hint *tview.TextView) *tview.Flex {
	gameFrame := tview.NewFlex()
	RebuildNormalLayout(gameFrame, board, hint)
	return gameFrame
}

// RebuildNormalLayout restores the normal layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *GoBoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	if board.infoPanel == nil {
		board.infoPanel = NewProblemInfoPanel()
		board.infoPanel.now = board.now
	}
	if board.problem != nil {
		board.infoPanel.SetProblem(board.problem, board.session, board.votes)
	}

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(board.infoPanel.Box(), 30, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 4, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *GoBoardUI) {
	gameFrame.Clear()

	boardWidth := types.BoardSize*2 + boardLeft
	boardHeight := types.BoardSize + 2

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
}
