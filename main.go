// igomon is a terminal viewer for Go problems: it replays a problem's
// record, takes a proposed answer and shows the community's votes.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"igomon/config"
	"igomon/coord"
	"igomon/engine"
	"igomon/engine/gtp"
	"igomon/engine/rules"
	"igomon/logging"
	"igomon/overlay"
	"igomon/problem"
	"igomon/replay"
	"igomon/sgf"
	"igomon/types"
	"igomon/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagProblem       = flag.String("problem", "", "Open this problem id directly")
	flagDir           = flag.String("dir", "", "Problems directory (overrides config)")
	flagVotes         = flag.String("votes", "", "Votes JSON file; opens the board in results mode")
	flagMoves         = flag.Int("moves", replay.AllMoves, "Replay only the first n moves (default: the problem's own count)")
	flagEngine        = flag.String("engine", "", "Rules engine: rules or gtp (overrides config)")
	flagAbortOnReject = flag.Bool("abort-on-reject", false, "Stop replay at the first move the engine rejects")
	flagFocus         = flag.Bool("focus", false, "Start in focus mode (board only)")
	flagVersion       = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.GoBoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config
var log *zap.SugaredLogger
var loader *problem.Loader
var factory engine.Factory
var votes types.Votes
var openedID int

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("igomon %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *flagDir != "" {
		cfg.Problems.Dir = *flagDir
	}
	if *flagEngine != "" {
		cfg.Engine.Kind = *flagEngine
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err = logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %s\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	factory, err = engineFactory(cfg.Engine, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	votes, err = overlay.ReadVotes(*flagVotes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "votes: %s\n", err)
		os.Exit(1)
	}

	loader = problem.NewLoader(cfg.Problems.Dir, log)
	log.Infow("starting", "version", Version, "dir", cfg.Problems.Dir, "engine", cfg.Engine.Kind, "votes", len(votes))

	app = tview.NewApplication()
	app.EnableMouse(true)
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ⬡ igomon ")

	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewGoBoard(cfg, gameHint, log)

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			if gameBoard.SelectedTile() != nil {
				gameBoard.ResetSelection()
			} else if *flagProblem != "" {
				app.Stop()
			} else {
				rootPage.SwitchToPage("browser")
			}
			return nil
		}
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveSelection(0, -1)
		case tcell.KeyDown:
			gameBoard.MoveSelection(0, 1)
		case tcell.KeyLeft:
			gameBoard.MoveSelection(-1, 0)
		case tcell.KeyRight:
			gameBoard.MoveSelection(1, 0)
		case tcell.KeyEnter:
			gameBoard.Activate()
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				gameBoard.MoveSelection(-1, 0)
			case 'j':
				gameBoard.MoveSelection(0, 1)
			case 'k':
				gameBoard.MoveSelection(0, -1)
			case 'l':
				gameBoard.MoveSelection(1, 0)
			case 'r':
				gameBoard.ToggleMode()
			case 'f':
				if gameBoard.ToggleFocusMode() {
					ui.BuildFocusLayout(gameFrame, gameBoard)
				} else {
					ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
				}
			}
		}
		return event
	})

	browser := ui.NewProblemBrowser(loader, factory, *flagMoves, log,
		func(id int) {
			openProblem(strconv.Itoa(id))
		},
		func() {
			app.Stop()
		},
	)

	rootPage.AddPage("browser", browser.Flex(), true, *flagProblem == "")
	rootPage.AddPage("gameview", gameFrame, true, *flagProblem != "")

	if *flagProblem != "" {
		openProblem(*flagProblem)
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		gameBoard.Close()
		panic(err)
	}
	record, answered := gameBoard.AnswerRecord(time.Now().Format("2006-01-02"))
	gameBoard.Close()

	if answer := gameBoard.Answer(); answer != "" {
		display, _ := coord.SGFToDisplay(answer)
		fmt.Printf("problem %d answer: %s (%s)\n", openedID, display, answer)
	}
	if answered && cfg.Problems.AnswersDir != "" {
		path, err := sgf.WriteAnswer(cfg.Problems.AnswersDir, record)
		if err != nil {
			log.Errorw("saving answer failed", "problem", record.ProblemID, "error", err)
			fmt.Fprintf(os.Stderr, "saving answer: %s\n", err)
			return
		}
		log.Infow("answer saved", "problem", record.ProblemID, "path", path)
		fmt.Printf("saved to %s\n", path)
	}
}

// openProblem loads and replays a problem, then shows the board.
func openProblem(id string) {
	p, err := loader.Load(id)
	if err != nil {
		log.Errorw("load failed", "problem", id, "error", err)
		showError(fmt.Sprintf("Failed to load problem %s:\n%s", id, err))
		return
	}

	opts := replay.Options{
		MaxMoves: ui.MoveLimit(p, *flagMoves),
		Setup:    sgf.SetupStones(p.SGF),
		Log:      log,
	}
	if *flagAbortOnReject {
		opts.Policy = replay.AbortOnReject
	}
	s, err := replay.Run(factory, sgf.ExtractMoves(p.SGF), opts)
	if err != nil {
		if s != nil {
			s.Close()
		}
		log.Errorw("replay failed", "problem", id, "error", err)
		showError(fmt.Sprintf("Failed to replay problem %s:\n%s", id, err))
		return
	}
	for _, r := range s.Rejected() {
		log.Warnw("move ignored", "problem", p.ID, "index", r.Index, "x", r.Move.X, "y", r.Move.Y, "error", r.Err)
	}

	gameBoard.Close()
	gameBoard.LoadProblem(p, s, votes)
	if votes != nil {
		gameBoard.SetMode(ui.ResultsMode)
	} else {
		gameBoard.SetMode(ui.AnswerMode)
	}
	openedID = p.ID
	rootPage.SwitchToPage("gameview")
}

func showError(text string) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("error")
		})
	rootPage.AddPage("error", modal, true, true)
}

// engineFactory picks the rules engine named in the configuration.
func engineFactory(ec config.EngineConfig, log *zap.SugaredLogger) (engine.Factory, error) {
	switch engine.Kind(strings.ToLower(ec.Kind)) {
	case engine.KindRules:
		return rules.Factory, nil
	case engine.KindGTP:
		path := ec.GnuGoPath
		if path == "" {
			path = "gnugo"
		}
		if _, err := exec.LookPath(path); err != nil {
			return nil, fmt.Errorf("GnuGo not found at %q (install gnugo or use -engine rules): %w", path, err)
		}
		return gtp.Factory(path, log), nil
	}
	return nil, fmt.Errorf("unknown engine %q", ec.Kind)
}
