package overlay

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"igomon/types"
)

func samplePosition() types.Position {
	var pos types.Position
	pos = pos.With(2, 2, types.Black)
	pos = pos.With(3, 3, types.White)
	return pos
}

func sampleVotes() types.Votes {
	return types.Votes{
		"dd": {Votes: 3},
		"pd": {Votes: 10, Answers: []json.RawMessage{json.RawMessage(`{"name":"a"}`)}},
		"dp": {Votes: 5},
		"qq": {Votes: 4},
		"aa": {Votes: 0},
		"tt": {Votes: 2}, // off board
		"z":  {Votes: 7}, // malformed
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		votes int
		want  types.Tier
	}{
		{0, types.TierNone},
		{-1, types.TierNone},
		{1, types.TierLow},
		{4, types.TierLow},
		{5, types.TierMid},
		{9, types.TierMid},
		{10, types.TierHigh},
		{250, types.TierHigh},
	}
	for _, tt := range tests {
		if got := TierFor(tt.votes); got != tt.want {
			t.Errorf("TierFor(%d) = %q, want %q", tt.votes, got, tt.want)
		}
	}
}

func TestBuild(t *testing.T) {
	got := Build(Input{
		Position: samplePosition(),
		LastMove: &types.LastMove{X: 3, Y: 3, Color: types.White},
		Votes:    sampleVotes(),
		Clicked:  "pd",
		Proposed: &Point{X: 9, Y: 9},
		Turn:     types.Black,
	})

	want := []types.Annotation{
		{Kind: types.StoneMark, X: 2, Y: 2, Color: types.Black},
		{Kind: types.StoneMark, X: 3, Y: 3, Color: types.White},
		{Kind: types.LastMoveMark, X: 3, Y: 3, Color: types.Black},
		{Kind: types.VoteLabelOnStone, X: 3, Y: 3, Count: 3},
		{Kind: types.VoteBadge, X: 3, Y: 15, Count: 5, Tier: types.TierMid},
		{Kind: types.VoteBadge, X: 15, Y: 3, Count: 10, Tier: types.TierHigh},
		{Kind: types.VoteBadge, X: 16, Y: 16, Count: 4, Tier: types.TierLow},
		{Kind: types.ClickSelection, X: 15, Y: 3},
		{Kind: types.ProposedMove, X: 9, Y: 9, Color: types.Black},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildEmpty(t *testing.T) {
	if got := Build(Input{}); len(got) != 0 {
		t.Errorf("Build(empty) = %v, want none", got)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	in := Input{
		Position: samplePosition(),
		LastMove: &types.LastMove{X: 2, Y: 2, Color: types.Black},
		Votes:    sampleVotes(),
		Clicked:  "dp",
	}
	first := Build(in)
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, Build(in)); diff != "" {
			t.Fatalf("rebuild %d differs:\n%s", i, diff)
		}
	}
}

func TestBuildLastMoveRingColor(t *testing.T) {
	pos := samplePosition()
	got := Build(Input{Position: pos, LastMove: &types.LastMove{X: 2, Y: 2, Color: types.Black}})
	last := got[len(got)-1]
	if last.Kind != types.LastMoveMark || last.Color != types.White {
		t.Errorf("last-move mark = %+v, want white ring", last)
	}
}

func TestBuildOffBoardLastMoveDropped(t *testing.T) {
	got := Build(Input{LastMove: &types.LastMove{X: -1, Y: -1, Color: types.Black}})
	if len(got) != 0 {
		t.Errorf("Build = %v, want none", got)
	}
}

func TestBuildClickedWithoutVoteIgnored(t *testing.T) {
	got := Build(Input{Votes: types.Votes{"dd": {Votes: 1}}, Clicked: "pp"})
	for _, a := range got {
		if a.Kind == types.ClickSelection {
			t.Errorf("unexpected click selection %+v", a)
		}
	}
}

func TestBuildProposedOnStoneIgnored(t *testing.T) {
	got := Build(Input{Position: samplePosition(), Proposed: &Point{X: 2, Y: 2}, Turn: types.White})
	for _, a := range got {
		if a.Kind == types.ProposedMove {
			t.Errorf("unexpected proposed move %+v", a)
		}
	}
}

func TestBuildDoesNotShareResults(t *testing.T) {
	in := Input{Position: samplePosition()}
	a := Build(in)
	a[0].Color = types.White
	b := Build(in)
	if b[0].Color != types.Black {
		t.Error("mutating one result leaked into the next")
	}
}

func TestSelect(t *testing.T) {
	votes := sampleVotes()

	state, detail := Select(RenderState{}, votes, 15, 3)
	if state.Clicked != "pd" {
		t.Errorf("Clicked = %q, want pd", state.Clicked)
	}
	want := &AnswerDetail{Coordinate: "Q16", SGF: "pd", Entry: votes["pd"]}
	if diff := cmp.Diff(want, detail); diff != "" {
		t.Errorf("detail mismatch (-want +got):\n%s", diff)
	}

	cleared, detail := Select(state, votes, 9, 9)
	if cleared.Clicked != "" || detail != nil {
		t.Errorf("Select on empty point = (%+v, %+v), want cleared", cleared, detail)
	}
	if state.Clicked != "pd" {
		t.Error("Select modified the previous state")
	}

	zero, detail := Select(state, votes, 0, 0)
	if zero.Clicked != "" || detail != nil {
		t.Errorf("Select on a zero-vote point = (%+v, %+v), want cleared", zero, detail)
	}
	in := zero.Input(samplePosition(), nil, votes, types.Black)
	for _, a := range Build(in) {
		if a.Kind == types.ClickSelection {
			t.Errorf("zero-vote click produced %+v", a)
		}
	}

	same, detail := Select(state, votes, 19, 0)
	if same.Clicked != "pd" || detail != nil {
		t.Errorf("Select off board = (%+v, %+v), want unchanged", same, detail)
	}
}

func TestRenderStateInput(t *testing.T) {
	s := RenderState{Clicked: "dd"}.WithProposed(4, 5)
	in := s.Input(samplePosition(), nil, sampleVotes(), types.White)
	if in.Clicked != "dd" || in.Turn != types.White {
		t.Errorf("Input = %+v", in)
	}
	if in.Proposed == nil || *in.Proposed != (Point{X: 4, Y: 5}) {
		t.Fatalf("Proposed = %v, want (4, 5)", in.Proposed)
	}
	in.Proposed.X = 0
	if s.Proposed.X != 4 {
		t.Error("Input shares the proposed point with the state")
	}
}

type fakeValidator struct {
	pos     types.Position
	illegal map[Point]bool
}

func (f fakeValidator) Position() types.Position { return f.pos }

func (f fakeValidator) IsValid(x, y int, color types.Color) bool {
	return !f.illegal[Point{X: x, Y: y}]
}

func TestPropose(t *testing.T) {
	v := fakeValidator{pos: samplePosition(), illegal: map[Point]bool{{X: 0, Y: 0}: true}}

	code, err := Propose(v, types.Black, 3, 15)
	if err != nil || code != "dp" {
		t.Errorf("Propose(3, 15) = (%q, %v), want dp", code, err)
	}

	tests := []struct {
		name string
		turn types.Color
		x, y int
		want error
	}{
		{"off board", types.Black, 19, 3, ErrOffBoard},
		{"negative", types.Black, -1, 0, ErrOffBoard},
		{"occupied", types.Black, 2, 2, ErrOccupied},
		{"engine refuses", types.White, 0, 0, ErrIllegal},
		{"nobody to move", types.Empty, 5, 5, ErrIllegal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Propose(v, tt.turn, tt.x, tt.y); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeVotes(t *testing.T) {
	votes, err := DecodeVotes(strings.NewReader(`{"dd": {"votes": 3, "answers": [{"user": "x"}, "free text"]}, "pp": {"votes": 0}}`))
	if err != nil {
		t.Fatalf("DecodeVotes: %v", err)
	}
	if len(votes) != 2 || votes["dd"].Votes != 3 {
		t.Fatalf("votes = %+v", votes)
	}
	if got := string(votes["dd"].Answers[1]); got != `"free text"` {
		t.Errorf("answer passed through as %s", got)
	}

	if _, err := DecodeVotes(strings.NewReader(`{"dd": {"votes": -2}}`)); !errors.Is(err, ErrInvalidVotes) {
		t.Errorf("negative votes err = %v, want ErrInvalidVotes", err)
	}
	if _, err := DecodeVotes(strings.NewReader(`[1, 2]`)); err == nil {
		t.Error("non-object votes should fail")
	}
}

func TestReadVotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "votes.json")
	if err := os.WriteFile(path, []byte(`{"jj": {"votes": 12, "answers": []}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	votes, err := ReadVotes(path)
	if err != nil {
		t.Fatalf("ReadVotes: %v", err)
	}
	if votes["jj"].Votes != 12 {
		t.Errorf("jj votes = %d, want 12", votes["jj"].Votes)
	}

	if votes, err := ReadVotes(""); err != nil || votes != nil {
		t.Errorf("ReadVotes(\"\") = (%v, %v), want (nil, nil)", votes, err)
	}
	if _, err := ReadVotes(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v, want ErrNotExist", err)
	}
}
