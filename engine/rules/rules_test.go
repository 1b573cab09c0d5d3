package rules

import (
	"errors"
	"testing"

	"igomon/engine"
	"igomon/types"
)

type play struct {
	x, y  int
	color types.Color
}

func playAll(t *testing.T, e *Engine, moves []play) {
	t.Helper()
	for i, m := range moves {
		if err := e.Play(m.x, m.y, m.color); err != nil {
			t.Fatalf("move %d (%d,%d %v): %v", i, m.x, m.y, m.color, err)
		}
	}
}

func TestPlayPlacesStones(t *testing.T) {
	e := New()
	playAll(t, e, []play{
		{4, 4, types.Black},
		{2, 2, types.White},
		{6, 6, types.Black},
	})

	pos := e.Position()
	checks := []struct {
		x, y  int
		color types.Color
	}{
		{4, 4, types.Black},
		{2, 2, types.White},
		{6, 6, types.Black},
		{0, 0, types.Empty},
	}
	for _, c := range checks {
		if got := pos.At(c.x, c.y); got != c.color {
			t.Errorf("At(%d, %d) = %v, want %v", c.x, c.y, got, c.color)
		}
	}
	if pos.Stones() != 3 {
		t.Errorf("Stones() = %d, want 3", pos.Stones())
	}
}

func TestSingleStoneCapture(t *testing.T) {
	// Black surrounds a white stone at (1,0) on the top edge
	e := New()
	playAll(t, e, []play{
		{0, 0, types.Black},
		{1, 0, types.White},
		{2, 0, types.Black},
		{4, 4, types.White},
		{1, 1, types.Black},
	})

	pos := e.Position()
	if pos.At(1, 0) != types.Empty {
		t.Errorf("At(1, 0) = %v, want empty (captured)", pos.At(1, 0))
	}
	for _, p := range [][2]int{{0, 0}, {2, 0}, {1, 1}} {
		if pos.At(p[0], p[1]) != types.Black {
			t.Errorf("At(%d, %d) = %v, want black", p[0], p[1], pos.At(p[0], p[1]))
		}
	}
	if pos.At(4, 4) != types.White {
		t.Errorf("At(4, 4) = %v, want white", pos.At(4, 4))
	}
}

func TestGroupCapture(t *testing.T) {
	// White group at (0,0)+(1,0) is captured by B(1,1)
	e := New()
	playAll(t, e, []play{
		{2, 0, types.Black},
		{0, 0, types.White},
		{0, 1, types.Black},
		{1, 0, types.White},
		{1, 1, types.Black},
	})

	pos := e.Position()
	if pos.At(0, 0) != types.Empty || pos.At(1, 0) != types.Empty {
		t.Errorf("white group not captured: (0,0)=%v (1,0)=%v", pos.At(0, 0), pos.At(1, 0))
	}
	if pos.Stones() != 3 {
		t.Errorf("Stones() = %d, want 3", pos.Stones())
	}
}

func TestRejectsOccupiedAndOffBoard(t *testing.T) {
	e := New()
	playAll(t, e, []play{{3, 3, types.Black}})

	for _, m := range []play{
		{3, 3, types.White},
		{-1, 0, types.Black},
		{19, 0, types.Black},
		{0, 19, types.White},
		{5, 5, types.Empty},
	} {
		if err := e.Play(m.x, m.y, m.color); !errors.Is(err, engine.ErrReplayRejected) {
			t.Errorf("Play(%d, %d, %v) err = %v, want ErrReplayRejected", m.x, m.y, m.color, err)
		}
		if e.IsValid(m.x, m.y, m.color) {
			t.Errorf("IsValid(%d, %d, %v) = true, want false", m.x, m.y, m.color)
		}
	}
	if e.Position().Stones() != 1 {
		t.Errorf("rejected moves changed the position")
	}
}

func TestRejectsSuicide(t *testing.T) {
	e := New()
	playAll(t, e, []play{
		{1, 0, types.Black},
		{10, 10, types.White},
		{0, 1, types.Black},
	})

	before := e.Position()
	if e.IsValid(0, 0, types.White) {
		t.Error("IsValid for suicide = true, want false")
	}
	if err := e.Play(0, 0, types.White); !errors.Is(err, engine.ErrReplayRejected) {
		t.Errorf("suicide err = %v, want ErrReplayRejected", err)
	}
	if e.Position() != before {
		t.Error("suicide attempt changed the position")
	}
	// The same point is fine for Black.
	if !e.IsValid(0, 0, types.Black) {
		t.Error("IsValid(0, 0, black) = false, want true")
	}
}

func TestSimpleKo(t *testing.T) {
	e := New()
	playAll(t, e, []play{
		{1, 0, types.Black},
		{2, 0, types.White},
		{0, 1, types.Black},
		{3, 1, types.White},
		{1, 2, types.Black},
		{2, 2, types.White},
		{15, 15, types.Black},
		{1, 1, types.White},
		{2, 1, types.Black}, // takes the ko
	})

	if e.Position().At(1, 1) != types.Empty {
		t.Fatalf("white stone at (1,1) should be captured")
	}
	if e.IsValid(1, 1, types.White) {
		t.Error("immediate ko recapture should be invalid")
	}
	if err := e.Play(1, 1, types.White); !errors.Is(err, engine.ErrReplayRejected) {
		t.Errorf("ko recapture err = %v, want ErrReplayRejected", err)
	}

	// Ko threats elsewhere lift the restriction.
	playAll(t, e, []play{
		{10, 10, types.White},
		{16, 16, types.Black},
	})
	if !e.IsValid(1, 1, types.White) {
		t.Error("recapture after exchange should be valid")
	}
	playAll(t, e, []play{{1, 1, types.White}})
	if e.Position().At(2, 1) != types.Empty {
		t.Error("black stone at (2,1) should be captured by the recapture")
	}
}

func TestPositionIsSnapshot(t *testing.T) {
	e := New()
	playAll(t, e, []play{{3, 3, types.Black}})
	snap := e.Position()
	playAll(t, e, []play{{4, 4, types.White}})

	if snap.At(4, 4) != types.Empty {
		t.Error("earlier snapshot observed a later move")
	}
	if snap.Stones() != 1 {
		t.Errorf("snapshot Stones() = %d, want 1", snap.Stones())
	}
}
