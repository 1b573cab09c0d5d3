package coord

import (
	"errors"
	"strings"
	"testing"
)

func TestSGFToEngine(t *testing.T) {
	cases := []struct {
		code string
		x, y int
	}{
		{"aa", 0, 0},
		{"de", 3, 4},
		{"ss", 18, 18},
		{"pd", 15, 3},
	}
	for _, c := range cases {
		x, y, err := SGFToEngine(c.code)
		if err != nil {
			t.Fatalf("SGFToEngine(%q): %v", c.code, err)
		}
		if x != c.x || y != c.y {
			t.Errorf("SGFToEngine(%q) = (%d, %d), want (%d, %d)", c.code, x, y, c.x, c.y)
		}
	}
}

func TestSGFToEngineInvalid(t *testing.T) {
	for _, code := range []string{"", "a", "abc", "tt", "zz", "AA", "a1", "`a"} {
		x, y, err := SGFToEngine(code)
		if !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("SGFToEngine(%q) err = %v, want ErrInvalidCoordinate", code, err)
		}
		if x != OffBoard || y != OffBoard {
			t.Errorf("SGFToEngine(%q) = (%d, %d), want off board sentinel", code, x, y)
		}
	}
}

func TestEngineToSGFOutOfRange(t *testing.T) {
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {19, 0}, {0, 19}} {
		if _, err := EngineToSGF(p[0], p[1]); !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("EngineToSGF(%d, %d) err = %v, want ErrInvalidCoordinate", p[0], p[1], err)
		}
	}
}

func TestSGFRoundTrip(t *testing.T) {
	for x := 0; x < 19; x++ {
		for y := 0; y < 19; y++ {
			code, err := EngineToSGF(x, y)
			if err != nil {
				t.Fatalf("EngineToSGF(%d, %d): %v", x, y, err)
			}
			gx, gy, err := SGFToEngine(code)
			if err != nil {
				t.Fatalf("SGFToEngine(%q): %v", code, err)
			}
			if gx != x || gy != y {
				t.Errorf("round trip (%d, %d) -> %q -> (%d, %d)", x, y, code, gx, gy)
			}
			back, _ := EngineToSGF(gx, gy)
			if back != code {
				t.Errorf("EngineToSGF(SGFToEngine(%q)) = %q", code, back)
			}
		}
	}
}

func TestSGFToDisplay(t *testing.T) {
	cases := map[string]string{
		"aa": "A19",
		"as": "A1",
		"dp": "D4",
		"pd": "Q16",
		"ia": "J19",
		"ss": "T1",
		"jj": "K10",
	}
	for code, want := range cases {
		got, err := SGFToDisplay(code)
		if err != nil {
			t.Fatalf("SGFToDisplay(%q): %v", code, err)
		}
		if got != want {
			t.Errorf("SGFToDisplay(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestSGFToDisplayInvalid(t *testing.T) {
	got, err := SGFToDisplay("z")
	if !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("err = %v, want ErrInvalidCoordinate", err)
	}
	if got != "" {
		t.Errorf("SGFToDisplay(\"z\") = %q, want empty", got)
	}
}

func TestDisplayRoundTripNeverUsesI(t *testing.T) {
	for x := 0; x < 19; x++ {
		for y := 0; y < 19; y++ {
			v, err := EngineToDisplay(x, y)
			if err != nil {
				t.Fatalf("EngineToDisplay(%d, %d): %v", x, y, err)
			}
			if strings.HasPrefix(v, "I") {
				t.Fatalf("EngineToDisplay(%d, %d) = %q uses I", x, y, v)
			}
			gx, gy, err := DisplayToEngine(v)
			if err != nil {
				t.Fatalf("DisplayToEngine(%q): %v", v, err)
			}
			if gx != x || gy != y {
				t.Errorf("round trip (%d, %d) -> %q -> (%d, %d)", x, y, v, gx, gy)
			}
		}
	}
}

func TestDisplayToEngineInvalid(t *testing.T) {
	for _, v := range []string{"", "A", "I5", "A0", "A20", "U3", "D", "Dx"} {
		if _, _, err := DisplayToEngine(v); !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("DisplayToEngine(%q) err = %v, want ErrInvalidCoordinate", v, err)
		}
	}
}

func TestDisplayToSGF(t *testing.T) {
	got, err := DisplayToSGF("q16")
	if err != nil {
		t.Fatalf("DisplayToSGF: %v", err)
	}
	if got != "pd" {
		t.Errorf("DisplayToSGF(q16) = %q, want %q", got, "pd")
	}
}
