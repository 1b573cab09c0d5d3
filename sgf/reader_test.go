package sgf

import (
	"testing"

	"igomon/types"
)

const testSGF = `(;GM[1]FF[4]CA[UTF-8]AP[igomon:1.0]SZ[19]KM[6.5]PB[Shusaku]PW[Gennan]DT[1846-09-11]RE[B+2]
;B[cc];W[dd];B[ee])`

func TestExtractMoves(t *testing.T) {
	moves := ExtractMoves(testSGF)
	want := []types.Move{
		{Color: types.Black, X: 2, Y: 2},
		{Color: types.White, X: 3, Y: 3},
		{Color: types.Black, X: 4, Y: 4},
	}
	if len(moves) != len(want) {
		t.Fatalf("len(moves) = %d, want %d", len(moves), len(want))
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("moves[%d] = %+v, want %+v", i, moves[i], want[i])
		}
	}
}

func TestExtractMovesIsRestartable(t *testing.T) {
	first := ExtractMoves(testSGF)
	second := ExtractMoves(testSGF)
	if len(first) != len(second) {
		t.Fatalf("len differs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("move %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestExtractMovesSkipsPassesAndMalformed(t *testing.T) {
	sgf := `(;GM[1]FF[4]SZ[19]
;B[ee];W[];B[tt];W[z];B[zz];W[abc];B[ff])`

	moves := ExtractMoves(sgf)
	if len(moves) != 2 {
		t.Fatalf("len(moves) = %d, want 2: %+v", len(moves), moves)
	}
	if moves[0] != (types.Move{Color: types.Black, X: 4, Y: 4}) {
		t.Errorf("moves[0] = %+v", moves[0])
	}
	if moves[1] != (types.Move{Color: types.Black, X: 5, Y: 5}) {
		t.Errorf("moves[1] = %+v", moves[1])
	}
}

func TestExtractMovesIgnoresLookalikeProperties(t *testing.T) {
	// PB/PW/AB/AW and bracketed comment text must not be read as moves.
	sgf := `(;GM[1]FF[4]SZ[19]PB[B[aa]]PW[W]AB[bb]AW[cc]
;C[try B[dd\] here]B[pd]
;W[dp]LB[ee:1])`

	moves := ExtractMoves(sgf)
	want := []types.Move{
		{Color: types.Black, X: 15, Y: 3},
		{Color: types.White, X: 3, Y: 15},
	}
	if len(moves) != len(want) {
		t.Fatalf("len(moves) = %d, want %d: %+v", len(moves), len(want), moves)
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("moves[%d] = %+v, want %+v", i, moves[i], want[i])
		}
	}
}

func TestExtractMovesVariationsInTextualOrder(t *testing.T) {
	sgf := `(;SZ[19];B[aa](;W[bb];B[cc])(;W[dd]))`
	moves := ExtractMoves(sgf)
	if len(moves) != 4 {
		t.Fatalf("len(moves) = %d, want 4", len(moves))
	}
	if moves[3] != (types.Move{Color: types.White, X: 3, Y: 3}) {
		t.Errorf("moves[3] = %+v, want W at (3,3)", moves[3])
	}
}

func TestExtractMovesEmpty(t *testing.T) {
	if moves := ExtractMoves(""); len(moves) != 0 {
		t.Errorf("ExtractMoves(\"\") = %+v, want none", moves)
	}
	if moves := ExtractMoves("(;GM[1]SZ[19])"); len(moves) != 0 {
		t.Errorf("header only: got %+v, want none", moves)
	}
}

func TestLastMoveColor(t *testing.T) {
	color, ok := LastMoveColor(testSGF)
	if !ok || color != types.Black {
		t.Errorf("LastMoveColor = (%v, %v), want (black, true)", color, ok)
	}

	color, ok = LastMoveColor(`(;SZ[19];B[aa];W[])`)
	if !ok || color != types.White {
		t.Errorf("LastMoveColor with trailing pass = (%v, %v), want (white, true)", color, ok)
	}

	if _, ok := LastMoveColor(`(;SZ[19]PB[x])`); ok {
		t.Error("expected no last move for header-only record")
	}
}

func TestParseHeader(t *testing.T) {
	info := ParseHeader(testSGF)

	if info.BoardSize != 19 {
		t.Errorf("BoardSize = %d, want 19", info.BoardSize)
	}
	if info.Komi != 6.5 {
		t.Errorf("Komi = %f, want 6.5", info.Komi)
	}
	if info.PlayerBlack != "Shusaku" {
		t.Errorf("PlayerBlack = %q, want %q", info.PlayerBlack, "Shusaku")
	}
	if info.PlayerWhite != "Gennan" {
		t.Errorf("PlayerWhite = %q, want %q", info.PlayerWhite, "Gennan")
	}
	if info.Date != "1846-09-11" {
		t.Errorf("Date = %q, want %q", info.Date, "1846-09-11")
	}
	if info.Result != "B+2" {
		t.Errorf("Result = %q, want %q", info.Result, "B+2")
	}
	if info.MoveCount != 3 {
		t.Errorf("MoveCount = %d, want 3", info.MoveCount)
	}
}

func TestParseHeaderDefaults(t *testing.T) {
	info := ParseHeader(`(;GM[1]SZ[9];B[];W[])`)
	if info.BoardSize != 9 {
		t.Errorf("BoardSize = %d, want 9", info.BoardSize)
	}
	if info.MoveCount != 2 {
		t.Errorf("MoveCount = %d, want 2 (passes count)", info.MoveCount)
	}

	info = ParseHeader("")
	if info.BoardSize != 19 {
		t.Errorf("BoardSize = %d, want default 19", info.BoardSize)
	}
}

func TestSetupStones(t *testing.T) {
	sgf := `(;GM[1]FF[4]SZ[19]
;AB[dd][ff]AW[ee][zz]
;B[cc];W[gg])`

	stones := SetupStones(sgf)
	want := []types.Move{
		{Color: types.Black, X: 3, Y: 3},
		{Color: types.Black, X: 5, Y: 5},
		{Color: types.White, X: 4, Y: 4},
	}
	if len(stones) != len(want) {
		t.Fatalf("len(stones) = %d, want %d", len(stones), len(want))
	}
	for i := range want {
		if stones[i] != want[i] {
			t.Errorf("stones[%d] = %+v, want %+v", i, stones[i], want[i])
		}
	}
}
