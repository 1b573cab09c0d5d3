package gtp

import (
	"fmt"
	"strings"

	"igomon/coord"
	"igomon/types"
)

// GTP vertices use the same letters as display notation (A-T without I,
// rows 1-19 from the bottom), so conversion is delegated to coord.

// posToGTP converts engine coordinates to a GTP vertex.
// (0, 18) -> A1, (3, 15) -> D4, (15, 3) -> Q16
func posToGTP(x, y int) (string, error) {
	return coord.EngineToDisplay(x, y)
}

// gtpToPos converts a GTP vertex to engine coordinates.
// Returns (-1, -1) for "pass".
func gtpToPos(vertex string) (int, int, error) {
	if strings.EqualFold(strings.TrimSpace(vertex), "pass") {
		return -1, -1, nil
	}
	return coord.DisplayToEngine(vertex)
}

// colorToGTP converts a stone color to the GTP color string.
func colorToGTP(color types.Color) (string, error) {
	switch color {
	case types.Black:
		return "black", nil
	case types.White:
		return "white", nil
	}
	return "", fmt.Errorf("no GTP color for %v", color)
}
