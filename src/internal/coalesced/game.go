package coalesced

import (
	"fmt"
	"strings"
)

// Game identifies the game a bundle belongs to.
type Game int

const (
	GameUnknown Game = iota
	ME1
	ME2
	ME3
	LE1
	LE2
	LE3
	LELauncher
)

var gameNames = []string{
	GameUnknown: "Unknown",
	ME1:         "ME1",
	ME2:         "ME2",
	ME3:         "ME3",
	LE1:         "LE1",
	LE2:         "LE2",
	LE3:         "LE3",
	LELauncher:  "LELauncher",
}

// Games lists every known game, in declaration order.
func Games() []Game {
	return []Game{ME1, ME2, ME3, LE1, LE2, LE3, LELauncher}
}

func (g Game) String() string {
	if g >= 0 && int(g) < len(gameNames) {
		return gameNames[g]
	}
	return fmt.Sprintf("Game(%d)", int(g))
}

// ParseGame resolves a game by name, ignoring case.
func ParseGame(name string) (Game, error) {
	for _, g := range Games() {
		if strings.EqualFold(g.String(), name) {
			return g, nil
		}
	}
	return GameUnknown, fmt.Errorf("unknown game: %s", name)
}

// IsLegendary reports whether g is part of the Legendary Edition.
func (g Game) IsLegendary() bool {
	return g == LE1 || g == LE2 || g == LE3 || g == LELauncher
}

// ForcesAddTyping reports whether values written by New and AddUnique merges
// are stored with the Add action. Only LE1 does this.
func (g Game) ForcesAddTyping() bool {
	return g == LE1
}

// HasLooseConfig reports whether the game's config can be represented as a
// directory of loose ini files.
func (g Game) HasLooseConfig() bool {
	switch g {
	case ME1, ME2, ME3, LE1, LE2, LE3:
		return true
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (g Game) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Game) UnmarshalText(text []byte) error {
	game, err := ParseGame(string(text))
	if err != nil {
		return err
	}
	*g = game
	return nil
}
