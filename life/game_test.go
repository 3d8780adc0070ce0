package life

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/patterns"
)

func newGame(t *testing.T, rows, cols int) *Game {
	t.Helper()
	g, err := NewGame("Test Game", rows, cols)
	if err != nil {
		t.Fatalf("NewGame(%d, %d): %v", rows, cols, err)
	}
	return g
}

func setAlive(g *Game, cells ...model.Cell) {
	for _, c := range cells {
		g.Grid().Set(c.Row, c.Col, true)
	}
}

// expectCells fails unless exactly the given cells are alive
func expectCells(t *testing.T, g *Game, want ...model.Cell) {
	t.Helper()
	got := g.Grid().LiveCells()
	slices.SortFunc(want, func(a, b model.Cell) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	if !slices.Equal(got, want) {
		t.Fatalf("live cells = %v, want %v", got, want)
	}
}

func TestNewGame(t *testing.T) {
	g := newGame(t, 2, 123)
	if g.Grid().Rows() != 2 || g.Grid().Cols() != 123 {
		t.Fatalf("size = %dx%d", g.Grid().Rows(), g.Grid().Cols())
	}
	if g.Name() != "Test Game" || g.Generation() != 1 {
		t.Fatalf("name=%q generation=%d", g.Name(), g.Generation())
	}
	if g.Rules().String() != "B3/S23" {
		t.Fatalf("rules = %s", g.Rules())
	}
	if g.Population() != 0 {
		t.Fatal("new game should be all dead")
	}

	if _, err := NewGame("bad", 0, 4); !errors.Is(err, model.ErrInvalidDimension) {
		t.Fatalf("NewGame(0,4) err = %v", err)
	}
}

func TestAdvanceEmptyStaysEmpty(t *testing.T) {
	g := newGame(t, 6, 6)
	g.Advance(3)
	if g.Population() != 0 {
		t.Fatalf("population = %d, want 0", g.Population())
	}
}

func TestAdvanceBlockIsStill(t *testing.T) {
	g := newGame(t, 5, 5)
	block := []model.Cell{{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 1}, {Row: 2, Col: 2}}
	setAlive(g, block...)

	g.Advance(1)
	expectCells(t, g, block...)
	if !g.Stagnant() {
		t.Fatal("still life should be reported stagnant")
	}
}

func TestAdvanceBlinkerOscillates(t *testing.T) {
	g := newGame(t, 5, 5)
	horizontal := []model.Cell{{Row: 2, Col: 1}, {Row: 2, Col: 2}, {Row: 2, Col: 3}}
	vertical := []model.Cell{{Row: 1, Col: 2}, {Row: 2, Col: 2}, {Row: 3, Col: 2}}
	setAlive(g, horizontal...)

	g.Advance(1)
	expectCells(t, g, vertical...)
	if g.Stagnant() {
		t.Fatal("blinker after one step has not repeated yet")
	}

	g.Advance(1)
	expectCells(t, g, horizontal...)
	if !g.Stagnant() {
		t.Fatal("period-2 oscillator should be reported stagnant")
	}
}

func TestAdvanceDiesOnTinyTorus(t *testing.T) {
	g := newGame(t, 2, 2)
	setAlive(g, model.Cell{Row: 0, Col: 0}, model.Cell{Row: 0, Col: 1}, model.Cell{Row: 1, Col: 1})
	g.Advance(1)
	expectCells(t, g)
}

func TestAdvanceCornerBlockAcrossWrap(t *testing.T) {
	g := newGame(t, 5, 5)
	setAlive(g, model.Cell{Row: 0, Col: 0}, model.Cell{Row: 1, Col: 0}, model.Cell{Row: 0, Col: 1})
	g.Advance(1)
	expectCells(t, g, model.Cell{Row: 0, Col: 0}, model.Cell{Row: 0, Col: 1}, model.Cell{Row: 1, Col: 0}, model.Cell{Row: 1, Col: 1})
}

func TestAdvanceGliderWrapsBackHome(t *testing.T) {
	g := newGame(t, 8, 8)
	if err := g.PlaceTemplateByName("glider", 0, 0); err != nil {
		t.Fatal(err)
	}
	start := g.Grid().LiveCells()

	// a glider moves one cell diagonally every 4 generations, 32 brings it around an 8x8 torus
	g.Advance(32)
	expectCells(t, g, start...)
	if g.Generation() != 33 {
		t.Fatalf("generation = %d, want 33", g.Generation())
	}
}

func TestAdvanceCountsGenerations(t *testing.T) {
	g := newGame(t, 4, 4)
	g.Advance(0)
	g.Advance(-3)
	if g.Generation() != 1 {
		t.Fatalf("no-op advance moved generation to %d", g.Generation())
	}
	g.Advance(1)
	g.Advance(4)
	if g.Generation() != 6 {
		t.Fatalf("generation = %d, want 6", g.Generation())
	}
}

func TestAdvanceWithPoolMatchesWithout(t *testing.T) {
	plain := newGame(t, 20, 20)
	pooled := newGame(t, 20, 20)
	pooled.UsePool(model.NewGridPool())

	for _, g := range []*Game{plain, pooled} {
		if err := g.PlaceTemplateByName("pentadecathlon", 5, 5); err != nil {
			t.Fatal(err)
		}
		g.Advance(15)
	}
	if plain.Grid().Hash() != pooled.Grid().Hash() {
		t.Fatal("pooled evolution diverged")
	}
}

func TestStepDoesNotReadOwnWrites(t *testing.T) {
	g := newGame(t, 5, 5)
	setAlive(g, model.Cell{Row: 2, Col: 1}, model.Cell{Row: 2, Col: 2}, model.Cell{Row: 2, Col: 3})
	before := g.Grid().Hash()

	next := Next(g.Grid(), g.Rules())
	if g.Grid().Hash() != before {
		t.Fatal("Next mutated its source grid")
	}
	if !next.Get(1, 2) || !next.Get(3, 2) || next.Get(2, 1) {
		t.Fatal("unexpected next generation")
	}
}

func TestHighLifeReplicatorBirth(t *testing.T) {
	g := newGame(t, 7, 7)
	if !g.SetRulesFromString("B36/S23") {
		t.Fatal("rules not applied")
	}
	// six neighbours around the centre: born under B36, not under B3
	setAlive(g,
		model.Cell{Row: 2, Col: 2}, model.Cell{Row: 2, Col: 3}, model.Cell{Row: 2, Col: 4},
		model.Cell{Row: 4, Col: 2}, model.Cell{Row: 4, Col: 3}, model.Cell{Row: 4, Col: 4},
	)
	next := Next(g.Grid(), g.Rules())
	if !next.Get(3, 3) {
		t.Fatal("centre should be born with six neighbours under B36")
	}
}

func TestSetRulesFromString(t *testing.T) {
	g := newGame(t, 3, 3)
	if g.SetRulesFromString("nonsense") {
		t.Fatal("string without '/' must not apply")
	}
	if g.Rules().String() != "B3/S23" {
		t.Fatalf("rules changed to %s", g.Rules())
	}
	if !g.SetRulesFromString("B2/S") {
		t.Fatal("B2/S should apply")
	}
	if g.Rules().String() != "B2/S" {
		t.Fatalf("rules = %s", g.Rules())
	}
}

func TestLoadRulesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "day_and_night.txt")
	if err := os.WriteFile(path, []byte("B3678/S34678\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	g := newGame(t, 3, 3)
	ok, err := g.LoadRulesFile(path)
	if err != nil || !ok {
		t.Fatalf("LoadRulesFile: ok=%v err=%v", ok, err)
	}
	if g.Rules().String() != "B3678/S34678" {
		t.Fatalf("rules = %s", g.Rules())
	}

	if _, err = g.LoadRulesFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Fatal("missing rules file should be reported")
	}
	if g.Rules().String() != "B3678/S34678" {
		t.Fatal("failed load must keep the rules")
	}
}

func TestPlaceTemplateByName(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "diag.txt"), []byte("O..\n.O.\n..O\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	g := newGame(t, 5, 5)
	g.TemplatesDir = dir
	if err := g.PlaceTemplateByName("diag.txt", 3, 3); err != nil {
		t.Fatal(err)
	}
	expectCells(t, g, model.Cell{Row: 3, Col: 3}, model.Cell{Row: 4, Col: 4}, model.Cell{Row: 0, Col: 0})

	err := g.PlaceTemplateByName("nosuch.txt", 0, 0)
	if !errors.Is(err, patterns.ErrTemplateNotFound) {
		t.Fatalf("err = %v, want ErrTemplateNotFound", err)
	}
	if g.Population() != 3 {
		t.Fatal("failed placement must leave the grid alone")
	}
}

func TestSeedNoise(t *testing.T) {
	a := newGame(t, 16, 16)
	b := newGame(t, 16, 16)
	a.SeedNoise(0.5, 99)
	b.SeedNoise(0.5, 99)
	if a.Grid().Hash() != b.Grid().Hash() {
		t.Fatal("same seed should give the same soup")
	}
}

func TestRenderText(t *testing.T) {
	g := newGame(t, 1, 2)
	setAlive(g, model.Cell{Row: 0, Col: 1})
	if got, want := g.RenderText(), "┌--┐\n│ X│\n└--┘\n"; got != want {
		t.Fatalf("RenderText = %q, want %q", got, want)
	}
}
