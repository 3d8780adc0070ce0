package life

import (
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/patterns"
	"github.com/sheikhrachel/go-life/rules"
)

const (
	// DefaultTemplatesDir is where templates are looked up by name
	DefaultTemplatesDir = "templates"

	firstGeneration = 1
	historySize     = 5
)

// Game is one simulation session: a named grid evolving under a rule set.
// A Game is not safe for concurrent use.
type Game struct {
	name       string
	grid       *model.Grid
	rules      rules.RuleSet
	generation int

	// TemplatesDir is searched by PlaceTemplateByName after the built-in shapes
	TemplatesDir string

	pool    *model.GridPool
	history []string // recent grid hashes for stagnation detection
}

// NewGame creates a game with an all-dead rows x cols grid and B3/S23 rules
func NewGame(name string, rows, cols int) (*Game, error) {
	grid, err := model.NewGrid(rows, cols)
	if err != nil {
		return nil, errors.Wrapf(err, "[NewGame] %+v", name)
	}
	return &Game{
		name:         name,
		grid:         grid,
		rules:        rules.Conway(),
		generation:   firstGeneration,
		TemplatesDir: DefaultTemplatesDir,
	}, nil
}

// UsePool makes Advance recycle generation buffers through pool. nil disables pooling.
func (g *Game) UsePool(pool *model.GridPool) {
	g.pool = pool
}

// Name returns the label written to the save file header
func (g *Game) Name() string {
	return g.name
}

// Grid returns the current generation. The grid is replaced by Advance, so callers
// should not hold on to it across calls.
func (g *Game) Grid() *model.Grid {
	return g.grid
}

// Rules returns the active rule set
func (g *Game) Rules() rules.RuleSet {
	return g.rules
}

// Generation returns the generation counter, which starts at 1
func (g *Game) Generation() int {
	return g.generation
}

// Population returns the number of living cells
func (g *Game) Population() int {
	return g.grid.CountLivingCells()
}

// Advance applies the transition n times. Each transition bumps the generation counter.
func (g *Game) Advance(n int) {
	for i, steps := 0, max(n, 0); i < steps; i++ {
		g.recordHistory()

		var next *model.Grid
		if g.pool != nil {
			next = g.pool.Get(g.grid.Rows(), g.grid.Cols())
		} else {
			next, _ = model.NewGrid(g.grid.Rows(), g.grid.Cols())
		}
		Step(g.grid, next, g.rules)

		model.GridToPool(g.grid, g.pool)
		g.grid = next
		g.generation++
	}
}

func (g *Game) recordHistory() {
	g.history = append(g.history, g.grid.Hash())
	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// Stagnant reports whether the current generation repeats one of the last few,
// i.e. the board is static or cycling with a short period
func (g *Game) Stagnant() bool {
	if len(g.history) == 0 {
		return false
	}
	current := g.grid.Hash()
	for _, h := range g.history {
		if h == current {
			return true
		}
	}
	return false
}

// SetRulesFromString replaces the rules when s carries a '/' delimiter and leaves
// them untouched otherwise. It reports whether the rules were replaced.
func (g *Game) SetRulesFromString(s string) bool {
	rs, ok := rules.Parse(s)
	if ok {
		g.rules = rs
	}
	return ok
}

// LoadRulesFile reads a rule line from path. Unreadable files are returned as errors
// and a line without a delimiter is ignored; in both cases the rules stay as they were.
func (g *Game) LoadRulesFile(path string) (bool, error) {
	rs, ok, err := rules.LoadFile(path)
	if err != nil {
		return false, errors.Wrapf(err, "[LoadRulesFile] %+v", path)
	}
	if ok {
		g.rules = rs
	}
	return ok, nil
}

// PlacePattern brings the live cells of p to life relative to (row, col)
func (g *Game) PlacePattern(p patterns.Pattern, row, col int) {
	patterns.Place(g.grid, p, row, col)
	g.history = nil
}

// PlaceTemplateByName places a built-in shape or, failing that, a template file from
// TemplatesDir. A name that resolves to neither returns patterns.ErrTemplateNotFound.
func (g *Game) PlaceTemplateByName(name string, row, col int) error {
	p, ok := patterns.Builtin(name)
	if !ok {
		var err error
		if p, err = patterns.Load(g.TemplatesDir, name); err != nil {
			return errors.Wrapf(err, "[PlaceTemplateByName] %+v", name)
		}
	}
	g.PlacePattern(p, row, col)
	return nil
}

// SeedNoise adds a Perlin noise soup over the whole grid
func (g *Game) SeedNoise(density float64, seed int64) {
	g.PlacePattern(patterns.Noise(g.grid.Rows(), g.grid.Cols(), density, seed), 0, 0)
}

// RenderText returns the bordered text view of the current generation
func (g *Game) RenderText() string {
	return model.Render(g.grid)
}
