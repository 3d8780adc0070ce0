package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/life"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/patterns"
	"github.com/sheikhrachel/go-life/utils"
)

const helpText = `Available commands:
  dump <filename>          - Save the current game state to the specified file.
  exit                     - Exit the program.
  help                     - Show this help message.
  tick <n=1> (or t <n=1>)  - Calculate n iterations (default: 1) and display the game field.
  random                   - Load a new random template.
  template <name> [r c]    - Place a template (built-in or from the templates directory).
  rules <B../S..>          - Replace the birth/survival rules.
  rulesfile <filename>     - Load rules from a file in the rules directory.
  randomrules              - Load a random rules file.
`

const ruleFileExt = ".txt"

var errExit = errors.New("exit requested")

// session is the interactive glue around one game
type session struct {
	ctx      context.Context
	config   utils.Config
	game     *life.Game
	renderer *model.TerminalRenderer
	stats    *utils.Stats
	rng      *rand.Rand
	out      io.Writer
	errOut   io.Writer
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config) (*life.Game, error) {
	game, err := life.NewGame(config.Name, config.Rows, config.Cols)
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] failed to create game")
	}
	game.TemplatesDir = config.TemplatesDir
	if config.UseMemoryPool {
		game.UsePool(model.NewGridPool())
	}
	if config.Rules != "" && !game.SetRulesFromString(config.Rules) {
		return nil, errors.Errorf("[initializeGame] rule string without '/': %q", config.Rules)
	}
	return game, nil
}

func newSession(ctx context.Context, config utils.Config, game *life.Game, out, errOut io.Writer) *session {
	seed := config.NoiseSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &session{
		ctx:      ctx,
		config:   config,
		game:     game,
		renderer: &model.TerminalRenderer{Out: out},
		stats:    utils.NewStats(),
		rng:      rand.New(rand.NewSource(seed)),
		out:      out,
		errOut:   errOut,
	}
}

func (s *session) reportf(format string, args ...any) {
	fmt.Fprintf(s.errOut, format+"\n", args...)
}

// placeRandomTemplate puts a random template from the templates directory at a random
// position. With no templates available it seeds a noise soup instead.
func (s *session) placeRandomTemplate() {
	catalog, err := patterns.LoadDir(s.ctx, s.config.TemplatesDir)
	if err == nil && catalog.Len() > 0 {
		name, p, _ := catalog.Random(s.rng)
		row, col := s.randomOrigin()
		s.game.PlacePattern(p, row, col)
		fmt.Fprintf(s.out, "Loaded template: %s at position (%d, %d)\n", name, col, row)
		return
	}
	if err != nil {
		s.reportf("Error: %v", err)
	} else {
		s.reportf("No templates found in %s", s.config.TemplatesDir)
	}

	seed := s.rng.Int63()
	s.game.SeedNoise(s.config.NoiseDensity, seed)
	fmt.Fprintf(s.out, "Seeded noise soup (density %.2f, seed %d)\n", s.config.NoiseDensity, seed)
}

func (s *session) randomOrigin() (int, int) {
	grid := s.game.Grid()
	return s.rng.Intn(grid.Rows()), s.rng.Intn(grid.Cols())
}

// placeTemplate places name at (row, col), or at a random origin when no position is given
func (s *session) placeTemplate(args []string) error {
	if len(args) == 0 {
		return errors.New("template needs a name")
	}
	row, col := s.randomOrigin()
	if len(args) >= 3 {
		var err error
		if row, err = strconv.Atoi(args[1]); err != nil {
			return errors.Wrapf(err, "bad row %q", args[1])
		}
		if col, err = strconv.Atoi(args[2]); err != nil {
			return errors.Wrapf(err, "bad column %q", args[2])
		}
	}
	if err := s.game.PlaceTemplateByName(args[0], row, col); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Loaded template: %s at position (%d, %d)\n", args[0], col, row)
	return nil
}

// ruleFiles lists the *.txt files in the rules directory
func (s *session) ruleFiles() ([]string, error) {
	entries, err := os.ReadDir(s.config.RulesDir)
	if err != nil {
		return nil, errors.Wrapf(err, "[ruleFiles] rules directory not found: %+v", s.config.RulesDir)
	}
	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && filepath.Ext(entry.Name()) == ruleFileExt {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *session) loadRulesFile(name string) error {
	applied, err := s.game.LoadRulesFile(filepath.Join(s.config.RulesDir, name))
	if err != nil {
		return err
	}
	if !applied {
		s.reportf("No rule found in %s, keeping %s", name, s.game.Rules())
		return nil
	}
	fmt.Fprintf(s.out, "Loaded rules: %s\n", s.game.Rules())
	return nil
}

func (s *session) loadRandomRules() error {
	names, err := s.ruleFiles()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return errors.Errorf("no rules files found in %s", s.config.RulesDir)
	}
	return s.loadRulesFile(names[s.rng.Intn(len(names))])
}

// tick advances the game and records stats for the batch
func (s *session) tick(n int) {
	start := time.Now()
	s.game.Advance(n)
	s.stats.Update(s.game.Generation(), n, s.game.Population(), time.Since(start))
}

// displayGameStatus shows the current game header, field and status line
func (s *session) displayGameStatus() {
	if s.config.ClearScreen {
		s.renderer.Clear()
	}

	var (
		grid    = s.game.Grid()
		living  = s.game.Population()
		density = float64(living) / float64(grid.Rows()*grid.Cols()) * 100
		status  = "Active"
	)
	if s.game.Stagnant() {
		status = "Stagnant"
	}
	if living == 0 {
		status = "Extinct"
	}

	s.renderer.Display(fmt.Sprintf("%s%s\n%s%s\n", life.NamePrefix, s.game.Name(), life.RulesPrefix, s.game.Rules()))
	s.renderer.Display(s.game.RenderText())
	s.renderer.Display(fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		s.game.Generation(), living, density, status))
	s.renderer.Display(fmt.Sprintf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		s.stats.GenerationsPerSecond, s.stats.AveragePopulation, s.stats.Runtime().Seconds()))
}

// execute runs one command line. errExit ends the session; other errors are reported
// and the session carries on.
func (s *session) execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "dump":
		if len(args) == 0 {
			return errors.New("dump needs a filename")
		}
		if err := s.game.SaveToFile(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Game state saved to %s\n", args[0])
	case "exit", "quit":
		return errExit
	case "help":
		fmt.Fprint(s.out, helpText)
	case "t", "tick":
		n := 1
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 0 {
				return errors.Errorf("tick count must be a non-negative integer, got %q", args[0])
			}
			n = v
		}
		s.tick(n)
		s.displayGameStatus()
	case "random":
		s.placeRandomTemplate()
		s.displayGameStatus()
	case "template":
		if err := s.placeTemplate(args); err != nil {
			return err
		}
		s.displayGameStatus()
	case "rules":
		if len(args) == 0 {
			return errors.New("rules needs a rule string")
		}
		if !s.game.SetRulesFromString(args[0]) {
			s.reportf("No '/' in %q, keeping %s", args[0], s.game.Rules())
			return nil
		}
		fmt.Fprintf(s.out, "Rules set to %s\n", s.game.Rules())
	case "rulesfile":
		if len(args) == 0 {
			return errors.New("rulesfile needs a filename")
		}
		return s.loadRulesFile(args[0])
	case "randomrules":
		return s.loadRandomRules()
	default:
		return errors.Errorf("invalid command %q, type 'help' for available commands", cmd)
	}
	return nil
}
