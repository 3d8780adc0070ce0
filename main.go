package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/utils"
)

const prompt = "Enter command (type 'help' for available commands): "

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(argv []string, in io.Reader, out, errOut io.Writer) int {
	opts, err := parseArgs(argv, errOut)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(opts.configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(errOut, err)
			return 1
		}
		fmt.Fprintf(out, "Using default configuration (%s not found)\n", opts.configPath)
		config = utils.DefaultConfig()
	}

	game, err := initializeGame(config)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := newSession(ctx, config, game, out, errOut)

	switch opts.mode {
	case modeRandom:
		s.placeRandomTemplate()
	case modeLoad, modeBatch:
		report, err := game.LoadFromFile(opts.input)
		if err != nil {
			s.reportf("Error: %v", err)
		} else {
			fmt.Fprintf(out, "Game state loaded from file '%s' (%d cells, %d lines skipped)\n",
				opts.input, report.Cells, report.Skipped)
		}
	}

	if opts.iterations > 0 {
		s.tick(opts.iterations)
	}
	if opts.mode == modeBatch {
		if err = game.SaveToFile(opts.output); err != nil {
			s.reportf("Error: %v", err)
		} else {
			fmt.Fprintf(out, "Game state saved to file '%s'\n", opts.output)
		}
	}

	return s.loop(in)
}

// loop reads commands until exit, end of input or an interrupt
func (s *session) loop(in io.Reader) int {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-s.ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(s.out, prompt)
		select {
		case <-s.ctx.Done():
			fmt.Fprintln(s.out, "\nShutting down gracefully...")
			s.printFinalStats()
			return 0
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				s.printFinalStats()
				return 0
			}
			err := s.execute(line)
			if errors.Is(err, errExit) {
				fmt.Fprintln(s.out, "Thank you for exploring the Game of Life! Goodbye!")
				return 0
			}
			if err != nil {
				s.reportf("Error: %v", err)
			}
		}
	}
}

func (s *session) printFinalStats() {
	fmt.Fprintf(s.out, "Final stats: generation %d, %d living cells, %.1f avg population\n",
		s.game.Generation(), s.game.Population(), s.stats.AveragePopulation)
}
