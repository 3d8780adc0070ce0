package main

import (
	"flag"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// mode selects how the first generation is produced
type mode int

const (
	modeRandom mode = iota // no input file: random template
	modeLoad               // input file only
	modeBatch              // input file, iterations and output file
)

var lifeExts = []string{".lif", ".life"}

// options holds the parsed command line
type options struct {
	input      string
	output     string
	iterations int
	configPath string
	mode       mode
}

func newFlagSet(o *options, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("go-life", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.IntVar(&o.iterations, "i", 0, "number of generations to compute before saving")
	fs.IntVar(&o.iterations, "iterations", 0, "same as -i")
	fs.StringVar(&o.output, "o", "", "file to save the state to after the iterations")
	fs.StringVar(&o.output, "output", "", "same as -o")
	fs.StringVar(&o.configPath, "config", "config.json", "JSON configuration file")
	fs.Usage = func() {
		io.WriteString(out, "usage: go-life [input.lif] [-i N | --iterations=N] [-o out.lif | --output=out.lif] [-config file]\n")
		fs.PrintDefaults()
	}
	return fs
}

// parseArgs reads [input] [-i N] [-o output] in any order. A second positional is
// taken as the output file.
func parseArgs(argv []string, errOut io.Writer) (options, error) {
	var o options
	fs := newFlagSet(&o, errOut)

	flagArgs, posArgs := splitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, errors.Wrap(err, "[parseArgs] invalid arguments")
	}

	switch len(posArgs) {
	case 0:
	case 1:
		o.input = posArgs[0]
	case 2:
		o.input = posArgs[0]
		if o.output == "" {
			o.output = posArgs[1]
		}
	default:
		return o, errors.Errorf("[parseArgs] unexpected arguments: %v", posArgs[2:])
	}

	if o.iterations < 0 {
		return o, errors.Errorf("[parseArgs] iterations must not be negative, got %d", o.iterations)
	}

	switch {
	case o.input == "":
		o.mode = modeRandom
	case o.output != "" && o.iterations > 0:
		o.mode = modeBatch
	default:
		o.mode = modeLoad
	}

	if o.mode != modeRandom && !hasLifeExt(o.input) {
		return o, errors.Errorf("[parseArgs] invalid input filename %q, want .lif or .life", o.input)
	}
	if o.mode == modeBatch && !hasLifeExt(o.output) {
		return o, errors.Errorf("[parseArgs] invalid output filename %q, want .lif or .life", o.output)
	}
	return o, nil
}

func hasLifeExt(name string) bool {
	for _, ext := range lifeExts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// splitFlagsAndPositionals separates flag-like args from positionals so flags may
// follow the input file
func splitFlagsAndPositionals(fs *flag.FlagSet, argv []string) (flagArgs, posArgs []string) {
	boolFlags := map[string]bool{}
	fs.VisitAll(func(f *flag.Flag) {
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			boolFlags[f.Name] = true
		}
	})

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		if arg == "--" {
			posArgs = append(posArgs, argv[i+1:]...)
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			posArgs = append(posArgs, arg)
			continue
		}
		flagArgs = append(flagArgs, arg)
		if strings.Contains(arg, "=") {
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if !boolFlags[name] && i+1 < len(argv) {
			flagArgs = append(flagArgs, argv[i+1])
			i++
		}
	}
	return
}
