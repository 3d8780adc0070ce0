package life

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/rules"
)

// Header lines of the Life 1.06 save format
const (
	FormatHeader = "#Life 1.06"
	NamePrefix   = "#N "
	RulesPrefix  = "#R "
	SizePrefix   = "#S "

	commentMarker = '#'
)

var (
	// ErrFileNotFound is returned when a save file does not exist
	ErrFileNotFound = errors.New("file not found")
	// ErrFileUnreadable is returned when a save file cannot be opened, read or written
	ErrFileUnreadable = errors.New("file unreadable")
	// ErrMalformedSizeLine is returned by the strict decoder for a bad #S line
	ErrMalformedSizeLine = errors.New("malformed size line")
	// ErrMalformedCellLine is returned by the strict decoder for a bad cell line
	ErrMalformedCellLine = errors.New("malformed cell line")
	// ErrMissingHeader is returned by the strict decoder when the file ends inside the header
	ErrMissingHeader = errors.New("missing header line")
)

// Decoder reads a saved game into g. Implementations decide how much of g a file may
// change and how malformed lines are treated.
type Decoder interface {
	Decode(r io.Reader, g *Game) (LoadReport, error)
}

// LoadReport summarises what a decoder did with a file
type LoadReport struct {
	Cells   int // cells brought to life
	Skipped int // lines ignored as malformed or out of bounds
}

// Write emits the game in Life 1.06 form: four header lines, then one "col row" line
// per live cell in row-major order
func (g *Game) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, FormatHeader)
	fmt.Fprintln(bw, NamePrefix+g.name)
	fmt.Fprintln(bw, RulesPrefix+g.rules.String())
	fmt.Fprintf(bw, "%s%d %d\n", SizePrefix, g.grid.Rows(), g.grid.Cols())
	for _, c := range g.grid.LiveCells() {
		fmt.Fprintf(bw, "%d %d\n", c.Col, c.Row)
	}
	return errors.Wrap(bw.Flush(), "[Write] failed to flush")
}

// SaveToFile writes the game to path, replacing any existing file
func (g *Game) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(ErrFileUnreadable, "[SaveToFile] unable to open output file %+v: %v", path, err)
	}
	if err = g.Write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "[SaveToFile] %+v", path)
	}
	if err = f.Close(); err != nil {
		return errors.Wrapf(ErrFileUnreadable, "[SaveToFile] %+v: %v", path, err)
	}
	return nil
}

// LoadFromFile reads live cells from path with the PermissiveDecoder
func (g *Game) LoadFromFile(path string) (LoadReport, error) {
	return g.LoadFromFileWith(path, PermissiveDecoder{})
}

// LoadFromFileWith reads path with dec. An unopenable file leaves the game unchanged.
func (g *Game) LoadFromFileWith(path string, dec Decoder) (LoadReport, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return LoadReport{}, errors.Wrapf(ErrFileNotFound, "[LoadFromFile] %+v", path)
	}
	if err != nil {
		return LoadReport{}, errors.Wrapf(ErrFileUnreadable, "[LoadFromFile] unable to open input file %+v: %v", path, err)
	}
	defer f.Close()

	report, err := dec.Decode(f, g)
	if err != nil {
		return report, errors.Wrapf(err, "[LoadFromFile] %+v", path)
	}
	g.history = nil
	return report, nil
}

// PermissiveDecoder ignores blank lines and lines starting with '#', and reads every
// other line as "x y" (column, row). Cells outside the grid and unparsable lines are
// skipped. Name, rules and size are never changed; existing life is kept.
type PermissiveDecoder struct{}

func (PermissiveDecoder) Decode(r io.Reader, g *Game) (LoadReport, error) {
	var (
		report  LoadReport
		scanner = bufio.NewScanner(r)
	)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == commentMarker {
			continue
		}

		col, row, ok := parsePair(line)
		if !ok || col < 0 || col >= g.grid.Cols() || row < 0 || row >= g.grid.Rows() {
			report.Skipped++
			continue
		}
		g.grid.Set(row, col, true)
		report.Cells++
	}
	if err := scanner.Err(); err != nil {
		return report, errors.Wrapf(ErrFileUnreadable, "[PermissiveDecoder] %v", err)
	}
	return report, nil
}

// StrictDecoder expects exactly the layout Write produces: format line, name, rules,
// size, then cell lines. The size line resizes the grid. Any malformed size or cell
// line aborts the read and the game is left as it was.
type StrictDecoder struct{}

func (StrictDecoder) Decode(r io.Reader, g *Game) (LoadReport, error) {
	var (
		report  LoadReport
		header  [4]string
		scanner = bufio.NewScanner(r)
	)
	for i := range header {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return report, errors.Wrapf(ErrFileUnreadable, "[StrictDecoder] %v", err)
			}
			return report, errors.Wrapf(ErrMissingHeader, "[StrictDecoder] line %d", i+1)
		}
		header[i] = strings.TrimRight(scanner.Text(), "\r")
	}

	name := stripPrefix(header[1], len(NamePrefix))
	rs, rulesOK := rules.Parse(stripPrefix(header[2], len(RulesPrefix)))

	rows, cols, ok := parsePair(stripPrefix(header[3], len(SizePrefix)))
	if !ok {
		return report, errors.Wrapf(ErrMalformedSizeLine, "[StrictDecoder] %q", header[3])
	}
	grid, err := model.NewGrid(rows, cols)
	if err != nil {
		return report, errors.Wrapf(ErrMalformedSizeLine, "[StrictDecoder] %q: %v", header[3], err)
	}

	for lineNo := len(header) + 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		col, row, ok := parsePair(line)
		if !ok {
			return LoadReport{}, errors.Wrapf(ErrMalformedCellLine, "[StrictDecoder] line %d: %q", lineNo, line)
		}
		grid.Set(row, col, true)
		report.Cells++
	}
	if err = scanner.Err(); err != nil {
		return LoadReport{}, errors.Wrapf(ErrFileUnreadable, "[StrictDecoder] %v", err)
	}

	g.name = name
	if rulesOK {
		g.rules = rs
	}
	model.GridToPool(g.grid, g.pool)
	g.grid = grid
	return report, nil
}

// stripPrefix drops the first n bytes of a header line
func stripPrefix(line string, n int) string {
	if len(line) < n {
		return ""
	}
	return line[n:]
}

// parsePair reads two whitespace separated integers. Trailing fields are ignored.
func parsePair(s string) (int, int, bool) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return 0, 0, false
	}
	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, false
	}
	return a, b, true
}
