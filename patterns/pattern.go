package patterns

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

const (
	liveMarker = 'O'

	// TemplateExt is the extension used by template files
	TemplateExt = ".txt"
)

var (
	// ErrTemplateNotFound is returned when a named template has no file to load from
	ErrTemplateNotFound = errors.New("template not found")
	// ErrTemplateUnreadable is returned when a template file exists but cannot be read
	ErrTemplateUnreadable = errors.New("template unreadable")
)

// Pattern is a live/dead matrix placed relative to an origin. Rows may differ in length.
type Pattern [][]bool

// Parse reads a template: each line is a row, O marks a live cell and any other
// character is dead
func Parse(r io.Reader) (Pattern, error) {
	var (
		p       Pattern
		scanner = bufio.NewScanner(r)
	)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		row := make([]bool, len(line))
		for i := 0; i < len(line); i++ {
			row[i] = line[i] == liveMarker
		}
		p = append(p, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "[Parse] failed to scan template")
	}
	return p, nil
}

// Load reads a template file from dir by filename. Names without an extension also
// match <name>.txt.
func Load(dir, name string) (Pattern, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, errors.Wrapf(ErrTemplateNotFound, "[Load] invalid template name: %+v", name)
	}

	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = append(candidates, name+TemplateExt)
	}

	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(ErrTemplateUnreadable, "[Load] %+v: %v", path, err)
		}

		p, err := Parse(f)
		f.Close()
		if err != nil {
			return nil, errors.Wrapf(ErrTemplateUnreadable, "[Load] %+v: %v", path, err)
		}
		return p, nil
	}

	return nil, errors.Wrapf(ErrTemplateNotFound, "[Load] %+v in %+v", name, dir)
}

// Place brings every live cell of p to life at origin + offset. Dead pattern cells
// leave the grid untouched, and the placement wraps around the grid edges.
func Place(g *model.Grid, p Pattern, originRow, originCol int) {
	for i, row := range p {
		for j, alive := range row {
			if alive {
				g.Set(originRow+i, originCol+j, true)
			}
		}
	}
}

// Height returns the number of rows in the pattern
func (p Pattern) Height() int {
	return len(p)
}

// Width returns the length of the longest row
func (p Pattern) Width() int {
	w := 0
	for _, row := range p {
		w = max(w, len(row))
	}
	return w
}

// Population counts the live cells
func (p Pattern) Population() (count int) {
	for _, row := range p {
		for _, alive := range row {
			if alive {
				count++
			}
		}
	}
	return
}

// Clone returns a deep copy of the pattern
func (p Pattern) Clone() Pattern {
	if p == nil {
		return nil
	}
	out := make(Pattern, len(p))
	for i, row := range p {
		out[i] = append([]bool(nil), row...)
	}
	return out
}
