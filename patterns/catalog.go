package patterns

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyCatalog is returned when a random pick is asked of a catalog with no templates
var ErrEmptyCatalog = errors.New("no templates in catalog")

// Catalog is the set of templates found in a templates directory
type Catalog struct {
	dir       string
	names     []string
	templates map[string]Pattern
}

// LoadDir parses every *.txt template in dir. A missing directory is reported as
// ErrTemplateNotFound so callers can tell it apart from a directory with no templates.
func LoadDir(ctx context.Context, dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(ErrTemplateNotFound, "[LoadDir] templates directory not found: %+v", dir)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadDir] failed to read directory: %+v", dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.EqualFold(filepath.Ext(entry.Name()), TemplateExt) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	parsed := make([]Pattern, len(names))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := Load(dir, name)
			if err != nil {
				return err
			}
			parsed[i] = p
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, errors.Wrapf(err, "[LoadDir] failed to load templates from: %+v", dir)
	}

	c := &Catalog{
		dir:       dir,
		names:     names,
		templates: make(map[string]Pattern, len(names)),
	}
	for i, name := range names {
		c.templates[name] = parsed[i]
	}
	return c, nil
}

// Dir returns the directory the catalog was loaded from
func (c *Catalog) Dir() string {
	return c.dir
}

// Names lists the template filenames in sorted order
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of templates
func (c *Catalog) Len() int {
	return len(c.names)
}

// Get returns a copy of the named template
func (c *Catalog) Get(name string) (Pattern, bool) {
	p, ok := c.templates[name]
	if !ok && filepath.Ext(name) == "" {
		p, ok = c.templates[name+TemplateExt]
	}
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// Random picks a template uniformly at random
func (c *Catalog) Random(rng *rand.Rand) (string, Pattern, error) {
	if len(c.names) == 0 {
		return "", nil, errors.Wrapf(ErrEmptyCatalog, "[Random] %+v", c.dir)
	}
	name := c.names[rng.Intn(len(c.names))]
	return name, c.templates[name].Clone(), nil
}
