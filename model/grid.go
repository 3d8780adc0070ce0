package model

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidDimension is returned when a grid is built or resized with a non-positive size
var ErrInvalidDimension = errors.New("grid dimensions must be positive")

// Cell is a live cell position on the grid
type Cell struct {
	Row int
	Col int
}

// Grid is a dense toroidal field of cells. Every coordinate wraps around the edges.
type Grid struct {
	rows  int
	cols  int
	cells [][]bool
}

// NewGrid creates an all-dead grid with the specified dimensions
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimension, "[NewGrid] %dx%d", rows, cols)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: allocCells(rows, cols),
	}, nil
}

func allocCells(rows, cols int) [][]bool {
	cells := make([][]bool, rows)
	for i := range cells {
		cells[i] = make([]bool, cols)
	}
	return cells
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.cols
}

// Resize replaces the grid with a new all-dead grid of the given dimensions
func (g *Grid) Resize(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return errors.Wrapf(ErrInvalidDimension, "[Resize] %dx%d", rows, cols)
	}
	g.reset(rows, cols)
	return nil
}

// reset reuses the backing rows where the sizes line up
func (g *Grid) reset(rows, cols int) {
	g.rows = rows
	g.cols = cols

	if len(g.cells) != rows {
		g.cells = make([][]bool, rows)
	}
	for i := range g.cells {
		if len(g.cells[i]) != cols {
			g.cells[i] = make([]bool, cols)
		} else {
			clear(g.cells[i])
		}
	}
}

// Clear kills every cell
func (g *Grid) Clear() {
	for _, row := range g.cells {
		clear(row)
	}
}

func wrap(x, n int) int {
	return ((x % n) + n) % n
}

// Set sets a cell to alive (true) or dead (false)
func (g *Grid) Set(row, col int, alive bool) {
	g.cells[wrap(row, g.rows)][wrap(col, g.cols)] = alive
}

// Get returns the state of a cell
func (g *Grid) Get(row, col int) bool {
	return g.cells[wrap(row, g.rows)][wrap(col, g.cols)]
}

// CountNeighbors counts living cells among the 8 wrapped neighbours of (row, col).
// On grids smaller than 3 in either direction a neighbour may be the cell itself seen
// through the wrap; only the zero offset is excluded.
func (g *Grid) CountNeighbors(row, col int) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		r := wrap(row+dr, g.rows)
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if g.cells[r][wrap(col+dc, g.cols)] {
				count++
			}
		}
	}
	return count
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, row := range g.cells {
		for _, alive := range row {
			if alive {
				count++
			}
		}
	}
	return
}

// LiveCells returns the living cells in row-major order
func (g *Grid) LiveCells() []Cell {
	var live []Cell
	for r, row := range g.cells {
		for c, alive := range row {
			if alive {
				live = append(live, Cell{Row: r, Col: c})
			}
		}
	}
	return live
}

// Hash returns an MD5 hash of the current grid state
func (g *Grid) Hash() string {
	h := md5.New()
	fmt.Fprintf(h, "%d:%d:", g.rows, g.cols)
	for _, row := range g.cells {
		for _, alive := range row {
			if alive {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
