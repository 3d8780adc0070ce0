package life

import (
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/rules"
)

// Step writes the generation after cur into next. cur is only read; next must have the
// same dimensions and is fully overwritten.
func Step(cur, next *model.Grid, rs rules.RuleSet) {
	for row, rows := 0, cur.Rows(); row < rows; row++ {
		for col, cols := 0, cur.Cols(); col < cols; col++ {
			next.Set(row, col, rs.Apply(cur.CountNeighbors(row, col), cur.Get(row, col)))
		}
	}
}

// Next returns a fresh grid holding the generation after g
func Next(g *model.Grid, rs rules.RuleSet) *model.Grid {
	next, _ := model.NewGrid(g.Rows(), g.Cols())
	Step(g, next, rs)
	return next
}
