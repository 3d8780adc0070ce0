package rules

/*
Conway returns the standard Game of Life rules, B3/S23.

A dead cell with exactly three live neighbours is born; a live cell with two or three
live neighbours survives.
*/
func Conway() RuleSet {
	return RuleSet{
		birth:    []int{3},
		survival: []int{2, 3},
	}
}
