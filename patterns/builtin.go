package patterns

import (
	"sort"
	"strings"
)

// Built-in shapes in template notation, O for live cells
const (
	gliderShape = `
.O.
..O
OOO`

	blinkerShape = `
OOO`

	pulsarShape = `
..OOO...OOO..
.............
O....O.O....O
O....O.O....O
O....O.O....O
..OOO...OOO..
.............
..OOO...OOO..
O....O.O....O
O....O.O....O
O....O.O....O
.............
..OOO...OOO..`

	gliderGunShape = `
........................O...........
......................O.O...........
............OO......OO............OO
...........O...O....OO............OO
OO........O.....O...OO..............
OO........O...O.OO....O.O...........
..........O.....O.......O...........
...........O...O....................
............OO......................`

	pentadecathlonShape = `
..O....O..
OO.OOOO.OO
..O....O..`
)

var builtins = map[string]Pattern{
	"glider":            mustParse(gliderShape),
	"blinker":           mustParse(blinkerShape),
	"pulsar":            mustParse(pulsarShape),
	"gosper-glider-gun": mustParse(gliderGunShape),
	"pentadecathlon":    mustParse(pentadecathlonShape),
}

var aliases = map[string]string{
	"glidergun":       "gosper-glider-gun",
	"gosperglidergun": "gosper-glider-gun",
	"penta-decathlon": "pentadecathlon",
}

func mustParse(shape string) Pattern {
	p, err := Parse(strings.NewReader(strings.TrimPrefix(shape, "\n")))
	if err != nil {
		panic(err)
	}
	return p
}

// Builtin returns a copy of a built-in shape by name, case-insensitive
func Builtin(name string) (Pattern, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	p, ok := builtins[key]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// BuiltinNames lists the built-in shapes in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
