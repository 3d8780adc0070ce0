package rules

import (
	"bufio"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	delimiter = "/"
	maxCount  = 8
)

var (
	// ErrRuleFileUnreadable is returned when a rule file cannot be opened or read
	ErrRuleFileUnreadable = errors.New("rule file unreadable")
	// ErrEmptyRuleFile is returned when a rule file has no rule line
	ErrEmptyRuleFile = errors.New("rule file is empty")
)

// RuleSet holds the neighbour counts that give birth to dead cells and keep live cells
// alive. It is replaced whole, never edited in place.
type RuleSet struct {
	birth    []int
	survival []int
}

// Parse reads a B<digits>/S<digits> rule string. The second result is false when the
// string has no '/', in which case callers keep their current rules.
func Parse(s string) (RuleSet, bool) {
	pos := strings.Index(s, delimiter)
	if pos < 0 {
		return RuleSet{}, false
	}

	// the first character names the rule kind
	var birth string
	if pos > 1 {
		birth = s[1:pos]
	}

	return RuleSet{
		birth:    collectCounts(birth),
		survival: collectCounts(s[pos+1:]),
	}, true
}

// collectCounts keeps each digit 0-8 once, in first-seen order
func collectCounts(run string) []int {
	counts := []int{}
	for _, ch := range run {
		if ch < '0' || ch > '0'+maxCount {
			continue
		}
		n := int(ch - '0')
		if !slices.Contains(counts, n) {
			counts = append(counts, n)
		}
	}
	return counts
}

// LoadFile parses the first line of a rule file. The bool result reports whether the
// line carried a rule delimiter.
func LoadFile(path string) (RuleSet, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return RuleSet{}, false, errors.Wrapf(ErrRuleFileUnreadable, "[LoadFile] %+v: %v", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err = scanner.Err(); err != nil {
			return RuleSet{}, false, errors.Wrapf(ErrRuleFileUnreadable, "[LoadFile] %+v: %v", path, err)
		}
		return RuleSet{}, false, errors.Wrapf(ErrEmptyRuleFile, "[LoadFile] %+v", path)
	}

	rs, ok := Parse(strings.TrimSpace(scanner.Text()))
	return rs, ok, nil
}

// Born reports whether a dead cell with n live neighbours comes alive
func (r RuleSet) Born(n int) bool {
	return slices.Contains(r.birth, n)
}

// Survives reports whether a live cell with n live neighbours stays alive
func (r RuleSet) Survives(n int) bool {
	return slices.Contains(r.survival, n)
}

// Apply returns the next state of a cell given its live neighbour count
func (r RuleSet) Apply(neighbors int, alive bool) bool {
	if alive {
		return r.Survives(neighbors)
	}
	return r.Born(neighbors)
}

// Birth returns a copy of the birth counts in insertion order
func (r RuleSet) Birth() []int {
	return slices.Clone(r.birth)
}

// Survival returns a copy of the survival counts in insertion order
func (r RuleSet) Survival() []int {
	return slices.Clone(r.survival)
}

// String formats the rules as B<birth>/S<survival>, digits in insertion order
func (r RuleSet) String() string {
	var sb strings.Builder
	sb.WriteString("B")
	for _, n := range r.birth {
		sb.WriteString(strconv.Itoa(n))
	}
	sb.WriteString(delimiter + "S")
	for _, n := range r.survival {
		sb.WriteString(strconv.Itoa(n))
	}
	return sb.String()
}
