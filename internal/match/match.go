// Package match suggests canonical ingredient names for free-text input.
package match

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the minimum score for a suggestion to be offered.
const DefaultThreshold = 80

// Candidate is a known name together with its similarity to the input.
type Candidate struct {
	Name  string
	Score int
}

// Score returns the similarity of a and b on a 0-100 scale. Both names are
// normalized first; the better of the plain and the word-sorted comparison
// wins.
func Score(a, b string) int {
	na, nb := Normalize(a), Normalize(b)
	return max(ratio(na, nb), ratio(sortedTokens(na), sortedTokens(nb)))
}

func ratio(a, b string) int {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 100
	}
	d := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * (1 - float64(d)/float64(longest))))
}

// Rank scores every known name against candidate, best first. Ties keep the
// order of known.
func Rank(candidate string, known []string) []Candidate {
	out := make([]Candidate, len(known))
	for i, name := range known {
		out[i] = Candidate{Name: name, Score: Score(candidate, name)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Match returns the best scoring known name when its score reaches
// threshold. It only suggests; callers decide whether to use the result.
func Match(candidate string, known []string, threshold int) (string, bool) {
	ranked := Rank(candidate, known)
	if len(ranked) == 0 || ranked[0].Score < threshold {
		return "", false
	}
	return ranked[0].Name, true
}
