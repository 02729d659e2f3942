package questionnaire

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// MatchOption resolves free-form input to one of q's options. It tries, in
// order: a 1-based position in the option list (the number shown next to
// each option), the exact value token, a case-insensitive label match, and
// finally the closest label by edit distance. The fuzzy step only accepts
// a label within max(2, len/3) edits and rejects ties.
func MatchOption(q Question, input string) (Option, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Option{}, false
	}

	n, err := strconv.Atoi(input)
	if err == nil && n >= 1 && n <= len(q.Options) {
		return q.Options[n-1], true
	}

	if o, ok := q.Option(input); ok {
		return o, true
	}
	if err == nil {
		return Option{}, false
	}

	folded := foldCaser.String(input)
	for _, o := range q.Options {
		if foldCaser.String(o.Label) == folded {
			return o, true
		}
	}

	best, bestDist, tie := -1, 0, false
	for i, o := range q.Options {
		label := foldCaser.String(o.Label)
		d := levenshtein.ComputeDistance(folded, label)
		if d > fuzzyThreshold(label) {
			continue
		}
		switch {
		case best < 0 || d < bestDist:
			best, bestDist, tie = i, d, false
		case d == bestDist:
			tie = true
		}
	}
	if best < 0 || tie {
		return Option{}, false
	}
	return q.Options[best], true
}

func fuzzyThreshold(label string) int {
	t := utf8.RuneCountInString(label) / 3
	if t < 2 {
		t = 2
	}
	return t
}
