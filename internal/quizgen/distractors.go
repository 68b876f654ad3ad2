package quizgen

import (
	"math/rand"
	"strconv"
	"strings"
)

const (
	distractorCount  = 3
	maxDistractorLen = 100
)

// contextualDistractors picks wrong options from other sentences of the material, then from the
// subject bank, then from the generic bank. None of them normalizes to the correct answer or to
// each other, and no sentence containing the correct answer is used.
func contextualDistractors(rng *rand.Rand, correct string, sentences, subjectBank, genericBank []string) []string {
	want := normalize(correct)
	seen := map[string]struct{}{want: {}}
	out := make([]string, 0, distractorCount)

	take := func(pool []string, fromText bool) {
		for _, i := range rng.Perm(len(pool)) {
			if len(out) == distractorCount {
				return
			}
			candidate := pool[i]
			if fromText {
				if want != "" && strings.Contains(normalize(candidate), want) {
					continue
				}
				candidate = truncate(trimTerminal(candidate), maxDistractorLen, "...")
			}
			key := normalize(candidate)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, candidate)
		}
	}

	take(sentences, true)
	take(subjectBank, false)
	take(genericBank, false)

	for n := 1; len(out) < distractorCount; n++ {
		candidate := "None of the listed statements (" + strconv.Itoa(n) + ")"
		if _, dup := seen[normalize(candidate)]; !dup {
			out = append(out, candidate)
		}
	}
	return out
}

// numericDistractors derives wrong numbers from value: doubled, halved and plus ten,
// with further variants when those collide.
func numericDistractors(value float64, correct string) []string {
	candidates := []float64{value * 2, value / 2, value + 10, value + 1, value * 10, value + 100, value + 5, value + 50}
	seen := map[string]struct{}{
		correct:             {},
		formatNumber(value): {},
	}
	out := make([]string, 0, distractorCount)
	for _, c := range candidates {
		s := formatNumber(c)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == distractorCount {
			break
		}
	}
	return out
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// shuffle is an in-place Fisher-Yates shuffle.
func shuffle(rng *rand.Rand, items []string) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
