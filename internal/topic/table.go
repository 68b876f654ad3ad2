// Package topic labels text with a subject using weighted keyword tables.
package topic

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// KeywordGroup is a set of keywords sharing one weight.
type KeywordGroup struct {
	Keywords []string `yaml:"keywords"`
	Weight   int      `yaml:"weight"`
}

// Topic is one subject category with its keyword groups and an optional distractor bank.
type Topic struct {
	Name        string         `yaml:"name"`
	Groups      []KeywordGroup `yaml:"groups"`
	Distractors []string       `yaml:"distractors"`
}

// Table is an ordered list of topics. Order decides ties.
type Table []Topic

// Keywords returns every keyword of the topic named subject.
// The name is matched as in Lookup.
func (t Table) Keywords(subject string) []string {
	tp, ok := t.Lookup(subject)
	if !ok {
		return nil
	}
	var out []string
	for _, g := range tp.Groups {
		out = append(out, g.Keywords...)
	}
	return out
}

// Distractors returns the distractor bank of the topic named subject.
func (t Table) Distractors(subject string) []string {
	tp, ok := t.Lookup(subject)
	if !ok {
		return nil
	}
	return tp.Distractors
}

// Lookup finds a topic by name: an exact case-insensitive match first, then the topic
// whose name appears as whole words inside subject ("AP Biology" finds Biology).
// The longest such name wins, earlier topics on ties.
func (t Table) Lookup(subject string) (Topic, bool) {
	s := strings.ToLower(strings.TrimSpace(subject))
	if s == "" {
		return Topic{}, false
	}
	for _, tp := range t {
		if strings.ToLower(tp.Name) == s {
			return tp, true
		}
	}

	words := nameWords(s)
	best, bestLen := -1, 0
	for i, tp := range t {
		name := nameWords(strings.ToLower(tp.Name))
		if len(name) > bestLen && containsRun(words, name) {
			best, bestLen = i, len(name)
		}
	}
	if best < 0 {
		return Topic{}, false
	}
	return t[best], true
}

func nameWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsRun reports whether run occurs as a contiguous sequence in words.
func containsRun(words, run []string) bool {
	if len(run) == 0 {
		return false
	}
	for i := 0; i+len(run) <= len(words); i++ {
		if slices.Equal(words[i:i+len(run)], run) {
			return true
		}
	}
	return false
}

type tableFile struct {
	Topics []Topic `yaml:"topics"`
}

// LoadTable parses a YAML document of the form `topics: [{name, groups: [{keywords, weight}], distractors}]`.
func LoadTable(r io.Reader) (Table, error) {
	var f tableFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode topic table: %w", err)
	}
	if len(f.Topics) == 0 {
		return nil, fmt.Errorf("topic table has no topics")
	}
	for i, tp := range f.Topics {
		if strings.TrimSpace(tp.Name) == "" {
			return nil, fmt.Errorf("topic %d has no name", i)
		}
		for j := range tp.Groups {
			if tp.Groups[j].Weight <= 0 {
				f.Topics[i].Groups[j].Weight = 1
			}
		}
	}
	return Table(f.Topics), nil
}

// LoadTableFile reads a topic table from path.
func LoadTableFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open topic table: %w", err)
	}
	defer f.Close()
	return LoadTable(f)
}

// TableFromPath loads the table at path, or returns the built-in table when path is empty.
func TableFromPath(path string) (Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}
	return LoadTableFile(path)
}
