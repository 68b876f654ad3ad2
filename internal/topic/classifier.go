package topic

import (
	"regexp"
	"strings"
)

// GeneralStudies is returned when no topic keyword occurs in the text.
const GeneralStudies = "General Studies"

type compiledGroup struct {
	patterns []*regexp.Regexp
	weight   int
}

type compiledTopic struct {
	name   string
	groups []compiledGroup
}

// Classifier scores text against a Table. Safe for concurrent use.
type Classifier struct {
	table  Table
	topics []compiledTopic
}

// NewClassifier compiles whole-word, case-insensitive matchers for every keyword in table.
func NewClassifier(table Table) *Classifier {
	c := &Classifier{table: table, topics: make([]compiledTopic, 0, len(table))}
	for _, tp := range table {
		ct := compiledTopic{name: tp.Name}
		for _, g := range tp.Groups {
			cg := compiledGroup{weight: g.Weight}
			for _, kw := range g.Keywords {
				kw = strings.TrimSpace(kw)
				if kw == "" {
					continue
				}
				cg.patterns = append(cg.patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
			}
			ct.groups = append(ct.groups, cg)
		}
		c.topics = append(c.topics, ct)
	}
	return c
}

// Table returns the table the classifier was built from.
func (c *Classifier) Table() Table {
	return c.table
}

// Score is the weighted keyword score of one topic.
type Score struct {
	Topic string
	Score int
}

// Scores returns the score of every topic in table order.
func (c *Classifier) Scores(text string) []Score {
	out := make([]Score, 0, len(c.topics))
	for _, ct := range c.topics {
		total := 0
		for _, g := range ct.groups {
			for _, p := range g.patterns {
				total += len(p.FindAllStringIndex(text, -1)) * g.weight
			}
		}
		out = append(out, Score{Topic: ct.name, Score: total})
	}
	return out
}

// Classify returns the highest scoring topic, the first one in table order on ties,
// or GeneralStudies when nothing matches.
func (c *Classifier) Classify(text string) string {
	best, bestScore := GeneralStudies, 0
	for _, s := range c.Scores(text) {
		if s.Score > bestScore {
			best, bestScore = s.Topic, s.Score
		}
	}
	return best
}
