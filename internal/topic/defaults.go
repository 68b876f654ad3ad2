package topic

// DefaultTable returns the built-in subject table. Each call returns a fresh copy.
func DefaultTable() Table {
	return Table{
		{
			Name: "Biology",
			Groups: []KeywordGroup{
				{Keywords: []string{"photosynthesis", "chlorophyll", "mitochondria", "ribosome", "chromosome", "enzyme", "organism"}, Weight: 3},
				{Keywords: []string{"cell", "cells", "species", "evolution", "protein", "genetic", "membrane", "tissue", "ecosystem"}, Weight: 2},
				{Keywords: []string{"plant", "plants", "animal", "animals", "growth", "organ"}, Weight: 1},
			},
			Distractors: []string{
				"the organelle that stores genetic material",
				"a process that releases oxygen in animal cells",
				"the structure that controls what enters the nucleus",
				"a protein that transports water between tissues",
			},
		},
		{
			Name: "Chemistry",
			Groups: []KeywordGroup{
				{Keywords: []string{"molecule", "compound", "reaction", "catalyst", "covalent", "ionic", "stoichiometry"}, Weight: 3},
				{Keywords: []string{"atom", "atoms", "element", "acid", "base", "solution", "bond", "electron"}, Weight: 2},
				{Keywords: []string{"mixture", "gas", "liquid", "solid", "temperature"}, Weight: 1},
			},
			Distractors: []string{
				"a bond formed by the transfer of protons",
				"a substance that is consumed by the reaction it speeds up",
				"the mass of one mole of electrons",
				"a mixture whose composition never varies",
			},
		},
		{
			Name: "Physics",
			Groups: []KeywordGroup{
				{Keywords: []string{"velocity", "acceleration", "momentum", "quantum", "relativity", "thermodynamics"}, Weight: 3},
				{Keywords: []string{"force", "energy", "mass", "gravity", "wave", "frequency", "particle", "friction"}, Weight: 2},
				{Keywords: []string{"motion", "speed", "light", "heat", "power"}, Weight: 1},
			},
			Distractors: []string{
				"the rate at which mass changes over time",
				"a force that only acts on objects at rest",
				"energy stored in the frequency of a wave",
				"the product of speed and temperature",
			},
		},
		{
			Name: "Mathematics",
			Groups: []KeywordGroup{
				{Keywords: []string{"theorem", "equation", "derivative", "integral", "polynomial", "matrix", "algebra"}, Weight: 3},
				{Keywords: []string{"function", "variable", "geometry", "probability", "calculus", "proof", "angle"}, Weight: 2},
				{Keywords: []string{"number", "numbers", "sum", "product", "graph", "ratio"}, Weight: 1},
			},
			Distractors: []string{
				"the sum of all coefficients of a polynomial",
				"a function that has no inverse by definition",
				"the ratio of an angle to its opposite side",
				"a matrix whose determinant is always one",
			},
		},
		{
			Name: "Computer Science",
			Groups: []KeywordGroup{
				{Keywords: []string{"algorithm", "compiler", "recursion", "database", "software", "programming"}, Weight: 3},
				{Keywords: []string{"data", "computer", "network", "memory", "binary", "code", "processor"}, Weight: 2},
				{Keywords: []string{"input", "output", "file", "user", "system"}, Weight: 1},
			},
			Distractors: []string{
				"a data structure that only supports sequential access",
				"a program that translates hardware into software",
				"memory that keeps its contents without power but cannot be read",
				"an algorithm that always runs in constant time",
			},
		},
		{
			Name: "History",
			Groups: []KeywordGroup{
				{Keywords: []string{"empire", "revolution", "dynasty", "treaty", "civilization", "monarchy"}, Weight: 3},
				{Keywords: []string{"war", "king", "queen", "century", "ancient", "colonial", "independence"}, Weight: 2},
				{Keywords: []string{"battle", "government", "period", "era", "leader"}, Weight: 1},
			},
			Distractors: []string{
				"a treaty that ended the conflict before it began",
				"the dynasty that founded the first republic",
				"a revolution led by the reigning monarch",
				"an empire that never collected taxes",
			},
		},
		{
			Name: "Geography",
			Groups: []KeywordGroup{
				{Keywords: []string{"continent", "climate", "latitude", "longitude", "tectonic", "erosion"}, Weight: 3},
				{Keywords: []string{"river", "mountain", "ocean", "population", "region", "desert", "volcano"}, Weight: 2},
				{Keywords: []string{"country", "city", "map", "land", "weather"}, Weight: 1},
			},
			Distractors: []string{
				"the line that measures distance from the poles in degrees of time",
				"a climate zone without any seasonal change",
				"erosion caused only by volcanic activity",
				"a river that flows from the ocean inland",
			},
		},
		{
			Name: "Economics",
			Groups: []KeywordGroup{
				{Keywords: []string{"inflation", "supply", "demand", "market", "monetary", "fiscal", "recession"}, Weight: 3},
				{Keywords: []string{"price", "trade", "economy", "capital", "investment", "tax", "labor"}, Weight: 2},
				{Keywords: []string{"money", "cost", "income", "business", "bank"}, Weight: 1},
			},
			Distractors: []string{
				"a rise in purchasing power caused by higher prices",
				"a market where supply never responds to demand",
				"fiscal policy set by the central bank alone",
				"the cost of labor divided by inflation",
			},
		},
		{
			Name: "Literature",
			Groups: []KeywordGroup{
				{Keywords: []string{"novel", "poem", "poetry", "metaphor", "protagonist", "narrative", "sonnet"}, Weight: 3},
				{Keywords: []string{"author", "character", "theme", "plot", "symbolism", "verse", "prose"}, Weight: 2},
				{Keywords: []string{"story", "book", "writer", "reader", "chapter"}, Weight: 1},
			},
			Distractors: []string{
				"a poem with no rhythm and exactly fourteen stanzas",
				"the character who narrates only the ending",
				"a metaphor that uses like or as",
				"prose written entirely in rhyming verse",
			},
		},
		{
			Name: "Psychology",
			Groups: []KeywordGroup{
				{Keywords: []string{"cognitive", "behavior", "behaviour", "perception", "consciousness", "conditioning"}, Weight: 3},
				{Keywords: []string{"memory", "emotion", "motivation", "personality", "brain", "learning"}, Weight: 2},
				{Keywords: []string{"mind", "thought", "feeling", "stress", "habit"}, Weight: 1},
			},
			Distractors: []string{
				"conditioning that requires no stimulus",
				"a memory system with unlimited capacity and duration",
				"perception that happens before sensation",
				"a personality trait that never varies between people",
			},
		},
	}
}

// GenericDistractors are used when a subject has no bank of its own.
var GenericDistractors = []string{
	"None of the statements in the material support this",
	"It is the opposite of what the material describes",
	"It applies only in situations the material excludes",
	"It is an unrelated concept from a different field",
	"The material does not define this term",
}
