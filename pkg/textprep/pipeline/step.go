package pipeline

import "strings"

// Step names one stage of the pipeline.
type Step string

const (
	StepClean           Step = "clean"
	StepLower           Step = "lower"
	StepTokenize        Step = "tokenize"
	StepRemovePunct     Step = "remove_punct"
	StepRemoveStopwords Step = "remove_stopwords"
	StepStem            Step = "stem"
	StepLemmatize       Step = "lemmatize"
)

// canonicalOrder is the only order stages ever run in.
var canonicalOrder = []Step{
	StepClean,
	StepLower,
	StepTokenize,
	StepRemovePunct,
	StepRemoveStopwords,
	StepStem,
	StepLemmatize,
}

// tokenStages need a token sequence and are skipped on plain text.
var tokenStages = map[Step]bool{
	StepRemovePunct:     true,
	StepRemoveStopwords: true,
	StepStem:            true,
	StepLemmatize:       true,
}

// AllSteps returns every known step in canonical order.
func AllSteps() []Step {
	return append([]Step(nil), canonicalOrder...)
}

// DefaultSteps is the step set used when none is given.
func DefaultSteps() []Step {
	return []Step{StepClean, StepLower, StepTokenize, StepRemoveStopwords, StepLemmatize}
}

// Valid reports whether s is a known step.
func (s Step) Valid() bool {
	for _, known := range canonicalOrder {
		if s == known {
			return true
		}
	}
	return false
}

// ParseSteps converts names to steps. Names are trimmed and lowercased;
// unknown names are dropped.
func ParseSteps(names []string) []Step {
	steps := make([]Step, 0, len(names))
	for _, n := range names {
		s := Step(strings.ToLower(strings.TrimSpace(n)))
		if s.Valid() {
			steps = append(steps, s)
		}
	}
	return steps
}

// ParseStepList parses a comma separated list such as "clean,lower,tokenize".
func ParseStepList(list string) []Step {
	return ParseSteps(strings.Split(list, ","))
}

// Strings returns the step names of steps, in canonical order, deduplicated.
func Strings(steps []Step) []string {
	set := stepSet(steps)
	out := make([]string, 0, len(set))
	for _, s := range canonicalOrder {
		if set[s] {
			out = append(out, string(s))
		}
	}
	return out
}

func stepSet(steps []Step) map[Step]bool {
	set := make(map[Step]bool, len(steps))
	for _, s := range steps {
		set[s] = true
	}
	return set
}
