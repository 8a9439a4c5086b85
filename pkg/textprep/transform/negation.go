package transform

import "strings"

// DefaultNegationMarker prefixes the token that follows a negation cue.
const DefaultNegationMarker = "NOT_"

var defaultCues = []string{"not", "no", "never", "n't", "nor", "cannot"}

// DefaultNegationCues returns a copy of the cue list used when
// NegationOptions.Cues is empty.
func DefaultNegationCues() []string {
	return append([]string(nil), defaultCues...)
}

// NegationOptions configures MarkNegations. The zero value uses the default
// cue list and marker.
type NegationOptions struct {
	Cues   []string // replaces the default cue list when non-empty
	Marker string   // defaults to DefaultNegationMarker
}

type negationState int

const (
	stateNormal negationState = iota
	stateNegating
)

// MarkNegations prefixes the token after each negation cue with a marker:
//
//	[I do not like this] -> [I do not NOT_like this]
//
// Cues are matched case-insensitively; any word ending in "n't" is a cue too.
// A cue directly after another cue is emitted unmarked and keeps negating.
func MarkNegations(tokens []string, opts NegationOptions) []string {
	cues := opts.Cues
	if len(cues) == 0 {
		cues = defaultCues
	}
	isCue := make(map[string]struct{}, len(cues))
	for _, c := range cues {
		isCue[strings.ToLower(c)] = struct{}{}
	}
	marker := opts.Marker
	if marker == "" {
		marker = DefaultNegationMarker
	}

	out := make([]string, len(tokens))
	state := stateNormal
	for i, tok := range tokens {
		lower := strings.ToLower(tok)
		_, cue := isCue[lower]
		if cue || strings.HasSuffix(lower, "n't") {
			out[i] = tok
			state = stateNegating
			continue
		}
		if state == stateNegating {
			out[i] = marker + tok
			state = stateNormal
			continue
		}
		out[i] = tok
	}
	return out
}
