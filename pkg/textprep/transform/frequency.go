package transform

// Frequencies counts occurrences of each token.
func Frequencies(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	return counts
}

// FilterByFrequency keeps tokens whose count over the whole input lies in
// [minFreq, maxFreq]. A maxFreq of zero or less means len(tokens).
// Order and duplicates of kept tokens are preserved.
func FilterByFrequency(tokens []string, minFreq, maxFreq int) []string {
	if maxFreq <= 0 {
		maxFreq = len(tokens)
	}
	counts := Frequencies(tokens)
	return filter(tokens, func(tok string) bool {
		c := counts[tok]
		return c >= minFreq && c <= maxFreq
	})
}
