package assistant

// EstimateTokens estimates the token count for a given text using a Unicode-aware heuristic.
// ASCII characters (Italian and English prose, numbers, punctuation) are weighted at ~4 per token.
// Non-ASCII characters (accented letters, emoji, etc.) are weighted at ~1 per token.
func EstimateTokens(text string) int {
	weight := 0
	for _, r := range text {
		switch {
		case r <= 127:
			weight += 1
		default:
			weight += 4
		}
	}
	return (weight + 3) / 4
}
