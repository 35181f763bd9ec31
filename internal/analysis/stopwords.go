package analysis

// stopWords lists tokens excluded from keyword extraction: articles,
// pronouns, auxiliaries, and generic praise/complaint words that duplicate
// the sentiment signal the score already carries.
var stopWords = map[string]struct{}{}

func init() {
	words := []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
		"of", "with", "is", "was", "are", "been", "be", "have", "has", "had",
		"this", "that", "it", "i", "my", "me", "you", "your", "app", "game",
		"very", "really", "just", "like", "get", "got", "can", "cant", "dont",
		"will", "would", "could", "should", "much", "more", "most", "many",
		"some", "also", "only", "from", "when", "there", "they", "them",
		"than", "then", "these", "those", "what", "which", "who", "where",
		"why", "how", "all", "each", "every", "both", "few", "other",
		"such", "own", "same", "too", "even", "well", "without",
		"good", "great", "nice", "best", "love", "bad", "hate", "worst",
	}
	for _, w := range words {
		stopWords[w] = struct{}{}
	}
}
