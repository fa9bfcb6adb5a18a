// Package assist provides local text tooling for portal content: extractive
// summaries and lexicon based sentiment.
package assist

import (
	"sort"
	"strings"
	"unicode"
)

// Summarize returns up to n sentences of text, chosen by the summed frequency
// of their non-stopword terms and emitted in their original order. n < 1 is
// treated as 1. Text with n or fewer sentences is returned unchanged apart
// from whitespace normalization.
func Summarize(text string, n int) string {
	if n < 1 {
		n = 1
	}
	sentences := splitSentences(text)
	if len(sentences) <= n {
		return strings.Join(sentences, " ")
	}

	freq := make(map[string]int)
	tokenized := make([][]string, len(sentences))
	for i, s := range sentences {
		tokenized[i] = terms(s)
		for _, t := range tokenized[i] {
			freq[t]++
		}
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, ts := range tokenized {
		var sum int
		for _, t := range ts {
			sum += freq[t]
		}
		score := 0.0
		if len(ts) > 0 {
			score = float64(sum) / float64(len(ts))
		}
		ranked[i] = scored{idx: i, score: score}
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })

	keep := make([]int, 0, n)
	for _, r := range ranked[:n] {
		keep = append(keep, r.idx)
	}
	sort.Ints(keep)

	out := make([]string, len(keep))
	for i, idx := range keep {
		out[i] = sentences[idx]
	}
	return strings.Join(out, " ")
}

func splitSentences(text string) []string {
	var (
		out []string
		b   strings.Builder
	)
	flush := func() {
		s := strings.Join(strings.Fields(b.String()), " ")
		if s != "" {
			out = append(out, s)
		}
		b.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)
		switch r {
		case '.', '!', '?':
			if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
				flush()
			}
		case '\n':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				flush()
			}
		}
	}
	flush()
	return out
}

// terms lowercases s and returns its words with stopwords and single letters
// removed.
func terms(s string) []string {
	words := tokenize(s)
	out := words[:0]
	for _, w := range words {
		if len([]rune(w)) < 2 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

// tokenize lowercases s and splits it into words. Apostrophes inside a word
// are kept so contractions like "isn't" stay whole.
func tokenize(s string) []string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	out := words[:0]
	for _, w := range words {
		if w = strings.Trim(w, "'"); w != "" {
			out = append(out, w)
		}
	}
	return out
}

var stopwords = toSet(
	"a", "an", "and", "are", "as", "at", "be", "been", "but", "by", "can", "did",
	"do", "does", "for", "from", "had", "has", "have", "he", "her", "his", "i",
	"if", "in", "into", "is", "it", "its", "me", "my", "of", "on", "or", "our",
	"she", "so", "than", "that", "the", "their", "them", "then", "there", "these",
	"they", "this", "those", "to", "too", "us", "was", "we", "were", "what",
	"when", "which", "who", "will", "with", "would", "you", "your",
)

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
