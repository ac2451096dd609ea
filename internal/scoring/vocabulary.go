package scoring

import "strings"

// Vocabulary is an immutable ordered list of lowercase refusal phrases.
// Matching is substring containment over the normalized input, so a phrase
// hits regardless of surrounding words.
type Vocabulary struct {
	phrases []string
}

// NewVocabulary builds a vocabulary from the given phrases. Phrases are
// lowercased; the resulting vocabulary never changes.
func NewVocabulary(phrases ...string) Vocabulary {
	owned := make([]string, len(phrases))
	for i, p := range phrases {
		owned[i] = strings.ToLower(p)
	}
	return Vocabulary{phrases: owned}
}

// Matches reports whether any phrase occurs in the normalized text.
func (v Vocabulary) Matches(text string) bool {
	text = normalize(text)
	for _, p := range v.phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// Phrases returns a copy of the phrase list.
func (v Vocabulary) Phrases() []string {
	out := make([]string, len(v.phrases))
	copy(out, v.phrases)
	return out
}

// Len returns the number of phrases.
func (v Vocabulary) Len() int { return len(v.phrases) }

// GoldRefusalPhrases is the strict profile used to classify a ground-truth
// answer as a refusal target. Kept short so that positive examples are never
// misread as negative.
func GoldRefusalPhrases() Vocabulary {
	return NewVocabulary(
		"not provided",
		"cannot answer",
		"not mentioned",
	)
}

// PredictionRefusalPhrases is the lenient profile used to judge whether a
// generated answer counts as a refusal. It overlaps with but is not equal to
// GoldRefusalPhrases: the two lists are tuned independently (strict on gold,
// lenient on predictions) and merging them would reclassify examples.
func PredictionRefusalPhrases() Vocabulary {
	return NewVocabulary(
		"not provided",
		"not provided in context",
		"information is not provided",
		"information is not available",
		"not mentioned",
		"not in the context",
		"not in context",
		"context does not contain",
		"context does not mention",
		"provided context",
		"given context",
		"cannot answer",
		"cannot be answered",
		"can't answer",
		"don't know",
		"do not know",
		"not stated",
		"no information",
	)
}
