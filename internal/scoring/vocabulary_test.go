package scoring

import "testing"

func TestGoldRefusalPhrases(t *testing.T) {
	vocab := GoldRefusalPhrases()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"canonical refusal", "This information is not provided in the context", true},
		{"short refusal", "Not provided", true},
		{"cannot answer", "I cannot answer that", true},
		{"not mentioned", "Not mentioned in context", true},
		{"case insensitive", "NOT PROVIDED IN THE CONTEXT", true},
		{"real answer", "You should use the field() function with default_factory", false},
		{"answer mentioning context", "The context explains descriptors in detail", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vocab.Matches(tt.text); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestPredictionRefusalPhrases(t *testing.T) {
	vocab := PredictionRefusalPhrases()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"canonical", "This information is not provided in the context", true},
		{"not mentioned variant", "Not mentioned in the provided context", true},
		{"given context variant", "Cannot answer from the given context", true},
		{"not stated", "This is not stated in the context", true},
		{"not in context", "Not in context", true},
		{"terse not provided", "Not provided", true},
		{"dont know", "Don't know", true},
		{"do not know spelled out", "I do not know the answer", true},
		{"context does not contain", "The context does not contain this detail", true},
		{"no information", "There is no information about that", true},
		{"substantive answer", "Dictionary keys must be immutable", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vocab.Matches(tt.text); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// The two profiles are tuned independently: the gold side stays strict so
// positive examples are never misclassified, the prediction side stays
// lenient so paraphrased refusals still count.
func TestProfilesAreAsymmetric(t *testing.T) {
	gold := GoldRefusalPhrases()
	pred := PredictionRefusalPhrases()

	if gold.Len() >= pred.Len() {
		t.Errorf("gold profile (%d phrases) should be smaller than prediction profile (%d phrases)",
			gold.Len(), pred.Len())
	}

	// Lenient-only phrasing must not classify gold answers as refusals.
	leniently := "This is not stated in the context"
	if gold.Matches(leniently) {
		t.Errorf("gold profile unexpectedly matched lenient-only phrasing %q", leniently)
	}
	if !pred.Matches(leniently) {
		t.Errorf("prediction profile should match %q", leniently)
	}
}

func TestVocabularyImmutable(t *testing.T) {
	vocab := NewVocabulary("not provided")

	phrases := vocab.Phrases()
	phrases[0] = "tampered"

	if !vocab.Matches("not provided in context") {
		t.Error("mutating the returned phrase slice must not affect the vocabulary")
	}
}
