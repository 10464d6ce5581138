package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arqiv-labs/research-pipeline/internal/model"
)

func TestAnalyzeIntent(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		category string
		want     model.Intent
	}{
		{"research buddy category", "quantum computing", model.CategoryResearchBuddy, model.IntentAcademic},
		{"academic keyword", "latest paper on transformers", model.CategoryConcept, model.IntentAcademic},
		{"news keyword", "current state of fusion power", model.CategoryConcept, model.IntentNews},
		{"event category", "fall of constantinople", model.CategoryEvent, model.IntentHistorical},
		{"year category", "1848", model.CategoryYear, model.IntentHistorical},
		{"history keyword", "historical trade routes", model.CategoryConcept, model.IntentHistorical},
		{"person category", "Napoleon Bonaparte", model.CategoryPerson, model.IntentPersonal},
		{"default", "black holes", model.CategoryConcept, model.IntentGeneral},
		// Academic rule outranks the later rules.
		{"academic beats person", "research on Napoleon", model.CategoryPerson, model.IntentAcademic},
		{"empty query", "", model.CategoryConcept, model.IntentGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.query, tt.category)
			assert.Equal(t, tt.want, got.Intent)
		})
	}
}

func TestAnalyzeTone(t *testing.T) {
	tests := []struct {
		query string
		want  model.Tone
	}{
		{"tell me a funny story about rome", model.ToneHumorous},
		{"seriously who built this", model.ToneSarcastic},
		{"yeah right that happened", model.ToneSarcastic},
		{"please explain relativity", model.ToneFormal},
		{"hey tell me about mars", model.ToneCasual},
		{"the treaty of westphalia", model.ToneNeutral},
		// Humor wins over sarcasm when both match.
		{"lol seriously explain this", model.ToneHumorous},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.query, model.CategoryConcept).Tone)
		})
	}
}

func TestAnalyzeComplexity(t *testing.T) {
	tests := []struct {
		query string
		want  model.Complexity
	}{
		{"empirical evidence for dark matter", model.ComplexityAdvanced},
		{"what is dark matter", model.ComplexitySimple},
		{"Who was Ada Lovelace", model.ComplexitySimple},
		{"dark matter", model.ComplexityIntermediate},
		{"", model.ComplexityIntermediate},
		// Jargon outranks the wh-word prefix.
		{"what methodology applies here", model.ComplexityAdvanced},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.query, model.CategoryConcept).Complexity)
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	got := ExtractKeywords("What is the History of the Roman Empire, really?")
	assert.Equal(t, []string{"history", "roman", "empire", "really"}, got)

	t.Run("caps at ten", func(t *testing.T) {
		got := ExtractKeywords("alpha beta gamma delta epsilon zeta eta theta iota kappa lambda omega")
		require.Len(t, got, 10)
		assert.Equal(t, "alpha", got[0])
		assert.NotContains(t, got, "lambda")
	})

	t.Run("drops short tokens and stop words", func(t *testing.T) {
		for _, kw := range ExtractKeywords("to be or not to be, it is an ox") {
			assert.Greater(t, len(kw), 2)
			_, stop := stopWords[kw]
			assert.False(t, stop, "stop word %q leaked", kw)
		}
	})

	t.Run("empty query", func(t *testing.T) {
		assert.Empty(t, ExtractKeywords(""))
	})
}

func TestSuggestedSources(t *testing.T) {
	t.Run("academic", func(t *testing.T) {
		got := Analyze("research on neural networks", model.CategoryConcept).SuggestedSources
		assert.Equal(t, []model.Provider{
			model.ProviderArxiv,
			model.ProviderSemanticScholar,
			model.ProviderCrossRef,
			model.ProviderGoogleBooks,
			model.ProviderYouTube,
		}, got)
	})

	t.Run("academic medical appends pubmed", func(t *testing.T) {
		got := Analyze("clinical research on vaccine trials", model.CategoryResearchBuddy).SuggestedSources
		assert.Contains(t, got, model.ProviderPubMed)
		// Versatile sources stay last.
		assert.Equal(t, model.ProviderYouTube, got[len(got)-1])
		assert.Equal(t, model.ProviderGoogleBooks, got[len(got)-2])
	})

	t.Run("news", func(t *testing.T) {
		got := Analyze("recent elections", model.CategoryConcept).SuggestedSources
		assert.Equal(t, []model.Provider{model.ProviderNewsAPI, model.ProviderGoogleBooks, model.ProviderYouTube}, got)
	})

	t.Run("historical", func(t *testing.T) {
		got := Analyze("history of rome", model.CategoryConcept).SuggestedSources
		assert.Equal(t, model.ProviderWikipedia, got[0])
	})

	t.Run("person keeps versatile sources", func(t *testing.T) {
		got := Analyze("Napoleon Bonaparte", model.CategoryPerson).SuggestedSources
		assert.Contains(t, got, model.ProviderGoogleBooks)
		assert.Contains(t, got, model.ProviderYouTube)
	})
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := Analyze("empirical study of bee navigation", model.CategoryResearchBuddy)
	b := Analyze("empirical study of bee navigation", model.CategoryResearchBuddy)
	assert.Equal(t, a, b)
}
