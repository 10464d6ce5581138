// Package classify infers intent, tone, complexity, keywords, and a ranked
// provider selection from a raw research query. Everything here is pure:
// the same (query, category) pair always yields the same analysis.
package classify

import (
	"regexp"
	"strings"

	"github.com/arqiv-labs/research-pipeline/internal/model"
)

const maxKeywords = 10

var (
	academicWords = []string{"research", "study", "paper", "academic"}
	newsWords     = []string{"news", "current", "recent", "today"}
	historyWords  = []string{"history", "historical"}

	humorousWords  = []string{"lol", "haha", "funny", "joke"}
	sarcasticWords = []string{"seriously", "obviously", "duh"}
	formalWords    = []string{"please", "kindly", "formal"}
	casualWords    = []string{"hey", "yo", "what's up"}

	// Dismissive phrases that read as sarcasm when they stand alone.
	sarcasticPhrases = regexp.MustCompile(`\b(yeah right|sure|totally)\b`)

	complexWords = []string{"methodology", "paradigm", "theoretical", "empirical", "hypothesis", "correlation", "causation"}
	simpleStarts = []string{"what", "who", "when", "where", "how", "why"}

	medicalWords = []string{"medical", "health", "disease", "biology", "medicine", "clinical"}

	nonWord = regexp.MustCompile(`[^\w\s]`)
)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to",
		"for", "of", "with", "by", "is", "are", "was", "were", "be",
		"been", "being", "have", "has", "had", "do", "does", "did",
		"will", "would", "could", "should", "may", "might", "can",
		"about", "what", "who", "when", "where", "why", "how",
	} {
		stopWords[w] = struct{}{}
	}
}

// Analyze classifies a query. It is total over any string input: an empty
// query yields general intent, intermediate complexity, and no keywords.
func Analyze(query, category string) model.PromptAnalysis {
	lower := strings.ToLower(query)

	return model.PromptAnalysis{
		Intent:           detectIntent(lower, category),
		Tone:             detectTone(lower),
		Complexity:       detectComplexity(lower),
		Keywords:         ExtractKeywords(query),
		SuggestedSources: suggestSources(lower, category),
	}
}

// detectIntent evaluates intent rules in fixed priority order; the first
// matching rule wins.
func detectIntent(lower, category string) model.Intent {
	switch {
	case category == model.CategoryResearchBuddy || containsAny(lower, academicWords):
		return model.IntentAcademic
	case containsAny(lower, newsWords):
		return model.IntentNews
	case category == model.CategoryEvent || category == model.CategoryYear || containsAny(lower, historyWords):
		return model.IntentHistorical
	case category == model.CategoryPerson:
		return model.IntentPersonal
	}
	return model.IntentGeneral
}

func detectTone(lower string) model.Tone {
	switch {
	case containsAny(lower, humorousWords):
		return model.ToneHumorous
	case containsAny(lower, sarcasticWords) || sarcasticPhrases.MatchString(lower):
		return model.ToneSarcastic
	case containsAny(lower, formalWords):
		return model.ToneFormal
	case containsAny(lower, casualWords):
		return model.ToneCasual
	}
	return model.ToneNeutral
}

func detectComplexity(lower string) model.Complexity {
	if containsAny(lower, complexWords) {
		return model.ComplexityAdvanced
	}
	for _, w := range simpleStarts {
		if strings.HasPrefix(lower, w) {
			return model.ComplexitySimple
		}
	}
	return model.ComplexityIntermediate
}

// ExtractKeywords lowercases the query, strips punctuation, and keeps the
// first ten tokens longer than two characters that are not stop words,
// in original order.
func ExtractKeywords(query string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(query), " ")
	keywords := []string{}
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		keywords = append(keywords, tok)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

// suggestSources builds the provider selection in append order. Google
// Books and YouTube are always appended last regardless of intent. The
// list is not de-duplicated; the aggregator checks membership.
func suggestSources(lower, category string) []model.Provider {
	sources := []model.Provider{}
	switch detectIntent(lower, category) {
	case model.IntentAcademic:
		sources = append(sources, model.ProviderArxiv, model.ProviderSemanticScholar, model.ProviderCrossRef)
		if containsAny(lower, medicalWords) {
			sources = append(sources, model.ProviderPubMed)
		}
	case model.IntentNews:
		sources = append(sources, model.ProviderNewsAPI)
	case model.IntentHistorical:
		sources = append(sources, model.ProviderWikipedia)
	}
	return append(sources, model.ProviderGoogleBooks, model.ProviderYouTube)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
