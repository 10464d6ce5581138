package generate

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/arqiv-labs/research-pipeline/internal/model"
)

const maxSuggestions = 5

var numberedLine = regexp.MustCompile(`^\d+\.?\s`)

// fallbackSuggestions covers a generation failure with canned follow-up
// topics per category.
var fallbackSuggestions = map[string][]string{
	model.CategoryPerson:   {"The spy who never existed", "Why Einstein refused surgery", "The artist who painted with blood"},
	model.CategoryEvent:    {"The war that lasted 38 minutes", "When time zones caused chaos", "The treaty signed in a bathroom"},
	model.CategoryYear:     {"The year winter never came", "When calendars lost 11 days", "The year of six popes"},
	model.CategoryConcept:  {"Why we shake hands", "The origin of OK", "How zero was invented"},
	model.CategoryLocation: {"The city that moves every year", "Islands that appear and vanish", "The country inside a country"},
}

// Suggester produces follow-up research topics for a finished answer.
type Suggester struct {
	gen Generator
}

// NewSuggester creates a suggester on top of a generation backend.
func NewSuggester(gen Generator) *Suggester {
	return &Suggester{gen: gen}
}

// Suggest returns up to five follow-up topics. A generation failure
// falls back to the per-category canned list, never an error.
func (s *Suggester) Suggest(ctx context.Context, topic, category string) []string {
	raw, err := s.gen.Generate(ctx, suggestionPrompt(topic, category), Options{
		Temperature: 0.8,
		MaxTokens:   300,
	})
	if err != nil {
		zap.L().Warn("suggestion generation failed", zap.String("topic", topic), zap.Error(err))
		return Fallback(category)
	}

	suggestions := ParseSuggestions(raw)
	if len(suggestions) == 0 {
		return Fallback(category)
	}
	return suggestions
}

// ParseSuggestions extracts suggestion lines from a raw completion,
// dropping empties and numbered list markers, capped at five.
func ParseSuggestions(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.Trim(line, `"`)
		if line == "" || numberedLine.MatchString(line) {
			continue
		}
		out = append(out, line)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// Fallback returns the canned suggestions for a category, defaulting to
// the concept list.
func Fallback(category string) []string {
	if s, ok := fallbackSuggestions[category]; ok {
		return s
	}
	return fallbackSuggestions[model.CategoryConcept]
}

func suggestionPrompt(topic, category string) string {
	return fmt.Sprintf(`Based on the research topic %q (category: %s), generate exactly 5 related, curious, and specific research topics that would genuinely interest someone exploring this subject.

Requirements:
- Each suggestion should be a specific, intriguing topic (not generic)
- Mix different time periods, perspectives, and angles
- Include surprising connections or lesser-known aspects
- Make them sound like real research queries someone would actually search for
- Vary between people, events, concepts, and places related to the main topic
- Keep each suggestion under 60 characters for button display

Format: Return only the 5 suggestions, one per line, no numbering or bullets.

Examples of good suggestions:
- "Why did Tesla fear pearls?"
- "The Pope who put a dead body on trial"
- "How coffee beans started a revolution"
- "The woman who fooled Napoleon"
- "Why purple was illegal to wear"

Generate 5 similar curious topics related to %q:`, topic, category, topic)
}
