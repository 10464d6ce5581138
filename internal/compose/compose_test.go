package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arqiv-labs/research-pipeline/internal/model"
)

func TestPrompt_NoSources(t *testing.T) {
	out := Prompt(Input{
		Query:    "the printing press",
		Category: model.CategoryConcept,
		Depth:    model.DepthQuickIdea,
	})

	assert.Contains(t, out, `Research Query: "the printing press"`)
	assert.Contains(t, out, "Research Category: Concept")
	assert.Contains(t, out, "Research Depth: Quick Idea")
	assert.Contains(t, out, "Wikipedia Context: No Wikipedia summary found for this topic.")
	assert.Contains(t, out, "Depth adjustment: Keep sections concise, focus on essential facts from key time periods.")
	assert.NotContains(t, out, "Additional Research Sources:")
	assert.NotContains(t, out, "RESEARCH BUDDY MODE")
}

func TestPrompt_SourcesNumberedWithLabels(t *testing.T) {
	out := Prompt(Input{
		Query:    "dark matter",
		Category: model.CategoryConcept,
		Depth:    model.DepthDetailedResearch,
		Sources: []model.ResearchSource{
			{Provider: model.ProviderArxiv, Title: "A Paper", Content: "Body one.", URL: "https://arxiv.org/abs/1"},
			{Provider: model.ProviderYouTube, Detail: "Space Archive", Title: "A Video", Content: "Body two.", URL: "https://youtube.com/watch?v=2"},
		},
	})

	assert.Contains(t, out, "Additional Research Sources:")
	assert.Contains(t, out, "1. [arXiv] A Paper\n   Body one.\n   URL: https://arxiv.org/abs/1")
	assert.Contains(t, out, "2. [YouTube - Space Archive] A Video")
}

func TestPrompt_ExcerptTruncation(t *testing.T) {
	long := strings.Repeat("é", 400)
	out := Prompt(Input{
		Query:    "q",
		Category: model.CategoryConcept,
		Depth:    model.DepthDetailedResearch,
		Sources: []model.ResearchSource{
			{Provider: model.ProviderArxiv, Title: "T", Content: long, URL: "u"},
		},
	})

	assert.Contains(t, out, strings.Repeat("é", 300)+"...")
	assert.NotContains(t, out, strings.Repeat("é", 301))
}

func TestPrompt_ResearchBuddyMode(t *testing.T) {
	out := Prompt(Input{
		Query:    "epigenetics",
		Category: model.CategoryResearchBuddy,
		Depth:    model.DepthEverything,
	})

	assert.Contains(t, out, "RESEARCH BUDDY MODE:")
	assert.Contains(t, out, "7. Includes a trust rating (out of 5) for each cited source")
	assert.NotContains(t, out, "Please provide a comprehensive response based on the research category")
}

func TestPrompt_ToneAndPreferences(t *testing.T) {
	out := Prompt(Input{
		Query:    "why do cats purr lol",
		Category: model.CategoryConcept,
		Depth:    model.DepthQuickIdea,
		Analysis: model.PromptAnalysis{Tone: model.ToneHumorous},
		Preferences: &model.Preferences{
			Understanding: "Beginner",
			Tone:          "Friendly",
			Length:        "Concise",
			Language:      "English",
			Format:        "Bullet Points",
			Citations:     "Yes",
			Additional:    "Avoid jargon.",
		},
	})

	assert.Contains(t, out, "Note: The user's query has a humorous tone.")
	assert.Contains(t, out, "User Preferences: Respond at Beginner level, use Friendly tone, provide Concise answers in Bullet Points format. Language: English. Include citations: Yes.")
	assert.Contains(t, out, "Additional Instructions: Avoid jargon.")
}

func TestPrompt_NeutralToneOmitted(t *testing.T) {
	out := Prompt(Input{
		Query:    "q",
		Category: model.CategoryConcept,
		Depth:    model.DepthQuickIdea,
		Analysis: model.PromptAnalysis{Tone: model.ToneNeutral},
	})

	assert.NotContains(t, out, "tone. Respond appropriately")
}

func TestPrompt_Deterministic(t *testing.T) {
	in := Input{
		Query:    "dark matter",
		Category: model.CategoryConcept,
		Depth:    model.DepthInvestigator,
		Sources: []model.ResearchSource{
			{Provider: model.ProviderArxiv, Title: "A Paper", Content: "Body.", URL: "u"},
		},
	}
	assert.Equal(t, Prompt(in), Prompt(in))
}

func TestPrompt_RegenerationAppendsInstruction(t *testing.T) {
	in := Input{Query: "q", Category: model.CategoryConcept, Depth: model.DepthQuickIdea}
	base := Prompt(in)

	in.Regeneration = true
	regen := Prompt(in)

	assert.True(t, strings.HasPrefix(regen, base))
	assert.Contains(t, regen, "Please provide a fresh perspective or additional insights on this topic.")
}

func TestCitations(t *testing.T) {
	sources := []model.ResearchSource{
		{Citation: "Rubin, V. (1980). Dark matter.", TrustScore: 4.5},
		{Title: "No Citation Source"},
		{Citation: "Doudna, J. (2020). CRISPR."},
	}

	out := Citations(sources)
	require.NotEmpty(t, out)
	assert.True(t, strings.HasPrefix(out, "\n\n**Sources & Citations:**\n"))
	assert.Contains(t, out, "1. Rubin, V. (1980). Dark matter. (Rating: 4.5/5)")
	// Numbering follows cited sources only, and no rating is shown for
	// an unscored source.
	assert.Contains(t, out, "2. Doudna, J. (2020). CRISPR.")
	assert.NotContains(t, out, "No Citation Source")
	assert.NotContains(t, out, "2. Doudna, J. (2020). CRISPR. (Rating")
}

func TestCitations_Empty(t *testing.T) {
	assert.Empty(t, Citations(nil))
	assert.Empty(t, Citations([]model.ResearchSource{{Title: "uncited"}}))
}
