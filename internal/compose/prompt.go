// Package compose renders classifier output, aggregated sources, and
// caller preferences into the text block sent to the generation step.
// Everything here is deterministic string assembly.
package compose

import (
	"fmt"
	"strings"

	"github.com/arqiv-labs/research-pipeline/internal/model"
)

// excerptLen caps how much of each source body enters the prompt.
// Truncation happens here, not in the adapters.
const excerptLen = 300

// Input carries everything the composer folds into a prompt.
type Input struct {
	Query        string
	Category     string
	Depth        string
	WikiExtract  string
	Sources      []model.ResearchSource
	Preferences  *model.Preferences
	Analysis     model.PromptAnalysis
	Regeneration bool
}

// depthAdjustments are the elaboration directives per depth level,
// matched by exact label.
var depthAdjustments = map[string]string{
	model.DepthQuickIdea:        "Keep sections concise, focus on essential facts from key time periods.",
	model.DepthDetailedResearch: "Provide comprehensive coverage across multiple historical contexts.",
	model.DepthInvestigator:     "Include lesser-known facts, cultural variants, and cross-temporal analysis.",
	model.DepthEverything:       "Combine all approaches with maximum detail and multi-era research suggestions.",
}

// Prompt assembles the full generation prompt. Identical inputs always
// yield an identical prompt; Regeneration only appends an instruction
// to vary perspective.
func Prompt(in Input) string {
	var b strings.Builder

	if in.Analysis.Tone != model.ToneNeutral && in.Analysis.Tone != "" {
		fmt.Fprintf(&b, "Note: The user's query has a %s tone. Respond appropriately while maintaining professionalism.\n\n", in.Analysis.Tone)
	}

	if in.Category == model.CategoryResearchBuddy {
		b.WriteString("RESEARCH BUDDY MODE: Focus on academic rigor, provide comprehensive analysis, include proper citations, ensure zero plagiarism by paraphrasing and synthesizing information from multiple sources. Structure your response for academic use.\n\n")
	}

	b.WriteString("Begin your response with a concise one-line summary prefixed with \"🔎 Summary: \", followed by a blank line before the detailed content.\n\n")

	if in.WikiExtract != "" {
		fmt.Fprintf(&b, "Wikipedia Context: %s\n\n", in.WikiExtract)
	} else {
		b.WriteString("Wikipedia Context: No Wikipedia summary found for this topic.\n\n")
	}

	if len(in.Sources) > 0 {
		b.WriteString("Additional Research Sources:\n")
		for i, src := range in.Sources {
			fmt.Fprintf(&b, "%d. [%s] %s\n   %s\n   URL: %s\n\n",
				i+1, src.SourceLabel(), src.Title, excerpt(src.Content), src.URL)
		}
		b.WriteString("\n")
	}

	if p := in.Preferences; p != nil && !p.IsZero() {
		fmt.Fprintf(&b, "User Preferences: Respond at %s level, use %s tone, provide %s answers in %s format. Language: %s. Include citations: %s.\n",
			p.Understanding, p.Tone, p.Length, p.Format, p.Language, p.Citations)
		if p.Additional != "" {
			fmt.Fprintf(&b, "Additional Instructions: %s\n", p.Additional)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Research Query: %q\n\n", in.Query)
	fmt.Fprintf(&b, "Research Category: %s\n", in.Category)
	fmt.Fprintf(&b, "Research Depth: %s\n\n", in.Depth)

	if in.Category == model.CategoryResearchBuddy {
		b.WriteString(`Please provide a comprehensive academic response that:
1. Synthesizes information from multiple sources
2. Includes proper citations and references
3. Maintains academic integrity with zero plagiarism
4. Provides critical analysis and insights
5. Suggests areas for further research
6. Uses appropriate academic language and structure
7. Includes a trust rating (out of 5) for each cited source

`)
	} else {
		fmt.Fprintf(&b, "Please provide a comprehensive response based on the research category %q with %q level detail.\n\n", in.Category, in.Depth)
	}

	if adj, ok := depthAdjustments[in.Depth]; ok {
		fmt.Fprintf(&b, "Depth adjustment: %s\n\n", adj)
	}

	if in.Regeneration {
		b.WriteString("Please provide a fresh perspective or additional insights on this topic.\n\n")
	}

	return b.String()
}

func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLen {
		return content
	}
	return string(runes[:excerptLen]) + "..."
}
