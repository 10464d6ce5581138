package provider

import (
	"fmt"
	"net/url"
	"time"

	"github.com/arqiv-labs/research-pipeline/internal/model"
)

// fallbackSpec is the degraded-result policy for one provider: the text
// of the placeholder record synthesized when the provider fails or
// returns nothing. Providers without a spec degrade to an empty list.
type fallbackSpec struct {
	titlePrefix string
	body        string
	searchURL   string // fmt pattern taking the escaped query
	author      string
	venue       string
}

var fallbacks = map[model.Provider]fallbackSpec{
	model.ProviderArxiv: {
		titlePrefix: "Academic Research",
		body:        "Academic papers and research related to %q. Visit arXiv for full academic papers and citations.",
		searchURL:   "https://arxiv.org/search/?query=%s",
		author:      "Academic Community",
		venue:       "arXiv",
	},
	model.ProviderSemanticScholar: {
		titlePrefix: "Academic Research",
		body:        "Academic papers and research related to %q. Visit Semantic Scholar for comprehensive academic literature.",
		searchURL:   "https://www.semanticscholar.org/search?q=%s",
		author:      "Academic Community",
		venue:       "Semantic Scholar",
	},
	model.ProviderPubMed: {
		titlePrefix: "Medical Research",
		body:        "Medical and biomedical research related to %q. Visit PubMed for comprehensive medical literature.",
		searchURL:   "https://pubmed.ncbi.nlm.nih.gov/?term=%s",
		author:      "Medical Research Community",
		venue:       "PubMed",
	},
}

// placeholder synthesizes the degraded record for a provider, linking to
// the provider's own search page for the query. Returns nil records for
// providers whose policy is to go silent (news, books, video, DOI index).
func (b base) placeholder(p model.Provider, query string) []model.ResearchSource {
	spec, ok := fallbacks[p]
	if !ok {
		return nil
	}

	now := b.now()
	searchURL := fmt.Sprintf(spec.searchURL, url.QueryEscape(query))
	title := fmt.Sprintf("%s: %s", spec.titlePrefix, query)

	return []model.ResearchSource{{
		Provider:      p,
		Title:         title,
		Content:       fmt.Sprintf(spec.body, query),
		URL:           searchURL,
		PublishedDate: now.Format(time.RFC3339),
		Authors:       []string{spec.author},
		Citation:      fmt.Sprintf("%s (%d). %s. %s. %s", spec.author, now.Year(), title, spec.venue, searchURL),
		Placeholder:   true,
	}}
}
