package model

// Provider identifies an external knowledge source. Dispatch and trust
// scoring key on this tag; the human-readable label is display-only.
type Provider string

const (
	ProviderArxiv           Provider = "arxiv"
	ProviderSemanticScholar Provider = "semantic_scholar"
	ProviderPubMed          Provider = "pubmed"
	ProviderNewsAPI         Provider = "newsapi"
	ProviderGoogleBooks     Provider = "google_books"
	ProviderYouTube         Provider = "youtube"
	ProviderCrossRef        Provider = "crossref"
	ProviderWikipedia       Provider = "wikipedia"
)

// Label returns the display name for a provider.
func (p Provider) Label() string {
	switch p {
	case ProviderArxiv:
		return "arXiv"
	case ProviderSemanticScholar:
		return "Semantic Scholar"
	case ProviderPubMed:
		return "PubMed"
	case ProviderNewsAPI:
		return "NewsAPI"
	case ProviderGoogleBooks:
		return "Google Books"
	case ProviderYouTube:
		return "YouTube"
	case ProviderCrossRef:
		return "CrossRef"
	case ProviderWikipedia:
		return "Wikipedia"
	}
	return string(p)
}

// ResearchSource is one normalized knowledge-provider result.
//
// Every record handed downstream has non-empty Title, Content, URL, and
// Provider; adapters synthesize placeholder records rather than omit a
// provider entirely.
type ResearchSource struct {
	Provider      Provider `json:"provider"`
	Detail        string   `json:"detail,omitempty"` // e.g. channel name, outlet, citation count
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	URL           string   `json:"url"`
	PublishedDate string   `json:"published_date,omitempty"`
	Authors       []string `json:"authors,omitempty"`
	DOI           string   `json:"doi,omitempty"`
	Citation      string   `json:"citation,omitempty"`
	TrustScore    float64  `json:"trust_score,omitempty"` // 1-5, assigned post-hoc by the aggregator
	Placeholder   bool     `json:"placeholder,omitempty"` // degraded record synthesized on provider failure
}

// SourceLabel renders the display label, including the free-text detail
// when present ("YouTube - SomeChannel").
func (s ResearchSource) SourceLabel() string {
	if s.Detail == "" {
		return s.Provider.Label()
	}
	return s.Provider.Label() + " - " + s.Detail
}
