package model

import "time"

// Research categories as presented to the user. CategoryResearchBuddy is
// the academic mode; the rest describe what kind of subject the query is.
const (
	CategoryPerson        = "Person"
	CategoryEvent         = "Event"
	CategoryYear          = "Year"
	CategoryConcept       = "Concept"
	CategoryLocation      = "Location"
	CategoryResearchBuddy = "Research Buddy"
)

// Depth levels controlling how much elaboration the generation step
// should produce. Matched by exact string.
const (
	DepthQuickIdea        = "Quick Idea"
	DepthDetailedResearch = "Detailed Research"
	DepthInvestigator     = "Investigator Mode"
	DepthEverything       = "Everything"
)

// Preferences are caller-supplied answer-style directives.
type Preferences struct {
	Understanding string `json:"understanding,omitempty"` // Beginner, Intermediate, Expert
	Tone          string `json:"tone,omitempty"`          // Formal, Friendly, Humorous
	Length        string `json:"length,omitempty"`        // Concise, Detailed
	Language      string `json:"language,omitempty"`
	Format        string `json:"format,omitempty"` // Bullet Points, Paragraphs, Mixed
	Citations     string `json:"citations,omitempty"`
	Additional    string `json:"additional,omitempty"`
}

// IsZero reports whether no preference field is set.
func (p Preferences) IsZero() bool {
	return p == Preferences{}
}

// Image is one illustration attached to a research result.
type Image struct {
	URL    string `json:"url"`
	Alt    string `json:"alt"`
	Source string `json:"source"`
	Credit string `json:"credit"`
}

// WikiSummary is the encyclopedia context for a topic. Both fields may be
// empty when the topic has no article; that is not an error.
type WikiSummary struct {
	Extract   string `json:"extract,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// SavedResearch is one persisted research result, unique per
// (user_id, topic, category, depth).
type SavedResearch struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Topic       string    `json:"topic"`
	Category    string    `json:"category"`
	Depth       string    `json:"depth"`
	Response    string    `json:"response"`
	WikiImage   string    `json:"wiki_image,omitempty"`
	Images      []Image   `json:"images,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
