package model

// Intent classifies what a query is after.
type Intent string

const (
	IntentAcademic   Intent = "academic"
	IntentGeneral    Intent = "general"
	IntentNews       Intent = "news"
	IntentHistorical Intent = "historical"
	IntentPersonal   Intent = "personal"
)

// Tone classifies the register of a query.
type Tone string

const (
	ToneFormal    Tone = "formal"
	ToneCasual    Tone = "casual"
	ToneSarcastic Tone = "sarcastic"
	ToneHumorous  Tone = "humorous"
	ToneNeutral   Tone = "neutral"
)

// Complexity classifies how demanding a query is.
type Complexity string

const (
	ComplexitySimple       Complexity = "simple"
	ComplexityIntermediate Complexity = "intermediate"
	ComplexityAdvanced     Complexity = "advanced"
)

// PromptAnalysis is the classifier's verdict on a raw query. It is a pure
// function of (query, category): no state, no I/O, no randomness.
type PromptAnalysis struct {
	Intent           Intent     `json:"intent"`
	Tone             Tone       `json:"tone"`
	Complexity       Complexity `json:"complexity"`
	Keywords         []string   `json:"keywords"`
	SuggestedSources []Provider `json:"suggested_sources"`
}
