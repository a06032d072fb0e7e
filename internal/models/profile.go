package models

// Popularity tier labels used when preparing profile data for analysis.
const (
	TierHigh   = "High Popularity (70+)"
	TierMedium = "Medium Popularity (40-69)"
	TierLow    = "Low Popularity (<40)"
)

// PopularityTier groups artists of a similar popularity band.
type PopularityTier struct {
	Name    string   `json:"name"`
	Count   int      `json:"count"`
	Artists []Artist `json:"artists"`
}

// ListeningProfile summarizes the user's library for analysis and reporting.
type ListeningProfile struct {
	TotalArtists int              `json:"totalArtists"`
	Tiers        []PopularityTier `json:"tiers"`
	TopGenres    []GenreCount     `json:"topGenres"`
	SourceCounts map[string]int   `json:"sourceCounts"`
}

// Analysis is the language-model compatibility verdict for one run.
type Analysis struct {
	Text       string `json:"text"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	TokensUsed int    `json:"tokensUsed"`
}
