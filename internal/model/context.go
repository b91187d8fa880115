package model

// Tier identifies which retrieval stage produced a reference context.
// Lower values are higher priority.
type Tier int

const (
	TierUploads Tier = iota + 1
	TierURLs
	TierSimilarity
	TierWebSearch
	TierNone
)

// String returns the tier's wire name.
func (t Tier) String() string {
	switch t {
	case TierUploads:
		return "uploads"
	case TierURLs:
		return "urls"
	case TierSimilarity:
		return "similarity"
	case TierWebSearch:
		return "websearch"
	default:
		return "none"
	}
}

// ReferenceContext is the single resolved block of retrieved text handed to
// the prompt builder. Empty Text is valid and means "no context found".
type ReferenceContext struct {
	Text   string `json:"text"`
	Source Tier   `json:"source"`
}

// Empty reports whether no reference content was found.
func (c ReferenceContext) Empty() bool {
	return c.Text == ""
}
