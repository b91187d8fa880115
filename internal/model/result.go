package model

import "time"

// GenerationResult is the single live output of a session. It is created by
// the generation client, replaced wholesale by later generate or refine
// calls, and cleared explicitly by the user. No history is kept.
type GenerationResult struct {
	Text      string            `json:"text"`
	Request   GenerationRequest `json:"request"`
	Source    Tier              `json:"source"`
	CreatedAt time.Time         `json:"created_at"`
}
