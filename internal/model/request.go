// Package model defines the request, context and result types shared by the
// retrieval, prompt and session layers.
package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// ContentType selects which prompt template a request uses.
type ContentType string

const (
	ContentBlog        ContentType = "blog"
	ContentVideoScript ContentType = "video_script"
)

// Valid reports whether the content type is one of the supported values.
func (c ContentType) Valid() bool {
	return c == ContentBlog || c == ContentVideoScript
}

// Tone is a closed set of writing-style tags. Unknown tones degrade to an
// empty guidance instruction rather than erroring.
type Tone string

const (
	ToneProfessional   Tone = "professional"
	ToneFriendly       Tone = "friendly"
	ToneAuthoritative  Tone = "authoritative"
	TonePlayful        Tone = "playful"
	ToneInspirational  Tone = "inspirational"
	ToneConversational Tone = "conversational"
	ToneCasual         Tone = "casual"
	ToneSemiCasual     Tone = "semi_casual"
	ToneBusinessPro    Tone = "business_professional"
	ToneApproachable   Tone = "approachable"
	ToneInformative    Tone = "informative"
	ToneAssertive      Tone = "assertive"
	ToneEngaging       Tone = "engaging"
	ToneVisionary      Tone = "visionary"
	ToneConfident      Tone = "confident"
	ToneDataDriven     Tone = "data_driven"
	TonePlainspoken    Tone = "plainspoken"
	ToneWitty          Tone = "witty"
	ToneStorytelling   Tone = "storytelling"
)

// Audience is a closed set of target-audience tags.
type Audience string

const (
	AudienceSenior Audience = "senior_management"
	AudienceMiddle Audience = "middle_management"
	AudienceJunior Audience = "junior_staff"
)

// SEO holds blog-only keyword settings.
type SEO struct {
	PrimaryKeyword string   `json:"primary_keyword"`
	LSIKeywords    []string `json:"lsi_keywords,omitempty"`
}

// GenerationRequest captures every user-selectable input for one generate
// action. Blog requests use WordLimit and require SEO.PrimaryKeyword;
// video-script requests use DurationMinutes and carry no SEO fields.
type GenerationRequest struct {
	ContentType     ContentType `json:"content_type"`
	Topic           string      `json:"topic"`
	Tone            Tone        `json:"tone"`
	Audience        Audience    `json:"audience"`
	Industry        string      `json:"industry,omitempty"`
	WordLimit       int         `json:"word_limit,omitempty"`
	DurationMinutes float64     `json:"duration_minutes,omitempty"`
	CTA             string      `json:"cta"`
	SEO             *SEO        `json:"seo,omitempty"`
}

// ErrInvalidRequest marks validation failures. Callers reject the action
// before any retrieval or generation work begins.
var ErrInvalidRequest = eris.New("model: invalid request")

// Validate checks the request invariants.
func (r GenerationRequest) Validate() error {
	if !r.ContentType.Valid() {
		return eris.Wrapf(ErrInvalidRequest, "unknown content type %q", r.ContentType)
	}
	if strings.TrimSpace(r.Topic) == "" {
		return eris.Wrap(ErrInvalidRequest, "topic is required")
	}
	switch r.ContentType {
	case ContentBlog:
		if r.SEO == nil || strings.TrimSpace(r.SEO.PrimaryKeyword) == "" {
			return eris.Wrap(ErrInvalidRequest, "blog generation requires a primary keyword")
		}
	case ContentVideoScript:
		if r.SEO != nil {
			return eris.Wrap(ErrInvalidRequest, "video script requests carry no SEO fields")
		}
		if r.DurationMinutes <= 0 {
			return eris.Wrap(ErrInvalidRequest, "video script requires a positive duration")
		}
	}
	return nil
}
