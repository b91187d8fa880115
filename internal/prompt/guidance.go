// Package prompt builds the system prompts handed to the completion model
// and applies output-side word-limit enforcement.
package prompt

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/content-hub/content-hub/internal/model"
)

//go:embed guidance.yaml
var guidanceYAML []byte

type guidanceTables struct {
	Tones     map[model.Tone]string     `yaml:"tones"`
	Audiences map[model.Audience]string `yaml:"audiences"`
}

var guidance guidanceTables

func init() {
	if err := yaml.Unmarshal(guidanceYAML, &guidance); err != nil {
		panic(fmt.Sprintf("prompt: parse embedded guidance: %v", err))
	}
}

// toneGuideline returns the style instruction for a tone. Unknown tones get
// an empty instruction rather than an error.
func toneGuideline(t model.Tone) string {
	return guidance.Tones[t]
}

// audienceGuideline returns the instruction for an audience, empty when
// unknown.
func audienceGuideline(a model.Audience) string {
	return guidance.Audiences[a]
}

// ctaMapping expands the short CTA labels the UI offers into full sentences.
var ctaMapping = map[string]string{
	"Book Assessment":                "Book your free SAP Clean Core Assessment today.",
	"Request a demo":                 "Request a demo to see the solution in action.",
	"Talk to our experts":            "Talk to our experts to discuss your requirements.",
	"Learn more about our solutions": "Learn more about our solutions tailored to your needs.",
	"Contact us today":               "Contact us today to get started.",
	"Download the full guide":        "Download the full guide to explore more insights.",
	"Book a free consultation":       "Book your free consultation today.",
}

// CTAText expands a CTA label. Labels without a mapping pass through
// verbatim so custom calls to action keep working.
func CTAText(choice string) string {
	if text, ok := ctaMapping[choice]; ok {
		return text
	}
	return choice
}
