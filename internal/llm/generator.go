package llm

import (
	"context"
	"fmt"
	"strings"
)

const (
	generateMaxTokens = 3200
	generateTemp      = 0.7
	refineMaxTokens   = 3000
)

// Generator wraps a Client with the fixed generation and refinement
// parameters.
type Generator struct {
	client Client
}

func NewGenerator(client Client) *Generator {
	return &Generator{client: client}
}

// Generate runs a fresh completion over a fully built prompt.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.client.Complete(ctx, prompt, CompleteOptions{
		MaxTokens:   generateMaxTokens,
		Temperature: generateTemp,
	})
}

// Refine rewrites previous output according to an instruction.
func (g *Generator) Refine(ctx context.Context, previous, instruction string) (string, error) {
	prompt := fmt.Sprintf("Refine the following content based on instruction: '%s'\n\nContent:\n%s",
		strings.TrimSpace(instruction), previous)
	return g.client.Complete(ctx, prompt, CompleteOptions{
		MaxTokens:   refineMaxTokens,
		Temperature: generateTemp,
	})
}
