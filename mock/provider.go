// Package mock provides test doubles for chatter interfaces using function fields.
package mock

import (
	"context"

	"chatter"
)

// Interface compliance check.
var _ chatter.Provider = (*Provider)(nil)

// Provider is a test double for chatter.Provider.
// Set GenerateFn before calling Generate.
type Provider struct {
	GenerateFn func(ctx context.Context, req chatter.Request) (chatter.AssistantMessage, error)
}

// Generate delegates to GenerateFn.
func (p *Provider) Generate(ctx context.Context, req chatter.Request) (chatter.AssistantMessage, error) {
	return p.GenerateFn(ctx, req)
}
