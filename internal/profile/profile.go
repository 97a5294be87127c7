// Package profile supplies the read-only identity of the user
package profile

import (
	"context"
	"strings"

	"github.com/vcscsvcscs/wellness-companion/pkg/model"
)

// Defaults used when no profile is configured
const (
	DefaultName           = "Asma"
	DefaultPregnancyStage = "Second Trimester"
)

// Provider returns the current user profile
type Provider interface {
	Profile(ctx context.Context) model.Profile
}

// StaticProvider serves a fixed profile
type StaticProvider struct {
	profile model.Profile
}

// NewStaticProvider creates a StaticProvider. Blank fields fall back to the
// defaults.
func NewStaticProvider(name, pregnancyStage string) *StaticProvider {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	pregnancyStage = strings.TrimSpace(pregnancyStage)
	if pregnancyStage == "" {
		pregnancyStage = DefaultPregnancyStage
	}

	return &StaticProvider{
		profile: model.Profile{Name: name, PregnancyStage: pregnancyStage},
	}
}

// Profile returns the configured profile
func (p *StaticProvider) Profile(ctx context.Context) model.Profile {
	return p.profile
}
