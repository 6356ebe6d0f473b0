package ai

import (
	"fmt"

	"github.com/Pranavupp12/review-platform/internal/domain/providers"
	"github.com/Pranavupp12/review-platform/pkg/config"
)

// BuildProviders returns the configured generators in call order: primary, then fallback.
// Providers without a type or key are skipped.
func BuildProviders(cfg config.AIConfig) ([]providers.TextGenerator, error) {
	var out []providers.TextGenerator

	for _, p := range []config.ProviderConfig{cfg.Primary, cfg.Fallback} {
		if !p.Enabled() {
			continue
		}
		g, err := NewGenerator(p.Type, p, cfg)
		if err != nil {
			return nil, fmt.Errorf("build %s provider: %w", p.Type, err)
		}
		out = append(out, g)
	}
	return out, nil
}
