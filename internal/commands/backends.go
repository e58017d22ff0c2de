package commands

import (
	"github.com/spriteforge/autopaint/internal/config"
	"github.com/spriteforge/autopaint/internal/orchestrator"
	"github.com/spriteforge/autopaint/internal/provider"
)

// allSpecs returns every known backend regardless of configuration.
func allSpecs() []provider.Spec {
	return provider.Order()
}

// backendSpecs applies the configuration to the fixed backend list:
// disabled backends drop out, endpoint overrides apply, the relative
// order never changes.
func backendSpecs(cfg *config.Config) []provider.Spec {
	var specs []provider.Spec
	for _, s := range provider.Order() {
		settings, ok := cfg.Providers[string(s.ID)]
		if ok {
			if settings.Disabled {
				continue
			}
			if settings.Endpoint != "" {
				s.Endpoint = settings.Endpoint
			}
		}
		specs = append(specs, s)
	}
	return specs
}

// orchestratorOptions translates config tuning into orchestrator options.
func orchestratorOptions(cfg *config.Config) []orchestrator.Option {
	opts := []orchestrator.Option{
		orchestrator.WithHTTPTimeout(cfg.HTTPTimeout()),
	}
	for id, settings := range cfg.Providers {
		if settings.RequestsPerSecond > 0 {
			burst := settings.Burst
			if burst <= 0 {
				burst = 1
			}
			opts = append(opts, orchestrator.WithRateLimit(provider.ID(id), settings.RequestsPerSecond, burst))
		}
	}
	return opts
}
