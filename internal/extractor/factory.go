package extractor

import (
	"fmt"

	"rendix/internal/config"
	"rendix/internal/port"
)

// ProviderFactory is a function that creates a StructuredCompleter from a provider config.
type ProviderFactory func(cfg *config.CompleterProviderConfig) (port.StructuredCompleter, error)

// registry of completer provider factories, populated by init() in each provider package
// or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a completer provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewCompleter creates a StructuredCompleter from a provider config using the registered factory.
func NewCompleter(cfg *config.CompleterProviderConfig) (port.StructuredCompleter, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown completer provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
