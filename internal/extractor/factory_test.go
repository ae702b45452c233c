package extractor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rendix/internal/config"
	"rendix/internal/port"
)

type nopCompleter struct{}

func (nopCompleter) Complete(context.Context, port.CompletionInput) (*port.CompletionOutput, error) {
	return &port.CompletionOutput{}, nil
}

func TestNewCompleter(t *testing.T) {
	RegisterProvider("fake", func(cfg *config.CompleterProviderConfig) (port.StructuredCompleter, error) {
		return nopCompleter{}, nil
	})

	c, err := NewCompleter(&config.CompleterProviderConfig{Provider: "fake"})
	require.NoError(t, err)
	assert.NotNil(t, c)

	_, err = NewCompleter(&config.CompleterProviderConfig{Provider: "desconocido"})
	assert.ErrorContains(t, err, "unknown completer provider")
}
