package resolver_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rendix/internal/domain"
	"rendix/internal/port"
	"rendix/internal/resolver"
	"rendix/mocks"
)

var roster = []domain.DirectoryEntry{
	{FullName: "Juan Alberto Perez", Identifier: "12345678-9"},
	{FullName: "Maria Jose Gomez", Identifier: "98765432-1"},
}

func TestResolveMatchesByIdentifier(t *testing.T) {
	directory := new(mocks.MockDirectory)
	directory.On("ListEntries", mock.Anything).Return(roster, nil)

	completer := new(mocks.MockStructuredCompleter)
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(in port.CompletionInput) bool {
		return in.SchemaName == "identidad" && strings.Contains(in.UserText, "Juan Albert Peres")
	})).Return(&port.CompletionOutput{
		JSON: json.RawMessage(`{"full_name": "Juan Alberto Perez", "identifier": "12345678-9"}`),
	}, nil)

	r := resolver.NewResolver(completer, directory, "", 0.5)
	identity := r.Resolve(context.Background(), "Juan Albert Peres")
	require.NotNil(t, identity)
	assert.Equal(t, "Juan Alberto Perez", identity.FullName)
	assert.Equal(t, "12345678-9", identity.Identifier)
	completer.AssertExpectations(t)
}

func TestResolveMatchesByFoldedName(t *testing.T) {
	directory := new(mocks.MockDirectory)
	directory.On("ListEntries", mock.Anything).Return(roster, nil)

	completer := new(mocks.MockStructuredCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return(&port.CompletionOutput{
		JSON: json.RawMessage(`{"full_name": "maria jose gomez", "identifier": null}`),
	}, nil)

	r := resolver.NewResolver(completer, directory, "", 0.5)
	identity := r.Resolve(context.Background(), "María José Gómez")
	require.NotNil(t, identity)
	assert.Equal(t, "Maria Jose Gomez", identity.FullName)
	assert.Equal(t, "98765432-1", identity.Identifier)
}

func TestResolveEmptyName(t *testing.T) {
	directory := new(mocks.MockDirectory)
	completer := new(mocks.MockStructuredCompleter)

	r := resolver.NewResolver(completer, directory, "", 0.5)
	assert.Nil(t, r.Resolve(context.Background(), "   "))
	directory.AssertNotCalled(t, "ListEntries", mock.Anything)
	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestResolveEmptyDirectory(t *testing.T) {
	directory := new(mocks.MockDirectory)
	directory.On("ListEntries", mock.Anything).Return([]domain.DirectoryEntry{}, nil)
	completer := new(mocks.MockStructuredCompleter)

	r := resolver.NewResolver(completer, directory, "", 0.5)
	assert.Nil(t, r.Resolve(context.Background(), "Juan Perez"))
	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestResolveDirectoryErrorAbsorbed(t *testing.T) {
	directory := new(mocks.MockDirectory)
	directory.On("ListEntries", mock.Anything).Return(nil, errors.New("db caida"))
	completer := new(mocks.MockStructuredCompleter)

	r := resolver.NewResolver(completer, directory, "", 0.5)
	assert.Nil(t, r.Resolve(context.Background(), "Juan Perez"))
}

func TestResolveModelErrorAbsorbed(t *testing.T) {
	directory := new(mocks.MockDirectory)
	directory.On("ListEntries", mock.Anything).Return(roster, nil)
	completer := new(mocks.MockStructuredCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return(nil, errors.New("modelo caido"))

	r := resolver.NewResolver(completer, directory, "", 0.5)
	assert.Nil(t, r.Resolve(context.Background(), "Juan Perez"))
}

func TestResolveModelAbstains(t *testing.T) {
	directory := new(mocks.MockDirectory)
	directory.On("ListEntries", mock.Anything).Return(roster, nil)
	completer := new(mocks.MockStructuredCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return(&port.CompletionOutput{
		JSON: json.RawMessage(`{"full_name": null, "identifier": null}`),
	}, nil)

	r := resolver.NewResolver(completer, directory, "", 0.5)
	assert.Nil(t, r.Resolve(context.Background(), "Nombre Ilegible"))
}

func TestResolveUnknownChoiceDiscarded(t *testing.T) {
	directory := new(mocks.MockDirectory)
	directory.On("ListEntries", mock.Anything).Return(roster, nil)
	completer := new(mocks.MockStructuredCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return(&port.CompletionOutput{
		JSON: json.RawMessage(`{"full_name": "Pedro Inventado", "identifier": "11111111-1"}`),
	}, nil)

	r := resolver.NewResolver(completer, directory, "", 0.5)
	assert.Nil(t, r.Resolve(context.Background(), "Pedro Inventado"))
}

func TestResolveBelowSimilarityDiscarded(t *testing.T) {
	directory := new(mocks.MockDirectory)
	directory.On("ListEntries", mock.Anything).Return(roster, nil)
	completer := new(mocks.MockStructuredCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return(&port.CompletionOutput{
		JSON: json.RawMessage(`{"full_name": "Juan Alberto Perez", "identifier": "12345678-9"}`),
	}, nil)

	r := resolver.NewResolver(completer, directory, "", 0.8)
	assert.Nil(t, r.Resolve(context.Background(), "Juan Peres"))
}

func TestResolveUnusableModelOutput(t *testing.T) {
	directory := new(mocks.MockDirectory)
	directory.On("ListEntries", mock.Anything).Return(roster, nil)
	completer := new(mocks.MockStructuredCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return(&port.CompletionOutput{
		JSON: json.RawMessage(`{"full_name": 42}`),
	}, nil)

	r := resolver.NewResolver(completer, directory, "", 0.5)
	assert.Nil(t, r.Resolve(context.Background(), "Juan Perez"))
}
