package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"rendix/internal/domain"
	"rendix/internal/normalize"
	"rendix/internal/port"
)

const instructions = `Eres un asistente que identifica a la persona correcta dentro de la nómina de choferes de una empresa de transporte.

Recibirás un nombre tal como fue extraído de un formulario manuscrito, junto con la lista de choferes registrados. El nombre extraído puede tener errores de ortografía, abreviaciones o estar incompleto.

## Reglas:
- Elige exactamente una persona de la lista si hay una coincidencia razonable.
- Devuelve el nombre EXACTAMENTE como aparece en la lista, junto con su identificador.
- NO inventes personas que no estén en la lista.
- Si ninguna persona de la lista coincide razonablemente, responde con null en ambos campos.

## Formato de salida:
Responde únicamente con JSON:
{"full_name": "string o null", "identifier": "string o null"}`

// identitySchema constrains the resolver completion output.
var identitySchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"full_name":  map[string]any{"type": []any{"string", "null"}},
		"identifier": map[string]any{"type": []any{"string", "null"}},
	},
	"required":             []any{"full_name", "identifier"},
	"additionalProperties": false,
}

// Resolver matches an extracted person name against the registered driver
// directory. Resolution is best effort: any failure or doubtful match yields
// an absent identity, never an error.
type Resolver struct {
	completer     port.StructuredCompleter
	directory     port.Directory
	model         string
	minSimilarity float64
}

// NewResolver creates a Resolver. Matches scoring below minSimilarity against
// the registered name are discarded.
func NewResolver(completer port.StructuredCompleter, directory port.Directory, model string, minSimilarity float64) *Resolver {
	return &Resolver{
		completer:     completer,
		directory:     directory,
		model:         model,
		minSimilarity: minSimilarity,
	}
}

// Resolve returns the registered identity for an extracted name, or nil when
// no confident match exists. Failures are logged and reported as absent.
func (r *Resolver) Resolve(ctx context.Context, extractedName string) *domain.ResolvedIdentity {
	identity, err := r.resolve(ctx, extractedName)
	if err != nil {
		log.Printf("resolver.Resolve: resolution failed for %q: %v", extractedName, err)
		return nil
	}
	return identity
}

func (r *Resolver) resolve(ctx context.Context, extractedName string) (*domain.ResolvedIdentity, error) {
	name := strings.TrimSpace(extractedName)
	if name == "" {
		return nil, nil
	}

	entries, err := r.directory.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	out, err := r.completer.Complete(ctx, port.CompletionInput{
		Instructions: instructions,
		UserText:     buildUserText(name, entries),
		SchemaName:   "identidad",
		Schema:       identitySchema,
		Model:        r.model,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrResolutionFailed, err)
	}

	var choice struct {
		FullName   *string `json:"full_name"`
		Identifier *string `json:"identifier"`
	}
	if err := json.Unmarshal(out.JSON, &choice); err != nil {
		return nil, fmt.Errorf("%w: unusable model output: %v", domain.ErrResolutionFailed, err)
	}
	if choice.FullName == nil || strings.TrimSpace(*choice.FullName) == "" {
		return nil, nil
	}

	entry, ok := findEntry(entries, *choice.FullName, choice.Identifier)
	if !ok {
		log.Printf("resolver.resolve: model chose %q which is not in the directory, discarding", *choice.FullName)
		return nil, nil
	}

	if score := Similarity(name, entry.FullName); score < r.minSimilarity {
		log.Printf("resolver.resolve: match %q for %q below similarity threshold (%.2f < %.2f), discarding",
			entry.FullName, name, score, r.minSimilarity)
		return nil, nil
	}

	return &domain.ResolvedIdentity{
		FullName:   entry.FullName,
		Identifier: entry.Identifier,
	}, nil
}

// findEntry locates the directory entry the model chose, preferring the
// identifier when present and falling back to the folded name.
func findEntry(entries []domain.DirectoryEntry, fullName string, identifier *string) (domain.DirectoryEntry, bool) {
	if identifier != nil && *identifier != "" {
		for _, e := range entries {
			if e.Identifier == *identifier {
				return e, true
			}
		}
	}
	folded := normalize.Fold(fullName)
	for _, e := range entries {
		if normalize.Fold(e.FullName) == folded {
			return e, true
		}
	}
	return domain.DirectoryEntry{}, false
}

func buildUserText(name string, entries []domain.DirectoryEntry) string {
	roster, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		roster = []byte("[]")
	}
	return fmt.Sprintf("Nombre extraído: %q\n\nNómina de choferes:\n%s", name, roster)
}
