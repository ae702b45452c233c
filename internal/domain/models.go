package domain

// Record is one normalized extraction result, keyed by schema field name.
// It is produced once by the extraction stage, optionally extended once by
// identity resolution under KeyResolvedIdentity, and never mutated again.
type Record map[string]any

// KeyResolvedIdentity is the record key identity resolution attaches to.
const KeyResolvedIdentity = "resolved_identity"

// String returns the record value under key as a string, if it is one.
func (r Record) String(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

// Float returns the record value under key as a float64, if it is numeric.
func (r Record) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// List returns the record value under key as a slice, if it is one.
func (r Record) List(key string) ([]any, bool) {
	vs, ok := r[key].([]any)
	return vs, ok
}

// Records returns the record value under key as a slice of nested records.
// It accepts both the normalized in-process form and the generic form a JSON
// round trip produces.
func (r Record) Records(key string) ([]Record, bool) {
	switch vs := r[key].(type) {
	case []Record:
		return vs, true
	case []any:
		out := make([]Record, 0, len(vs))
		for _, v := range vs {
			m, ok := v.(map[string]any)
			if !ok {
				return nil, false
			}
			out = append(out, Record(m))
		}
		return out, true
	}
	return nil, false
}

// Strings returns the record value under key as a string slice. It accepts
// both the normalized in-process form and the generic form a JSON round trip
// produces.
func (r Record) Strings(key string) ([]string, bool) {
	switch vs := r[key].(type) {
	case []string:
		return vs, true
	case []any:
		out := make([]string, 0, len(vs))
		for _, v := range vs {
			s, ok := v.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// Identity returns the resolved identity attached to the record, or nil when
// resolution abstained. It accepts both the typed in-process form and the
// generic form a JSON round trip produces.
func (r Record) Identity() *ResolvedIdentity {
	switch v := r[KeyResolvedIdentity].(type) {
	case *ResolvedIdentity:
		return v
	case map[string]any:
		id := &ResolvedIdentity{}
		if s, ok := v["full_name"].(string); ok {
			id.FullName = s
		}
		if s, ok := v["identifier"].(string); ok {
			id.Identifier = s
		}
		if id.FullName == "" && id.Identifier == "" {
			return nil
		}
		return id
	}
	return nil
}

// ExtractionRequest is the immutable input to one pipeline run.
type ExtractionRequest struct {
	ImageReference string
	FreeTextHint   string
}

// DirectoryEntry is one candidate identity in the external directory.
type DirectoryEntry struct {
	FullName   string `db:"full_name" json:"full_name"`
	Identifier string `db:"identifier" json:"identifier"`
}

// ResolvedIdentity is the directory entry chosen for a handwritten name.
type ResolvedIdentity struct {
	FullName   string `json:"full_name"`
	Identifier string `json:"identifier"`
}
