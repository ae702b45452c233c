package normalize

import (
	"time"

	"rendix/internal/domain"
	"rendix/internal/schema"
)

// Apply walks raw model output field by field under the record schema and
// produces the normalized record. Every declared field appears in the result,
// with nil standing for absent-as-null; undeclared input is ignored. Apply is
// best-effort and never fails: required-field enforcement happens afterwards,
// in the validator.
func Apply(s schema.RecordSchema, raw map[string]any, now time.Time) domain.Record {
	rec := make(domain.Record, len(s.Fields))
	for _, f := range s.Fields {
		rec[f.Name] = normalizeField(f, raw[f.Name], now)
	}
	return rec
}

func normalizeField(f schema.FieldSpec, v any, now time.Time) any {
	switch f.Type {
	case schema.FieldDate:
		return normalizeDate(f, v, now)
	case schema.FieldNumber:
		if n, ok := Amount(v); ok {
			return n
		}
		return nil
	case schema.FieldEnum:
		return normalizeEnum(f, v)
	case schema.FieldStringList:
		if vs, ok := v.([]any); ok {
			return Keywords(vs)
		}
		return nil
	case schema.FieldList:
		return normalizeList(f, v, now)
	default:
		return normalizeString(f, v)
	}
}

func normalizeString(f schema.FieldSpec, v any) any {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	switch f.Transform {
	case schema.TransformPlate:
		s = Plate(s)
	case schema.TransformPersonName:
		s = PersonName(s)
	default:
		s = collapseSpace(s)
	}
	if s == "" {
		return nil
	}
	return s
}

func normalizeDate(f schema.FieldSpec, v any, now time.Time) any {
	raw, _ := v.(string)
	if out, ok := Date(raw, now); ok {
		return out
	}
	if f.DefaultNow {
		return now.Format("02/01/2006")
	}
	return nil
}

func normalizeEnum(f schema.FieldSpec, v any) any {
	s, ok := v.(string)
	if !ok || Fold(s) == "" {
		if f.Fallback != "" {
			return f.Fallback
		}
		return nil
	}
	if f.Fallback != "" {
		return string(Category(s))
	}
	folded := Fold(s)
	for _, member := range f.Enum {
		if folded == Fold(member) {
			return member
		}
	}
	return nil
}

// normalizeList applies the matrix-extraction rule: every well-formed entry
// survives, empty or zero cells and TOTAL rows or columns do not.
func normalizeList(f schema.FieldSpec, v any, now time.Time) any {
	vs, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]domain.Record, 0, len(vs))
entries:
	for _, ev := range vs {
		em, ok := ev.(map[string]any)
		if !ok {
			continue
		}
		entry := make(domain.Record, len(f.Fields))
		for _, ef := range f.Fields {
			if s, ok := em[ef.Name].(string); ok && Fold(s) == "total" {
				continue entries
			}
			nv := normalizeField(ef, em[ef.Name], now)
			if ef.Required {
				if nv == nil {
					continue entries
				}
				if n, isNum := nv.(float64); isNum && n == 0 {
					continue entries
				}
			}
			entry[ef.Name] = nv
		}
		out = append(out, entry)
	}
	return out
}

func collapseSpace(s string) string {
	var b []rune
	space := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			space = true
			continue
		}
		if space && len(b) > 0 {
			b = append(b, ' ')
		}
		space = false
		b = append(b, r)
	}
	return string(b)
}
