package eway

import "sort"

// Field is one wire field. Slice order is wire order: the legacy flat-XML
// endpoints and the rebill service are sensitive to element order.
type Field struct {
	Name  string
	Value string
}

// Schema is the declarative contract of one gateway operation: the fields
// the endpoint accepts (with their defaults, in wire order) and the subset
// that must carry a value.
//
// Operations with Defaults send the complete field set every time, empty
// elements included -- the gateway requires it. Operations without Defaults
// (most of the SOAP calls) send only what the caller supplies; Order then
// fixes the serialization order of known fields.
type Schema struct {
	Operation string
	Defaults  []Field
	Order     []string
	Required  []string
}

// Apply merges caller input with the schema's defaults and overrides,
// returning the wire-ordered field list and the names of required fields
// that are missing, in declared order.
//
// Overrides win over caller input unconditionally; they carry the
// server-side identity fields (merchant customer id, refund password) that
// callers must not be able to spoof.
//
// A field is missing when it is absent or its value is the empty string.
// The comparison is against "" exactly, not emptiness in a looser sense:
// "0" is a legitimate value for several fields.
func (s Schema) Apply(input, overrides map[string]string) ([]Field, []string) {
	var fields []Field

	if len(s.Defaults) > 0 {
		// Full field set in schema order; caller keys outside the schema
		// are dropped so nothing unexpected leaks onto the wire.
		fields = make([]Field, len(s.Defaults))
		copy(fields, s.Defaults)
		for i := range fields {
			if v, ok := input[fields[i].Name]; ok {
				fields[i].Value = v
			}
			if v, ok := overrides[fields[i].Name]; ok {
				fields[i].Value = v
			}
		}
	} else {
		merged := make(map[string]string, len(input)+len(overrides))
		for k, v := range input {
			merged[k] = v
		}
		for k, v := range overrides {
			merged[k] = v
		}

		seen := make(map[string]bool, len(merged))
		for _, name := range s.Order {
			if v, ok := merged[name]; ok {
				fields = append(fields, Field{Name: name, Value: v})
				seen[name] = true
			}
		}
		var rest []string
		for name := range merged {
			if !seen[name] {
				rest = append(rest, name)
			}
		}
		sort.Strings(rest)
		for _, name := range rest {
			fields = append(fields, Field{Name: name, Value: merged[name]})
		}
	}

	byName := make(map[string]string, len(fields))
	for _, f := range fields {
		byName[f.Name] = f.Value
	}

	var missing []string
	for _, name := range s.Required {
		if v, ok := byName[name]; !ok || v == "" {
			missing = append(missing, name)
		}
	}

	return fields, missing
}
