package model

import (
	"encoding/json"
	"fmt"
)

// SnippetOrigin identifies the snippet a field was spliced from.
type SnippetOrigin struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AnnotatedField is a field tagged with the snippet it came from. Origin is
// nil for fields declared directly on the type.
//
// On the wire the origin is the "fromSnippet" member, either {id, name} or
// false.
type AnnotatedField struct {
	Field
	Origin *SnippetOrigin
}

// FromSnippet reports whether the field was inlined from a snippet.
func (a AnnotatedField) FromSnippet() bool { return a.Origin != nil }

// MarshalJSON encodes the element followed by its fromSnippet member.
func (a AnnotatedField) MarshalJSON() ([]byte, error) {
	body, err := MarshalField(a.Field)
	if err != nil {
		return nil, err
	}
	var origin any = false
	if a.Origin != nil {
		origin = a.Origin
	}
	return appendKey(body, "fromSnippet", origin)
}

// UnmarshalJSON decodes an element with an optional fromSnippet member.
func (a *AnnotatedField) UnmarshalJSON(data []byte) error {
	f, err := UnmarshalField(data)
	if err != nil {
		return err
	}
	var tail struct {
		FromSnippet json.RawMessage `json:"fromSnippet"`
	}
	if err := json.Unmarshal(data, &tail); err != nil {
		return err
	}
	a.Field = f
	a.Origin = nil
	switch string(tail.FromSnippet) {
	case "", "null", "false":
	default:
		var o SnippetOrigin
		if err := json.Unmarshal(tail.FromSnippet, &o); err != nil {
			return fmt.Errorf("fromSnippet: %w", err)
		}
		a.Origin = &o
	}
	return nil
}

// ResolvedType is a content type whose snippet references have been replaced
// by the snippets' fields.
type ResolvedType struct {
	ID            string           `json:"id"`
	Codename      string           `json:"codename,omitempty"`
	Name          string           `json:"name"`
	ContentGroups []ContentGroup   `json:"contentGroups,omitempty"`
	Fields        []AnnotatedField `json:"elements"`
}

// HasKind reports whether any field of the type has kind k.
func (t ResolvedType) HasKind(k Kind) bool {
	for _, f := range t.Fields {
		if f.Kind() == k {
			return true
		}
	}
	return false
}

// Normalize inlines snippet fields into the content types referencing them.
//
// Fields are walked in order. A snippet reference whose snippet exists is
// replaced in place by the snippet's fields, each tagged with the snippet as
// origin; when the reference belongs to a content group, the spliced fields
// are moved into that group. A reference to a missing snippet contributes
// nothing. Spliced fields are not expanded again.
func Normalize(types []ContentType, snippets []Snippet) []ResolvedType {
	byID := make(map[string]Snippet, len(snippets))
	for _, s := range snippets {
		byID[s.ID] = s
	}

	out := make([]ResolvedType, len(types))
	for i, t := range types {
		rt := resolvedShell(t)
		for _, f := range t.Elements {
			ref, ok := f.(SnippetField)
			if !ok {
				rt.Fields = append(rt.Fields, AnnotatedField{Field: f})
				continue
			}
			s, ok := byID[ref.Snippet.ID]
			if !ok {
				continue
			}
			origin := &SnippetOrigin{ID: s.ID, Name: s.Name}
			for _, sf := range s.Elements {
				if group := ref.ContentGroup; group != nil {
					h := sf.Header()
					h.ContentGroup = group
					sf = sf.withHeader(h)
				}
				rt.Fields = append(rt.Fields, AnnotatedField{Field: sf, Origin: origin})
			}
		}
		out[i] = rt
	}
	return out
}

// Annotate wraps a content type's fields without inlining snippets. Every
// field gets a nil origin.
func Annotate(t ContentType) ResolvedType {
	rt := resolvedShell(t)
	for _, f := range t.Elements {
		rt.Fields = append(rt.Fields, AnnotatedField{Field: f})
	}
	return rt
}

// AnnotateAll applies [Annotate] to every type.
func AnnotateAll(types []ContentType) []ResolvedType {
	out := make([]ResolvedType, len(types))
	for i, t := range types {
		out[i] = Annotate(t)
	}
	return out
}

func resolvedShell(t ContentType) ResolvedType {
	return ResolvedType{
		ID:            t.ID,
		Codename:      t.Codename,
		Name:          t.Name,
		ContentGroups: t.ContentGroups,
		Fields:        make([]AnnotatedField, 0, len(t.Elements)),
	}
}
