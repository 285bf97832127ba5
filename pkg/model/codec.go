package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Fields is an ordered element list. It encodes each element with its "type"
// discriminator and decodes by dispatching on it.
type Fields []Field

// UnmarshalJSON decodes a JSON array of elements. Unknown element types are
// rejected.
func (fs *Fields) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Fields, 0, len(raw))
	for i, r := range raw {
		f, err := UnmarshalField(r)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, f)
	}
	*fs = out
	return nil
}

// MarshalJSON encodes the list with a "type" key on every element.
func (fs Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, f := range fs {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := MarshalField(f)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalField decodes a single element object.
func UnmarshalField(data []byte) (Field, error) {
	var head struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case KindText:
		return decodeAs[TextField](data)
	case KindRichText:
		return decodeAs[RichTextField](data)
	case KindNumber:
		return decodeAs[NumberField](data)
	case KindMultipleChoice:
		return decodeAs[MultipleChoiceField](data)
	case KindDateTime:
		return decodeAs[DateTimeField](data)
	case KindAsset:
		return decodeAs[AssetField](data)
	case KindLinkedItems:
		return decodeAs[LinkedItemsField](data)
	case KindSubpages:
		return decodeAs[SubpagesField](data)
	case KindURLSlug:
		return decodeAs[URLSlugField](data)
	case KindGuidelines:
		return decodeAs[GuidelinesField](data)
	case KindTaxonomy:
		return decodeAs[TaxonomyField](data)
	case KindCustom:
		return decodeAs[CustomField](data)
	case KindSnippet:
		return decodeAs[SnippetField](data)
	case "":
		return nil, fmt.Errorf("missing element type")
	default:
		return nil, fmt.Errorf("unknown element type %q", head.Type)
	}
}

// MarshalField encodes a single element with its "type" discriminator first.
func MarshalField(f Field) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("nil element")
	}
	f = unwrap(f)
	body, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return prependKey(body, "type", f.Kind())
}

func decodeAs[T Field](data []byte) (Field, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// prependKey inserts key:value as the first member of a JSON object.
func prependKey(obj []byte, key string, value any) ([]byte, error) {
	return spliceKey(obj, key, value, true)
}

// appendKey inserts key:value as the last member of a JSON object.
func appendKey(obj []byte, key string, value any) ([]byte, error) {
	return spliceKey(obj, key, value, false)
}

func spliceKey(obj []byte, key string, value any, first bool) ([]byte, error) {
	obj = bytes.TrimSpace(obj)
	if len(obj) < 2 || obj[0] != '{' || obj[len(obj)-1] != '}' {
		return nil, fmt.Errorf("splice %q: not a JSON object", key)
	}
	k, err := json.Marshal(key)
	if err != nil {
		return nil, err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	member := make([]byte, 0, len(k)+len(v)+1)
	member = append(member, k...)
	member = append(member, ':')
	member = append(member, v...)

	inner := bytes.TrimSpace(obj[1 : len(obj)-1])
	out := make([]byte, 0, len(obj)+len(member)+1)
	out = append(out, '{')
	switch {
	case len(inner) == 0:
		out = append(out, member...)
	case first:
		out = append(out, member...)
		out = append(out, ',')
		out = append(out, inner...)
	default:
		out = append(out, inner...)
		out = append(out, ',')
		out = append(out, member...)
	}
	return append(out, '}'), nil
}
