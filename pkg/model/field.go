package model

import "fmt"

// Ref references another entity by id and/or codename.
type Ref struct {
	ID         string `json:"id,omitempty"`
	Codename   string `json:"codename,omitempty"`
	ExternalID string `json:"external_id,omitempty"`
}

// FieldHeader carries the attributes shared by every element kind.
type FieldHeader struct {
	ID           string `json:"id"`
	Codename     string `json:"codename,omitempty"`
	ExternalID   string `json:"external_id,omitempty"`
	ContentGroup *Ref   `json:"content_group,omitempty"`
}

// Header returns the shared attributes of the field.
func (h FieldHeader) Header() FieldHeader { return h }

// Named carries the attributes of elements that have their own display name.
// Guidelines and snippet references are unnamed.
type Named struct {
	Name       string `json:"name"`
	Guidelines string `json:"guidelines,omitempty"`
	IsRequired bool   `json:"is_required,omitempty"`
}

func (n Named) named() Named { return n }

// Field is a single content type or snippet element.
//
// The interface is sealed: the concrete element structs in this package are
// its only implementations.
type Field interface {
	Kind() Kind
	Header() FieldHeader
	withHeader(FieldHeader) Field
}

// =============================================================================
// Limits
// =============================================================================

// LimitCondition qualifies an [ItemCountLimit].
type LimitCondition string

// Limit conditions.
const (
	AtLeast LimitCondition = "at_least"
	AtMost  LimitCondition = "at_most"
	Exactly LimitCondition = "exactly"
)

// ItemCountLimit restricts how many items a linked items or subpages element
// may hold. It is descriptive metadata and never affects the graph.
type ItemCountLimit struct {
	Condition LimitCondition `json:"condition"`
	Value     int            `json:"value"`
}

// String renders the limit as a badge, e.g. "At least 2 items".
func (l ItemCountLimit) String() string {
	var cond string
	switch l.Condition {
	case AtLeast:
		cond = "At least"
	case AtMost:
		cond = "At most"
	case Exactly:
		cond = "Exactly"
	default:
		cond = string(l.Condition)
	}
	unit := "items"
	if l.Value == 1 {
		unit = "item"
	}
	return fmt.Sprintf("%s %d %s", cond, l.Value, unit)
}

// TextLengthLimit restricts the length of a text element.
type TextLengthLimit struct {
	Value     int    `json:"value"`
	AppliesTo string `json:"applies_to,omitempty"`
}

// =============================================================================
// Element kinds
// =============================================================================

// TextField is a plain text element.
type TextField struct {
	FieldHeader
	Named
	MaximumTextLength *TextLengthLimit `json:"maximum_text_length,omitempty"`
}

// RichTextField is a rich text element. When AllowedContentTypes is non-nil
// the element can embed components and links of those types and counts as a
// relationship.
type RichTextField struct {
	FieldHeader
	Named
	AllowedContentTypes []Ref `json:"allowed_content_types,omitempty"`
}

// NumberField is a numeric element.
type NumberField struct {
	FieldHeader
	Named
}

// Option is one choice of a [MultipleChoiceField].
type Option struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Codename string `json:"codename,omitempty"`
}

// MultipleChoiceField is a single- or multi-select element.
type MultipleChoiceField struct {
	FieldHeader
	Named
	Mode    string   `json:"mode,omitempty"`
	Options []Option `json:"options,omitempty"`
}

// DateTimeField is a date and time element.
type DateTimeField struct {
	FieldHeader
	Named
}

// AssetField references assets from the asset library.
type AssetField struct {
	FieldHeader
	Named
	AssetCountLimit *ItemCountLimit `json:"asset_count_limit,omitempty"`
}

// LinkedItemsField references content items of the allowed types.
type LinkedItemsField struct {
	FieldHeader
	Named
	AllowedContentTypes []Ref           `json:"allowed_content_types,omitempty"`
	ItemCountLimit      *ItemCountLimit `json:"item_count_limit,omitempty"`
}

// SubpagesField references child pages of the allowed types.
type SubpagesField struct {
	FieldHeader
	Named
	AllowedContentTypes []Ref           `json:"allowed_content_types,omitempty"`
	ItemCountLimit      *ItemCountLimit `json:"item_count_limit,omitempty"`
}

// SlugDependency names the element a URL slug is generated from.
type SlugDependency struct {
	Element Ref  `json:"element"`
	Snippet *Ref `json:"snippet,omitempty"`
}

// URLSlugField is a URL slug element.
type URLSlugField struct {
	FieldHeader
	Named
	DependsOn *SlugDependency `json:"depends_on,omitempty"`
}

// GuidelinesField holds editor guidelines. It has no name and is never
// rendered as a row.
type GuidelinesField struct {
	FieldHeader
	Guidelines string `json:"guidelines"`
}

// TaxonomyField tags items with terms of a taxonomy group.
type TaxonomyField struct {
	FieldHeader
	Named
	TaxonomyGroup  Ref             `json:"taxonomy_group"`
	TermCountLimit *ItemCountLimit `json:"term_count_limit,omitempty"`
}

// CustomField is an element backed by an external custom editor.
type CustomField struct {
	FieldHeader
	Named
	SourceURL      string `json:"source_url,omitempty"`
	JSONParameters string `json:"json_parameters,omitempty"`
}

// SnippetField embeds all elements of a snippet at its position.
type SnippetField struct {
	FieldHeader
	Snippet Ref `json:"snippet"`
}

func (TextField) Kind() Kind           { return KindText }
func (RichTextField) Kind() Kind       { return KindRichText }
func (NumberField) Kind() Kind         { return KindNumber }
func (MultipleChoiceField) Kind() Kind { return KindMultipleChoice }
func (DateTimeField) Kind() Kind       { return KindDateTime }
func (AssetField) Kind() Kind          { return KindAsset }
func (LinkedItemsField) Kind() Kind    { return KindLinkedItems }
func (SubpagesField) Kind() Kind       { return KindSubpages }
func (URLSlugField) Kind() Kind        { return KindURLSlug }
func (GuidelinesField) Kind() Kind     { return KindGuidelines }
func (TaxonomyField) Kind() Kind       { return KindTaxonomy }
func (CustomField) Kind() Kind         { return KindCustom }
func (SnippetField) Kind() Kind        { return KindSnippet }

func (f TextField) withHeader(h FieldHeader) Field           { f.FieldHeader = h; return f }
func (f RichTextField) withHeader(h FieldHeader) Field       { f.FieldHeader = h; return f }
func (f NumberField) withHeader(h FieldHeader) Field         { f.FieldHeader = h; return f }
func (f MultipleChoiceField) withHeader(h FieldHeader) Field { f.FieldHeader = h; return f }
func (f DateTimeField) withHeader(h FieldHeader) Field       { f.FieldHeader = h; return f }
func (f AssetField) withHeader(h FieldHeader) Field          { f.FieldHeader = h; return f }
func (f LinkedItemsField) withHeader(h FieldHeader) Field    { f.FieldHeader = h; return f }
func (f SubpagesField) withHeader(h FieldHeader) Field       { f.FieldHeader = h; return f }
func (f URLSlugField) withHeader(h FieldHeader) Field        { f.FieldHeader = h; return f }
func (f GuidelinesField) withHeader(h FieldHeader) Field     { f.FieldHeader = h; return f }
func (f TaxonomyField) withHeader(h FieldHeader) Field       { f.FieldHeader = h; return f }
func (f CustomField) withHeader(h FieldHeader) Field         { f.FieldHeader = h; return f }
func (f SnippetField) withHeader(h FieldHeader) Field        { f.FieldHeader = h; return f }

// =============================================================================
// Queries
// =============================================================================

// Name returns the display name of the field. The second result is false for
// unnamed kinds (guidelines and snippet references).
func Name(f Field) (string, bool) {
	if n, ok := unwrap(f).(interface{ named() Named }); ok {
		return n.named().Name, true
	}
	return "", false
}

// IsRequirable reports whether the field kind supports is_required.
func IsRequirable(f Field) bool {
	_, ok := unwrap(f).(interface{ named() Named })
	return ok
}

// IsRequired reports whether the field is marked as required.
func IsRequired(f Field) bool {
	if n, ok := unwrap(f).(interface{ named() Named }); ok {
		return n.named().IsRequired
	}
	return false
}

// AllowedTargets returns the allowed content types of a relationship field.
// The second result is false when f is not a relationship field.
func AllowedTargets(f Field) ([]Ref, bool) {
	switch v := unwrap(f).(type) {
	case LinkedItemsField:
		return v.AllowedContentTypes, v.AllowedContentTypes != nil
	case SubpagesField:
		return v.AllowedContentTypes, v.AllowedContentTypes != nil
	case RichTextField:
		return v.AllowedContentTypes, v.AllowedContentTypes != nil
	}
	return nil, false
}

// IsRelationship reports whether f is a linked items, subpages or rich text
// field carrying an allowed content types list.
func IsRelationship(f Field) bool {
	_, ok := AllowedTargets(f)
	return ok
}

// CountLimit returns the item count limit of a linked items or subpages
// field, or nil.
func CountLimit(f Field) *ItemCountLimit {
	switch v := unwrap(f).(type) {
	case LinkedItemsField:
		return v.ItemCountLimit
	case SubpagesField:
		return v.ItemCountLimit
	}
	return nil
}

func unwrap(f Field) Field {
	if a, ok := f.(AnnotatedField); ok {
		return a.Field
	}
	return f
}
