package model

// Kind identifies the element type of a [Field]. The string value matches the
// "type" discriminator of the wire format.
type Kind string

// Element kinds.
const (
	KindText           Kind = "text"
	KindRichText       Kind = "rich_text"
	KindNumber         Kind = "number"
	KindMultipleChoice Kind = "multiple_choice"
	KindDateTime       Kind = "date_time"
	KindAsset          Kind = "asset"
	KindLinkedItems    Kind = "modular_content"
	KindSubpages       Kind = "subpages"
	KindURLSlug        Kind = "url_slug"
	KindGuidelines     Kind = "guidelines"
	KindTaxonomy       Kind = "taxonomy"
	KindCustom         Kind = "custom"
	KindSnippet        Kind = "snippet"
)

// Kinds lists every element kind in declaration order.
var Kinds = []Kind{
	KindText,
	KindRichText,
	KindNumber,
	KindMultipleChoice,
	KindDateTime,
	KindAsset,
	KindLinkedItems,
	KindSubpages,
	KindURLSlug,
	KindGuidelines,
	KindTaxonomy,
	KindCustom,
	KindSnippet,
}

// Label returns the human-readable name of a field's kind, e.g. "Linked Items"
// for a [LinkedItemsField].
func Label(f Field) string {
	switch v := f.(type) {
	case AnnotatedField:
		return Label(v.Field)
	case TextField:
		return "Text"
	case RichTextField:
		return "Rich Text"
	case NumberField:
		return "Number"
	case MultipleChoiceField:
		return "Multiple Choice"
	case DateTimeField:
		return "Date & Time"
	case AssetField:
		return "Asset"
	case LinkedItemsField:
		return "Linked Items"
	case SubpagesField:
		return "Subpages"
	case URLSlugField:
		return "URL Slug"
	case GuidelinesField:
		return "Guidelines"
	case TaxonomyField:
		return "Taxonomy"
	case CustomField:
		return "Custom"
	case SnippetField:
		return "Snippet"
	default:
		return string(f.Kind())
	}
}
