// Package model defines the content-model entities consumed by modelgraph.
//
// # Overview
//
// A content model is made of three collections:
//
//   - [ContentType]: a named structure owning an ordered list of fields
//   - [Snippet]: a reusable group of fields embedded into content types
//   - [Taxonomy]: a named tree of terms referenced by taxonomy fields
//
// The three collections travel together as a [Document], which is also the
// import/export file format.
//
// # Fields
//
// [Field] is a closed sum type: every element kind has its own struct
// ([TextField], [LinkedItemsField], [SnippetField], ...) and the interface
// cannot be implemented outside this package. [Fields] decodes the wire
// representation by switching on the "type" discriminator; an unknown type is
// a decode error rather than a silently dropped element.
//
//	var fields model.Fields
//	if err := json.Unmarshal(data, &fields); err != nil {
//	    return err
//	}
//	for _, f := range fields {
//	    fmt.Println(model.Label(f))
//	}
//
// Relationship fields are linked items, subpages and rich text fields that
// carry an allowed_content_types list. Use [IsRelationship] and
// [AllowedTargets] rather than inspecting kinds directly.
//
// # Normalization
//
// [Normalize] inlines snippet fields into the content types that reference
// them, tagging each spliced field with its origin snippet. The result is a
// slice of [ResolvedType], the input of the graph builder.
package model
