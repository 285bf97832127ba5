// Package graph turns content-model entities into nodes and edges.
//
// # Views
//
// Three builders cover the three ways of looking at a content model:
//
//   - [Build]: relationship graph between normalized content types
//   - [BuildSnippetUsage]: snippets pointing at the raw types embedding them
//   - [BuildTaxonomyUsage]: taxonomies pointing at the types tagging with them
//
// All builders are pure and total. A reference to a missing entity produces
// no edge, and at most one edge is produced per (source, field, target)
// triple.
//
// # Self References
//
// A relationship field allowing its own type is not drawn as a loop. Its id
// is listed in [Node.SelfReferenceFieldIDs] and surfaces as the
// SelfReference flag of the field's [Row].
//
// # Anchors
//
// Edges attach to named anchors so a renderer can connect them to individual
// field rows. In the relationship graph an edge leaves "source-<field>" and
// enters the node-level "target" anchor; usage views enter at
// "target-<field>" instead.
//
// # Frames
//
// [Frame] is the serialized output of the engine: visible, positioned nodes
// plus visible edges. [WriteFrame] and [ReadFrame] encode it as JSON.
package graph
