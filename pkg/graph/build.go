package graph

import "github.com/matzehuels/modelgraph/pkg/model"

// Options controls [Build].
type Options struct {
	// IncludeRichTextEdges emits edges for rich text fields that carry an
	// allowed content types list.
	IncludeRichTextEdges bool
}

// edgeKey identifies an edge by where it starts and where it ends. Two fields
// of the same node pointing at the same target yield two edges; one field
// listing a target twice yields one.
type edgeKey struct {
	source, field, target string
}

type edgeSet struct {
	seen  map[edgeKey]struct{}
	edges []Edge
}

func newEdgeSet() *edgeSet {
	return &edgeSet{seen: make(map[edgeKey]struct{})}
}

func (s *edgeSet) add(field string, e Edge) {
	k := edgeKey{e.Source, field, e.Target}
	if _, dup := s.seen[k]; dup {
		return
	}
	s.seen[k] = struct{}{}
	s.edges = append(s.edges, e)
}

// =============================================================================
// Relationship graph
// =============================================================================

// Build converts normalized content types into the relationship graph: one
// node per type and one edge per (relationship field, allowed target).
//
// Self references never become edges; the field id is recorded in the node's
// SelfReferenceFieldIDs instead. Targets missing from types are skipped.
func Build(types []model.ResolvedType, opts Options) Graph {
	nodes := make([]Node, len(types))
	for i, t := range types {
		nodes[i] = typeNode(t)
	}
	return Graph{Nodes: nodes, Edges: relationshipEdges(types, opts)}
}

func relationshipEdges(types []model.ResolvedType, opts Options) []Edge {
	exists := make(map[string]bool, len(types))
	for _, t := range types {
		exists[t.ID] = true
	}

	set := newEdgeSet()
	for _, t := range types {
		for _, f := range t.Fields {
			targets, ok := model.AllowedTargets(f)
			if !ok {
				continue
			}
			richText := f.Kind() == model.KindRichText
			if richText && !opts.IncludeRichTextEdges {
				continue
			}
			fieldID := f.Header().ID
			for _, target := range targets {
				if target.ID == t.ID || !exists[target.ID] {
					continue
				}
				set.add(fieldID, Edge{
					ID:           t.ID + "-" + fieldID + "-" + target.ID,
					Source:       t.ID,
					Target:       target.ID,
					SourceAnchor: SourceAnchor(fieldID),
					TargetAnchor: AnchorTarget,
					Kind:         EdgeRelationship,
					RichText:     richText,
				})
			}
		}
	}
	return set.edges
}

// =============================================================================
// Snippet usage graph
// =============================================================================

// BuildSnippetUsage builds the snippet view: one node per snippet followed by
// one node per raw content type, with an edge from a snippet to every type
// embedding it. Types without snippet references are hidden.
func BuildSnippetUsage(types []model.ContentType, snippets []model.Snippet) Graph {
	nodes := make([]Node, 0, len(snippets)+len(types))
	exists := make(map[string]bool, len(snippets))
	for _, s := range snippets {
		nodes = append(nodes, snippetNode(s))
		exists[s.ID] = true
	}
	for _, t := range types {
		n := typeNode(model.Annotate(t))
		n.Hidden = !hasKind(t.Elements, model.KindSnippet)
		nodes = append(nodes, n)
	}

	set := newEdgeSet()
	for _, t := range types {
		for _, f := range t.Elements {
			ref, ok := f.(model.SnippetField)
			if !ok || ref.Snippet.ID == "" || !exists[ref.Snippet.ID] {
				continue
			}
			set.add(ref.ID, Edge{
				ID:           ref.Snippet.ID + "-" + t.ID + "-" + ref.ID,
				Source:       ref.Snippet.ID,
				Target:       t.ID,
				SourceAnchor: AnchorSource,
				TargetAnchor: TargetAnchor(ref.ID),
				Kind:         EdgeSnippet,
			})
		}
	}
	return Graph{Nodes: nodes, Edges: set.edges}
}

// =============================================================================
// Taxonomy usage graph
// =============================================================================

// BuildTaxonomyUsage builds the taxonomy view: one node per taxonomy followed
// by one node per normalized content type, with an edge from a taxonomy to
// every type whose taxonomy field uses it. Types without taxonomy fields are
// hidden.
func BuildTaxonomyUsage(types []model.ResolvedType, taxonomies []model.Taxonomy) Graph {
	nodes := make([]Node, 0, len(taxonomies)+len(types))
	exists := make(map[string]bool, len(taxonomies))
	for _, tax := range taxonomies {
		nodes = append(nodes, Node{
			ID:    tax.ID,
			Kind:  KindTaxonomy,
			Label: tax.Name,
			Terms: tax.TermNames(),
		})
		exists[tax.ID] = true
	}
	for _, t := range types {
		n := typeNode(t)
		n.Hidden = !t.HasKind(model.KindTaxonomy)
		nodes = append(nodes, n)
	}

	set := newEdgeSet()
	for _, t := range types {
		for _, f := range t.Fields {
			tf, ok := f.Field.(model.TaxonomyField)
			if !ok || tf.TaxonomyGroup.ID == "" || !exists[tf.TaxonomyGroup.ID] {
				continue
			}
			taxID := tf.TaxonomyGroup.ID
			set.add(tf.ID, Edge{
				ID:           taxID + "-" + t.ID + "-" + tf.ID,
				Source:       taxID,
				Target:       t.ID,
				SourceAnchor: SourceAnchor(taxID),
				TargetAnchor: TargetAnchor(tf.ID),
				Kind:         EdgeTaxonomy,
			})
		}
	}
	return Graph{Nodes: nodes, Edges: set.edges}
}

// =============================================================================
// Helpers
// =============================================================================

func typeNode(t model.ResolvedType) Node {
	return Node{
		ID:                    t.ID,
		Kind:                  KindContentType,
		Label:                 t.Name,
		Fields:                t.Fields,
		ContentGroups:         t.ContentGroups,
		SelfReferenceFieldIDs: selfReferences(t),
	}
}

func snippetNode(s model.Snippet) Node {
	fields := make([]model.AnnotatedField, len(s.Elements))
	for i, f := range s.Elements {
		fields[i] = model.AnnotatedField{Field: f}
	}
	return Node{
		ID:     s.ID,
		Kind:   KindSnippet,
		Label:  s.Name,
		Fields: fields,
	}
}

// selfReferences lists relationship fields allowing the type itself.
func selfReferences(t model.ResolvedType) []string {
	var ids []string
	for _, f := range t.Fields {
		targets, ok := model.AllowedTargets(f)
		if !ok {
			continue
		}
		for _, target := range targets {
			if target.ID == t.ID {
				ids = append(ids, f.Header().ID)
				break
			}
		}
	}
	return ids
}

func hasKind(fs model.Fields, k model.Kind) bool {
	for _, f := range fs {
		if f.Kind() == k {
			return true
		}
	}
	return false
}
