package graph

import "github.com/matzehuels/modelgraph/pkg/model"

// UnknownSnippet names a snippet reference whose snippet is missing.
const UnknownSnippet = "Unknown Snippet"

// Row describes one renderable line of an expanded node.
type Row struct {
	FieldID       string               `json:"id"`
	Name          string               `json:"name"`
	Kind          model.Kind           `json:"type,omitempty"`
	KindLabel     string               `json:"typeLabel"`
	Required      bool                 `json:"isRequired,omitempty"`
	Origin        *model.SnippetOrigin `json:"fromSnippet,omitempty"`
	SelfReference bool                 `json:"selfReference,omitempty"`
	// Limit is the item count badge, e.g. "At most 3 items".
	Limit string `json:"limit,omitempty"`
	// SourceAnchor is set for relationship fields.
	SourceAnchor string `json:"sourceAnchor,omitempty"`
	TargetAnchor string `json:"targetAnchor"`
}

// Rows returns the rows of a node in field order.
//
// Guidelines are skipped. A snippet reference is named after its snippet,
// or [UnknownSnippet] when snippets does not contain it. Taxonomy nodes have
// one row per first-level term.
func Rows(n Node, snippets []model.Snippet) []Row {
	if n.Kind == KindTaxonomy {
		rows := make([]Row, len(n.Terms))
		for i, term := range n.Terms {
			rows[i] = Row{Name: term, KindLabel: "Term", TargetAnchor: TargetAnchor(term)}
		}
		return rows
	}

	rows := make([]Row, 0, len(n.Fields))
	for _, f := range n.Fields {
		if f.Kind() == model.KindGuidelines {
			continue
		}
		id := f.Header().ID
		row := Row{
			FieldID:       id,
			Kind:          f.Kind(),
			KindLabel:     model.Label(f.Field),
			Required:      model.IsRequired(f.Field),
			Origin:        f.Origin,
			SelfReference: n.SelfReferences(id),
			TargetAnchor:  TargetAnchor(id),
		}
		if name, ok := model.Name(f.Field); ok {
			row.Name = name
		} else if ref, ok := f.Field.(model.SnippetField); ok {
			row.Name = UnknownSnippet
			if s, found := model.FindSnippet(snippets, ref.Snippet.ID); found {
				row.Name = s.Name
			}
		}
		if limit := model.CountLimit(f.Field); limit != nil {
			row.Limit = limit.String()
		}
		if model.IsRelationship(f.Field) {
			row.SourceAnchor = SourceAnchor(id)
		}
		rows = append(rows, row)
	}
	return rows
}

// RowCount returns the number of rows an expanded node renders.
func RowCount(n Node) int {
	if n.Kind == KindTaxonomy {
		return len(n.Terms)
	}
	count := 0
	for _, f := range n.Fields {
		if f.Kind() != model.KindGuidelines {
			count++
		}
	}
	return count
}
