package model

// ContentGroup is a tab of a content type's editing form.
type ContentGroup struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Codename   string `json:"codename,omitempty"`
	ExternalID string `json:"externalId,omitempty"`
}

// ContentType is a content type with its ordered elements.
type ContentType struct {
	ID            string         `json:"id"`
	Codename      string         `json:"codename,omitempty"`
	Name          string         `json:"name"`
	ExternalID    string         `json:"externalId,omitempty"`
	ContentGroups []ContentGroup `json:"contentGroups,omitempty"`
	Elements      Fields         `json:"elements"`
}

// Snippet is a reusable group of elements.
type Snippet struct {
	ID         string `json:"id"`
	Codename   string `json:"codename,omitempty"`
	Name       string `json:"name"`
	ExternalID string `json:"externalId,omitempty"`
	Elements   Fields `json:"elements"`
}

// Term is a taxonomy term. Nested terms are preserved for import/export but
// only first-level terms appear in the graph.
type Term struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Codename string `json:"codename,omitempty"`
	Terms    []Term `json:"terms"`
}

// Taxonomy is a taxonomy group.
type Taxonomy struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Codename   string `json:"codename,omitempty"`
	ExternalID string `json:"externalId,omitempty"`
	Terms      []Term `json:"terms"`
}

// TermNames returns the names of the first-level terms.
func (t Taxonomy) TermNames() []string {
	names := make([]string, len(t.Terms))
	for i, term := range t.Terms {
		names[i] = term.Name
	}
	return names
}

// Document bundles the three collections of an environment's content model.
type Document struct {
	ContentTypes []ContentType `json:"contentTypes"`
	Snippets     []Snippet     `json:"snippets"`
	Taxonomies   []Taxonomy    `json:"taxonomies"`
}

// SnippetByID returns the snippet with the given id.
func (d Document) SnippetByID(id string) (Snippet, bool) {
	return FindSnippet(d.Snippets, id)
}

// FindSnippet returns the snippet with the given id.
func FindSnippet(snippets []Snippet, id string) (Snippet, bool) {
	for _, s := range snippets {
		if s.ID == id {
			return s, true
		}
	}
	return Snippet{}, false
}
