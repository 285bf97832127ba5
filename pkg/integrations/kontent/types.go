package kontent

import "github.com/matzehuels/modelgraph/pkg/model"

// Wire shapes of the management API. Only the attributes the model needs are
// decoded; elements already use the API shape and decode straight into
// [model.Fields].

type pagination struct {
	ContinuationToken *string `json:"continuation_token"`
	NextPage          *string `json:"next_page"`
}

func (p pagination) next() (string, bool) {
	if p.ContinuationToken == nil || *p.ContinuationToken == "" {
		return "", false
	}
	return *p.ContinuationToken, true
}

type contentGroup struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Codename   string `json:"codename"`
	ExternalID string `json:"external_id"`
}

type contentType struct {
	ID            string         `json:"id"`
	Codename      string         `json:"codename"`
	Name          string         `json:"name"`
	ExternalID    string         `json:"external_id"`
	ContentGroups []contentGroup `json:"content_groups"`
	Elements      model.Fields   `json:"elements"`
}

type snippet struct {
	ID         string       `json:"id"`
	Codename   string       `json:"codename"`
	Name       string       `json:"name"`
	ExternalID string       `json:"external_id"`
	Elements   model.Fields `json:"elements"`
}

type term struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Codename string `json:"codename"`
	Terms    []term `json:"terms"`
}

type taxonomy struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Codename   string `json:"codename"`
	ExternalID string `json:"external_id"`
	Terms      []term `json:"terms"`
}

type typesPage struct {
	Types      []contentType `json:"types"`
	Pagination pagination    `json:"pagination"`
}

type snippetsPage struct {
	Snippets   []snippet  `json:"snippets"`
	Pagination pagination `json:"pagination"`
}

type taxonomiesPage struct {
	Taxonomies []taxonomy `json:"taxonomies"`
	Pagination pagination `json:"pagination"`
}

// =============================================================================
// Mapping
// =============================================================================

func (t contentType) model() model.ContentType {
	groups := make([]model.ContentGroup, len(t.ContentGroups))
	for i, g := range t.ContentGroups {
		groups[i] = model.ContentGroup{ID: g.ID, Name: g.Name, Codename: g.Codename, ExternalID: g.ExternalID}
	}
	if len(groups) == 0 {
		groups = nil
	}
	return model.ContentType{
		ID:            t.ID,
		Codename:      t.Codename,
		Name:          t.Name,
		ExternalID:    t.ExternalID,
		ContentGroups: groups,
		Elements:      nonNilFields(t.Elements),
	}
}

func (s snippet) model() model.Snippet {
	return model.Snippet{
		ID:         s.ID,
		Codename:   s.Codename,
		Name:       s.Name,
		ExternalID: s.ExternalID,
		Elements:   nonNilFields(s.Elements),
	}
}

func (t taxonomy) model() model.Taxonomy {
	return model.Taxonomy{
		ID:         t.ID,
		Name:       t.Name,
		Codename:   t.Codename,
		ExternalID: t.ExternalID,
		Terms:      mapTerms(t.Terms),
	}
}

func mapTerms(terms []term) []model.Term {
	out := make([]model.Term, len(terms))
	for i, t := range terms {
		out[i] = model.Term{ID: t.ID, Name: t.Name, Codename: t.Codename, Terms: mapTerms(t.Terms)}
	}
	return out
}

func nonNilFields(fs model.Fields) model.Fields {
	if fs == nil {
		return model.Fields{}
	}
	return fs
}
