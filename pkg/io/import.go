package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/model"
)

// documentKeys are the top-level keys every document must carry.
var documentKeys = []string{"contentTypes", "snippets", "taxonomies"}

// ReadDocument decodes a document from r.
//
// It returns an INVALID_DOCUMENT error when the input is not a JSON object,
// when one of contentTypes, snippets or taxonomies is missing or null, or
// when an element cannot be decoded (for example an unknown "type"), or when
// a content type, snippet or taxonomy has no id.
// ReadDocument does not close r.
func ReadDocument(r io.Reader) (model.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Document{}, fmt.Errorf("read: %w", err)
	}
	return DecodeDocument(data)
}

// DecodeDocument is [ReadDocument] for an in-memory payload.
func DecodeDocument(data []byte) (model.Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return model.Document{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "invalid content model format")
	}
	for _, key := range documentKeys {
		v, ok := raw[key]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return model.Document{}, errors.New(errors.ErrCodeInvalidDocument, "invalid content model format: missing %q", key)
		}
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Document{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "invalid content model format")
	}
	if err := checkIDs(doc); err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

// checkIDs rejects entities without an id; the graph keys nodes by id.
func checkIDs(doc model.Document) error {
	for i, ct := range doc.ContentTypes {
		if ct.ID == "" {
			return errors.New(errors.ErrCodeInvalidDocument, "invalid content model format: content type %d has no id", i)
		}
	}
	for i, sn := range doc.Snippets {
		if sn.ID == "" {
			return errors.New(errors.ErrCodeInvalidDocument, "invalid content model format: snippet %d has no id", i)
		}
	}
	for i, tx := range doc.Taxonomies {
		if tx.ID == "" {
			return errors.New(errors.ErrCodeInvalidDocument, "invalid content model format: taxonomy %d has no id", i)
		}
	}
	return nil
}

// ImportDocument reads the document stored at path.
func ImportDocument(path string) (model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}
