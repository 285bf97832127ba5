package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matzehuels/modelgraph/pkg/graph"
	"github.com/matzehuels/modelgraph/pkg/model"
)

// exportPrefix and exportTimeLayout make up [ExportFilename].
const (
	exportPrefix     = "model-visualizer-export-"
	exportTimeLayout = "2006-01-02-1504"
)

// WriteDocument writes doc as indented JSON to w. Nil collections are
// written as empty arrays so the output always re-imports.
func WriteDocument(doc model.Document, w io.Writer) error {
	if doc.ContentTypes == nil {
		doc.ContentTypes = []model.ContentType{}
	}
	if doc.Snippets == nil {
		doc.Snippets = []model.Snippet{}
	}
	if doc.Taxonomies == nil {
		doc.Taxonomies = []model.Taxonomy{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportDocument writes doc to a file at path.
func ExportDocument(doc model.Document, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteDocument(doc, w) })
}

// WriteFrame writes a session frame as indented JSON to w.
func WriteFrame(f graph.Frame, w io.Writer) error {
	return graph.WriteFrame(f, w)
}

// ExportFrame writes a session frame to a file at path.
func ExportFrame(f graph.Frame, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteFrame(f, w) })
}

// ExportFilename returns the file name for an export of environment env
// taken at t, formatted in UTC.
func ExportFilename(env string, t time.Time) string {
	return exportPrefix + env + "-" + t.UTC().Format(exportTimeLayout) + "UTC.json"
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
