// Package io reads and writes content model documents and layout frames.
//
// # Document Format
//
// A document bundles the three collections of an environment:
//
//	{
//	  "contentTypes": [{"id": "...", "name": "Article", "elements": [...]}],
//	  "snippets":     [{"id": "...", "name": "SEO", "elements": [...]}],
//	  "taxonomies":   [{"id": "...", "name": "Topics", "terms": [...]}]
//	}
//
// All three keys are required and must not be null; empty arrays are fine.
// Elements use the management API shape: a "type" discriminator plus
// snake_case attributes. Anything else is rejected with INVALID_DOCUMENT.
//
// # Import
//
// Use [ImportDocument] to read a file, or [ReadDocument] for any io.Reader:
//
//	doc, err := io.ImportDocument("export.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Export
//
// [WriteDocument] and [ExportDocument] write the same format back, so an
// exported document re-imports unchanged. [ExportFilename] names exports the
// way the visualizer does, e.g.
// model-visualizer-export-my-env-2025-01-31-0930UTC.json.
//
// [WriteFrame] and [ExportFrame] write the positioned output of a session.
package io
