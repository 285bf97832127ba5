// Package kontent provides a client for the Kontent.ai Management API.
//
// The client lists the content types, snippets and taxonomies of one
// environment and maps them onto [model.Document]:
//
//	GET {base}/projects/{environment}/types
//	GET {base}/projects/{environment}/snippets
//	GET {base}/projects/{environment}/taxonomies
//
// Requests carry the API key as a bearer token. Long listings are paged with
// a continuation token, sent back in the x-continuation header until the
// response no longer has one. [Client.FetchDocument] loads the three
// collections concurrently; each collection is cached on its own.
//
// [model.Document]: github.com/matzehuels/modelgraph/pkg/model.Document
package kontent
