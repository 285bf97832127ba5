package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// =============================================================================
// Serialization API
// =============================================================================

// MarshalFrame encodes a frame as indented JSON.
func MarshalFrame(f Frame) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteFrame(f, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFrame writes a frame as indented JSON to w.
func WriteFrame(f Frame, w io.Writer) error {
	return encodeTo(w, f)
}

// ReadFrame decodes a frame from r.
func ReadFrame(r io.Reader) (Frame, error) {
	var f Frame
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return Frame{}, fmt.Errorf("decode: %w", err)
	}
	return f, nil
}

// WriteGraph writes a graph as indented JSON to w.
func WriteGraph(g Graph, w io.Writer) error {
	return encodeTo(w, g)
}

// ReadGraph decodes a graph from r.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}

func encodeTo(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
