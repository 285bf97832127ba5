package graph

// Frame is the output of one recomputation: the visible, positioned nodes and
// the visible edges of a view, plus the extent of the drawing.
//
// Frames are values; a new one is produced on every state change.
type Frame struct {
	View   string  `json:"view"`
	Nodes  []Node  `json:"nodes"`
	Edges  []Edge  `json:"edges"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Extent returns the width and height of the bounding box of nodes, whose
// positions are top-left corners.
func Extent(nodes []Node) (w, h float64) {
	for _, n := range nodes {
		w = max(w, n.Position.X+n.Width)
		h = max(h, n.Position.Y+n.Height)
	}
	return w, h
}
