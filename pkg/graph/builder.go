package graph

import (
	"math/rand"
	"strings"
)

// Geometry describes the canvas nodes are placed on. Initial positions are
// drawn uniformly from [Margin, dimension-Margin] on both axes.
type Geometry struct {
	Width  float64
	Height float64
	Margin float64
}

// DefaultGeometry returns the canvas geometry used when the caller supplies
// none.
func DefaultGeometry() Geometry {
	return Geometry{Width: 600, Height: 400, Margin: 20}
}

// Builder turns ranked search hits into a deduplicated graph. Hit data comes
// from heuristic code search, so metadata may be incomplete; missing endpoint
// nodes are synthesized with defaults rather than rejected. Build never
// fails.
//
// The randomness source is injected so tests can seed initial placement.
type Builder struct {
	geom Geometry
	rng  *rand.Rand
}

// NewBuilder creates a builder placing nodes on the given canvas.
func NewBuilder(geom Geometry, rng *rand.Rand) *Builder {
	return &Builder{geom: geom, rng: rng}
}

// Build constructs a fresh graph from the ordered hit list. Node structure is
// deterministic given input order; initial positions are randomized.
func (b *Builder) Build(hits []Hit) *Graph {
	g := &Graph{index: make(map[string]*Node)}
	seenEdges := make(map[string]bool)

	for _, hit := range hits {
		id := hit.FilePath + ":" + hit.SymbolName
		if _, ok := g.index[id]; !ok {
			b.insert(g, &Node{
				ID:        id,
				Label:     hit.SymbolName,
				Kind:      hit.Kind,
				FilePath:  hit.FilePath,
				StartLine: hit.StartLine,
			})
		}

		if len(hit.EdgePath) < 2 {
			continue
		}
		for i := 0; i+1 < len(hit.EdgePath); i++ {
			src, dst := hit.EdgePath[i], hit.EdgePath[i+1]
			b.ensure(g, src)
			b.ensure(g, dst)

			key := src + "->" + dst
			if seenEdges[key] {
				continue
			}
			seenEdges[key] = true
			g.Edges = append(g.Edges, Edge{SourceID: src, TargetID: dst})
		}
	}

	return g
}

// ensure synthesizes a placeholder node for an edge-path entry that carried
// no direct hit metadata. First writer wins: a node already inserted from a
// hit keeps its full metadata.
func (b *Builder) ensure(g *Graph, id string) {
	if _, ok := g.index[id]; ok {
		return
	}

	label := id
	if idx := strings.LastIndex(id, ":"); idx >= 0 {
		label = id[idx+1:]
	}
	filePath := ""
	if idx := strings.Index(id, ":"); idx >= 0 {
		filePath = id[:idx]
	}

	b.insert(g, &Node{
		ID:       id,
		Label:    label,
		Kind:     KindFunction,
		FilePath: filePath,
	})
}

func (b *Builder) insert(g *Graph, n *Node) {
	n.X = b.geom.Margin + b.rng.Float64()*(b.geom.Width-2*b.geom.Margin)
	n.Y = b.geom.Margin + b.rng.Float64()*(b.geom.Height-2*b.geom.Margin)
	g.index[n.ID] = n
	g.Nodes = append(g.Nodes, n)
}
