package layout

import (
	"math"

	"github.com/dd0wney/cluso-codemap/pkg/graph"
)

// minDistance is the floor applied to pairwise distances in the repulsion
// step. It prevents the inverse-square force from blowing up when two nodes
// coincide.
const minDistance = 1.0

// Config holds the simulation constants for one engine instance. The
// defaults are tuned for 5-150 nodes on a 600x400 canvas.
type Config struct {
	Width       float64
	Height      float64
	Margin      float64
	Repulsion   float64
	Attraction  float64
	Damping     float64
	CenterForce float64
}

// DefaultConfig returns the standard simulation constants.
func DefaultConfig() Config {
	return Config{
		Width:       600,
		Height:      400,
		Margin:      20,
		Repulsion:   1500,
		Attraction:  0.005,
		Damping:     0.85,
		CenterForce: 0.01,
	}
}

// Geometry returns the canvas geometry portion of the config.
func (c Config) Geometry() graph.Geometry {
	return graph.Geometry{Width: c.Width, Height: c.Height, Margin: c.Margin}
}

// Engine runs the iterative force simulation over one graph instance. It has
// exclusive ownership of the node position/velocity state; a new search
// builds a new graph and a new engine, never a merge.
//
// Repulsion is O(N^2) per tick and dominates; the engine is not meant for
// graphs beyond a few hundred nodes.
type Engine struct {
	cfg   Config
	nodes []*graph.Node
	edges []edgeRef
}

// edgeRef is an edge with its endpoints resolved once at construction.
type edgeRef struct {
	src *graph.Node
	dst *graph.Node
}

// NewEngine creates an engine over the given graph. Edge endpoints are
// guaranteed present by the builder, so unresolvable edges are skipped rather
// than surfaced.
func NewEngine(cfg Config, g *graph.Graph) *Engine {
	e := &Engine{
		cfg:   cfg,
		nodes: g.Nodes,
		edges: make([]edgeRef, 0, len(g.Edges)),
	}
	for _, ed := range g.Edges {
		src, okSrc := g.Node(ed.SourceID)
		dst, okDst := g.Node(ed.TargetID)
		if !okSrc || !okDst {
			continue
		}
		e.edges = append(e.edges, edgeRef{src: src, dst: dst})
	}
	return e
}

// NodeCount returns the number of simulated nodes.
func (e *Engine) NodeCount() int {
	return len(e.nodes)
}

// Tick applies one simulation step: repulsion, attraction, center gravity,
// then damped integration, strictly in that order.
func (e *Engine) Tick() {
	e.applyRepulsion()
	e.applyAttraction()
	e.applyGravity()
	e.integrate()
}

// applyRepulsion pushes every unordered node pair apart with an
// inverse-square force, applied as equal-and-opposite velocity increments.
func (e *Engine) applyRepulsion() {
	for i := 0; i < len(e.nodes); i++ {
		for j := i + 1; j < len(e.nodes); j++ {
			a, b := e.nodes[i], e.nodes[j]

			dx := a.X - b.X
			dy := a.Y - b.Y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist < minDistance {
				dist = minDistance
			}

			force := e.cfg.Repulsion / (dist * dist)
			fx := dx / dist * force
			fy := dy / dist * force

			a.VX += fx
			a.VY += fy
			b.VX -= fx
			b.VY -= fy
		}
	}
}

// applyAttraction pulls connected nodes together with a Hookean force scaled
// linearly by displacement. Intentionally weaker than repulsion at typical
// distances.
func (e *Engine) applyAttraction() {
	for _, ed := range e.edges {
		dx := ed.dst.X - ed.src.X
		dy := ed.dst.Y - ed.src.Y

		ed.src.VX += dx * e.cfg.Attraction
		ed.src.VY += dy * e.cfg.Attraction
		ed.dst.VX -= dx * e.cfg.Attraction
		ed.dst.VY -= dy * e.cfg.Attraction
	}
}

// applyGravity drifts every node toward the canvas center.
func (e *Engine) applyGravity() {
	cx := e.cfg.Width / 2
	cy := e.cfg.Height / 2
	for _, n := range e.nodes {
		n.VX += (cx - n.X) * e.cfg.CenterForce
		n.VY += (cy - n.Y) * e.cfg.CenterForce
	}
}

// integrate applies friction, moves nodes, and clamps them to the canvas.
// Clamping does not correct velocity: a node driven into a wall keeps its
// outward component and can oscillate at the boundary.
func (e *Engine) integrate() {
	minX, maxX := e.cfg.Margin, e.cfg.Width-e.cfg.Margin
	minY, maxY := e.cfg.Margin, e.cfg.Height-e.cfg.Margin

	for _, n := range e.nodes {
		n.VX *= e.cfg.Damping
		n.VY *= e.cfg.Damping
		n.X += n.VX
		n.Y += n.VY

		n.X = math.Max(minX, math.Min(maxX, n.X))
		n.Y = math.Max(minY, math.Min(maxY, n.Y))
	}
}

// Positions returns a value copy of all node positions, safe to hand to
// observers while the engine keeps mutating its working state.
func (e *Engine) Positions() []NodePosition {
	out := make([]NodePosition, len(e.nodes))
	for i, n := range e.nodes {
		out[i] = NodePosition{ID: n.ID, X: n.X, Y: n.Y}
	}
	return out
}
