package graph

// Kind classifies the code symbol a node stands for.
type Kind string

const (
	KindFunction Kind = "function"
	KindClass    Kind = "class"
	KindMethod   Kind = "method"
	KindModule   Kind = "module"
)

// Hit is one ranked result from the upstream code search. EdgePath is the
// ordered sequence of node ids describing how the hit was reached from the
// seed symbol; it may reference symbols the search returned no metadata for.
type Hit struct {
	SymbolName string   `json:"symbol_name"`
	Kind       Kind     `json:"kind"`
	FilePath   string   `json:"file_path"`
	StartLine  int      `json:"start_line"`
	EdgePath   []string `json:"edge_path"`
}

// Node represents a code symbol placed on the canvas. Position and velocity
// are owned by the active layout engine and discarded on the next search.
type Node struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Kind      Kind    `json:"kind"`
	FilePath  string  `json:"file_path"`
	StartLine int     `json:"start_line"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VX        float64 `json:"-"`
	VY        float64 `json:"-"`
}

// Edge is a directed call relationship between two nodes, derived from
// consecutive entries of an edge path. Rendered without direction.
type Edge struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
}

// Graph is a deduplicated node/edge set built for a single search query.
// Nodes are in insertion order, edges in first-insertion order.
type Graph struct {
	Nodes []*Node
	Edges []Edge

	index map[string]*Node
}

// Node returns the node with the given id, if present.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}
