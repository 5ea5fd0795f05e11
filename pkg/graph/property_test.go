package graph

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genHits produces arbitrary hit lists, including hits with empty metadata
// and edge paths referencing symbols no hit describes.
func genHits() gopter.Gen {
	genID := gen.RegexMatch(`[a-e]\.(go|ts):[a-h]`)
	genHit := gopter.CombineGens(
		gen.RegexMatch(`[a-e]\.(go|ts)`),
		gen.RegexMatch(`[a-h]`),
		gen.OneConstOf(KindFunction, KindClass, KindMethod, KindModule),
		gen.IntRange(0, 500),
		gen.SliceOf(genID),
	).Map(func(vals []any) Hit {
		return Hit{
			FilePath:   vals[0].(string),
			SymbolName: vals[1].(string),
			Kind:       vals[2].(Kind),
			StartLine:  vals[3].(int),
			EdgePath:   vals[4].([]string),
		}
	})
	return gen.SliceOf(genHit)
}

// TestBuilderInvariants verifies the structural guarantees the layout engine
// relies on: unique node ids, no duplicate ordered edge pairs, and no edge
// referencing a node outside the set.
func TestBuilderInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("node ids are unique", prop.ForAll(
		func(hits []Hit) bool {
			g := NewBuilder(DefaultGeometry(), rand.New(rand.NewSource(1))).Build(hits)
			seen := make(map[string]bool)
			for _, n := range g.Nodes {
				if seen[n.ID] {
					return false
				}
				seen[n.ID] = true
			}
			return true
		},
		genHits(),
	))

	properties.Property("no duplicate ordered edge pairs", prop.ForAll(
		func(hits []Hit) bool {
			g := NewBuilder(DefaultGeometry(), rand.New(rand.NewSource(1))).Build(hits)
			seen := make(map[string]bool)
			for _, e := range g.Edges {
				key := e.SourceID + "->" + e.TargetID
				if seen[key] {
					return false
				}
				seen[key] = true
			}
			return true
		},
		genHits(),
	))

	properties.Property("every edge endpoint exists", prop.ForAll(
		func(hits []Hit) bool {
			g := NewBuilder(DefaultGeometry(), rand.New(rand.NewSource(1))).Build(hits)
			for _, e := range g.Edges {
				if _, ok := g.Node(e.SourceID); !ok {
					return false
				}
				if _, ok := g.Node(e.TargetID); !ok {
					return false
				}
			}
			return true
		},
		genHits(),
	))

	properties.Property("structure is deterministic regardless of seed", prop.ForAll(
		func(hits []Hit, seedA, seedB int64) bool {
			a := NewBuilder(DefaultGeometry(), rand.New(rand.NewSource(seedA))).Build(hits)
			b := NewBuilder(DefaultGeometry(), rand.New(rand.NewSource(seedB))).Build(hits)
			if a.NodeCount() != b.NodeCount() || a.EdgeCount() != b.EdgeCount() {
				return false
			}
			for i := range a.Nodes {
				if a.Nodes[i].ID != b.Nodes[i].ID {
					return false
				}
			}
			for i := range a.Edges {
				if a.Edges[i] != b.Edges[i] {
					return false
				}
			}
			return true
		},
		genHits(),
		gen.Int64(),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
