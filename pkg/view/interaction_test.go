package view

import (
	"testing"

	"github.com/dd0wney/cluso-codemap/pkg/graph"
)

var testEdges = []graph.Edge{
	{SourceID: "a.go:A", TargetID: "b.go:B"},
	{SourceID: "b.go:B", TargetID: "c.go:C"},
}

func TestNoFocusEverythingFullOpacity(t *testing.T) {
	s := State{}

	for _, id := range []string{"a.go:A", "b.go:B", "c.go:C"} {
		st := s.NodeStyle(id, testEdges)
		if st.Opacity != 1 || st.Emphasized {
			t.Errorf("node %s style = %+v, want plain full opacity", id, st)
		}
	}
	for _, e := range testEdges {
		st := s.EdgeStyle(e)
		if st.Opacity != 1 || st.Emphasized {
			t.Errorf("edge %v style = %+v, want plain full opacity", e, st)
		}
	}
}

func TestHoverEmphasizesNodeAndNeighbors(t *testing.T) {
	s := State{HoverID: "b.go:B"}

	if st := s.NodeStyle("b.go:B", testEdges); !st.Emphasized || st.Opacity != 1 {
		t.Errorf("hovered node style = %+v, want emphasized", st)
	}
	// Direct neighbors on either side of an edge stay prominent.
	for _, id := range []string{"a.go:A", "c.go:C"} {
		if st := s.NodeStyle(id, testEdges); st.Opacity != 1 || st.Emphasized {
			t.Errorf("neighbor %s style = %+v, want full opacity, not emphasized", id, st)
		}
	}
	if st := s.NodeStyle("d.go:D", testEdges); st.Opacity >= 1 {
		t.Errorf("unrelated node opacity = %f, want dimmed", st.Opacity)
	}
}

func TestSelectionTakesPrecedenceOverHover(t *testing.T) {
	s := State{HoverID: "a.go:A", SelectedID: "c.go:C"}

	if got := s.Focus(); got != "c.go:C" {
		t.Errorf("focus = %s, want selection c.go:C", got)
	}
	if st := s.NodeStyle("c.go:C", testEdges); !st.Emphasized {
		t.Errorf("selected node style = %+v, want emphasized", st)
	}
	if st := s.NodeStyle("a.go:A", testEdges); st.Emphasized {
		t.Errorf("hovered node emphasized despite active selection: %+v", st)
	}
}

func TestEdgeStylesFollowFocus(t *testing.T) {
	s := State{HoverID: "a.go:A"}

	if st := s.EdgeStyle(testEdges[0]); !st.Emphasized {
		t.Errorf("edge touching focus style = %+v, want emphasized", st)
	}
	if st := s.EdgeStyle(testEdges[1]); st.Opacity >= 1 {
		t.Errorf("edge away from focus opacity = %f, want dimmed", st.Opacity)
	}
}

// The projection must be pure: styling a snapshot never mutates graph state.
func TestStylingDoesNotTouchPositions(t *testing.T) {
	n := &graph.Node{ID: "a.go:A", X: 10, Y: 20, VX: 1, VY: 2}
	s := State{HoverID: "a.go:A"}

	_ = s.NodeStyle(n.ID, testEdges)
	_ = s.EdgeStyle(testEdges[0])

	if n.X != 10 || n.Y != 20 || n.VX != 1 || n.VY != 2 {
		t.Error("interaction styling mutated node state")
	}
}
