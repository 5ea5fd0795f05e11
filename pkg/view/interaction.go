// Package view holds the read-only hover/selection projection renderers use
// to style nodes and edges the layout engine has already positioned. Nothing
// in this package writes to position or velocity state.
package view

import (
	"github.com/dd0wney/cluso-codemap/pkg/graph"
)

// Style describes how a renderer should draw one node or edge.
type Style struct {
	Opacity    float64
	Stroke     float64
	Emphasized bool
}

const (
	dimmedOpacity = 0.3
	focusStroke   = 2.0
)

// State is the current hover/selection, projected over a published snapshot.
// Selection takes precedence over hover when both are set.
type State struct {
	HoverID    string
	SelectedID string
}

// Focus returns the node id styling should emphasize, or "" when neither
// hover nor selection is active.
func (s State) Focus() string {
	if s.SelectedID != "" {
		return s.SelectedID
	}
	return s.HoverID
}

// NodeStyle returns the render style for a node. With no focus every node is
// drawn at full opacity. With a focus, the focused node and its direct
// neighbors stay prominent while everything else dims.
func (s State) NodeStyle(id string, edges []graph.Edge) Style {
	focus := s.Focus()
	if focus == "" {
		return Style{Opacity: 1, Stroke: 1}
	}
	if id == focus {
		return Style{Opacity: 1, Stroke: focusStroke, Emphasized: true}
	}
	for _, e := range edges {
		if (e.SourceID == focus && e.TargetID == id) ||
			(e.TargetID == focus && e.SourceID == id) {
			return Style{Opacity: 1, Stroke: 1}
		}
	}
	return Style{Opacity: dimmedOpacity, Stroke: 1}
}

// EdgeStyle returns the render style for an edge. Edges touching the focused
// node are emphasized; with a focus elsewhere they dim like non-neighbor
// nodes.
func (s State) EdgeStyle(e graph.Edge) Style {
	focus := s.Focus()
	if focus == "" {
		return Style{Opacity: 1, Stroke: 1}
	}
	if e.SourceID == focus || e.TargetID == focus {
		return Style{Opacity: 1, Stroke: focusStroke, Emphasized: true}
	}
	return Style{Opacity: dimmedOpacity, Stroke: 1}
}
