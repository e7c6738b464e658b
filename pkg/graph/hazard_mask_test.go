package graph_test

import (
	"testing"

	"crowdshield/pkg/datastructure"
	"crowdshield/pkg/graph"

	"github.com/stretchr/testify/assert"
)

func squareRing(center datastructure.Coordinate, half float64) []datastructure.Coordinate {
	return []datastructure.Coordinate{
		{Lat: center.Lat - half, Lon: center.Lon - half},
		{Lat: center.Lat - half, Lon: center.Lon + half},
		{Lat: center.Lat + half, Lon: center.Lon + half},
		{Lat: center.Lat + half, Lon: center.Lon - half},
	}
}

func TestPrune(t *testing.T) {
	center := graph.DefaultCenter
	g := graph.BuildGridGraph(10, 0.005, center)

	t.Run("no hazards returns the graph unchanged", func(t *testing.T) {
		pruned, blocked := graph.Prune(g, nil)
		assert.Equal(t, 0, blocked)
		assert.Equal(t, g.EdgeCount(), pruned.EdgeCount())
		assert.Equal(t, g.NodeCount(), pruned.NodeCount())
	})

	t.Run("degenerate rings are ignored", func(t *testing.T) {
		bad := datastructure.NewHazardArea("two points", "low", []datastructure.Coordinate{
			{Lat: 9.93, Lon: 76.26}, {Lat: 9.94, Lon: 76.27},
		})
		pruned, blocked := graph.Prune(g, []datastructure.HazardArea{bad})
		assert.Equal(t, 0, blocked)
		assert.Equal(t, g.EdgeCount(), pruned.EdgeCount())
	})

	t.Run("a hazard over the whole lattice removes every edge", func(t *testing.T) {
		hazard := datastructure.NewHazardArea("everything", "high", squareRing(center, 0.1))
		pruned, blocked := graph.Prune(g, []datastructure.HazardArea{hazard})

		assert.Equal(t, g.EdgeCount(), blocked)
		assert.Equal(t, 0, pruned.EdgeCount())
		// nodes survive so downstream id lookups stay valid
		assert.Equal(t, g.NodeCount(), pruned.NodeCount())
	})

	t.Run("a local hazard removes only intersecting edges", func(t *testing.T) {
		hazard := datastructure.NewHazardArea("central flood", "high", squareRing(center, 0.004))
		pruned, blocked := graph.Prune(g, []datastructure.HazardArea{hazard})

		assert.Greater(t, blocked, 0)
		assert.Less(t, blocked, g.EdgeCount())
		assert.Equal(t, g.EdgeCount()-blocked, pruned.EdgeCount())
	})

	t.Run("pruning never adds edges", func(t *testing.T) {
		hazards := []datastructure.HazardArea{
			datastructure.NewHazardArea("a", "low", squareRing(center, 0.002)),
			datastructure.NewHazardArea("b", "high", squareRing(datastructure.NewCoordinate(center.Lat+0.01, center.Lon+0.01), 0.003)),
		}
		pruned, blocked := graph.Prune(g, hazards)
		assert.LessOrEqual(t, pruned.EdgeCount(), g.EdgeCount())
		assert.Equal(t, g.EdgeCount(), pruned.EdgeCount()+blocked)
	})

	t.Run("node coordinates are preserved across pruning", func(t *testing.T) {
		hazard := datastructure.NewHazardArea("central flood", "high", squareRing(center, 0.004))
		pruned, _ := graph.Prune(g, []datastructure.HazardArea{hazard})
		for _, id := range g.NodeIDs() {
			want, okWant := g.NodeCoordinate(id)
			got, okGot := pruned.NodeCoordinate(id)
			assert.True(t, okWant)
			assert.True(t, okGot)
			assert.Equal(t, want, got)
		}
	})
}
