package graph_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crowdshield/pkg/datastructure"
	"crowdshield/pkg/graph"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildGridGraph(t *testing.T) {
	t.Run("default lattice has 100 nodes and 180 edges", func(t *testing.T) {
		g := graph.BuildGridGraph(10, 0.005, graph.DefaultCenter)

		assert.Equal(t, datastructure.GraphSourceGrid, g.Source())
		assert.Equal(t, 100, g.NodeCount())
		// 2 * size * (size-1) undirected edges in a 4-neighbor lattice
		assert.Equal(t, 180, g.EdgeCount())

		for _, e := range g.Edges() {
			assert.Greater(t, e.WeightKm, 0.0)
		}
	})

	t.Run("zero center snaps to the default", func(t *testing.T) {
		g := graph.BuildGridGraph(10, 0.005, datastructure.Coordinate{})
		c, ok := g.NodeCoordinate(0)
		assert.True(t, ok)
		assert.InDelta(t, graph.DefaultCenter.Lat, c.Lat, 0.03)
		assert.InDelta(t, graph.DefaultCenter.Lon, c.Lon, 0.03)
	})

	t.Run("degenerate size falls back to the default", func(t *testing.T) {
		g := graph.BuildGridGraph(1, 0.005, graph.DefaultCenter)
		assert.Equal(t, 100, g.NodeCount())
	})

	t.Run("every node has at least one neighbor", func(t *testing.T) {
		g := graph.BuildGridGraph(4, 0.005, graph.DefaultCenter)
		for _, id := range g.NodeIDs() {
			assert.NotEmpty(t, g.Neighbors(id))
		}
	})
}

func TestProviderObtain(t *testing.T) {
	t.Run("offline mode yields the synthetic grid", func(t *testing.T) {
		p := graph.NewProvider("https://overpass.invalid", time.Second, discardLogger())
		g := p.Obtain(context.Background(), false, graph.DefaultCenter, 1500)

		assert.Equal(t, datastructure.GraphSourceGrid, g.Source())
		assert.Equal(t, 100, g.NodeCount())
	})

	t.Run("fetch failure degrades to the grid", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		p := graph.NewProvider(srv.URL, time.Second, discardLogger())
		g := p.Obtain(context.Background(), true, graph.DefaultCenter, 1500)
		assert.Equal(t, datastructure.GraphSourceGrid, g.Source())
	})

	t.Run("missing pbf extract degrades to the grid", func(t *testing.T) {
		p := graph.NewProvider("https://overpass.invalid", time.Second, discardLogger())
		p.UsePBF("/does/not/exist.osm.pbf")
		g := p.Obtain(context.Background(), true, graph.DefaultCenter, 1500)
		assert.Equal(t, datastructure.GraphSourceGrid, g.Source())
	})

	t.Run("online fetch builds a network graph from the payload", func(t *testing.T) {
		payload := `{
			"version": 0.6,
			"elements": [
				{"type": "node", "id": 1, "lat": 9.9310, "lon": 76.2670},
				{"type": "node", "id": 2, "lat": 9.9315, "lon": 76.2675},
				{"type": "node", "id": 3, "lat": 9.9320, "lon": 76.2680},
				{"type": "way", "id": 10, "nodes": [1, 2, 3], "tags": {"highway": "residential"}}
			]
		}`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseForm())
			assert.Contains(t, r.PostForm.Get("data"), `way["highway"]`)
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, payload)
		}))
		defer srv.Close()

		p := graph.NewProvider(srv.URL, time.Second, discardLogger())
		g := p.Obtain(context.Background(), true, graph.DefaultCenter, 1500)

		assert.Equal(t, datastructure.GraphSourceNetwork, g.Source())
		assert.Equal(t, 3, g.NodeCount())
		assert.Equal(t, 2, g.EdgeCount())
	})
}
