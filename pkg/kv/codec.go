package kv

import (
	"crowdshield/pkg/datastructure"

	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

type cachedEdge struct {
	From     int32
	To       int32
	WeightKm float64
}

// cachedGraph is the storable form of a graph. Edge polylines are not kept;
// fetched networks carry endpoint-only edges anyway.
type cachedGraph struct {
	Source string
	Lats   []float64
	Lons   []float64
	Edges  []cachedEdge
}

func EncodeGraph(g datastructure.Graph) ([]byte, error) {
	cg := cachedGraph{Source: string(g.Source())}
	for _, id := range g.NodeIDs() {
		c, _ := g.NodeCoordinate(id)
		cg.Lats = append(cg.Lats, c.Lat)
		cg.Lons = append(cg.Lons, c.Lon)
	}
	for _, e := range g.Edges() {
		cg.Edges = append(cg.Edges, cachedEdge{From: e.From, To: e.To, WeightKm: e.WeightKm})
	}

	encoded, err := binary.Marshal(&cg)
	if err != nil {
		return nil, err
	}

	var compressed []byte
	compressed, err = zstd.Compress(compressed, encoded)
	if err != nil {
		return nil, err
	}
	return compressed, nil
}

func DecodeGraph(bb []byte) (datastructure.Graph, error) {
	var decompressed []byte
	decompressed, err := zstd.Decompress(decompressed, bb)
	if err != nil {
		return nil, err
	}

	var cg cachedGraph
	if err := binary.Unmarshal(decompressed, &cg); err != nil {
		return nil, err
	}

	builder := datastructure.NewGraphBuilder(datastructure.GraphSource(cg.Source))
	for i := range cg.Lats {
		builder.AddNode(datastructure.NewCoordinate(cg.Lats[i], cg.Lons[i]))
	}
	for _, e := range cg.Edges {
		builder.AddEdge(e.From, e.To, e.WeightKm, nil)
	}
	return builder.Build(), nil
}
