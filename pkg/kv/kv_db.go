package kv

import (
	"fmt"
	"log/slog"

	"crowdshield/pkg/datastructure"

	"github.com/cockroachdb/pebble"
)

// GraphCache is an optional read-through store for fetched walking networks,
// keyed by rounded center and radius. It sits outside the engine core: a miss
// or a decode failure just means the caller fetches again.
type GraphCache struct {
	db     *pebble.DB
	logger *slog.Logger
}

func Open(dir string, logger *slog.Logger) (*GraphCache, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &GraphCache{db: db, logger: logger}, nil
}

func (c *GraphCache) Close() error {
	return c.db.Close()
}

func cacheKey(center datastructure.Coordinate, radiusM float64) []byte {
	return []byte(fmt.Sprintf("graph:%.4f:%.4f:%.0f", center.Lat, center.Lon, radiusM))
}

// Get returns the cached graph for a region, if present and decodable.
func (c *GraphCache) Get(center datastructure.Coordinate, radiusM float64) (datastructure.Graph, bool) {
	val, closer, err := c.db.Get(cacheKey(center, radiusM))
	if err != nil {
		return nil, false
	}
	buf := make([]byte, len(val))
	copy(buf, val)
	closer.Close()

	g, err := DecodeGraph(buf)
	if err != nil {
		c.logger.Warn("cached graph decode failed, treating as miss", "error", err)
		return nil, false
	}
	return g, true
}

// Put stores a graph for a region. Failures are logged and swallowed: the
// cache never blocks a routing request.
func (c *GraphCache) Put(center datastructure.Coordinate, radiusM float64, g datastructure.Graph) {
	buf, err := EncodeGraph(g)
	if err != nil {
		c.logger.Warn("graph encode failed, skipping cache write", "error", err)
		return
	}
	if err := c.db.Set(cacheKey(center, radiusM), buf, pebble.Sync); err != nil {
		c.logger.Warn("graph cache write failed", "error", err)
	}
}
