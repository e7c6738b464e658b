package service_test

import (
	"os"
	"path/filepath"
	"testing"

	"crowdshield/service"

	"github.com/stretchr/testify/assert"
)

func TestLoadShelters(t *testing.T) {
	t.Run("parses rows and skips garbage", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "safe_zones.csv")
		csv := "name,lat,lon,capacity\n" +
			"Town Hall,9.9320,76.2680,200\n" +
			"Broken Row,not-a-lat,76.0,10\n" +
			"Stadium,9.9400,76.2700,5000\n"
		assert.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

		shelters, err := service.LoadShelters(path)
		assert.NoError(t, err)
		assert.Len(t, shelters, 2)
		assert.Equal(t, "Town Hall", shelters[0].Name)
		assert.Equal(t, 200, shelters[0].Capacity)
		assert.InDelta(t, 9.94, shelters[1].Location.Lat, 1e-9)
	})

	t.Run("missing file yields the fallback shelter", func(t *testing.T) {
		shelters, err := service.LoadShelters(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
		assert.Equal(t, []service.Shelter{service.FallbackShelter}, shelters)
	})

	t.Run("header-only file yields the fallback shelter", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.csv")
		assert.NoError(t, os.WriteFile(path, []byte("name,lat,lon,capacity\n"), 0o644))

		shelters, err := service.LoadShelters(path)
		assert.NoError(t, err)
		assert.Equal(t, []service.Shelter{service.FallbackShelter}, shelters)
	})
}
