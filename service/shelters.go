package service

import (
	"encoding/csv"
	"os"
	"strconv"

	"crowdshield/pkg/datastructure"
)

// LoadShelters reads a shelter list from a CSV file with a
// name,lat,lon,capacity header. Rows with unparseable coordinates are
// skipped. A missing or empty file yields the fallback shelter.
func LoadShelters(path string) ([]Shelter, error) {
	f, err := os.Open(path)
	if err != nil {
		return []Shelter{FallbackShelter}, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return []Shelter{FallbackShelter}, err
	}

	shelters := make([]Shelter, 0, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue
		}
		lat, errLat := strconv.ParseFloat(row[1], 64)
		lon, errLon := strconv.ParseFloat(row[2], 64)
		if errLat != nil || errLon != nil {
			continue
		}
		capacity := 0
		if len(row) > 3 {
			capacity, _ = strconv.Atoi(row[3])
		}
		shelters = append(shelters, Shelter{
			Name:     row[0],
			Location: datastructure.NewCoordinate(lat, lon),
			Capacity: capacity,
		})
	}

	if len(shelters) == 0 {
		return []Shelter{FallbackShelter}, nil
	}
	return shelters, nil
}
