package geo

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/overture-tools/valhallaconv/pkg/util"
)

// Coordinate is a (lat, lon) pair in decimal degrees, double precision.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

const (
	earthRadiusKM = 6371.0
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

// CalculateHaversineDistance. calculate haversine distance in km
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = util.DegreeToRadians(latOne)
	longOne = util.DegreeToRadians(longOne)
	latTwo = util.DegreeToRadians(latTwo)
	longTwo = util.DegreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// PolylineLengthKM sums the great-circle length of a coordinate sequence using
// s2 angles. Used for run summaries and degenerate-geometry diagnostics, never
// for the wire output.
func PolylineLengthKM(points []Coordinate) float64 {
	if len(points) < 2 {
		return 0
	}
	total := s1.Angle(0)
	prev := s2.LatLngFromDegrees(points[0].Lat, points[0].Lon)
	for i := 1; i < len(points); i++ {
		cur := s2.LatLngFromDegrees(points[i].Lat, points[i].Lon)
		total += prev.Distance(cur)
		prev = cur
	}
	return total.Radians() * earthRadiusKM
}
