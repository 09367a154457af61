package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by Distance.
const EarthRadiusMeters = 6371000

type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Distance returns the great-circle distance between a and b in meters (haversine).
func Distance(a, b Coordinate) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// Fence is a circular allowed area around an office coordinate.
type Fence struct {
	Center       Coordinate
	RadiusMeters float64
}

// Check returns the distance from the fence center and whether p lies inside (inclusive).
func (f Fence) Check(p Coordinate) (float64, bool) {
	d := Distance(f.Center, p)
	return d, d <= f.RadiusMeters
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// OffsetNorth returns the point lying meters due north of c. Used to build fixtures at known distances.
func OffsetNorth(c Coordinate, meters float64) Coordinate {
	return Coordinate{
		Latitude:  c.Latitude + (meters/EarthRadiusMeters)*(180.0/math.Pi),
		Longitude: c.Longitude,
	}
}
