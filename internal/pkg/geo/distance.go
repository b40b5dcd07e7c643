package geo

import "math"

const earthRadiusMeters = 6371000

// Point is a WGS84 coordinate.
type Point struct {
	Latitude  float64
	Longitude float64
}

// DistanceMeters returns the haversine great-circle distance between a and b.
func DistanceMeters(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DistanceFrom returns the distance from origin to (lat, lng) rounded to whole
// meters, or nil when either side is missing.
func DistanceFrom(origin *Point, lat, lng *float64) *int {
	if origin == nil || lat == nil || lng == nil {
		return nil
	}
	d := int(math.Round(DistanceMeters(*origin, Point{Latitude: *lat, Longitude: *lng})))
	return &d
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
