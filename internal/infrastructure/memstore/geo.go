package memstore

import "math"

// earthRadiusKm is the mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371

// Haversine returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
