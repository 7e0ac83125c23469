package utils

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/obraseguro/backend/models"
)

// ValidateLatLng checks that a coordinate pair is a plausible GPS fix.
func ValidateLatLng(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return errors.New("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// DistanceMeters returns the great-circle distance between two coordinates.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	return geo.Distance(orb.Point{lng1, lat1}, orb.Point{lng2, lat2})
}

// DistanceFromObra returns the distance from a GPS fix to the obra's geocoded
// location, or nil when the obra has no coordinates. Informational only: a
// check-in far from the site is still recorded.
func DistanceFromObra(obra *models.Obra, lat, lng float64) *float64 {
	if !obra.HasCoordinates() {
		return nil
	}
	d := DistanceMeters(lat, lng, *obra.Latitude, *obra.Longitude)
	return &d
}
