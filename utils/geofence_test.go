package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obraseguro/backend/models"
)

func TestValidateLatLng(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{"são paulo", -23.5505, -46.6333, false},
		{"equator meridian", 0, 0, false},
		{"poles", 90, 180, false},
		{"negative bounds", -90, -180, false},
		{"lat too high", 90.1, 0, true},
		{"lat too low", -90.1, 0, true},
		{"lng too high", 0, 180.1, true},
		{"lng too low", 0, -180.1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLatLng(tt.lat, tt.lng)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDistanceMeters(t *testing.T) {
	assert.Zero(t, DistanceMeters(-23.5505, -46.6333, -23.5505, -46.6333))

	// São Paulo to Rio de Janeiro is roughly 360km
	d := DistanceMeters(-23.5505, -46.6333, -22.9068, -43.1729)
	assert.InDelta(t, 360_000, d, 10_000)
}

func TestDistanceFromObra(t *testing.T) {
	lat, lng := -23.5505, -46.6333
	obra := &models.Obra{Name: "Obra Centro", Latitude: &lat, Longitude: &lng}

	d := DistanceFromObra(obra, -23.5505, -46.6333)
	require.NotNil(t, d)
	assert.Zero(t, *d)

	d = DistanceFromObra(obra, -23.56, -46.64)
	require.NotNil(t, d)
	assert.Greater(t, *d, 0.0)

	// an obra without coordinates yields no distance at all
	assert.Nil(t, DistanceFromObra(&models.Obra{Name: "Sem GPS"}, -23.55, -46.63))
}
