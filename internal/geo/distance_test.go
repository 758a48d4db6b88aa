package geo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_SamePointIsZero(t *testing.T) {
	points := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: -6.2088, Lng: 106.8456},
		{Lat: 90, Lng: 180},
		{Lat: -90, Lng: -180},
		{Lat: 55.7558, Lng: 37.6173},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, Distance(p.Lat, p.Lng, p.Lat, p.Lng), "point %+v", p)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		a := Coordinate{Lat: rnd.Float64()*180 - 90, Lng: rnd.Float64()*360 - 180}
		b := Coordinate{Lat: rnd.Float64()*180 - 90, Lng: rnd.Float64()*360 - 180}
		assert.Equal(t, a.DistanceTo(b), b.DistanceTo(a))
	}
}

func TestDistance_AcrossEquator(t *testing.T) {
	d := Distance(1, 0, -1, 0)
	expected := 2 * 111320.0

	assert.InEpsilon(t, expected, d, 0.01)
}

func TestDistance_JakartaBandung(t *testing.T) {
	d := Distance(-6.2088, 106.8456, -6.9175, 107.6191)

	assert.Greater(t, d, 120000.0)
	assert.Less(t, d, 150000.0)
}

func TestDistance_NonNegative(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		d := Distance(rnd.Float64()*180-90, rnd.Float64()*360-180, rnd.Float64()*180-90, rnd.Float64()*360-180)
		assert.GreaterOrEqual(t, d, 0.0)
		// половина окружности - максимум
		assert.LessOrEqual(t, d, 3.1416*EarthRadiusMeters)
	}
}

func TestCovers_BoundaryInclusive(t *testing.T) {
	center := Coordinate{Lat: -6.2088, Lng: 106.8456}
	report := Coordinate{Lat: -6.2000, Lng: 106.8500}
	d := center.DistanceTo(report)

	assert.True(t, Covers(center, d, report))
	assert.False(t, Covers(center, d-1, report))
}
