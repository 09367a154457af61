package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	monas := Coordinate{Latitude: -6.175392, Longitude: 106.827153}

	t.Run("same point", func(t *testing.T) {
		assert.InDelta(t, 0, Distance(monas, monas), 1e-9)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		a := Coordinate{Latitude: 0, Longitude: 0}
		b := Coordinate{Latitude: 1, Longitude: 0}
		assert.InDelta(t, 111194.93, Distance(a, b), 0.5)
	})

	t.Run("symmetric", func(t *testing.T) {
		other := Coordinate{Latitude: -6.2, Longitude: 106.8}
		assert.InDelta(t, Distance(monas, other), Distance(other, monas), 1e-6)
	})
}

func TestFenceCheck(t *testing.T) {
	office := Coordinate{Latitude: -6.2, Longitude: 106.816666}
	fence := Fence{Center: office, RadiusMeters: 100}

	d, ok := fence.Check(OffsetNorth(office, 99))
	assert.True(t, ok)
	assert.InDelta(t, 99, d, 0.01)

	d, ok = fence.Check(OffsetNorth(office, 150))
	assert.False(t, ok)
	assert.InDelta(t, 150, d, 0.01)
}
