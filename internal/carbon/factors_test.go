package carbon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate_KnownFactors(t *testing.T) {
	got, ok := Estimate(CategoryTransport, "car_gasoline_km", 100)
	assert.True(t, ok)
	assert.InDelta(t, 19.2, got, 1e-9)

	got, ok = Estimate(CategoryEnergy, "electricity_kwh", 10)
	assert.True(t, ok)
	assert.InDelta(t, 2.33, got, 1e-9)

	got, ok = Estimate(CategoryFood, "vegan_day", 7)
	assert.True(t, ok)
	assert.InDelta(t, 20.23, got, 1e-9)
}

func TestEstimate_ZeroEmissionModes(t *testing.T) {
	for _, subtype := range []string{"bike_km", "walk_km"} {
		got, ok := Estimate(CategoryTransport, subtype, 42)
		assert.True(t, ok, subtype)
		assert.Zero(t, got, subtype)
	}
}

func TestEstimate_Unknown(t *testing.T) {
	_, ok := Estimate(CategoryTransport, "rocket_km", 1)
	assert.False(t, ok)

	_, ok = Estimate(Category("mining"), "coal_kg", 1)
	assert.False(t, ok)
}

func TestEstimate_NegativeQuantity(t *testing.T) {
	_, ok := Estimate(CategoryTransport, "bus_km", -1)
	assert.False(t, ok)
}

func TestParseCategory(t *testing.T) {
	cat, ok := ParseCategory("transportation")
	assert.True(t, ok)
	assert.Equal(t, CategoryTransport, cat)

	cat, ok = ParseCategory("transport")
	assert.True(t, ok)
	assert.Equal(t, CategoryTransport, cat)

	_, ok = ParseCategory("industry")
	assert.False(t, ok)
}

func TestTable_IsACopy(t *testing.T) {
	tbl := Table()
	tbl[CategoryEnergy]["electricity_kwh"] = 999

	f, ok := Factor(CategoryEnergy, "electricity_kwh")
	assert.True(t, ok)
	assert.InDelta(t, 0.233, f, 1e-9)
}
