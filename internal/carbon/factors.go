package carbon

// Category groups activities into the three running emission totals.
type Category string

const (
	CategoryTransport Category = "transportation"
	CategoryEnergy    Category = "energy"
	CategoryFood      Category = "food"
)

// Factors holds kg-CO2e-per-unit emission factors, replicated from the
// calculation backend so the app can render an instant local preview.
// The values must stay byte-for-byte aligned with the service's table;
// parity is covered by tests against a service double.
var factors = map[Category]map[string]float64{
	CategoryTransport: {
		"car_gasoline_km": 0.192,
		"car_diesel_km":   0.171,
		"car_electric_km": 0.053,
		"bus_km":          0.089,
		"train_km":        0.041,
		"plane_short_km":  0.255,
		"plane_long_km":   0.195,
		"bike_km":         0.0,
		"walk_km":         0.0,
	},
	CategoryEnergy: {
		"electricity_kwh":   0.233,
		"natural_gas_kwh":   0.185,
		"heating_oil_liter": 2.52,
	},
	CategoryFood: {
		"meat_heavy_day":  7.19,
		"meat_medium_day": 5.63,
		"meat_low_day":    4.67,
		"pescatarian_day": 3.91,
		"vegetarian_day":  3.81,
		"vegan_day":       2.89,
	},
}

// Factor returns the emission factor for a subtype within a category.
func Factor(cat Category, subtype string) (float64, bool) {
	m, ok := factors[cat]
	if !ok {
		return 0, false
	}
	f, ok := m[subtype]
	return f, ok
}

// Estimate computes quantity × factor for a local preview. The second
// return is false for unknown categories/subtypes or negative quantities.
func Estimate(cat Category, subtype string, quantity float64) (float64, bool) {
	if quantity < 0 {
		return 0, false
	}
	f, ok := Factor(cat, subtype)
	if !ok {
		return 0, false
	}
	return quantity * f, true
}

// Subtypes lists the known activity subtypes for a category, for catalog
// endpoints and validation at the API boundary.
func Subtypes(cat Category) []string {
	m, ok := factors[cat]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// Table returns a copy of the full factor table.
func Table() map[Category]map[string]float64 {
	out := make(map[Category]map[string]float64, len(factors))
	for cat, m := range factors {
		cp := make(map[string]float64, len(m))
		for k, v := range m {
			cp[k] = v
		}
		out[cat] = cp
	}
	return out
}

// ParseCategory maps a wire string to a Category.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryTransport, CategoryEnergy, CategoryFood:
		return Category(s), true
	}
	// the mobile client historically sent the short form for transport
	if s == "transport" {
		return CategoryTransport, true
	}
	return "", false
}
