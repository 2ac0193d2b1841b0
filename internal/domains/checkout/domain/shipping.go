package domain

import "errors"

// Region is a named geographic shipping zone.
type Region string

const (
	RegionMetropolitana Region = "Metropolitana"
	RegionValparaiso    Region = "Valparaíso"
	RegionBiobio        Region = "Biobío"
	RegionAntofagasta   Region = "Antofagasta"
	RegionMagallanes    Region = "Magallanes"
)

// PerItemRate is the surcharge added per unit in the cart, in whole pesos.
const PerItemRate int64 = 500

// defaultRegionRate applies to regions outside the table.
const defaultRegionRate int64 = 6500

// regionRates folds the base rate into each zone. The capital zone ships free
// apart from the per-item surcharge.
var regionRates = map[Region]int64{
	RegionMetropolitana: 0,
	RegionValparaiso:    5000,
	RegionBiobio:        6000,
	RegionAntofagasta:   8000,
	RegionMagallanes:    10000,
}

// ErrNegativeItemCount rejects quotes for an impossible cart size.
var ErrNegativeItemCount = errors.New("shipping item count cannot be negative")

// Quote computes the shipping fee for a region and unit count. It is pure:
// same inputs always yield the same fee. Unknown regions fall back to the
// default rate instead of failing.
func Quote(region Region, itemCount int) (int64, error) {
	if itemCount < 0 {
		return 0, ErrNegativeItemCount
	}
	rate, ok := regionRates[region]
	if !ok {
		rate = defaultRegionRate
	}
	return rate + int64(itemCount)*PerItemRate, nil
}

// KnownRegions lists the zones of the rate table, for validation and display.
func KnownRegions() []Region {
	return []Region{RegionMetropolitana, RegionValparaiso, RegionBiobio, RegionAntofagasta, RegionMagallanes}
}
