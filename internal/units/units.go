package units

import "github.com/shopspring/decimal"

var milesPerKm = decimal.NewFromFloat(0.621371)

// KmToMiles converts kilometers to miles rounded to two decimal places.
func KmToMiles(km float64) float64 {
	mi, _ := decimal.NewFromFloat(km).Mul(milesPerKm).Round(2).Float64()
	return mi
}

// TonsToKg converts metric tons to kilograms.
func TonsToKg(tons float64) float64 {
	return tons * 1000
}
