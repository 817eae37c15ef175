package tests

import (
	"math"
	"time"

	"tripcost/internal/domain"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func gasolineQuote(price float64) *domain.FuelPrice {
	return &domain.FuelPrice{
		ID:              "price-gasoline",
		FuelType:        domain.FuelGasoline,
		PriceEURPerUnit: price,
		Unit:            "eur/l",
		Source:          "seed",
		FetchedAt:       time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	}
}

func dieselQuote(price float64) *domain.FuelPrice {
	return &domain.FuelPrice{
		ID:              "price-diesel",
		FuelType:        domain.FuelDiesel,
		PriceEURPerUnit: price,
		Unit:            "eur/l",
		Source:          "seed",
		FetchedAt:       time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	}
}
