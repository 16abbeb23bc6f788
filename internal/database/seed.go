package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeedProducts returns the starter catalog inserted on first boot. The ids
// are fixed so repeated deployments agree on them.
func SeedProducts() []Product {
	now := time.Now().UTC()
	desc := func(s string) *string { return &s }

	return []Product{
		{
			ID:          uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			Code:        "LAPTOP001",
			Name:        "Dell Latitude 5520 Laptop",
			Unit:        "PC",
			RefPrice:    decimal.RequireFromString("1299.99"),
			Description: desc("15.6-inch business laptop with Intel Core i7 processor"),
			CreatedAt:   now,
		},
		{
			ID:          uuid.MustParse("22222222-2222-2222-2222-222222222222"),
			Code:        "MOUSE001",
			Name:        "Logitech MX Master 3 Mouse",
			Unit:        "PC",
			RefPrice:    decimal.RequireFromString("99.99"),
			Description: desc("Advanced wireless mouse for productivity"),
			CreatedAt:   now,
		},
		{
			ID:          uuid.MustParse("33333333-3333-3333-3333-333333333333"),
			Code:        "PAPER001",
			Name:        "A4 Copy Paper",
			Unit:        "REAM",
			RefPrice:    decimal.RequireFromString("4.99"),
			Description: desc("500 sheets of white A4 copy paper"),
			CreatedAt:   now,
		},
		{
			ID:          uuid.MustParse("44444444-4444-4444-4444-444444444444"),
			Code:        "PEN001",
			Name:        "Ballpoint Pen Set",
			Unit:        "SET",
			RefPrice:    decimal.RequireFromString("12.50"),
			Description: desc("Set of 10 blue ballpoint pens"),
			CreatedAt:   now,
		},
		{
			ID:          uuid.MustParse("55555555-5555-5555-5555-555555555555"),
			Code:        "MONITOR001",
			Name:        "Samsung 24-inch Monitor",
			Unit:        "PC",
			RefPrice:    decimal.RequireFromString("249.99"),
			Description: desc("Full HD 1920x1080 LED monitor"),
			CreatedAt:   now,
		},
	}
}
