// Package seed loads the sample catalog when the product store is empty,
// so a fresh install (or the in-memory fallback) has something to sell.
package seed

import (
	"context"
	"fmt"

	"medizo/models"
	"medizo/store"
)

// Products returns the sample catalog.
func Products() []models.Product {
	return []models.Product{
		{
			Name:        "Aspirin 500mg",
			Description: "Pain reliever and fever reducer, 20 tablets per pack.",
			Price:       120,
			Stock:       150,
			Category:    "Pain Relief",
			Featured:    true,
		},
		{
			Name:        "Paracetamol 650mg",
			Description: "Fast-acting relief for headaches and mild fever, 10 tablets.",
			Price:       45,
			Stock:       300,
			Category:    "Pain Relief",
		},
		{
			Name:        "Ibuprofen 400mg",
			Description: "Anti-inflammatory pain relief, 16 tablets.",
			Price:       95,
			Stock:       180,
			Category:    "Pain Relief",
		},
		{
			Name:        "Vitamin C 1000mg",
			Description: "Immune support effervescent tablets, orange flavor.",
			Price:       350,
			Stock:       90,
			Category:    "Vitamins",
			Featured:    true,
		},
		{
			Name:        "Multivitamin Daily",
			Description: "Complete daily multivitamin and mineral supplement, 60 capsules.",
			Price:       650,
			Stock:       75,
			Category:    "Vitamins",
		},
		{
			Name:        "Cough Syrup 100ml",
			Description: "Soothing honey and ginger cough syrup for dry coughs.",
			Price:       185,
			Stock:       60,
			Category:    "Cold & Flu",
		},
		{
			Name:        "Adhesive Bandages",
			Description: "Sterile waterproof bandages, assorted sizes, box of 40.",
			Price:       110,
			Stock:       200,
			Category:    "First Aid",
		},
		{
			Name:        "Hand Sanitizer 250ml",
			Description: "70% alcohol instant hand sanitizer with moisturizer.",
			Price:       160,
			Stock:       240,
			Category:    "First Aid",
		},
		{
			Name:        "Digital Thermometer",
			Description: "Fast-read digital thermometer with fever alarm.",
			Price:       450,
			Stock:       40,
			Category:    "Devices",
			Featured:    true,
		},
		{
			Name:        "Blood Pressure Monitor",
			Description: "Automatic upper-arm blood pressure monitor with memory.",
			Price:       2650,
			Stock:       15,
			Category:    "Devices",
		},
	}
}

// Ensure inserts the sample catalog when the store holds no products.
func Ensure(ctx context.Context, products store.ProductStore) error {
	page, err := products.Find(ctx, store.ProductQuery{Limit: 1})
	if err != nil {
		return fmt.Errorf("check catalog: %w", err)
	}
	if page.Total > 0 {
		return nil
	}

	for _, p := range Products() {
		p := p
		if err := products.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}
	return nil
}
