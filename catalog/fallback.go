package catalog

import "github.com/Klaijan/rootin/model"

// fallbackProducts keeps the builder usable when GET /products fails.
var fallbackProducts = []model.Product{
	{
		ProductID:       1,
		BrandName:       "The Ordinary",
		ProductName:     "Niacinamide 10% + Zinc 1%",
		ProductType:     "serum",
		ProductTexture:  "serum",
		InciIngredients: []string{"Niacinamide", "Zinc PCA", "Aqua"},
	},
	{
		ProductID:       2,
		BrandName:       "CeraVe",
		ProductName:     "Foaming Facial Cleanser",
		ProductType:     "cleanser",
		ProductTexture:  "gel",
		InciIngredients: []string{"Aqua", "Cocamidopropyl Hydroxysultaine", "Niacinamide", "Ceramide NP"},
	},
	{
		ProductID:       3,
		BrandName:       "La Roche-Posay",
		ProductName:     "Anthelios Invisible Fluid SPF50+",
		ProductType:     "sun_protection",
		ProductTexture:  "lotion",
		InciIngredients: []string{"Aqua", "Alcohol Denat", "Drometrizole Trisiloxane"},
	},
}

// fallbackStepNames mirrors the backend's product_type_order table.
var fallbackStepNames = model.StepNameMap{
	1:                        "Cleanser",
	2:                        "Exfoliator",
	3:                        "Toner and Essence",
	4:                        "Toner and Essence",
	5:                        "Treatment",
	6:                        "Sheet Mask",
	7:                        "Eye Care",
	8:                        "Moisturizer",
	9:                        "Face Oil",
	10:                       "Sun Protection",
	model.AdditionalCareStep: "Additional Care",
}

// fallbackTreatments keeps the screening picker populated offline.
var fallbackTreatments = []model.Treatment{
	{TreatmentID: 1, Name: "microneedling", DisplayName: "Microneedling"},
	{TreatmentID: 2, Name: "chemical_peel", DisplayName: "Chemical Peel"},
	{TreatmentID: 3, Name: "laser_resurfacing", DisplayName: "Laser Resurfacing"},
}
