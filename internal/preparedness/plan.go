package preparedness

import "github.com/shenikar/family_crisis_hub/internal/models"

// DefaultPlan - стартовый план готовности к землетрясению
func DefaultPlan() models.PreparednessPlan {
	return models.PreparednessPlan{
		ID:   "plan_1",
		Name: "Family Earthquake Preparedness Plan",
		Items: []models.PreparednessItem{
			{
				ID:          "item_1",
				Category:    "Supplies",
				Name:        "72-Hour Emergency Kit",
				Status:      models.ItemIncomplete,
				Description: "A kit with water, non-perishable food, flashlight, radio, first-aid supplies, and medications for at least 3 days.",
			},
			{
				ID:          "item_2",
				Category:    "Supplies",
				Name:        "Water Storage",
				Status:      models.ItemIncomplete,
				Description: "Store at least one gallon of water per person, per day for three days.",
			},
			{
				ID:          "item_3",
				Category:    "Home Safety",
				Name:        "Secure Heavy Furniture",
				Status:      models.ItemComplete,
				Description: "Anchor bookcases, entertainment centers, and other tall furniture to wall studs.",
			},
			{
				ID:          "item_4",
				Category:    "Communication",
				Name:        "Out-of-State Contact",
				Status:      models.ItemComplete,
				Description: "Designate a relative or friend outside the area as a central contact point for all family members to check in with.",
			},
			{
				ID:          "item_5",
				Category:    "Drills",
				Name:        "Drop, Cover, and Hold On Drill",
				Status:      models.ItemIncomplete,
				Description: "Practice this drill with all family members at least twice a year.",
			},
			{
				ID:          "item_6",
				Category:    "Documents",
				Name:        "Emergency Document Copies",
				Status:      models.ItemIncomplete,
				Description: "Keep digital and physical copies of important documents (ID, insurance, bank records) in a waterproof container.",
			},
		},
	}
}
