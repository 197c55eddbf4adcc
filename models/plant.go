package models

import "time"

// Plant categories as seeded by the catalog.
var PlantCategories = []string{"Air-Purifying", "Low-Light", "Pet-Friendly", "Succulents", "Tropical"}

type Plant struct {
	PlantID           string    `json:"id" bson:"plantid"`
	Name              string    `json:"name" bson:"name"`
	Description       string    `json:"description" bson:"description"`
	Price             float64   `json:"price" bson:"price"`
	Category          string    `json:"category" bson:"category"`
	Image             string    `json:"image" bson:"image"`
	Stock             int       `json:"stock" bson:"stock"`
	Featured          bool      `json:"featured" bson:"featured"`
	CareLevel         string    `json:"careLevel" bson:"carelevel"`
	LightRequirement  string    `json:"lightRequirement" bson:"lightrequirement"`
	WateringFrequency string    `json:"wateringFrequency" bson:"wateringfrequency"`
	CreatedAt         time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" bson:"updated_at"`
}

func ValidCategory(category string) bool {
	for _, c := range PlantCategories {
		if c == category {
			return true
		}
	}
	return false
}
