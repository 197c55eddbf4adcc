package seed

import (
	"context"
	"log"
	"time"

	"greennest/db"
	"greennest/models"
	"greennest/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var plants = []models.Plant{
	{
		PlantID:           "snake-plant",
		Name:              "Snake Plant",
		Description:       "Also known as Mother-in-Law's Tongue, this hardy plant is perfect for beginners. It purifies air and tolerates low light.",
		Price:             24.99,
		Category:          "Air-Purifying",
		Image:             "/images/snake-plant.jpg",
		Stock:             15,
		CareLevel:         "Easy",
		LightRequirement:  "Low",
		WateringFrequency: "Every 2-3 weeks",
		Featured:          true,
	},
	{
		PlantID:           "peace-lily",
		Name:              "Peace Lily",
		Description:       "Beautiful white flowers and excellent air purification qualities. Thrives in low to medium light.",
		Price:             29.99,
		Category:          "Air-Purifying",
		Image:             "/images/peace-lily.jpg",
		Stock:             12,
		CareLevel:         "Easy",
		LightRequirement:  "Low",
		WateringFrequency: "Weekly",
		Featured:          true,
	},
	{
		PlantID:           "zz-plant",
		Name:              "ZZ Plant",
		Description:       "Zamioculcas zamiifolia is nearly indestructible. Perfect for offices and low-light spaces.",
		Price:             34.50,
		Category:          "Low-Light",
		Image:             "/images/zz-plant.jpg",
		Stock:             10,
		CareLevel:         "Easy",
		LightRequirement:  "Low",
		WateringFrequency: "Every 2-3 weeks",
	},
	{
		PlantID:           "pothos",
		Name:              "Golden Pothos",
		Description:       "Fast-growing trailing vine with heart-shaped leaves. Great for hanging baskets or shelves.",
		Price:             19.99,
		Category:          "Low-Light",
		Image:             "/images/pothos.jpg",
		Stock:             20,
		CareLevel:         "Easy",
		LightRequirement:  "Low",
		WateringFrequency: "Weekly",
		Featured:          true,
	},
	{
		PlantID:           "parlor-palm",
		Name:              "Parlor Palm",
		Description:       "Elegant palm that's safe for pets. Adds a tropical touch to any room.",
		Price:             22.00,
		Category:          "Pet-Friendly",
		Image:             "/images/parlor-palm.jpg",
		Stock:             8,
		CareLevel:         "Moderate",
		LightRequirement:  "Medium",
		WateringFrequency: "Weekly",
	},
	{
		PlantID:           "calathea",
		Name:              "Calathea",
		Description:       "Stunning patterned leaves that fold up at night. A pet-safe statement plant.",
		Price:             27.50,
		Category:          "Pet-Friendly",
		Image:             "/images/calathea.jpg",
		Stock:             9,
		CareLevel:         "Advanced",
		LightRequirement:  "Medium",
		WateringFrequency: "Twice a week",
	},
	{
		PlantID:           "echeveria",
		Name:              "Echeveria",
		Description:       "Rosette-forming succulent with pastel tones. Needs bright light and little water.",
		Price:             12.99,
		Category:          "Succulents",
		Image:             "/images/echeveria.jpg",
		Stock:             25,
		CareLevel:         "Easy",
		LightRequirement:  "High",
		WateringFrequency: "Every 2-3 weeks",
	},
	{
		PlantID:           "jade-plant",
		Name:              "Jade Plant",
		Description:       "A classic succulent said to bring good luck. Thick glossy leaves on woody stems.",
		Price:             16.50,
		Category:          "Succulents",
		Image:             "/images/jade-plant.jpg",
		Stock:             18,
		CareLevel:         "Easy",
		LightRequirement:  "High",
		WateringFrequency: "Every 2-3 weeks",
	},
	{
		PlantID:           "monstera",
		Name:              "Monstera Deliciosa",
		Description:       "The iconic split-leaf philodendron. Fast-growing tropical centerpiece.",
		Price:             39.99,
		Category:          "Tropical",
		Image:             "/images/monstera.jpg",
		Stock:             7,
		CareLevel:         "Moderate",
		LightRequirement:  "Medium",
		WateringFrequency: "Weekly",
		Featured:          true,
	},
	{
		PlantID:           "bird-of-paradise",
		Name:              "Bird of Paradise",
		Description:       "Dramatic banana-like leaves that bring instant jungle vibes to bright rooms.",
		Price:             49.99,
		Category:          "Tropical",
		Image:             "/images/bird-of-paradise.jpg",
		Stock:             5,
		CareLevel:         "Moderate",
		LightRequirement:  "High",
		WateringFrequency: "Weekly",
	},
}

// Run upserts the starter catalog and a default admin account. Safe to run
// repeatedly; stock and prices of existing plants are left alone.
func Run(ctx context.Context) error {
	now := time.Now()
	for _, plant := range plants {
		plant.CreatedAt = now
		plant.UpdatedAt = now

		_, err := db.PlantsCollection.UpdateOne(ctx,
			bson.M{"plantid": plant.PlantID},
			bson.M{"$setOnInsert": plant},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}
	log.Printf("Seeded %d plants", len(plants))

	return seedAdmin(ctx)
}

func seedAdmin(ctx context.Context) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		UserID:    "u" + utils.GenerateID(10),
		Username:  "admin",
		Name:      "GreenNest Admin",
		Email:     "admin@greennest.local",
		Password:  string(hashed),
		Role:      []string{"admin"},
		CreatedAt: time.Now(),
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"email": admin.Email},
		bson.M{"$setOnInsert": admin},
		options.Update().SetUpsert(true),
	)
	if err == nil {
		log.Println("Seeded admin user admin@greennest.local")
	}
	return err
}
