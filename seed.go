package main

import (
	"context"
	"fmt"
	"io"

	"legolelo/internal/config"
	"legolelo/internal/logging"
	"legolelo/internal/models"
	"legolelo/internal/repositories"
)

// demoToys returns the toys inserted by the seed command.
func demoToys() []models.Toy {
	return []models.Toy{
		{ToyName: "X-Wing Starfighter", SubCategory: "Star Wars", Email: "demo@legolelo.dev", Picture: "https://images.legolelo.dev/x-wing.jpg", Details: "Buildable T-65B with pilot minifigure", Quantity: 12, Ratings: 4.8, Price: 59.99},
		{ToyName: "Millennium Falcon", SubCategory: "Star Wars", Email: "demo@legolelo.dev", Picture: "https://images.legolelo.dev/falcon.jpg", Details: "Corellian freighter with opening hull", Quantity: 3, Ratings: 4.9, Price: 169.99},
		{ToyName: "Fire Station", SubCategory: "City", Email: "demo@legolelo.dev", Picture: "https://images.legolelo.dev/fire-station.jpg", Details: "Station, truck and three firefighters", Quantity: 8, Ratings: 4.5, Price: 79.99},
		{ToyName: "Police Patrol Boat", SubCategory: "City Harbor", Email: "ops@legolelo.dev", Picture: "https://images.legolelo.dev/patrol-boat.jpg", Details: "Floating boat with jet ski", Quantity: 15, Ratings: 4.2, Price: 34.99},
		{ToyName: "Race Car Transporter", SubCategory: "Speed Champions", Email: "ops@legolelo.dev", Picture: "https://images.legolelo.dev/transporter.jpg", Details: "Truck, trailer and two race cars", Quantity: 6, Ratings: 4.6, Price: 49.99},
	}
}

func seedToys(ctx context.Context, repo repositories.ToyRepository) ([]models.InsertResult, error) {
	toys := demoToys()
	results := make([]models.InsertResult, 0, len(toys))
	for i := range toys {
		res, err := repo.Create(ctx, &toys[i])
		if err != nil {
			return results, fmt.Errorf("failed to seed toy %s: %w", toys[i].ToyName, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// seedIfEmpty inserts the demo toys unless the store already holds toys.
func seedIfEmpty(ctx context.Context, repo repositories.ToyRepository, log logging.Logger) error {
	one := int64(1)
	existing, err := repo.Find(ctx, repositories.ToyQuery{Limit: &one})
	if err != nil {
		return fmt.Errorf("failed to inspect store before seeding: %w", err)
	}
	if len(existing) > 0 {
		log.Info(ctx, "store already has toys, skipping demo data")
		return nil
	}

	results, err := seedToys(ctx, repo)
	if err != nil {
		return err
	}
	log.Info(ctx, "seeded demo toys", "count", len(results))
	return nil
}

func runSeed(ctx context.Context, cfg *config.Config, out io.Writer) error {
	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}
	defer closeStore()

	results, err := seedToys(ctx, repo)
	for _, res := range results {
		fmt.Fprintf(out, "seeded toy %s\n", res.InsertedID.Hex())
	}
	return err
}
