package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/vanij/app/repositories"
	"github.com/shashiranjanraj/vanij/config"
	"github.com/shashiranjanraj/vanij/database/seeders"
	"github.com/shashiranjanraj/vanij/pkg/database"
)

// withDB loads config, opens the store, runs fn and disconnects.
func withDB(fn func(ctx context.Context, db *mongo.Database) error) error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.Connect(ctx)
	if err != nil {
		return err
	}
	defer database.Disconnect(client) //nolint:errcheck

	return fn(ctx, client.Database(config.MongoDB()))
}

// vanij db:indexes
var dbIndexesCmd = &cobra.Command{
	Use:   "db:indexes",
	Short: "Create the required MongoDB indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context, db *mongo.Database) error {
			fmt.Println("Ensuring indexes…")
			return repositories.EnsureIndexes(ctx, db)
		})
	},
}

// vanij db:seed
var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Seed the catalog with sample products",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context, db *mongo.Database) error {
			fmt.Println("Running seeders…")
			return seeders.RunAll(ctx, db)
		})
	},
}
